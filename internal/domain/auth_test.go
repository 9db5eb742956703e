package domain

import (
	"net/url"
	"testing"

	"github.com/rewardlab/backend/internal/model"
	"github.com/rewardlab/backend/internal/repository"
	"github.com/rewardlab/backend/pkg/authenticator"
	"github.com/rewardlab/backend/pkg/testutil"
	"github.com/rewardlab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func signedInitData(botToken string) string {
	values := url.Values{}
	values.Set("user", `{"id":7777,"username":"eve"}`)
	values.Set("auth_date", "1700000000")
	return authenticator.SignInitData(values, botToken)
}

func Test_authDomain_Login_CreatesAccount(t *testing.T) {
	ctx := testutil.NewMockContext()
	userRepo := repository.NewUserRepository()
	d := NewAuthDomain(userRepo)

	botToken := xcontext.Configs(ctx).Telegram.BotToken
	resp, err := d.Login(ctx, &model.LoginRequest{InitData: signedInitData(botToken)})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.Equal(t, "eve", resp.User.Name)
	require.NotEmpty(t, resp.User.ReferralCode)

	var claims model.AccessToken
	require.NoError(t, xcontext.TokenEngine(ctx).Verify(resp.AccessToken, &claims))
	require.Equal(t, resp.User.ID, claims.ID)
	require.Equal(t, int64(7777), claims.TelegramID)

	user, err := userRepo.GetByTelegramID(ctx, 7777)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, user.ID)

	// A second login reuses the account.
	again, err := d.Login(ctx, &model.LoginRequest{InitData: signedInitData(botToken)})
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, again.User.ID)

	count, err := userRepo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func Test_authDomain_Login_RejectsTamperedInitData(t *testing.T) {
	ctx := testutil.NewMockContext()
	d := NewAuthDomain(repository.NewUserRepository())

	botToken := xcontext.Configs(ctx).Telegram.BotToken
	initData := signedInitData(botToken)

	values, err := url.ParseQuery(initData)
	require.NoError(t, err)
	values.Set("user", `{"id":1,"username":"mallory"}`)

	_, err = d.Login(ctx, &model.LoginRequest{InitData: values.Encode()})
	require.Error(t, err)
	require.Equal(t, "Invalid init data", err.Error())

	_, err = d.Login(ctx, &model.LoginRequest{InitData: ""})
	require.Error(t, err)
}
