package domain

import (
	"testing"

	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/internal/model"
	"github.com/rewardlab/backend/internal/repository"
	"github.com/rewardlab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_settingDomain_GetSettings_FallsBackToConfig(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := NewSettingDomain(repository.NewSettingRepository(), repository.NewUserRepository())

	resp, err := d.GetSettings(ctx, &model.GetSettingsRequest{})
	require.NoError(t, err)
	require.Equal(t, "https://t.me/mock_channel", resp.ChannelLink)
	require.Equal(t, "https://t.me/mock_support", resp.SupportLink)
}

func Test_settingDomain_UpdateSetting(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := NewSettingDomain(repository.NewSettingRepository(), repository.NewUserRepository())

	// Only admins change settings.
	_, err := d.UpdateSetting(testutil.NewMockContextWithUserID(ctx, testutil.User1.ID),
		&model.UpdateSettingRequest{Key: entity.SettingChannelLink, Value: "https://t.me/other"})
	require.Error(t, err)

	adminCtx := testutil.NewMockContextWithUserID(ctx, testutil.Admin.ID)
	_, err = d.UpdateSetting(adminCtx, &model.UpdateSettingRequest{
		Key:   entity.SettingChannelLink,
		Value: "https://t.me/other",
	})
	require.NoError(t, err)

	_, err = d.UpdateSetting(adminCtx, &model.UpdateSettingRequest{Key: "bot_token", Value: "nope"})
	require.Error(t, err)

	resp, err := d.GetSettings(ctx, &model.GetSettingsRequest{})
	require.NoError(t, err)
	require.Equal(t, "https://t.me/other", resp.ChannelLink)

	// Updating twice overwrites, not duplicates.
	_, err = d.UpdateSetting(adminCtx, &model.UpdateSettingRequest{
		Key:   entity.SettingChannelLink,
		Value: "https://t.me/final",
	})
	require.NoError(t, err)

	resp, err = d.GetSettings(ctx, &model.GetSettingsRequest{})
	require.NoError(t, err)
	require.Equal(t, "https://t.me/final", resp.ChannelLink)
}
