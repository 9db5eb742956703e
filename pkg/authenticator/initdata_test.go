package authenticator

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

const testBotToken = "12345:test-bot-token"

func testValues() url.Values {
	return url.Values{
		"user":      {`{"id":42,"username":"alice","first_name":"Alice"}`},
		"auth_date": {"1700000000"},
		"query_id":  {"AAHdF6IQAAAAAN0XohDhrOrc"},
	}
}

func TestVerifyInitData(t *testing.T) {
	initData := SignInitData(testValues(), testBotToken)

	parsed, err := VerifyInitData(initData, testBotToken, false)
	require.NoError(t, err)
	require.Equal(t, int64(42), parsed.User.ID)
	require.Equal(t, "alice", parsed.User.Username)
	require.Equal(t, "AAHdF6IQAAAAAN0XohDhrOrc", parsed.QueryID)
	require.Equal(t, int64(1700000000), parsed.AuthDate.Unix())
}

func TestVerifyInitData_Tampered(t *testing.T) {
	initData := SignInitData(testValues(), testBotToken)

	values, err := url.ParseQuery(initData)
	require.NoError(t, err)
	values.Set("user", `{"id":43,"username":"mallory"}`)

	_, err = VerifyInitData(values.Encode(), testBotToken, false)
	require.ErrorIs(t, err, ErrInvalidHash)

	// Signed under another bot token.
	_, err = VerifyInitData(SignInitData(testValues(), "999:other"), testBotToken, false)
	require.ErrorIs(t, err, ErrInvalidHash)
}

func TestVerifyInitData_MissingPieces(t *testing.T) {
	_, err := VerifyInitData("", testBotToken, false)
	require.ErrorIs(t, err, ErrMissingInitData)

	// No hash field at all.
	_, err = VerifyInitData(testValues().Encode(), testBotToken, false)
	require.ErrorIs(t, err, ErrInvalidHash)

	// A valid signature over claims without a user id is still rejected.
	_, err = VerifyInitData(SignInitData(url.Values{
		"auth_date": {"1700000000"},
	}, testBotToken), testBotToken, false)
	require.Error(t, err)
}

func TestVerifyInitData_SkipVerification(t *testing.T) {
	parsed, err := VerifyInitData(testValues().Encode(), testBotToken, true)
	require.NoError(t, err)
	require.Equal(t, int64(42), parsed.User.ID)
}

func TestTelegramUser_DisplayName(t *testing.T) {
	require.Equal(t, "alice", TelegramUser{ID: 1, Username: "alice", FirstName: "Alice"}.DisplayName())
	require.Equal(t, "Alice", TelegramUser{ID: 1, FirstName: "Alice"}.DisplayName())
	require.Equal(t, "user1", TelegramUser{ID: 1}.DisplayName())
}
