package model

type User struct {
	ID         string `json:"id"`
	TelegramID int64  `json:"telegram_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`

	Balance    uint64 `json:"balance"`
	AdsWatched uint64 `json:"ads_watched"`
	AdStreak   uint64 `json:"ad_streak"`
	BoostCount uint64 `json:"boost_count"`

	BoostActiveUntil string `json:"boost_active_until,omitempty"`
	LastDailyClaim   string `json:"last_daily_claim,omitempty"`

	ReferralCode  string `json:"referral_code"`
	ReferralCount uint64 `json:"referral_count"`
}

type GetMeRequest struct{}

type GetMeResponse struct {
	User         User   `json:"user"`
	ReferralLink string `json:"referral_link"`
	IsMember     bool   `json:"is_member"`
}
