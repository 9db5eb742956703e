package model

type WatchAdRequest struct {
	// Receipt is an opaque token from the client ad SDK, kept for audit.
	Receipt string `json:"receipt,omitempty"`
}

type WatchAdResponse struct {
	Reward         uint64 `json:"reward"`
	Balance        uint64 `json:"balance"`
	AdStreak       uint64 `json:"ad_streak"`
	AdsToNextBoost int    `json:"ads_to_next_boost"`
	BoostStarted   bool   `json:"boost_started"`
	BoostUntil     string `json:"boost_until,omitempty"`
}

type GetAdOfferRequest struct{}

type GetAdOfferResponse struct {
	Available bool   `json:"available"`
	Reward    uint64 `json:"reward"`
}

type ClaimDailyRequest struct{}

type ClaimDailyResponse struct {
	Reward  uint64 `json:"reward"`
	Balance uint64 `json:"balance"`
}

type RegisterReferralRequest struct {
	Code string `json:"code"`
}

type RegisterReferralResponse struct {
	Reward  uint64 `json:"reward"`
	Balance uint64 `json:"balance"`
}
