package model

type LeaderBoardEntry struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Value uint64 `json:"value"`
}

type GetLeaderBoardRequest struct {
	Type   string `json:"type"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetLeaderBoardResponse struct {
	Data []LeaderBoardEntry `json:"data"`
}
