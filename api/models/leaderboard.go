package models

type LeaderboardEntryResponse struct {
	MemberID   string `json:"memberId"`
	Name       string `json:"name"`
	Score      int    `json:"score"`
	Rank       int    `json:"rank"`
	Efficiency int    `json:"efficiency"`
	Matches    int    `json:"matches"`
}

type LeaderboardResponse struct {
	Entries          []LeaderboardEntryResponse `json:"entries"`
	MaxPossibleScore int                        `json:"maxPossibleScore"`
	RevealedMain     int                        `json:"revealedMain"`
	RevealedExtended int                        `json:"revealedExtended"`
}

type MatchResponse struct {
	SongID   string `json:"songId"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Rank     int    `json:"rank"`
	Position int    `json:"position"`
	Points   int    `json:"points"`
}

// MemberMatchesResponse lists every pick for one member with its countdown
// fate; position and points stay zero for picks that have not appeared.
type MemberMatchesResponse struct {
	MemberID string          `json:"memberId"`
	Name     string          `json:"name"`
	Score    int             `json:"score"`
	Matches  []MatchResponse `json:"matches"`
}

type AwardResponse struct {
	ID          string `json:"id"`
	Emoji       string `json:"emoji"`
	Title       string `json:"title"`
	Description string `json:"description"`
	WinnerID    string `json:"winnerId"`
	WinnerName  string `json:"winnerName"`
	Details     string `json:"details"`
}
