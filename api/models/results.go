package models

import (
	"github.com/CarlManson/hottest100/storage"
)

type ResultPutRequest struct {
	SongID string `json:"songId"`
}

type ResultEntryResponse struct {
	Position   int    `json:"position"`
	SongID     string `json:"songId"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Australian bool   `json:"australian"`
}

// ResultsResponse splits the revealed countdown into its two bands, each
// sorted by position.
type ResultsResponse struct {
	Hottest100 []ResultEntryResponse `json:"hottest100"`
	Hottest200 []ResultEntryResponse `json:"hottest200"`
}

func TransformResultFromStorage(r *storage.CountdownResult, song *storage.Song) ResultEntryResponse {
	entry := ResultEntryResponse{
		Position: r.Position,
		SongID:   r.SongID,
	}
	if song != nil {
		entry.Title = song.Title
		entry.Artist = song.Artist
		entry.Australian = song.Australian
	}
	return entry
}
