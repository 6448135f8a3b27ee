package models

import (
	"github.com/CarlManson/hottest100/storage"
)

type SongCreateRequest struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Thumbnail  string `json:"thumbnail"`
	Australian bool   `json:"australian"`
}

type SongUpdateRequest struct {
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Thumbnail  string `json:"thumbnail"`
	Australian bool   `json:"australian"`
}

type SongResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Thumbnail  string `json:"thumbnail"`
	Australian bool   `json:"australian"`
}

func TransformSongFromStorage(s *storage.Song) SongResponse {
	return SongResponse{
		ID:         s.ID,
		Title:      s.Title,
		Artist:     s.Artist,
		Thumbnail:  s.Thumbnail,
		Australian: s.Australian,
	}
}
