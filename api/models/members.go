package models

import (
	"github.com/CarlManson/hottest100/storage"
)

type MemberCreateRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type MemberUpdateRequest struct {
	Name string `json:"name"`
}

type PickEntry struct {
	SongID string `json:"songId"`
	Rank   int    `json:"rank"`
}

type ReplacePicksRequest struct {
	Picks []PickEntry `json:"picks"`
}

type MemberResponse struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Picks []PickEntry `json:"picks"`
}

func TransformMemberFromStorage(m *storage.FamilyMember, picks []*storage.Pick) MemberResponse {
	entries := make([]PickEntry, 0, len(picks))
	for _, p := range picks {
		entries = append(entries, PickEntry{SongID: p.SongID, Rank: p.Rank})
	}
	return MemberResponse{
		ID:    m.ID,
		Name:  m.Name,
		Picks: entries,
	}
}
