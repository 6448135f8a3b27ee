package controllers

import (
	"context"
	"sort"

	"github.com/CarlManson/hottest100/api/models"
	"github.com/CarlManson/hottest100/live"
	"github.com/CarlManson/hottest100/logging"
	"github.com/CarlManson/hottest100/scoring"
	"github.com/CarlManson/hottest100/storage"
)

// Snapshot is the whole competition state in scoring terms: the catalog,
// every member with their picks, and the revealed countdown split by band.
type Snapshot struct {
	Songs    []scoring.Song
	Members  []scoring.Member
	Main     []scoring.Result
	Extended []scoring.Result
}

// SnapshotLoader pulls the competition state out of storage. Every read-side
// endpoint goes through it so scoring always sees the same shape.
type SnapshotLoader struct {
	songs   storage.SongStorage
	members storage.MemberStorage
	picks   storage.PickStorage
	results storage.ResultStorage
}

func NewSnapshotLoader(songs storage.SongStorage, members storage.MemberStorage, picks storage.PickStorage, results storage.ResultStorage) *SnapshotLoader {
	return &SnapshotLoader{
		songs:   songs,
		members: members,
		picks:   picks,
		results: results,
	}
}

func (l *SnapshotLoader) Load(ctx context.Context) (*Snapshot, error) {
	songs, err := l.songs.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	members, err := l.members.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	// Scan order is not stable; fix the member sequence so tied leaderboard
	// rows never jitter between loads.
	sort.Slice(members, func(i, j int) bool {
		if !members[i].CreatedAt.Equal(members[j].CreatedAt) {
			return members[i].CreatedAt.Before(members[j].CreatedAt)
		}
		return members[i].ID < members[j].ID
	})
	picks, err := l.picks.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	results, err := l.results.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Songs: make([]scoring.Song, 0, len(songs)),
	}
	for _, s := range songs {
		snap.Songs = append(snap.Songs, scoring.Song{
			ID:         s.ID,
			Title:      s.Title,
			Artist:     s.Artist,
			Thumbnail:  s.Thumbnail,
			Australian: s.Australian,
		})
	}

	picksByMember := make(map[string][]scoring.Pick, len(members))
	for _, p := range picks {
		picksByMember[p.MemberID] = append(picksByMember[p.MemberID], scoring.Pick{
			SongID: p.SongID,
			Rank:   p.Rank,
		})
	}
	for _, m := range members {
		snap.Members = append(snap.Members, scoring.Member{
			ID:    m.ID,
			Name:  m.Name,
			Picks: picksByMember[m.ID],
		})
	}

	for _, r := range results {
		entry := scoring.Result{SongID: r.SongID, Position: r.Position}
		if r.Position <= scoring.MainMaxPosition {
			snap.Main = append(snap.Main, entry)
		} else {
			snap.Extended = append(snap.Extended, entry)
		}
	}
	sort.Slice(snap.Main, func(i, j int) bool { return snap.Main[i].Position < snap.Main[j].Position })
	sort.Slice(snap.Extended, func(i, j int) bool { return snap.Extended[i].Position < snap.Extended[j].Position })

	return snap, nil
}

// buildLeaderboardResponse runs the scoring engine over a snapshot. With
// rankZeroScores off, members on zero points show as unranked (rank 0).
func buildLeaderboardResponse(snap *Snapshot, rankZeroScores bool) models.LeaderboardResponse {
	entries := scoring.Leaderboard(snap.Members, snap.Main, snap.Extended)
	max := scoring.MaxPossibleScore(snap.Main, snap.Extended)

	revealed := make(map[string]bool, len(snap.Main)+len(snap.Extended))
	for _, r := range snap.Main {
		revealed[r.SongID] = true
	}
	for _, r := range snap.Extended {
		revealed[r.SongID] = true
	}

	response := models.LeaderboardResponse{
		Entries:          make([]models.LeaderboardEntryResponse, 0, len(entries)),
		MaxPossibleScore: max,
		RevealedMain:     len(snap.Main),
		RevealedExtended: len(snap.Extended),
	}
	for _, e := range entries {
		matches := 0
		for _, p := range e.Member.Picks {
			if revealed[p.SongID] {
				matches++
			}
		}
		rank := e.Rank
		if e.Score == 0 && !rankZeroScores {
			rank = 0
		}
		response.Entries = append(response.Entries, models.LeaderboardEntryResponse{
			MemberID:   e.Member.ID,
			Name:       e.Member.Name,
			Score:      e.Score,
			Rank:       rank,
			Efficiency: scoring.Efficiency(e.Score, max),
			Matches:    matches,
		})
	}
	return response
}

// broadcastLeaderboard reloads the snapshot and pushes a fresh leaderboard
// to every live client. Called after any mutation that can move scores.
func broadcastLeaderboard(ctx context.Context, hub *live.Hub, loader *SnapshotLoader, rankZeroScores bool) {
	if hub == nil {
		return
	}
	snap, err := loader.Load(ctx)
	if err != nil {
		logging.Log.Errorf("LIVE: failed to load snapshot for broadcast: %v", err)
		return
	}
	hub.Broadcast("leaderboard", buildLeaderboardResponse(snap, rankZeroScores))
}
