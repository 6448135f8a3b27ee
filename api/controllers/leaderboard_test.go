package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	testutils "github.com/CarlManson/hottest100/api/controllers/testing"
	"github.com/CarlManson/hottest100/api/models"
	"github.com/CarlManson/hottest100/logging"
	"github.com/CarlManson/hottest100/scoring"
	"github.com/CarlManson/hottest100/storage"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func setupLeaderboardTestController(t *testing.T) (*gin.Engine, *leaderboardFixture) {
	t.Helper()
	logging.Log = logrus.New()

	client := newLocalstackClient(t)
	t.Cleanup(func() {
		cleanupTable(t, client, testTableSongs)
		cleanupTable(t, client, testTableMembers)
		cleanupTable(t, client, testTableResults)
		cleanupPicksTable(t, client)
	})

	f := &leaderboardFixture{
		songs:   &storage.DynamoSongStorage{Client: client, TableName: testTableSongs},
		members: &storage.DynamoMemberStorage{Client: client, TableName: testTableMembers},
		picks:   &storage.DynamoPickStorage{Client: client, TableName: testTablePicks},
		results: &storage.DynamoResultStorage{Client: client, TableName: testTableResults},
	}

	loader := NewSnapshotLoader(f.songs, f.members, f.picks, f.results)
	controller := NewLeaderboardController(loader, nil, scoring.AwardOptions{}, false)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/leaderboard", controller.getLeaderboard)
	r.GET("/api/leaderboard/:id/matches", controller.getMatches)
	r.GET("/api/awards", controller.getAwards)
	return r, f
}

type leaderboardFixture struct {
	songs   *storage.DynamoSongStorage
	members *storage.DynamoMemberStorage
	picks   *storage.DynamoPickStorage
	results *storage.DynamoResultStorage
}

// seed sets up a small competition: song-1 revealed at #1, song-2 at #50,
// Alex picked the winner, Bo picked #50, Cam picked a song that never
// appeared.
func (f *leaderboardFixture) seed(t *testing.T) {
	t.Helper()
	ctx := context.TODO()

	for _, song := range []*storage.Song{
		{ID: "song-1", Title: "Song 1", Artist: "Artist 1", Australian: true},
		{ID: "song-2", Title: "Song 2", Artist: "Artist 2"},
		{ID: "song-3", Title: "Song 3", Artist: "Artist 3"},
	} {
		if err := f.songs.Create(ctx, song); err != nil {
			t.Fatalf("failed to seed song %s: %v", song.ID, err)
		}
	}

	for _, member := range []*storage.FamilyMember{
		{ID: "alex", Name: "Alex"},
		{ID: "bo", Name: "Bo"},
		{ID: "cam", Name: "Cam"},
	} {
		if err := f.members.Create(ctx, member); err != nil {
			t.Fatalf("failed to seed member %s: %v", member.ID, err)
		}
	}

	for memberID, songID := range map[string]string{
		"alex": "song-1",
		"bo":   "song-2",
		"cam":  "song-3",
	} {
		err := f.picks.ReplaceForMember(ctx, memberID, []*storage.Pick{
			{MemberID: memberID, SongID: songID, Rank: 1},
		})
		if err != nil {
			t.Fatalf("failed to seed picks for %s: %v", memberID, err)
		}
	}

	for songID, position := range map[string]int{
		"song-1": 1,
		"song-2": 50,
	} {
		if err := f.results.Create(ctx, &storage.CountdownResult{Position: position, SongID: songID}); err != nil {
			t.Fatalf("failed to seed result %s: %v", songID, err)
		}
	}
}

func TestGetLeaderboard(t *testing.T) {
	router, fixture := setupLeaderboardTestController(t)
	fixture.seed(t)

	w := testutils.PerformRequest(router, http.MethodGet, "/api/leaderboard", nil, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var res models.LeaderboardResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("failed to parse leaderboard: %v", err)
	}

	// #1 is worth 100 points, #50 is worth 51, both single-band
	if res.MaxPossibleScore != 151 {
		t.Errorf("expected max possible 151, got %d", res.MaxPossibleScore)
	}
	if res.RevealedMain != 2 || res.RevealedExtended != 0 {
		t.Errorf("unexpected reveal counts: %d main, %d extended", res.RevealedMain, res.RevealedExtended)
	}
	if len(res.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(res.Entries))
	}

	alex, bo, cam := res.Entries[0], res.Entries[1], res.Entries[2]
	if alex.MemberID != "alex" || alex.Score != 100 || alex.Rank != 1 || alex.Matches != 1 {
		t.Errorf("unexpected top entry: %+v", alex)
	}
	if alex.Efficiency != 66 {
		t.Errorf("expected efficiency 66 for alex, got %d", alex.Efficiency)
	}
	if bo.MemberID != "bo" || bo.Score != 51 || bo.Rank != 2 {
		t.Errorf("unexpected second entry: %+v", bo)
	}
	// Zero scores are unranked with rankZeroScores off
	if cam.MemberID != "cam" || cam.Score != 0 || cam.Rank != 0 || cam.Matches != 0 {
		t.Errorf("unexpected last entry: %+v", cam)
	}
}

func TestLeaderboardTiedMembersKeepStableOrder(t *testing.T) {
	router, fixture := setupLeaderboardTestController(t)

	// All on zero points; order must follow join time, not whatever the
	// storage scan happens to return.
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	for i, member := range []*storage.FamilyMember{
		{ID: "zeta", Name: "Zeta"},
		{ID: "mike", Name: "Mike"},
		{ID: "alpha", Name: "Alpha"},
	} {
		member.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := fixture.members.Create(context.TODO(), member); err != nil {
			t.Fatalf("failed to seed member %s: %v", member.ID, err)
		}
	}

	w := testutils.PerformRequest(router, http.MethodGet, "/api/leaderboard", nil, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var res models.LeaderboardResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("failed to parse leaderboard: %v", err)
	}
	if len(res.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(res.Entries))
	}
	for i, want := range []string{"zeta", "mike", "alpha"} {
		if res.Entries[i].MemberID != want {
			t.Fatalf("expected join order [zeta mike alpha], got %+v", res.Entries)
		}
	}
}

func TestGetMemberMatches(t *testing.T) {
	router, fixture := setupLeaderboardTestController(t)
	fixture.seed(t)

	t.Run("Happy path - member with a match", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodGet, "/api/leaderboard/alex/matches", nil, nil)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
		}
		var res models.MemberMatchesResponse
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
			t.Fatalf("failed to parse matches: %v", err)
		}
		if res.Score != 100 || len(res.Matches) != 1 {
			t.Fatalf("unexpected matches response: %+v", res)
		}
		m := res.Matches[0]
		if m.SongID != "song-1" || m.Position != 1 || m.Rank != 1 || m.Points != 100 {
			t.Errorf("unexpected match: %+v", m)
		}
	})

	t.Run("Happy path - member with no matches", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodGet, "/api/leaderboard/cam/matches", nil, nil)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
		}
		var res models.MemberMatchesResponse
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
			t.Fatalf("failed to parse matches: %v", err)
		}
		if res.Score != 0 || len(res.Matches) != 0 {
			t.Errorf("unexpected matches response: %+v", res)
		}
	})

	t.Run("Unhappy path - unknown member", func(t *testing.T) {
		w := testutils.PerformRequest(router, http.MethodGet, "/api/leaderboard/stranger/matches", nil, nil)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestGetAwardsBeforeCountdownComplete(t *testing.T) {
	router, fixture := setupLeaderboardTestController(t)
	fixture.seed(t)

	w := testutils.PerformRequest(router, http.MethodGet, "/api/awards", nil, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var awards []models.AwardResponse
	if err := json.Unmarshal(w.Body.Bytes(), &awards); err != nil {
		t.Fatalf("failed to parse awards: %v", err)
	}
	// Awards stay locked until all 100 main positions are in
	if len(awards) != 0 {
		t.Errorf("expected no awards with a partial countdown, got %+v", awards)
	}
}
