package scoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func songID(pos int) string {
	return fmt.Sprintf("s%d", pos)
}

// fullCountdown builds a complete main countdown: song s<pos> at every
// position, with the given song ids flagged Australian.
func fullCountdown(australian ...string) ([]Song, []Result) {
	aussie := make(map[string]bool, len(australian))
	for _, id := range australian {
		aussie[id] = true
	}

	songs := make([]Song, 0, MainMaxPosition)
	results := make([]Result, 0, MainMaxPosition)
	for pos := 1; pos <= MainMaxPosition; pos++ {
		id := songID(pos)
		songs = append(songs, Song{
			ID:         id,
			Title:      fmt.Sprintf("Song %d", pos),
			Artist:     fmt.Sprintf("Artist %d", pos),
			Australian: aussie[id],
		})
		results = append(results, Result{SongID: id, Position: pos})
	}
	return songs, results
}

func picksFor(ids ...string) []Pick {
	picks := make([]Pick, 0, len(ids))
	for i, id := range ids {
		picks = append(picks, Pick{SongID: id, Rank: i + 1})
	}
	return picks
}

func winnersOf(awards []Award, ids ...string) []string {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	var names []string
	for _, a := range awards {
		if want[a.ID] {
			names = append(names, a.WinnerName)
		}
	}
	return names
}

func TestAwardsGating(t *testing.T) {
	songs, results := fullCountdown()
	members := []Member{{ID: "m1", Name: "Alex", Picks: picksFor("s1")}}

	t.Run("partial countdown produces nothing", func(t *testing.T) {
		assert.Empty(t, Awards(members, songs, results[:99], nil, AwardOptions{}))
		assert.Empty(t, Awards(members, songs, nil, nil, AwardOptions{}))
	})

	t.Run("over-full countdown produces nothing either", func(t *testing.T) {
		corrupted := append(append([]Result{}, results...), Result{SongID: "extra", Position: 100})
		assert.Empty(t, Awards(members, songs, corrupted, nil, AwardOptions{}))
	})

	t.Run("complete countdown produces awards", func(t *testing.T) {
		assert.NotEmpty(t, Awards(members, songs, results, nil, AwardOptions{}))
	})
}

func TestOracleAward(t *testing.T) {
	songs, results := fullCountdown()
	members := []Member{
		{ID: "m1", Name: "Alex", Picks: picksFor("s50")},
		{ID: "m2", Name: "Bo", Picks: picksFor("s1", "s2")},
		{ID: "m3", Name: "Cam", Picks: picksFor("s1")},
	}

	awards := Awards(members, songs, results, nil, AwardOptions{})
	oracle := winnersOf(awards, "oracle")
	// Only the first member holding the #1 song wins; one song, one slot.
	assert.Equal(t, []string{"Bo"}, oracle)
}

func TestTrueBlueAward(t *testing.T) {
	songs, results := fullCountdown("s10", "s20", "s30")
	members := []Member{
		{ID: "m1", Name: "Alex", Picks: picksFor("s10", "s20", "s40")},
		{ID: "m2", Name: "Bo", Picks: picksFor("s30", "s50")},
		{ID: "m3", Name: "Cam", Picks: picksFor("s20", "s30")},
	}

	t.Run("first-only keeps the first member at the max", func(t *testing.T) {
		awards := Awards(members, songs, results, nil, AwardOptions{})
		assert.Equal(t, []string{"Alex"}, winnersOf(awards, "true-blue"))
	})

	t.Run("all-tied enumerates every member at the max", func(t *testing.T) {
		awards := Awards(members, songs, results, nil, AwardOptions{TrueBlue: AllTied})
		assert.Equal(t, []string{"Alex", "Cam"}, winnersOf(awards, "true-blue"))
	})

	t.Run("no Australian matches, no award", func(t *testing.T) {
		plainSongs, plainResults := fullCountdown()
		awards := Awards(members, plainSongs, plainResults, nil, AwardOptions{})
		assert.Empty(t, winnersOf(awards, "true-blue"))
	})
}

func TestDiamondAward(t *testing.T) {
	songs, results := fullCountdown()
	members := []Member{
		{ID: "m1", Name: "Alex", Picks: picksFor("s5", "s98")},
		{ID: "m2", Name: "Bo", Picks: picksFor("s99")},
		{ID: "m3", Name: "Cam", Picks: picksFor("s1")},
	}

	awards := Awards(members, songs, results, nil, AwardOptions{})
	require.Equal(t, []string{"Bo"}, winnersOf(awards, "diamond"))

	for _, a := range awards {
		if a.ID == "diamond" {
			assert.Contains(t, a.Details, "#99")
		}
	}
}

func TestSharpshooterAward(t *testing.T) {
	songs, results := fullCountdown()
	members := []Member{
		// Rank 1 on the #1 song: |1 - (101-1)| = 99.
		{ID: "m1", Name: "Alex", Picks: []Pick{{SongID: "s1", Rank: 1}}},
		// Rank 5 on the #97 song: |5 - (101-97)| = 1.
		{ID: "m2", Name: "Bo", Picks: []Pick{{SongID: "s97", Rank: 5}}},
	}

	awards := Awards(members, songs, results, nil, AwardOptions{})
	assert.Equal(t, []string{"Bo"}, winnersOf(awards, "sharpshooter"))
}

func TestRiskTakerAward(t *testing.T) {
	songs, results := fullCountdown()

	t.Run("below the three-miss threshold nobody wins", func(t *testing.T) {
		members := []Member{
			{ID: "m1", Name: "Alex", Picks: picksFor("s1", "x1", "x2")},
		}
		awards := Awards(members, songs, results, nil, AwardOptions{})
		assert.Empty(t, winnersOf(awards, "risk-taker"))
	})

	t.Run("most misses wins once over the threshold", func(t *testing.T) {
		members := []Member{
			{ID: "m1", Name: "Alex", Picks: picksFor("s1", "x1", "x2", "x3")},
			{ID: "m2", Name: "Bo", Picks: picksFor("x4", "x5", "x6", "x7")},
		}
		awards := Awards(members, songs, results, nil, AwardOptions{})
		assert.Equal(t, []string{"Bo"}, winnersOf(awards, "risk-taker"))
	})
}

func TestSoCloseAward(t *testing.T) {
	songs, results := fullCountdown()

	// Three of Alex's picks missed the main countdown, but one of them made
	// the extended band, leaving only two true heartbreaks.
	members := []Member{
		{ID: "m1", Name: "Alex", Picks: picksFor("s1", "e1", "x1", "x2")},
	}
	extended := []Result{{SongID: "e1", Position: 101}}

	t.Run("extended matches are not heartbreaks", func(t *testing.T) {
		awards := Awards(members, songs, results, extended, AwardOptions{})
		assert.Empty(t, winnersOf(awards, "so-close"))
	})

	t.Run("without the extended match the threshold is met", func(t *testing.T) {
		awards := Awards(members, songs, results, nil, AwardOptions{})
		assert.Equal(t, []string{"Alex"}, winnersOf(awards, "so-close"))
	})
}

func TestPerfectTenAward(t *testing.T) {
	songs, results := fullCountdown()
	ten := picksFor("s1", "s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9", "s10")
	tenMore := picksFor("s11", "s12", "s13", "s14", "s15", "s16", "s17", "s18", "s19", "s20")

	t.Run("every perfect picker gets their own award", func(t *testing.T) {
		members := []Member{
			{ID: "m1", Name: "Alex", Picks: ten},
			{ID: "m2", Name: "Bo", Picks: tenMore},
		}
		awards := Awards(members, songs, results, nil, AwardOptions{})
		assert.Equal(t, []string{"Alex", "Bo"}, winnersOf(awards, "perfect-m1", "perfect-m2"))
	})

	t.Run("nine of ten is not perfect", func(t *testing.T) {
		nine := append(picksFor("s1", "s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9"), Pick{SongID: "x1", Rank: 10})
		members := []Member{{ID: "m1", Name: "Alex", Picks: nine}}
		awards := Awards(members, songs, results, nil, AwardOptions{})
		assert.Empty(t, winnersOf(awards, "perfect-m1"))
	})
}
