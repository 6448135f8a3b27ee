package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoints(t *testing.T) {
	t.Run("single band while extended countdown is closed", func(t *testing.T) {
		assert.Equal(t, 100, Points(1, false))
		assert.Equal(t, 51, Points(50, false))
		assert.Equal(t, 1, Points(100, false))
	})

	t.Run("two bands once extended countdown opens", func(t *testing.T) {
		assert.Equal(t, 200, Points(1, true))
		assert.Equal(t, 101, Points(100, true))
		assert.Equal(t, 100, Points(101, true))
		assert.Equal(t, 1, Points(200, true))
	})

	t.Run("better positions always score more", func(t *testing.T) {
		for _, extendedOpen := range []bool{false, true} {
			for pos := 2; pos <= 100; pos++ {
				assert.Greater(t, Points(pos-1, extendedOpen), Points(pos, extendedOpen),
					"main position %d should beat %d", pos-1, pos)
			}
		}
		for pos := 102; pos <= 200; pos++ {
			assert.Greater(t, Points(pos-1, true), Points(pos, true))
		}
	})

	t.Run("every main value beats every extended value", func(t *testing.T) {
		assert.Greater(t, Points(100, true), Points(101, true))
	})
}

func TestScore(t *testing.T) {
	t.Run("zero baseline", func(t *testing.T) {
		noPicks := Member{ID: "m1", Name: "Alex"}
		withPicks := Member{ID: "m2", Name: "Bo", Picks: []Pick{{SongID: "s1", Rank: 1}}}

		assert.Equal(t, 0, Score(noPicks, []Result{{SongID: "s1", Position: 1}}, nil))
		assert.Equal(t, 0, Score(withPicks, nil, nil))
	})

	t.Run("match at number one scores 200 in two-band regime", func(t *testing.T) {
		alex := Member{ID: "m1", Name: "Alex", Picks: []Pick{{SongID: "S1", Rank: 3}}}
		main := []Result{{SongID: "S1", Position: 1}}
		extended := []Result{{SongID: "S2", Position: 101}}

		assert.Equal(t, 200, Score(alex, main, extended))
	})

	t.Run("match at position 100 scores 1 in single-band regime", func(t *testing.T) {
		bo := Member{ID: "m2", Name: "Bo", Picks: []Pick{{SongID: "S1", Rank: 1}}}
		main := []Result{{SongID: "S1", Position: 100}}

		assert.Equal(t, 1, Score(bo, main, nil))
	})

	t.Run("opening the extended countdown lifts existing main matches", func(t *testing.T) {
		alex := Member{ID: "m1", Name: "Alex", Picks: []Pick{{SongID: "S1", Rank: 3}}}
		main := []Result{{SongID: "S1", Position: 1}}

		assert.Equal(t, 100, Score(alex, main, nil))

		// Nobody picked S2; Alex's match moves to the upper band anyway.
		extended := []Result{{SongID: "S2", Position: 101}}
		assert.Equal(t, 200, Score(alex, main, extended))
	})

	t.Run("unrevealed picks contribute nothing", func(t *testing.T) {
		m := Member{ID: "m1", Name: "Alex", Picks: []Pick{
			{SongID: "s1", Rank: 1},
			{SongID: "never", Rank: 2},
		}}
		main := []Result{{SongID: "s1", Position: 10}}

		assert.Equal(t, Points(10, false), Score(m, main, nil))
	})

	t.Run("ranks never affect the score", func(t *testing.T) {
		main := []Result{
			{SongID: "s1", Position: 5},
			{SongID: "s2", Position: 40},
		}
		extended := []Result{{SongID: "s3", Position: 150}}

		original := Member{ID: "m1", Picks: []Pick{
			{SongID: "s1", Rank: 1},
			{SongID: "s2", Rank: 2},
			{SongID: "s3", Rank: 3},
		}}
		permuted := Member{ID: "m1", Picks: []Pick{
			{SongID: "s1", Rank: 3},
			{SongID: "s2", Rank: 1},
			{SongID: "s3", Rank: 2},
		}}

		assert.Equal(t, Score(original, main, extended), Score(permuted, main, extended))
	})
}

func TestLeaderboard(t *testing.T) {
	// Point values with the extended countdown closed: s1=100, s2=80, s3=50.
	main := []Result{
		{SongID: "s1", Position: 1},
		{SongID: "s2", Position: 21},
		{SongID: "s3", Position: 51},
	}
	pick := func(songID string) []Pick { return []Pick{{SongID: songID, Rank: 1}} }

	t.Run("sorted descending, ties keep input order", func(t *testing.T) {
		members := []Member{
			{ID: "low", Picks: pick("s3")},
			{ID: "tie-a", Picks: pick("s2")},
			{ID: "top", Picks: pick("s1")},
			{ID: "tie-b", Picks: pick("s2")},
		}

		entries := Leaderboard(members, main, nil)
		require.Len(t, entries, 4)
		assert.Equal(t, "top", entries[0].Member.ID)
		assert.Equal(t, "tie-a", entries[1].Member.ID)
		assert.Equal(t, "tie-b", entries[2].Member.ID)
		assert.Equal(t, "low", entries[3].Member.ID)
	})

	t.Run("dense competition ranks", func(t *testing.T) {
		// Scores come out as [100, 100, 80, 80, 80, 50].
		members := []Member{
			{ID: "a", Picks: pick("s1")},
			{ID: "b", Picks: pick("s1")},
			{ID: "c", Picks: pick("s2")},
			{ID: "d", Picks: pick("s2")},
			{ID: "e", Picks: pick("s2")},
			{ID: "f", Picks: pick("s3")},
		}

		entries := Leaderboard(members, main, nil)
		require.Len(t, entries, 6)

		ranks := make([]int, 0, len(entries))
		for _, e := range entries {
			ranks = append(ranks, e.Rank)
		}
		assert.Equal(t, []int{1, 1, 3, 3, 3, 6}, ranks)
	})

	t.Run("empty inputs", func(t *testing.T) {
		assert.Empty(t, Leaderboard(nil, main, nil))

		entries := Leaderboard([]Member{{ID: "a", Picks: pick("s1")}}, nil, nil)
		require.Len(t, entries, 1)
		assert.Equal(t, 0, entries[0].Score)
		assert.Equal(t, 1, entries[0].Rank)
	})
}

func TestMatches(t *testing.T) {
	catalog := []Song{
		{ID: "s1", Title: "One", Artist: "A"},
		{ID: "s2", Title: "Two", Artist: "B"},
	}
	main := []Result{{SongID: "s1", Position: 10}}
	extended := []Result{{SongID: "s2", Position: 110}, {SongID: "ghost", Position: 111}}

	t.Run("joins picks with results in rank order", func(t *testing.T) {
		m := Member{ID: "m1", Picks: []Pick{
			{SongID: "s2", Rank: 2},
			{SongID: "s1", Rank: 1},
			{SongID: "missed", Rank: 3},
		}}

		matches := Matches(m, main, extended, catalog)
		require.Len(t, matches, 2)
		assert.Equal(t, "s1", matches[0].Song.ID)
		assert.Equal(t, 10, matches[0].Result.Position)
		assert.Equal(t, "s2", matches[1].Song.ID)
		assert.Equal(t, 110, matches[1].Result.Position)
	})

	t.Run("dangling catalog reference drops out", func(t *testing.T) {
		m := Member{ID: "m1", Picks: []Pick{{SongID: "ghost", Rank: 1}}}
		assert.Empty(t, Matches(m, main, extended, catalog))
	})
}

func TestMaxPossibleScore(t *testing.T) {
	t.Run("fewer than ten results sums them all", func(t *testing.T) {
		main := []Result{
			{SongID: "a", Position: 1},
			{SongID: "b", Position: 50},
			{SongID: "c", Position: 100},
		}
		// Single-band values: 100 + 51 + 1.
		assert.Equal(t, 152, MaxPossibleScore(main, nil))
	})

	t.Run("only the top ten values count", func(t *testing.T) {
		main := make([]Result, 0, 12)
		for pos := 1; pos <= 12; pos++ {
			main = append(main, Result{SongID: songID(pos), Position: pos})
		}
		// Values 100..89, top ten = 100..91.
		assert.Equal(t, 955, MaxPossibleScore(main, nil))
	})

	t.Run("nothing revealed", func(t *testing.T) {
		assert.Equal(t, 0, MaxPossibleScore(nil, nil))
	})
}

func TestEfficiency(t *testing.T) {
	assert.Equal(t, 0, Efficiency(0, 500))
	assert.Equal(t, 0, Efficiency(123, 0))
	assert.Equal(t, 25, Efficiency(50, 200))
	assert.Equal(t, 100, Efficiency(200, 200))
	assert.Equal(t, 33, Efficiency(1, 3))
	assert.Equal(t, 67, Efficiency(2, 3))
}
