package scoring

import "sort"

const (
	// MainMaxPosition is the last position of the main countdown.
	MainMaxPosition = 100
	// ExtendedMaxPosition is the last position of the extended countdown.
	ExtendedMaxPosition = 200
	// MaxPicks is the most picks a single member may hold.
	MaxPicks = 10
)

// Points returns the value of a match at the given revealed position.
//
// While the extended countdown (101-200) has nothing revealed, main positions
// score on the plain scale: #1 = 100 points down to #100 = 1 point. The
// moment the first extended result lands, main positions move up a band
// (#1 = 200 down to #100 = 101) and extended positions take the lower band
// (#101 = 100 down to #200 = 1), so a main-countdown hit is always worth
// more than any extended hit.
func Points(position int, extendedOpen bool) int {
	if position > MainMaxPosition {
		return 101 + (ExtendedMaxPosition - position)
	}
	if extendedOpen {
		return 101 + (MainMaxPosition - position)
	}
	return 1 + (MainMaxPosition - position)
}

// Score totals the points for every one of the member's picks that appears
// in the revealed results. The member's own ranks play no part; a pick
// either matched a revealed song or it did not.
func Score(m Member, main, extended []Result) int {
	picked := make(map[string]bool, len(m.Picks))
	for _, p := range m.Picks {
		picked[p.SongID] = true
	}

	extendedOpen := len(extended) > 0
	total := 0
	for _, r := range main {
		if picked[r.SongID] {
			total += Points(r.Position, extendedOpen)
		}
	}
	for _, r := range extended {
		if picked[r.SongID] {
			total += Points(r.Position, true)
		}
	}
	return total
}

// Leaderboard scores every member and returns entries sorted by score
// descending. The sort is stable so tied members keep their input order,
// and dense competition ranks are assigned afterwards.
func Leaderboard(members []Member, main, extended []Result) []Entry {
	entries := make([]Entry, 0, len(members))
	for _, m := range members {
		entries = append(entries, Entry{
			Member: m,
			Score:  Score(m, main, extended),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	for i := range entries {
		if i > 0 && entries[i].Score == entries[i-1].Score {
			entries[i].Rank = entries[i-1].Rank
		} else {
			entries[i].Rank = i + 1
		}
	}
	return entries
}
