package scoring

import "sort"

// Matches returns the member's picks that landed anywhere in the countdown,
// ordered by the member's own rank. A pick whose song is missing from the
// catalog, or that never appears in the results, simply drops out; dangling
// references are not an error here.
func Matches(m Member, main, extended []Result, catalog []Song) []Match {
	results := make(map[string]Result, len(main)+len(extended))
	for _, r := range main {
		results[r.SongID] = r
	}
	for _, r := range extended {
		results[r.SongID] = r
	}

	songs := make(map[string]Song, len(catalog))
	for _, s := range catalog {
		songs[s.ID] = s
	}

	picks := make([]Pick, len(m.Picks))
	copy(picks, m.Picks)
	sort.SliceStable(picks, func(i, j int) bool {
		return picks[i].Rank < picks[j].Rank
	})

	matches := make([]Match, 0, len(picks))
	for _, p := range picks {
		result, ok := results[p.SongID]
		if !ok {
			continue
		}
		song, ok := songs[p.SongID]
		if !ok {
			continue
		}
		matches = append(matches, Match{Pick: p, Result: result, Song: song})
	}
	return matches
}
