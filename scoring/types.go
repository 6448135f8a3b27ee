// Package scoring holds the pure computation core of the countdown game:
// points, member scores, the leaderboard with dense ranks, pick/result
// matching, the live efficiency ceiling and the end-of-countdown awards.
// Everything operates on immutable in-memory snapshots passed in by the
// caller; nothing here touches storage, clocks or globals.
package scoring

// Song is one catalog entry, maintained by the organiser and read-only here.
type Song struct {
	ID         string
	Title      string
	Artist     string
	Thumbnail  string
	Australian bool
}

// Pick is a single ranked prediction. Rank is the member's own ordering
// (1 = their hottest tip) and never influences scoring.
type Pick struct {
	SongID string
	Rank   int
}

// Member is a competitor with up to ten picks.
type Member struct {
	ID    string
	Name  string
	Picks []Pick
}

// Result places a song at a revealed countdown position. Positions 1-100 are
// the main countdown, 101-200 the extended one.
type Result struct {
	SongID   string
	Position int
}

// Entry is one leaderboard row. Rank is a dense competition rank: tied
// scores share a rank, the next distinct score takes its 1-based ordinal.
type Entry struct {
	Member Member
	Score  int
	Rank   int
}

// Match joins one of a member's picks with its revealed result and the
// catalog entry for the song.
type Match struct {
	Pick   Pick
	Result Result
	Song   Song
}
