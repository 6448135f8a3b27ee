package scoring

import (
	"errors"
	"fmt"
)

var ErrInvalidPicks = errors.New("invalid picks")
var ErrInvalidResults = errors.New("invalid results")

// ValidatePicks enforces the canonical pick shape for one member: at most
// ten picks, no song twice, and ranks forming an exact permutation of 1..N.
// Violations are rejected, never clamped.
func ValidatePicks(picks []Pick) error {
	if len(picks) > MaxPicks {
		return fmt.Errorf("%w: %d picks, maximum is %d", ErrInvalidPicks, len(picks), MaxPicks)
	}

	seenSong := make(map[string]bool, len(picks))
	seenRank := make(map[int]bool, len(picks))
	for _, p := range picks {
		if p.SongID == "" {
			return fmt.Errorf("%w: pick without a song id", ErrInvalidPicks)
		}
		if seenSong[p.SongID] {
			return fmt.Errorf("%w: song %s picked twice", ErrInvalidPicks, p.SongID)
		}
		seenSong[p.SongID] = true

		if p.Rank < 1 || p.Rank > len(picks) {
			return fmt.Errorf("%w: rank %d outside 1..%d", ErrInvalidPicks, p.Rank, len(picks))
		}
		if seenRank[p.Rank] {
			return fmt.Errorf("%w: rank %d used twice", ErrInvalidPicks, p.Rank)
		}
		seenRank[p.Rank] = true
	}
	return nil
}

// ValidateResults checks the integrity of a revealed-results snapshot:
// positions inside their band, one result per position, and no song placed
// twice across both bands. Duplicate positions are ambiguous data, so they
// fail instead of silently picking a winner.
func ValidateResults(main, extended []Result) error {
	positions := make(map[int]bool, len(main)+len(extended))
	songs := make(map[string]bool, len(main)+len(extended))

	check := func(r Result, lo, hi int, band string) error {
		if r.SongID == "" {
			return fmt.Errorf("%w: position %d has no song id", ErrInvalidResults, r.Position)
		}
		if r.Position < lo || r.Position > hi {
			return fmt.Errorf("%w: position %d outside the %s band %d-%d", ErrInvalidResults, r.Position, band, lo, hi)
		}
		if positions[r.Position] {
			return fmt.Errorf("%w: two results claim position %d", ErrInvalidResults, r.Position)
		}
		positions[r.Position] = true

		if songs[r.SongID] {
			return fmt.Errorf("%w: song %s placed at two positions", ErrInvalidResults, r.SongID)
		}
		songs[r.SongID] = true
		return nil
	}

	for _, r := range main {
		if err := check(r, 1, MainMaxPosition, "main"); err != nil {
			return err
		}
	}
	for _, r := range extended {
		if err := check(r, MainMaxPosition+1, ExtendedMaxPosition, "extended"); err != nil {
			return err
		}
	}
	return nil
}
