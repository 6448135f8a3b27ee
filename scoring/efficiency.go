package scoring

import (
	"math"
	"sort"
)

// MaxPossibleScore is the ceiling a hypothetical member who picked only the
// ten most valuable revealed songs would hold right now. It moves every time
// a result is added; it is not the end-of-countdown ceiling.
func MaxPossibleScore(main, extended []Result) int {
	extendedOpen := len(extended) > 0

	values := make([]int, 0, len(main)+len(extended))
	for _, r := range main {
		values = append(values, Points(r.Position, extendedOpen))
	}
	for _, r := range extended {
		values = append(values, Points(r.Position, true))
	}

	sort.Sort(sort.Reverse(sort.IntSlice(values)))
	if len(values) > MaxPicks {
		values = values[:MaxPicks]
	}

	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

// Efficiency is the percentage of max that score reached, rounded to the
// nearest integer. A max of zero (nothing revealed yet) yields 0, never a
// division error.
func Efficiency(score, max int) int {
	if max <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(score) / float64(max)))
}
