package scoring

import "fmt"

// TiePolicy decides who gets a superlative when several members sit at the
// best value.
type TiePolicy int

const (
	// FirstOnly awards the first member found at the best value, in member
	// iteration order.
	FirstOnly TiePolicy = iota
	// AllTied awards every member sitting at the best value.
	AllTied
)

// AwardOptions carries the tie policy per category. The zero value awards
// first-found everywhere. Perfect 10 is inherently multi-winner and has no
// policy.
type AwardOptions struct {
	TrueBlue     TiePolicy
	Diamond      TiePolicy
	Sharpshooter TiePolicy
	RiskTaker    TiePolicy
	SoClose      TiePolicy
}

// Award is one superlative with its winner. A member can win several awards
// and a category with nobody over its threshold is simply absent.
type Award struct {
	ID          string
	Emoji       string
	Title       string
	Description string
	WinnerID    string
	WinnerName  string
	Details     string
}

type awardCandidate struct {
	member Member
	value  float64
	detail string
}

// Awards derives the superlatives. It returns nothing until the main
// countdown holds exactly 100 results, so a partial or over-full set never
// produces awards. Extended results feed only the So Close category; every
// other category reads the main countdown alone.
func Awards(members []Member, catalog []Song, main, extended []Result, opts AwardOptions) []Award {
	if len(main) != MainMaxPosition {
		return nil
	}

	songs := make(map[string]Song, len(catalog))
	for _, s := range catalog {
		songs[s.ID] = s
	}
	mainBySong := make(map[string]Result, len(main))
	for _, r := range main {
		mainBySong[r.SongID] = r
	}
	allBySong := make(map[string]Result, len(main)+len(extended))
	for _, r := range main {
		allBySong[r.SongID] = r
	}
	for _, r := range extended {
		allBySong[r.SongID] = r
	}

	matched := func(m Member) []Pick {
		picks := make([]Pick, 0, len(m.Picks))
		for _, p := range m.Picks {
			if _, ok := mainBySong[p.SongID]; ok {
				picks = append(picks, p)
			}
		}
		return picks
	}

	var awards []Award
	awards = append(awards, oracleAward(members, songs, main)...)
	awards = append(awards, trueBlueAward(members, songs, matched, opts.TrueBlue)...)
	awards = append(awards, diamondAward(members, songs, mainBySong, matched, opts.Diamond)...)
	awards = append(awards, sharpshooterAward(members, mainBySong, matched, opts.Sharpshooter)...)
	awards = append(awards, riskTakerAward(members, matched, opts.RiskTaker)...)
	awards = append(awards, soCloseAward(members, allBySong, opts.SoClose)...)
	awards = append(awards, perfectTenAward(members, matched)...)
	return awards
}

// oracleAward goes to whoever tipped the song that took #1. Only one song
// holds that position, so ties are not resolved beyond first-found.
func oracleAward(members []Member, songs map[string]Song, main []Result) []Award {
	var numberOne *Result
	for i, r := range main {
		if r.Position == 1 {
			numberOne = &main[i]
			break
		}
	}
	if numberOne == nil {
		return nil
	}

	for _, m := range members {
		for _, p := range m.Picks {
			if p.SongID != numberOne.SongID {
				continue
			}
			details := ""
			if s, ok := songs[numberOne.SongID]; ok {
				details = fmt.Sprintf("Picked %q by %s", s.Title, s.Artist)
			}
			return []Award{{
				ID:          "oracle",
				Emoji:       "🔮",
				Title:       "The Oracle",
				Description: "Predicted the #1 song",
				WinnerID:    m.ID,
				WinnerName:  m.Name,
				Details:     details,
			}}
		}
	}
	return nil
}

// trueBlueAward rewards the most matched picks by Australian artists. Nobody
// wins it when no Australian pick landed at all.
func trueBlueAward(members []Member, songs map[string]Song, matched func(Member) []Pick, policy TiePolicy) []Award {
	cands := make([]awardCandidate, 0, len(members))
	for _, m := range members {
		count := 0
		for _, p := range matched(m) {
			if s, ok := songs[p.SongID]; ok && s.Australian {
				count++
			}
		}
		if count > 0 {
			cands = append(cands, awardCandidate{
				member: m,
				value:  float64(count),
				detail: fmt.Sprintf("%d Australian %s", count, pluralise(count, "artist", "artists")),
			})
		}
	}

	return buildAwards("true-blue", "🦘", "True Blue", "Most Aussie artists in the countdown", pickWinners(cands, policy))
}

// diamondAward rewards the deepest cut: the matched pick furthest down the
// main countdown across all members.
func diamondAward(members []Member, songs map[string]Song, mainBySong map[string]Result, matched func(Member) []Pick, policy TiePolicy) []Award {
	cands := make([]awardCandidate, 0, len(members))
	for _, m := range members {
		deepest := 0
		deepestSong := ""
		for _, p := range matched(m) {
			if r := mainBySong[p.SongID]; r.Position > deepest {
				deepest = r.Position
				deepestSong = p.SongID
			}
		}
		if deepest == 0 {
			continue
		}
		detail := fmt.Sprintf("Position #%d", deepest)
		if s, ok := songs[deepestSong]; ok {
			detail = fmt.Sprintf("%q at #%d", s.Title, deepest)
		}
		cands = append(cands, awardCandidate{member: m, value: float64(deepest), detail: detail})
	}

	return buildAwards("diamond", "💎", "Diamond in the Rough", "Picked the deepest cut", pickWinners(cands, policy))
}

// sharpshooterAward goes to the lowest average distance between a member's
// own rank and the matched position converted to the 1-100 points scale
// (101 - position). Only members with at least one match compete.
func sharpshooterAward(members []Member, mainBySong map[string]Result, matched func(Member) []Pick, policy TiePolicy) []Award {
	cands := make([]awardCandidate, 0, len(members))
	for _, m := range members {
		picks := matched(m)
		if len(picks) == 0 {
			continue
		}
		totalDiff := 0.0
		for _, p := range picks {
			r := mainBySong[p.SongID]
			diff := float64(p.Rank - (101 - r.Position))
			if diff < 0 {
				diff = -diff
			}
			totalDiff += diff
		}
		avgDiff := totalDiff / float64(len(picks))
		cands = append(cands, awardCandidate{
			member: m,
			// negated so the shared max-selection picks the lowest average
			value:  -avgDiff,
			detail: fmt.Sprintf("%d spot-on %s", len(picks), pluralise(len(picks), "pick", "picks")),
		})
	}

	return buildAwards("sharpshooter", "🎯", "Sharpshooter", "Best prediction accuracy", pickWinners(cands, policy))
}

// riskTakerAward rewards the most picks that missed the main countdown,
// gated at three misses so a one-pick member never wins it by default.
func riskTakerAward(members []Member, matched func(Member) []Pick, policy TiePolicy) []Award {
	cands := make([]awardCandidate, 0, len(members))
	for _, m := range members {
		misses := len(m.Picks) - len(matched(m))
		if misses > 0 {
			cands = append(cands, awardCandidate{
				member: m,
				value:  float64(misses),
				detail: fmt.Sprintf("%d brave %s didn't make it", misses, pluralise(misses, "pick", "picks")),
			})
		}
	}

	winners := pickWinners(cands, policy)
	if len(winners) > 0 && winners[0].value < 3 {
		return nil
	}
	return buildAwards("risk-taker", "🎲", "Risk Taker", "Boldest predictions", winners)
}

// soCloseAward counts picks absent from the combined main and extended
// results, with the same three-miss threshold as riskTakerAward. The two
// stay separate categories on purpose: once the extended countdown opens
// they diverge.
func soCloseAward(members []Member, allBySong map[string]Result, policy TiePolicy) []Award {
	cands := make([]awardCandidate, 0, len(members))
	for _, m := range members {
		misses := 0
		for _, p := range m.Picks {
			if _, ok := allBySong[p.SongID]; !ok {
				misses++
			}
		}
		if misses > 0 {
			cands = append(cands, awardCandidate{
				member: m,
				value:  float64(misses),
				detail: fmt.Sprintf("%d %s didn't make it", misses, pluralise(misses, "pick", "picks")),
			})
		}
	}

	winners := pickWinners(cands, policy)
	if len(winners) > 0 && winners[0].value < 3 {
		return nil
	}
	return buildAwards("so-close", "😢", "So Close", "Most heartbreaking misses", winners)
}

// perfectTenAward is a threshold award: every member with exactly ten picks
// that all landed in the main countdown gets one.
func perfectTenAward(members []Member, matched func(Member) []Pick) []Award {
	var awards []Award
	for _, m := range members {
		if len(m.Picks) != MaxPicks || len(matched(m)) != MaxPicks {
			continue
		}
		awards = append(awards, Award{
			ID:          fmt.Sprintf("perfect-%s", m.ID),
			Emoji:       "🏆",
			Title:       "Perfect 10",
			Description: "All picks made the countdown",
			WinnerID:    m.ID,
			WinnerName:  m.Name,
			Details:     "10/10 songs in the Hottest 100!",
		})
	}
	return awards
}

// pickWinners keeps the candidates holding the maximum value. FirstOnly
// truncates to the first of them in member order.
func pickWinners(cands []awardCandidate, policy TiePolicy) []awardCandidate {
	if len(cands) == 0 {
		return nil
	}

	best := cands[0].value
	for _, c := range cands[1:] {
		if c.value > best {
			best = c.value
		}
	}

	winners := make([]awardCandidate, 0, 1)
	for _, c := range cands {
		if c.value == best {
			winners = append(winners, c)
			if policy == FirstOnly {
				break
			}
		}
	}
	return winners
}

func buildAwards(id, emoji, title, description string, winners []awardCandidate) []Award {
	awards := make([]Award, 0, len(winners))
	for _, w := range winners {
		awards = append(awards, Award{
			ID:          id,
			Emoji:       emoji,
			Title:       title,
			Description: description,
			WinnerID:    w.member.ID,
			WinnerName:  w.member.Name,
			Details:     w.detail,
		})
	}
	return awards
}

func pluralise(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
