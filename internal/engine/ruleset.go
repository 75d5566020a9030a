package engine

// Ruleset parameterizes the pool sizes, ban counts and phase ordering so a
// deployment can swap protocols without touching the transition logic.
type Ruleset struct {
	// Game1Stages is the starter pool; CounterpickStages the game 2+ pool
	// before DSR exclusions.
	Game1Stages       []string
	CounterpickStages []string

	// Game1BanPattern is the sequence of ban segments for game 1, alternating
	// ownership starting with the RPS winner. After the final ban, the player
	// next in rotation selects. {1,2,1} → winner 1, loser 2, winner 1, loser
	// selects. {1,2} → winner 1, loser 2, winner selects.
	Game1BanPattern []int

	// CounterpickBans is how many consecutive bans the previous game's winner
	// makes in games 2+; the loser then selects.
	CounterpickBans int

	// CharacterSelectFirst orders character selection before stage banning
	// within each game.
	CharacterSelectFirst bool
}

// StandardRuleset mirrors the tournament's primary protocol: 1-2-1 bans over
// the starter pool, three consecutive bans over the counterpick pool.
func StandardRuleset(starters, counterpicks []string) Ruleset {
	return Ruleset{
		Game1Stages:       starters,
		CounterpickStages: counterpicks,
		Game1BanPattern:   []int{1, 2, 1},
		CounterpickBans:   3,
	}
}

// OneTwoBanRuleset is the alternate profile: the RPS winner bans one, the
// loser bans two, and the winner picks from the stages left.
func OneTwoBanRuleset(starters, counterpicks []string) Ruleset {
	return Ruleset{
		Game1Stages:       starters,
		CounterpickStages: counterpicks,
		Game1BanPattern:   []int{1, 2},
		CounterpickBans:   3,
	}
}

func (r Ruleset) totalGame1Bans() int {
	total := 0
	for _, n := range r.Game1BanPattern {
		total += n
	}
	return total
}

// game1Turn reports whose ban the pattern expects after bansMade bans, and
// how many bans remain in that segment. When the pattern is exhausted, the
// returned slot is the selector.
func (r Ruleset) game1Turn(bansMade int, rpsWinner PlayerSlot) (PlayerSlot, int) {
	cum := 0
	for i, n := range r.Game1BanPattern {
		cum += n
		if bansMade < cum {
			return segmentOwner(i, rpsWinner), cum - bansMade
		}
	}
	return segmentOwner(len(r.Game1BanPattern), rpsWinner), 0
}

func segmentOwner(segment int, rpsWinner PlayerSlot) PlayerSlot {
	if segment%2 == 0 {
		return rpsWinner
	}
	return rpsWinner.Other()
}
