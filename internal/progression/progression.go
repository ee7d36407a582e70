// Package progression holds the pure rules of the XP system: streak
// multipliers, leveling, rank ladders, program phases and frequency
// scheduling. Nothing here mutates state.
package progression

import (
	"time"

	"github.com/habitforge/habitforge/internal/constants"
	"github.com/habitforge/habitforge/internal/dates"
	"github.com/habitforge/habitforge/internal/models"
)

// StreakMultiplier returns the XP multiplier for a global streak length.
// Tiers are checked highest-first and do not stack.
func StreakMultiplier(streak int) float64 {
	switch {
	case streak >= constants.StreakTierProgram:
		return constants.MultiplierProgram
	case streak >= constants.StreakTierMonth:
		return constants.MultiplierMonth
	case streak >= constants.StreakTierWeek:
		return constants.MultiplierWeek
	default:
		return constants.MultiplierBase
	}
}

// MultiplyXP applies the streak multiplier to a base reward, truncating.
func MultiplyXP(base, streak int) int {
	return int(float64(base) * StreakMultiplier(streak))
}

// LevelFromXP converts cumulative XP to a level, flooring at 1.
func LevelFromXP(xp int) int {
	if xp < 0 {
		return 1
	}
	return xp/constants.LevelXP + 1
}

// LevelProgress returns XP accumulated within the current level.
func LevelProgress(xp int) int {
	if xp < 0 {
		return 0
	}
	return xp % constants.LevelXP
}

// RankFromLevel returns the rank name for a level within an archetype's
// ladder. Unknown archetypes yield "".
func RankFromLevel(archetypeID string, level int) string {
	arch, ok := constants.Archetypes[archetypeID]
	if !ok || len(arch.Ranks) == 0 {
		return ""
	}
	if level < 1 {
		level = 1
	}
	idx := (level - 1) / constants.LevelsPerRank
	if idx >= len(arch.Ranks) {
		idx = len(arch.Ranks) - 1
	}
	return arch.Ranks[idx]
}

// Phase is one stage of the 66-day program.
type Phase struct {
	ID          string
	Name        string
	StartDay    int
	EndDay      int // 0 means open-ended
	Description string
}

var (
	PhaseFragile  = Phase{ID: "FRAGILE", Name: "Fragile", StartDay: 1, EndDay: 22, Description: "The habit is new and easily broken. Stay vigilant."}
	PhaseBuilding = Phase{ID: "BUILDING", Name: "Building", StartDay: 23, EndDay: 44, Description: "Neural pathways are forming. Keep pushing."}
	PhaseLockedIn = Phase{ID: "LOCKED_IN", Name: "Locked In", StartDay: 45, EndDay: 66, Description: "The habit is becoming automatic. Almost there."}
	PhaseForged   = Phase{ID: "FORGED", Name: "Forged", StartDay: 67, Description: "The habit is now part of who you are."}
)

// PhaseFromDay returns the program phase for a 1-indexed day count.
func PhaseFromDay(day int) Phase {
	switch {
	case day <= 22:
		return PhaseFragile
	case day <= 44:
		return PhaseBuilding
	case day <= 66:
		return PhaseLockedIn
	default:
		return PhaseForged
	}
}

// WeeklyTarget returns how many completions per calendar week a frequency
// requires.
func WeeklyTarget(f models.Frequency) int {
	switch f {
	case models.FrequencyWeekdays:
		return 5
	case models.Frequency3xWeek:
		return 3
	case models.Frequency4xWeek:
		return 4
	default:
		return 7
	}
}

// IsScheduledDay reports whether a habit with the given frequency is expected
// on the given day. The x-per-week frequencies are eligible every day; their
// weekly target is enforced at week-boundary evaluation instead.
func IsScheduledDay(f models.Frequency, t time.Time) bool {
	switch f {
	case models.FrequencyWeekdays:
		return dates.IsWeekday(t)
	default:
		return true
	}
}

// WeekCompletions counts completion dates that fall in the calendar week
// containing ref.
func WeekCompletions(completedDates []string, ref time.Time) int {
	n := 0
	for _, d := range completedDates {
		if dates.InWeek(d, ref) {
			n++
		}
	}
	return n
}

// IsWeekSuccessful reports whether the week containing ref met the
// frequency's target.
func IsWeekSuccessful(f models.Frequency, completedDates []string, ref time.Time) bool {
	return WeekCompletions(completedDates, ref) >= WeeklyTarget(f)
}
