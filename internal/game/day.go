package game

import (
	"time"

	"github.com/habitforge/habitforge/internal/achievements"
	"github.com/habitforge/habitforge/internal/dates"
	"github.com/habitforge/habitforge/internal/logger"
	"github.com/habitforge/habitforge/internal/models"
	"github.com/habitforge/habitforge/internal/progression"
)

// SubmitResult reports the outcome of a day submission.
type SubmitResult struct {
	StreakUpdated   bool
	NewStreak       int
	DayLocked       bool
	SuccessfulCount int
	TotalCount      int
	IsPerfectDay    bool
	RelapseCount    int
	NewlyUnlocked   []string
}

// SubmitDay finalizes today. Every scheduled habit must be handled: completed,
// or a relapsed demon. Relapses do not break the global streak; the streak
// rewards showing up, not perfection. Submitting again for the same date
// replaces the day record and never double-counts aggregates.
func (e *Engine) SubmitDay() (SubmitResult, error) {
	p := &e.state.Profile
	if !p.Started() {
		return SubmitResult{}, ErrNotStarted
	}

	scheduled := e.scheduledHabits()
	for _, h := range scheduled {
		if !h.Completed && !(h.Type == models.HabitDemon && h.RelapsedToday) {
			return SubmitResult{StreakUpdated: false}, nil
		}
	}

	now := e.clock.Now()
	today := dates.FormatYMD(now)

	successful := 0
	relapses := 0
	xpEarned := 0
	snaps := make([]models.HabitSnapshot, 0, len(scheduled))
	for _, h := range scheduled {
		status := models.StatusMissed
		switch {
		case h.Completed:
			status = models.StatusCompleted
			successful++
			xpEarned += h.XP
		case h.RelapsedToday:
			status = models.StatusRelapsed
			relapses++
		}
		snaps = append(snaps, models.HabitSnapshot{
			ID:     h.ID,
			Name:   h.Name,
			Type:   h.Type,
			XP:     h.XP,
			Status: status,
			Streak: h.Streak,
		})
	}

	total := len(scheduled)
	perfect := successful == total

	existing := e.state.HistoryByDate(today)
	newDate := existing == nil

	dayNumber := p.TotalDaysCompleted + 1
	if !newDate {
		dayNumber = existing.DayNumber
	}

	rec := models.DayRecord{
		Date:            today,
		DayNumber:       dayNumber,
		Habits:          snaps,
		XPEarned:        xpEarned,
		IsPerfect:       perfect,
		SuccessfulCount: successful,
		TotalCount:      total,
		RelapseCount:    relapses,
	}
	if newDate {
		e.state.History = append(e.state.History, rec)
	} else {
		*existing = rec
	}

	// Aggregates and the global streak move only on a new date.
	if newDate {
		p.CurrentStreak++
		if p.CurrentStreak > p.LongestStreak {
			p.LongestStreak = p.CurrentStreak
		}
		p.TotalDaysCompleted++
		if perfect {
			p.PerfectDaysCount++
		}
		p.TotalXPEarned += xpEarned
	}

	stats := achievements.Stats{
		LongestStreak:          p.LongestStreak,
		TotalDaysCompleted:     p.TotalDaysCompleted,
		PerfectDaysCount:       p.PerfectDaysCount,
		ConsecutivePerfectDays: achievements.ConsecutivePerfectDays(e.state.History),
	}
	var newly []string
	p.Achievements, newly = achievements.Evaluate(p.Achievements, stats)

	lockedAt := now
	p.DayLockedAt = &lockedAt
	p.LastCompletedAt = &lockedAt
	p.LastSubmitDate = today

	e.persist()
	// Submission must not be lost to process termination: bypass the debounce.
	if e.syncer != nil {
		e.syncer.SyncSubmission(*e.state, rec)
	}

	logger.Info("Day submitted", "date", today, "perfect", perfect, "streak", p.CurrentStreak)
	return SubmitResult{
		StreakUpdated:   true,
		NewStreak:       p.CurrentStreak,
		DayLocked:       true,
		SuccessfulCount: successful,
		TotalCount:      total,
		IsPerfectDay:    perfect,
		RelapseCount:    relapses,
		NewlyUnlocked:   newly,
	}, nil
}

// CheckAndResetDay performs the midnight rollover. It is idempotent and safe
// to call on every foreground event: Profile.LastResetDate is the single
// marker deciding whether the reset already ran for today, and this method is
// its only writer. Returns true when a reset was performed.
func (e *Engine) CheckAndResetDay() (bool, error) {
	p := &e.state.Profile
	if !p.Started() {
		return false, nil
	}

	now := e.clock.Now()
	today := dates.FormatYMD(now)
	if p.LastResetDate == today || p.LastSubmitDate == today {
		return false, nil
	}

	yesterday := dates.StartOfDay(now).AddDate(0, 0, -1)
	yesterdayHandled := p.LastCompletedAt != nil && dates.SameDay(*p.LastCompletedAt, yesterday)
	hadPriorReset := p.LastResetDate != ""

	// Weekly evaluation runs on the first reset after a week boundary, not
	// literally on Monday. A gap of more than one week zeroes week streaks,
	// since the skipped weeks cannot have met their targets.
	weeksCrossed := 0
	daysSinceReset := 0
	if hadPriorReset {
		if lastReset, err := dates.ParseYMD(p.LastResetDate, now.Location()); err == nil {
			weeksCrossed = dates.DaysBetween(dates.WeekStart(lastReset), dates.WeekStart(now)) / 7
			daysSinceReset = dates.DaysBetween(lastReset, now)
		}
	}
	lastWeek := dates.WeekStart(now).AddDate(0, 0, -1)

	for i := range e.state.Habits {
		h := &e.state.Habits[i]
		if h.Frequency == models.FrequencyDaily {
			// A completion flag only covers the most recent reset day; a
			// multi-day gap means at least one missed day in between.
			if hadPriorReset && (!h.Completed || daysSinceReset > 1) {
				h.Streak = 0
			}
		} else if weeksCrossed > 0 {
			if weeksCrossed == 1 && progression.IsWeekSuccessful(h.Frequency, h.CompletedDates, lastWeek) {
				h.WeekStreak++
				h.Streak = h.WeekStreak
			} else if hadPriorReset {
				h.WeekStreak = 0
				h.Streak = 0
			}
		}
		h.Completed = false
		h.RelapsedToday = false
		if h.Streak > h.LongestStreak {
			h.LongestStreak = h.Streak
		}
	}

	p.CurrentDay = dates.DaysBetween(*p.DayStarted, now) + 1

	// A gap of more than one day since the last submission breaks the streak.
	if p.LastCompletedAt != nil {
		if !yesterdayHandled {
			p.CurrentStreak = 0
		}
	} else if p.CurrentDay > 1 {
		p.CurrentStreak = 0
	}

	e.state.DailySideQuests = DailyQuests(today)
	e.state.CompletedSideQuests = nil
	p.DayLockedAt = nil
	p.LastResetDate = today

	e.persist()
	e.scheduleSync()

	logger.Debug("Day reset", "date", today, "streak", p.CurrentStreak, "day", p.CurrentDay)
	return true, nil
}

// IsTodaySubmitted reports whether today's submission already happened.
func (e *Engine) IsTodaySubmitted() bool {
	return e.state.Profile.LastSubmitDate == dates.FormatYMD(e.clock.Now())
}

// IsDayLocked reports whether the day is currently locked.
func (e *Engine) IsDayLocked() bool {
	return e.state.Profile.Locked()
}

// TimeUntilUnlock returns how long until the locked day unlocks at the next
// local midnight. Zero when the day is not locked.
func (e *Engine) TimeUntilUnlock() time.Duration {
	if !e.state.Profile.Locked() {
		return 0
	}
	now := e.clock.Now()
	midnight := dates.StartOfDay(now).AddDate(0, 0, 1)
	d := midnight.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// MarkCelebrationShown records that today's celebration was displayed.
func (e *Engine) MarkCelebrationShown() {
	e.state.Profile.LastCelebrationDate = dates.FormatYMD(e.clock.Now())
	e.persist()
}

// WasCelebrationShownToday reports whether the celebration already ran today.
func (e *Engine) WasCelebrationShownToday() bool {
	return e.state.Profile.LastCelebrationDate == dates.FormatYMD(e.clock.Now())
}
