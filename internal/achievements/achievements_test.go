package achievements

import (
	"testing"

	"github.com/habitforge/habitforge/internal/models"
)

func TestEvaluateTiers(t *testing.T) {
	tests := []struct {
		name   string
		stats  Stats
		wantID string
	}{
		{name: "first day", stats: Stats{TotalDaysCompleted: 1}, wantID: "firstBlood"},
		{name: "week streak", stats: Stats{LongestStreak: 7}, wantID: "weekWarrior"},
		{name: "fortnight", stats: Stats{LongestStreak: 14}, wantID: "twoWeeks"},
		{name: "month", stats: Stats{LongestStreak: 30}, wantID: "monthly"},
		{name: "locked in", stats: Stats{LongestStreak: 45}, wantID: "lockedIn"},
		{name: "forged", stats: Stats{LongestStreak: 66}, wantID: "forged"},
		{name: "centurion", stats: Stats{LongestStreak: 100}, wantID: "centurion"},
		{name: "perfect week", stats: Stats{ConsecutivePerfectDays: 7}, wantID: "perfectWeek"},
		{name: "perfect month", stats: Stats{PerfectDaysCount: 30}, wantID: "perfectMonth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, _ := Evaluate(map[string]bool{}, tt.stats)
			if !updated[tt.wantID] {
				t.Errorf("expected %s to unlock for %+v", tt.wantID, tt.stats)
			}
		})
	}
}

func TestEvaluateNewlyUnlocked(t *testing.T) {
	current := map[string]bool{"firstBlood": true}

	updated, newly := Evaluate(current, Stats{TotalDaysCompleted: 8, LongestStreak: 7})

	if len(newly) != 1 || newly[0] != "weekWarrior" {
		t.Fatalf("newly = %v, want [weekWarrior]", newly)
	}
	if !updated["firstBlood"] || !updated["weekWarrior"] {
		t.Errorf("updated set incomplete: %v", updated)
	}
	if len(current) != 1 {
		t.Errorf("input map was mutated: %v", current)
	}
}

func TestEvaluateMonotonic(t *testing.T) {
	// Once unlocked, an achievement survives stats that no longer satisfy it.
	current := map[string]bool{"weekWarrior": true}

	updated, newly := Evaluate(current, Stats{LongestStreak: 0})

	if !updated["weekWarrior"] {
		t.Errorf("unlocked achievement must never revert")
	}
	if len(newly) != 0 {
		t.Errorf("nothing should newly unlock, got %v", newly)
	}
}

func TestConsecutivePerfectDays(t *testing.T) {
	history := []models.DayRecord{
		{Date: "2026-01-01", IsPerfect: true},
		{Date: "2026-01-02", IsPerfect: false},
		{Date: "2026-01-03", IsPerfect: true},
		{Date: "2026-01-04", IsPerfect: true},
	}

	if got := ConsecutivePerfectDays(history); got != 2 {
		t.Errorf("ConsecutivePerfectDays() = %d, want 2", got)
	}

	if got := ConsecutivePerfectDays(nil); got != 0 {
		t.Errorf("empty history should yield 0, got %d", got)
	}

	broken := []models.DayRecord{
		{Date: "2026-01-03", IsPerfect: false},
		{Date: "2026-01-01", IsPerfect: true},
		{Date: "2026-01-02", IsPerfect: true},
	}
	if got := ConsecutivePerfectDays(broken); got != 0 {
		t.Errorf("run must start at most recent entry, got %d", got)
	}
}
