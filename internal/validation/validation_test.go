package validation

import (
	"errors"
	"testing"

	"github.com/habitforge/habitforge/internal/models"
)

func TestUserID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid uuid", "3f2a8c1e-9b4d-4e6f-8a2b-1c3d5e7f9a0b", false},
		{"empty", "", true},
		{"not a uuid", "user-123", true},
		{"wrong length", "3f2a8c1e-9b4d-4e6f-8a2b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := UserID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("UserID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestDate(t *testing.T) {
	if err := Date("2026-09-01"); err != nil {
		t.Errorf("Date(valid) error = %v", err)
	}
	if err := Date("09/01/2026"); err == nil {
		t.Error("Date(slash format) expected error")
	}
	if err := Date(""); err == nil {
		t.Error("Date(empty) expected error")
	}
}

func TestProfile(t *testing.T) {
	state := models.NewGameState()
	state.Profile.Archetype = "WRATH"
	if err := Profile(*state); err != nil {
		t.Fatalf("Profile(fresh state) error = %v", err)
	}

	state.Profile.XP = -1
	state.Profile.Archetype = "UNKNOWN"
	err := Profile(*state)
	if err == nil {
		t.Fatal("Profile(bad state) expected error")
	}
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("Profile error type = %T, want *Error", err)
	}
	if len(verr.Problems) != 2 {
		t.Errorf("Problems = %v, want 2 entries", verr.Problems)
	}
}

func TestDayRecord(t *testing.T) {
	rec := models.DayRecord{
		Date:            "2026-09-01",
		DayNumber:       3,
		XPEarned:        120,
		SuccessfulCount: 4,
		TotalCount:      5,
	}
	if err := DayRecord(rec); err != nil {
		t.Fatalf("DayRecord(valid) error = %v", err)
	}

	rec.SuccessfulCount = 6
	if err := DayRecord(rec); err == nil {
		t.Error("DayRecord(successful > total) expected error")
	}
}
