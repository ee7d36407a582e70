package game

import "errors"

// Operation precondition failures. These are returned as typed no-op results;
// no state is mutated when one is returned.
var (
	ErrDayLocked        = errors.New("day is locked until the next reset")
	ErrHabitNotFound    = errors.New("habit not found")
	ErrAlreadyCompleted = errors.New("already completed today")
	ErrNotCompleted     = errors.New("habit is not completed today")
	ErrRelapsedToday    = errors.New("habit was relapsed today")
	ErrNotDemon         = errors.New("only demon habits can relapse")
	ErrQuestNotFound    = errors.New("side quest not offered today")
	ErrNotStarted       = errors.New("program has not started")
)
