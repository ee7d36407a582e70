package sync

import (
	stdsync "sync"
	"time"

	"github.com/habitforge/habitforge/internal/constants"
	"github.com/habitforge/habitforge/internal/logger"
	"github.com/habitforge/habitforge/internal/models"
)

// Outbox batches profile pushes behind a debounce window and retries
// failures a bounded number of times. Rapid mutations coalesce so only the
// latest snapshot is transmitted. A user id is required; without one every
// call is a no-op and play stays fully local.
type Outbox struct {
	mu         stdsync.Mutex
	wg         stdsync.WaitGroup
	gw         Gateway
	userID     string
	debounce   time.Duration
	maxRetries int
	timer      *time.Timer
	pending    *models.GameState
	attempts   int
	closed     bool
}

func NewOutbox(gw Gateway, userID string) *Outbox {
	return &Outbox{
		gw:         gw,
		userID:     userID,
		debounce:   constants.SyncDebounce,
		maxRetries: constants.SyncMaxRetries,
	}
}

// ScheduleProfileSync records the snapshot and arms the debounce timer.
// Calls within the window replace the pending snapshot instead of queueing.
func (o *Outbox) ScheduleProfileSync(snapshot models.GameState) {
	if o.gw == nil || o.userID == "" {
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}

	o.pending = &snapshot
	o.attempts = 0
	if o.timer != nil {
		o.timer.Stop()
	}
	o.timer = time.AfterFunc(o.debounce, o.flushPending)
}

// SyncSubmission pushes a day submission immediately. The profile snapshot
// and the day log go together so the remote never sees a submitted day
// without its updated profile.
func (o *Outbox) SyncSubmission(snapshot models.GameState, rec models.DayRecord) {
	if o.gw == nil || o.userID == "" {
		return
	}

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	// The submission carries the latest profile; a pending debounced push
	// would only resend stale data.
	if o.timer != nil {
		o.timer.Stop()
	}
	o.pending = nil
	o.wg.Add(1)
	o.mu.Unlock()

	go func() {
		defer o.wg.Done()
		if err := o.withRetries(func() error {
			return o.gw.SaveProfile(o.userID, snapshot)
		}); err != nil {
			logger.Error("failed to sync profile for submission", "error", err)
			return
		}
		if err := o.withRetries(func() error {
			return o.gw.SaveDailyLog(o.userID, rec)
		}); err != nil {
			logger.Error("failed to sync day log", "date", rec.Date, "error", err)
		}
	}()
}

// Flush pushes any pending profile snapshot now, skipping the debounce.
func (o *Outbox) Flush() error {
	if o.gw == nil || o.userID == "" {
		return nil
	}

	o.mu.Lock()
	if o.timer != nil {
		o.timer.Stop()
	}
	snapshot := o.pending
	o.pending = nil
	o.mu.Unlock()

	if snapshot == nil {
		return nil
	}
	return o.gw.SaveProfile(o.userID, *snapshot)
}

// Close flushes pending work and waits for in-flight submissions.
func (o *Outbox) Close() error {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()

	err := o.Flush()
	o.wg.Wait()
	return err
}

func (o *Outbox) flushPending() {
	o.mu.Lock()
	snapshot := o.pending
	o.mu.Unlock()
	if snapshot == nil {
		return
	}

	if err := o.gw.SaveProfile(o.userID, *snapshot); err != nil {
		o.mu.Lock()
		defer o.mu.Unlock()
		o.attempts++
		if o.attempts >= o.maxRetries || o.closed {
			logger.Error("failed to sync profile, giving up", "attempts", o.attempts, "error", err)
			o.pending = nil
			return
		}
		logger.Warn("profile sync failed, retrying", "attempt", o.attempts, "error", err)
		o.timer = time.AfterFunc(o.debounce, o.flushPending)
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	// A newer snapshot scheduled mid-flight stays pending for its own timer.
	if o.pending == snapshot {
		o.pending = nil
	}
	o.attempts = 0
}

func (o *Outbox) withRetries(fn func() error) error {
	var err error
	for attempt := 1; attempt <= o.maxRetries; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt < o.maxRetries {
			time.Sleep(o.debounce)
		}
	}
	return err
}
