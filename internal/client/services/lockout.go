package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophaccount/internal/client/models"
	"github.com/dmitrijs2005/gophaccount/internal/client/repositories/localstorage"
	"github.com/dmitrijs2005/gophaccount/internal/common"
	"github.com/dmitrijs2005/gophaccount/internal/logging"
)

// MsgLockoutOver is surfaced when a lockout runs out.
const MsgLockoutOver = "You may try logging in again."

// LockoutTimer tracks the login lockout deadline. The deadline is persisted
// under the lockoutEndTime entry as epoch milliseconds, so a restart resumes
// an active lockout.
//
// The timer is driven by wall-clock deadlines: every tick recomputes the
// remaining time from now, so missed ticks never stretch the lockout.
type LockoutTimer struct {
	storage  localstorage.Repository
	duration time.Duration
	log      logging.Logger

	now      func() time.Time
	interval time.Duration

	// persistMu orders state changes together with their storage writes.
	persistMu sync.Mutex

	mu      sync.Mutex
	state   models.LockoutState
	running bool
}

func NewLockoutTimer(storage localstorage.Repository, duration time.Duration, log logging.Logger) *LockoutTimer {
	return &LockoutTimer{
		storage:  storage,
		duration: duration,
		log:      log,
		now:      time.Now,
		interval: time.Second,
	}
}

// Lock starts a full-length lockout. The in-memory state changes even when
// persisting the deadline fails.
func (t *LockoutTimer) Lock(ctx context.Context) error {
	t.persistMu.Lock()
	defer t.persistMu.Unlock()

	end := t.now().Add(t.duration)

	t.mu.Lock()
	t.state = models.LockoutState{Locked: true, EndTime: end}
	t.mu.Unlock()

	if err := t.storage.Set(ctx, common.LockoutStorageKey, strconv.FormatInt(end.UnixMilli(), 10)); err != nil {
		return fmt.Errorf("failed to persist lockout: %w", err)
	}
	t.log.Info(ctx, "login locked", "until", end)
	return nil
}

// Restore resumes a persisted lockout whose deadline is still ahead. A past,
// present or unparsable deadline is removed.
func (t *LockoutTimer) Restore(ctx context.Context) error {
	t.persistMu.Lock()
	defer t.persistMu.Unlock()

	raw, ok, err := t.storage.Get(ctx, common.LockoutStorageKey)
	if err != nil {
		return err
	}
	if !ok {
		t.setUnlocked()
		return nil
	}

	ms, err := strconv.ParseInt(raw, 10, 64)
	end := time.UnixMilli(ms)
	if err != nil || !end.After(t.now()) {
		t.setUnlocked()
		return t.storage.Remove(ctx, common.LockoutStorageKey)
	}

	t.mu.Lock()
	t.state = models.LockoutState{Locked: true, EndTime: end}
	t.mu.Unlock()
	t.log.Debug(ctx, "restored lockout", "until", end)
	return nil
}

func (t *LockoutTimer) setUnlocked() {
	t.mu.Lock()
	t.state = models.LockoutState{}
	t.mu.Unlock()
}

func (t *LockoutTimer) State() models.LockoutState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Remaining is the whole number of seconds left, rounded up. Zero when
// unlocked.
func (t *LockoutTimer) Remaining() int {
	return models.CeilSeconds(t.State().Remaining(t.now()))
}

// Allow returns an error wrapping ErrLocked while the lockout runs.
func (t *LockoutTimer) Allow() error {
	if n := t.Remaining(); n > 0 {
		return fmt.Errorf("%w: try again in %d seconds", ErrLocked, n)
	}
	return nil
}

// Tick advances the countdown. It reports true exactly once, on the tick that
// ends the lockout; that tick also removes the persisted deadline. A Lock
// racing the removal waits for it, so its new deadline stays persisted.
func (t *LockoutTimer) Tick(ctx context.Context) (bool, error) {
	t.persistMu.Lock()
	defer t.persistMu.Unlock()

	t.mu.Lock()
	if !t.state.Locked || t.state.Remaining(t.now()) > 0 {
		t.mu.Unlock()
		return false, nil
	}
	t.state = models.LockoutState{}
	t.mu.Unlock()

	t.log.Info(ctx, "login lockout ended")
	if err := t.storage.Remove(ctx, common.LockoutStorageKey); err != nil {
		return true, fmt.Errorf("failed to clear lockout: %w", err)
	}
	return true, nil
}

// Run ticks until the lockout ends or ctx is done. On the unlocking tick it
// passes the "try again" notice to notify. Only one Run is active at a time;
// extra calls return immediately.
func (t *LockoutTimer) Run(ctx context.Context, notify func(models.Notice)) {
	t.mu.Lock()
	if t.running || !t.state.Locked {
		t.mu.Unlock()
		return
	}
	t.running = true
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.running = false
		t.mu.Unlock()
	}()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			unlocked, err := t.Tick(ctx)
			if err != nil {
				t.log.Warn(ctx, "lockout tick failed", "err", err)
			}
			if unlocked {
				notify(models.Info(MsgLockoutOver))
				return
			}
		}
	}
}
