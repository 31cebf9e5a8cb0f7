// Package activity owns the user's check-in history and streak summary.
// A single Store is created at startup and shared; it is the only writer of
// the persisted activity document.
package activity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/radiantjournal/radiant/internal/streak"
	"go.uber.org/zap"
)

// Namespace is the persistence key of the activity document.
const Namespace = "@radiant_activity"

var (
	// ErrCheckInInProgress is returned when CheckIn is called while another
	// check-in is still being persisted.
	ErrCheckInInProgress = errors.New("a check-in is already in progress")

	// ErrSaveFailed means the check-in is recorded in memory but could not
	// be written to storage.
	ErrSaveFailed = errors.New("check-in recorded but not saved")
)

// Persistence stores opaque documents by namespace.
type Persistence interface {
	Load(ctx context.Context, namespace string) (data []byte, found bool, err error)
	Save(ctx context.Context, namespace string, data []byte) error
	Delete(ctx context.Context, namespace string) error
}

// Phase is the lifecycle of a Store.
type Phase int

const (
	Uninitialized Phase = iota
	Loading
	Ready
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return "uninitialized"
	}
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for every date decision.
func WithClock(c streak.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithLogger sets the logger for load and save diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Store holds the canonical UserActivity.
type Store struct {
	persist Persistence
	clock   streak.Clock
	log     *zap.Logger

	mu    sync.RWMutex
	state streak.UserActivity
	phase Phase

	// io serializes storage round trips so a refresh never interleaves
	// with a check-in save.
	io       sync.Mutex
	inFlight atomic.Bool
}

// NewStore returns an unloaded Store backed by p.
func NewStore(p Persistence, opts ...Option) *Store {
	s := &Store{
		persist: p,
		clock:   streak.SystemClock,
		log:     zap.NewNop(),
		state:   streak.InitialActivity(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted activity, recomputes the current streak for
// today and publishes the result. Missing or unreadable data yields the
// initial state; Load itself never fails.
func (s *Store) Load(ctx context.Context) streak.UserActivity {
	s.io.Lock()
	defer s.io.Unlock()
	return s.load(ctx)
}

// Refresh re-reads persisted activity. Call it when the app returns to the
// foreground or a new day may have started.
func (s *Store) Refresh(ctx context.Context) streak.UserActivity {
	return s.Load(ctx)
}

func (s *Store) load(ctx context.Context) streak.UserActivity {
	s.setPhase(Loading)

	a := streak.InitialActivity()
	data, found, err := s.persist.Load(ctx, Namespace)
	switch {
	case err != nil:
		s.log.Warn("reading activity failed, starting empty", zap.Error(err))
	case found:
		decoded, err := decode(data)
		if err != nil {
			s.log.Warn("activity data is corrupt, starting empty", zap.Error(err), zap.Int("bytes", len(data)))
		} else {
			a = decoded
		}
	}

	now := s.clock.Now()
	a.StreakData.CurrentStreak = streak.ComputeStreak(a.CheckIns, now)
	if a.StreakData.CurrentStreak > a.StreakData.LongestStreak {
		a.StreakData.LongestStreak = a.StreakData.CurrentStreak
	}

	s.mu.Lock()
	s.state = a
	s.phase = Ready
	s.mu.Unlock()

	s.log.Debug("activity loaded",
		zap.Int("check_ins", len(a.CheckIns)),
		zap.Int("current_streak", a.StreakData.CurrentStreak),
		zap.Int("longest_streak", a.StreakData.LongestStreak),
	)
	return a.Clone()
}

// CheckIn records today's check-in. Checking in twice on the same local day
// is a no-op that returns the unchanged state. On a save failure the new
// state is still returned and kept in memory, with an error wrapping
// ErrSaveFailed.
func (s *Store) CheckIn(ctx context.Context) (streak.UserActivity, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return s.Activity(), ErrCheckInInProgress
	}
	defer s.inFlight.Store(false)

	s.io.Lock()
	defer s.io.Unlock()

	if s.Phase() == Uninitialized {
		s.load(ctx)
	}

	now := s.clock.Now()
	today := streak.Today(now)

	s.mu.Lock()
	prev := s.state
	if streak.HasCompletedToday(prev, now) {
		s.mu.Unlock()
		s.log.Debug("already checked in today", zap.String("date", string(today)))
		return prev.Clone(), nil
	}

	next := prev.Clone()
	next.CheckIns[today] = streak.DailyCheckIn{
		Date:      today,
		Completed: true,
		Timestamp: now.UnixMilli(),
	}
	current := streak.ComputeStreak(next.CheckIns, now)
	next.StreakData = streak.StreakData{
		CurrentStreak:   current,
		LongestStreak:   max(prev.StreakData.LongestStreak, current),
		LastCheckInDate: today,
		TotalCheckIns:   prev.StreakData.TotalCheckIns + 1,
	}
	s.state = next
	s.mu.Unlock()

	data, err := json.Marshal(next)
	if err == nil {
		err = s.persist.Save(ctx, Namespace, data)
	}
	if err != nil {
		s.log.Error("saving check-in failed", zap.String("date", string(today)), zap.Error(err))
		return next.Clone(), fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	s.log.Info("checked in",
		zap.String("date", string(today)),
		zap.Int("current_streak", current),
		zap.Int("total", next.StreakData.TotalCheckIns),
	)
	return next.Clone(), nil
}

// Clear deletes all persisted activity and resets the in-memory state.
func (s *Store) Clear(ctx context.Context) error {
	s.io.Lock()
	defer s.io.Unlock()

	if err := s.persist.Delete(ctx, Namespace); err != nil {
		return fmt.Errorf("clearing activity: %w", err)
	}
	s.mu.Lock()
	s.state = streak.InitialActivity()
	s.phase = Ready
	s.mu.Unlock()
	s.log.Info("activity cleared")
	return nil
}

// Activity returns a snapshot of the current state.
func (s *Store) Activity() streak.UserActivity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// HasCheckedInToday is evaluated against the clock on every call, so it
// turns false at local midnight without a reload.
func (s *Store) HasCheckedInToday() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return streak.HasCompletedToday(s.state, s.clock.Now())
}

// NeedsReminder reports whether today's check-in is still outstanding.
func (s *Store) NeedsReminder() bool {
	return !s.HasCheckedInToday()
}

// IsLoading reports whether a load is running.
func (s *Store) IsLoading() bool {
	return s.Phase() == Loading
}

// Phase returns the current lifecycle phase.
func (s *Store) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

func (s *Store) setPhase(p Phase) {
	s.mu.Lock()
	s.phase = p
	s.mu.Unlock()
}

// decode parses a stored document over the initial state, so fields
// missing from older documents keep their defaults.
func decode(data []byte) (streak.UserActivity, error) {
	a := streak.InitialActivity()
	if err := json.Unmarshal(data, &a); err != nil {
		return streak.InitialActivity(), err
	}
	if a.CheckIns == nil {
		a.CheckIns = map[streak.DateKey]streak.DailyCheckIn{}
	}
	return a, nil
}
