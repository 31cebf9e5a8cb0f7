package activity

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/radiantjournal/radiant/internal/streak"
)

// memPersistence is an in-memory Persistence with failure hooks.
type memPersistence struct {
	mu      sync.Mutex
	data    map[string][]byte
	saves   int
	loadErr error
	saveErr error

	// When set, Save signals started and then waits on release.
	started chan struct{}
	release chan struct{}
}

func newMem() *memPersistence {
	return &memPersistence{data: map[string][]byte{}}
}

func (m *memPersistence) Load(_ context.Context, ns string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, false, m.loadErr
	}
	d, ok := m.data[ns]
	return d, ok, nil
}

func (m *memPersistence) Save(_ context.Context, ns string, data []byte) error {
	if m.started != nil {
		m.started <- struct{}{}
		<-m.release
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data[ns] = append([]byte(nil), data...)
	return nil
}

func (m *memPersistence) Delete(_ context.Context, ns string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, ns)
	return nil
}

func (m *memPersistence) put(t *testing.T, a streak.UserActivity) {
	t.Helper()
	b, err := json.Marshal(a)
	if err != nil {
		t.Fatal(err)
	}
	m.data[Namespace] = b
}

func (m *memPersistence) saved(t *testing.T) streak.UserActivity {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	a, err := decode(m.data[Namespace])
	if err != nil {
		t.Fatalf("decoding saved activity: %v", err)
	}
	return a
}

// fakeClock is a settable clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func at(date string, hh, mm int) time.Time {
	d, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		panic(err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hh, mm, 0, 0, time.Local)
}

func withHistory(dates ...string) streak.UserActivity {
	a := streak.InitialActivity()
	for _, d := range dates {
		k := streak.DateKey(d)
		a.CheckIns[k] = streak.DailyCheckIn{Date: k, Completed: true, Timestamp: at(d, 9, 0).UnixMilli()}
	}
	n := len(dates)
	a.StreakData = streak.StreakData{CurrentStreak: n, LongestStreak: n, TotalCheckIns: n}
	if n > 0 {
		a.StreakData.LastCheckInDate = streak.DateKey(dates[n-1])
	}
	return a
}

func newTestStore(p Persistence, now time.Time) (*Store, *fakeClock) {
	clk := &fakeClock{now: now}
	return NewStore(p, WithClock(clk)), clk
}

func TestLoad_EmptyStorage(t *testing.T) {
	s, _ := newTestStore(newMem(), at("2025-06-03", 9, 0))
	if s.Phase() != Uninitialized {
		t.Fatalf("phase before load = %s", s.Phase())
	}

	a := s.Load(context.Background())
	if len(a.CheckIns) != 0 || a.StreakData != (streak.StreakData{}) {
		t.Fatalf("expected initial activity, got %+v", a)
	}
	if s.Phase() != Ready || s.IsLoading() {
		t.Fatalf("phase after load = %s", s.Phase())
	}
}

func TestCheckIn_FirstEver(t *testing.T) {
	mem := newMem()
	now := at("2025-06-03", 9, 14)
	s, _ := newTestStore(mem, now)
	s.Load(context.Background())

	a, err := s.CheckIn(context.Background())
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	want := streak.StreakData{CurrentStreak: 1, LongestStreak: 1, LastCheckInDate: "2025-06-03", TotalCheckIns: 1}
	if a.StreakData != want {
		t.Fatalf("StreakData = %+v, want %+v", a.StreakData, want)
	}
	c := a.CheckIns["2025-06-03"]
	if !c.Completed || c.Timestamp != now.UnixMilli() {
		t.Fatalf("check-in record = %+v", c)
	}
	if !s.HasCheckedInToday() || s.NeedsReminder() {
		t.Fatal("store should report today as done")
	}
	if got := mem.saved(t); !reflect.DeepEqual(got, a) {
		t.Fatalf("persisted %+v, returned %+v", got, a)
	}
}

func TestCheckIn_SameDayIsNoOp(t *testing.T) {
	mem := newMem()
	s, clk := newTestStore(mem, at("2025-06-03", 9, 0))
	ctx := context.Background()
	s.Load(ctx)

	first, err := s.CheckIn(ctx)
	if err != nil {
		t.Fatal(err)
	}
	clk.Set(at("2025-06-03", 22, 30))
	second, err := s.CheckIn(ctx)
	if err != nil {
		t.Fatalf("second CheckIn: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("state changed on repeat check-in:\n%+v\n%+v", first, second)
	}
	if mem.saves != 1 {
		t.Fatalf("saves = %d, want 1", mem.saves)
	}
}

func TestCheckIn_ExtendsYesterdaysStreak(t *testing.T) {
	mem := newMem()
	mem.put(t, withHistory("2025-06-01", "2025-06-02"))
	s, _ := newTestStore(mem, at("2025-06-03", 8, 0))
	ctx := context.Background()

	a := s.Load(ctx)
	if a.StreakData.CurrentStreak != 2 {
		t.Fatalf("current after load = %d, want 2", a.StreakData.CurrentStreak)
	}
	if s.HasCheckedInToday() {
		t.Fatal("not checked in yet today")
	}

	a, err := s.CheckIn(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := streak.StreakData{CurrentStreak: 3, LongestStreak: 3, LastCheckInDate: "2025-06-03", TotalCheckIns: 3}
	if a.StreakData != want {
		t.Fatalf("StreakData = %+v, want %+v", a.StreakData, want)
	}
}

func TestLoad_SkippedDayResetsCurrentKeepsLongest(t *testing.T) {
	mem := newMem()
	mem.put(t, withHistory("2025-06-01", "2025-06-02"))
	s, _ := newTestStore(mem, at("2025-06-04", 8, 0))
	ctx := context.Background()

	a := s.Load(ctx)
	if a.StreakData.CurrentStreak != 0 || a.StreakData.LongestStreak != 2 {
		t.Fatalf("after gap: %+v", a.StreakData)
	}

	a, err := s.CheckIn(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if a.StreakData.CurrentStreak != 1 || a.StreakData.LongestStreak != 2 || a.StreakData.TotalCheckIns != 3 {
		t.Fatalf("after restart: %+v", a.StreakData)
	}
}

func TestHasCheckedInToday_FlipsAtMidnight(t *testing.T) {
	s, clk := newTestStore(newMem(), at("2025-06-03", 23, 59))
	ctx := context.Background()
	s.Load(ctx)

	if _, err := s.CheckIn(ctx); err != nil {
		t.Fatal(err)
	}
	if !s.HasCheckedInToday() {
		t.Fatal("expected checked in at 23:59")
	}

	clk.Set(at("2025-06-04", 0, 1))
	if s.HasCheckedInToday() {
		t.Fatal("new local day must not inherit yesterday's check-in")
	}

	a, err := s.CheckIn(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if a.StreakData.CurrentStreak != 2 {
		t.Fatalf("streak across midnight = %d, want 2", a.StreakData.CurrentStreak)
	}
}

func TestLongestStreak_NeverDecreases(t *testing.T) {
	s, clk := newTestStore(newMem(), at("2025-06-01", 9, 0))
	ctx := context.Background()
	s.Load(ctx)

	days := []string{"2025-06-01", "2025-06-02", "2025-06-03", "2025-06-05", "2025-06-06", "2025-06-10"}
	longest := 0
	for i, d := range days {
		clk.Set(at(d, 9, 0))
		s.Refresh(ctx)
		a, err := s.CheckIn(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if a.StreakData.LongestStreak < longest {
			t.Fatalf("%s: longest dropped from %d to %d", d, longest, a.StreakData.LongestStreak)
		}
		if a.StreakData.LongestStreak < a.StreakData.CurrentStreak {
			t.Fatalf("%s: longest %d < current %d", d, a.StreakData.LongestStreak, a.StreakData.CurrentStreak)
		}
		if a.StreakData.TotalCheckIns != i+1 {
			t.Fatalf("%s: total = %d, want %d", d, a.StreakData.TotalCheckIns, i+1)
		}
		longest = a.StreakData.LongestStreak
	}
	if longest != 3 {
		t.Fatalf("longest = %d, want 3", longest)
	}
}

func TestCheckIn_SaveFailureKeepsState(t *testing.T) {
	mem := newMem()
	diskFull := errors.New("disk full")
	mem.saveErr = diskFull
	s, _ := newTestStore(mem, at("2025-06-03", 9, 0))
	ctx := context.Background()
	s.Load(ctx)

	a, err := s.CheckIn(ctx)
	if !errors.Is(err, ErrSaveFailed) || !errors.Is(err, diskFull) {
		t.Fatalf("err = %v, want ErrSaveFailed wrapping the storage error", err)
	}
	if a.StreakData.CurrentStreak != 1 {
		t.Fatalf("returned state = %+v", a.StreakData)
	}
	if !s.HasCheckedInToday() {
		t.Fatal("in-memory state should keep the optimistic check-in")
	}
}

func TestCheckIn_LoadsLazily(t *testing.T) {
	mem := newMem()
	mem.put(t, withHistory("2025-05-30", "2025-06-01", "2025-06-02"))
	s, _ := newTestStore(mem, at("2025-06-03", 9, 0))

	a, err := s.CheckIn(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(a.CheckIns) != 4 {
		t.Fatalf("history clobbered: %d check-ins", len(a.CheckIns))
	}
	if a.StreakData.CurrentStreak != 3 || a.StreakData.TotalCheckIns != 4 {
		t.Fatalf("StreakData = %+v", a.StreakData)
	}
	if len(mem.saved(t).CheckIns) != 4 {
		t.Fatal("persisted document lost history")
	}
}

func TestCheckIn_RejectsConcurrentCall(t *testing.T) {
	mem := newMem()
	mem.started = make(chan struct{})
	mem.release = make(chan struct{})
	s, _ := newTestStore(mem, at("2025-06-03", 9, 0))
	ctx := context.Background()
	s.Load(ctx)

	done := make(chan error, 1)
	go func() {
		_, err := s.CheckIn(ctx)
		done <- err
	}()
	<-mem.started

	if _, err := s.CheckIn(ctx); !errors.Is(err, ErrCheckInInProgress) {
		t.Fatalf("concurrent CheckIn err = %v, want ErrCheckInInProgress", err)
	}

	close(mem.release)
	if err := <-done; err != nil {
		t.Fatalf("first CheckIn: %v", err)
	}
	if mem.saves != 1 {
		t.Fatalf("saves = %d, want 1", mem.saves)
	}
	if got := s.Activity().StreakData.TotalCheckIns; got != 1 {
		t.Fatalf("total = %d, want 1", got)
	}
}

func TestLoad_CorruptDataFallsBack(t *testing.T) {
	mem := newMem()
	mem.data[Namespace] = []byte(`{"checkIns": [not json`)
	s, _ := newTestStore(mem, at("2025-06-03", 9, 0))

	a := s.Load(context.Background())
	if len(a.CheckIns) != 0 || a.StreakData.TotalCheckIns != 0 {
		t.Fatalf("expected initial state, got %+v", a)
	}
	if s.Phase() != Ready {
		t.Fatalf("phase = %s", s.Phase())
	}
}

func TestLoad_StorageErrorFallsBack(t *testing.T) {
	mem := newMem()
	mem.loadErr = errors.New("io error")
	s, _ := newTestStore(mem, at("2025-06-03", 9, 0))

	a := s.Load(context.Background())
	if len(a.CheckIns) != 0 {
		t.Fatalf("expected initial state, got %+v", a)
	}
}

func TestLoad_MergesPartialDocuments(t *testing.T) {
	tests := []struct {
		name        string
		doc         string
		wantCount   int
		wantCurrent int
		wantLongest int
	}{
		{
			name:        "missing streakData",
			doc:         `{"checkIns":{"2025-06-03":{"date":"2025-06-03","completed":true,"timestamp":1}}}`,
			wantCount:   1,
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "null checkIns",
			doc:         `{"checkIns":null,"streakData":{"longestStreak":9,"totalCheckIns":12}}`,
			wantLongest: 9,
		},
		{
			name:        "stale cached current streak",
			doc:         `{"checkIns":{"2025-05-01":{"date":"2025-05-01","completed":true,"timestamp":1}},"streakData":{"currentStreak":40,"longestStreak":40,"lastCheckInDate":null,"totalCheckIns":40}}`,
			wantCount:   1,
			wantLongest: 40,
		},
		{
			name: "empty object",
			doc:  `{}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := newMem()
			mem.data[Namespace] = []byte(tt.doc)
			s, _ := newTestStore(mem, at("2025-06-03", 12, 0))

			a := s.Load(context.Background())
			if a.CheckIns == nil {
				t.Fatal("CheckIns must never be nil")
			}
			if len(a.CheckIns) != tt.wantCount {
				t.Errorf("check-ins = %d, want %d", len(a.CheckIns), tt.wantCount)
			}
			if a.StreakData.CurrentStreak != tt.wantCurrent {
				t.Errorf("current = %d, want %d", a.StreakData.CurrentStreak, tt.wantCurrent)
			}
			if a.StreakData.LongestStreak != tt.wantLongest {
				t.Errorf("longest = %d, want %d", a.StreakData.LongestStreak, tt.wantLongest)
			}
		})
	}
}

func TestRoundTrip_NewStoreSeesSavedState(t *testing.T) {
	mem := newMem()
	now := at("2025-06-03", 9, 0)
	first, _ := newTestStore(mem, now)
	want, err := first.CheckIn(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	second, _ := newTestStore(mem, now)
	got := second.Load(context.Background())
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("reloaded %+v, want %+v", got, want)
	}
}

func TestClear(t *testing.T) {
	mem := newMem()
	mem.put(t, withHistory("2025-06-02", "2025-06-03"))
	s, _ := newTestStore(mem, at("2025-06-03", 9, 0))
	ctx := context.Background()
	s.Load(ctx)

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if len(s.Activity().CheckIns) != 0 || s.HasCheckedInToday() {
		t.Fatal("state not reset")
	}
	if _, found, _ := mem.Load(ctx, Namespace); found {
		t.Fatal("persisted document not deleted")
	}
}

func TestActivity_ReturnsCopy(t *testing.T) {
	s, _ := newTestStore(newMem(), at("2025-06-03", 9, 0))
	s.Load(context.Background())

	snap := s.Activity()
	snap.CheckIns["2025-06-03"] = streak.DailyCheckIn{Date: "2025-06-03", Completed: true}
	if s.HasCheckedInToday() {
		t.Fatal("mutating a snapshot changed the store")
	}
}
