package backup

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogd/internal/models"
	"blogd/internal/structures"
	"blogd/internal/testutil"
)

type mockManager struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (m *mockManager) CreateBackup(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return "/tmp/backup.json", nil
}

func (m *mockManager) ListBackups() ([]models.BackupInfo, error)           { return nil, nil }
func (m *mockManager) DeleteBackup(_ string) error                         { return nil }
func (m *mockManager) RestoreFromBackup(_ context.Context, _ string) error { return nil }
func (m *mockManager) ExportData(_ context.Context) (string, error)        { return "", nil }

func scheduleConfig(enabled bool) *structures.Config {
	return &structures.Config{Backup: structures.BackupConfig{Schedule: enabled}}
}

func TestNextMidnight(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)

	got := NextMidnight(time.Date(2024, 3, 10, 14, 30, 0, 0, loc), loc)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, loc), got)

	got = NextMidnight(time.Date(2024, 3, 10, 0, 0, 0, 0, loc), loc)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, loc), got, "exactly midnight schedules the next one")

	got = NextMidnight(time.Date(2024, 12, 31, 23, 59, 59, 0, loc), loc)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, loc), got)
}

func TestNextMidnight_ConvertsToLocation(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	// 20:00 UTC is already 01:30 the next day in IST
	got := NextMidnight(time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC), loc)
	assert.Equal(t, time.Date(2024, 3, 12, 0, 0, 0, 0, loc), got)
}

func TestMidnightSchedule_SpacedOneDayApart(t *testing.T) {
	s := midnightSchedule{loc: time.UTC}
	first := s.Next(time.Date(2024, 5, 5, 9, 0, 0, 0, time.UTC))
	second := s.Next(first)
	assert.Equal(t, 24*time.Hour, second.Sub(first))
}

func TestMidnightSchedule_FollowsWallClockAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	s := midnightSchedule{loc: loc}

	first := s.Next(time.Date(2024, 3, 9, 12, 0, 0, 0, loc))
	second := s.Next(first)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, loc), second)
	assert.Equal(t, 23*time.Hour, second.Sub(first))

	first = s.Next(time.Date(2024, 11, 2, 12, 0, 0, 0, loc))
	second = s.Next(first)
	assert.Equal(t, 25*time.Hour, second.Sub(first))
}

func TestStartToken_AcquireOnce(t *testing.T) {
	token := NewStartToken()
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if token.Acquire() {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestScheduler_InitDisabled(t *testing.T) {
	logger := &testutil.MockLogger{}
	token := NewStartToken()
	s := NewScheduler(scheduleConfig(false), logger, &mockManager{}, token).(*Scheduler)

	s.Init()
	defer s.Stop()

	assert.Nil(t, s.cron)
	assert.True(t, token.Acquire(), "disabled scheduler must not spend the token")
	assert.True(t, logger.Contains("info", "disabled"))
}

func TestScheduler_SecondInitIsNoop(t *testing.T) {
	logger := &testutil.MockLogger{}
	token := NewStartToken()
	first := NewScheduler(scheduleConfig(true), logger, &mockManager{}, token).(*Scheduler)
	second := NewScheduler(scheduleConfig(true), logger, &mockManager{}, token).(*Scheduler)

	first.Init()
	defer first.Stop()
	second.Init()
	defer second.Stop()

	assert.NotNil(t, first.cron)
	assert.Nil(t, second.cron)
	assert.True(t, logger.Contains("warn", "already started"))
}

func TestScheduler_RunCreatesBackup(t *testing.T) {
	logger := &testutil.MockLogger{}
	manager := &mockManager{}
	s := NewScheduler(scheduleConfig(true), logger, manager, NewStartToken()).(*Scheduler)

	s.Run()

	assert.Equal(t, 1, manager.calls)
	assert.True(t, logger.Contains("info", "/tmp/backup.json"))
	assert.Zero(t, logger.Count("error"))
}

func TestScheduler_RunLogsFailure(t *testing.T) {
	logger := &testutil.MockLogger{}
	manager := &mockManager{err: errors.New("disk full")}
	s := NewScheduler(scheduleConfig(true), logger, manager, NewStartToken()).(*Scheduler)

	s.Run()
	s.Run()

	assert.Equal(t, 2, manager.calls, "a failed run does not stop later runs")
	assert.True(t, logger.Contains("error", "disk full"))
}

func TestScheduler_StopBeforeInit(t *testing.T) {
	s := NewScheduler(scheduleConfig(true), &testutil.MockLogger{}, &mockManager{}, NewStartToken())
	require.NotPanics(t, s.Stop)
}
