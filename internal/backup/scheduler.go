package backup

import (
	"context"
	"sync"
	"time"

	"github.com/roylee0704/gron"
	"go.uber.org/atomic"

	"blogd/internal/backup/interfaces"
	"blogd/internal/providers"
	"blogd/internal/structures"
)

// StartToken admits exactly one scheduler start per process. The composition
// root creates it and hands the same token to every scheduler it builds.
type StartToken struct {
	used atomic.Bool
}

func NewStartToken() *StartToken {
	return &StartToken{}
}

// Acquire returns true for the first caller only.
func (t *StartToken) Acquire() bool {
	return t.used.CompareAndSwap(false, true)
}

// midnightSchedule fires at every local midnight.
type midnightSchedule struct {
	loc *time.Location
}

func (s midnightSchedule) Next(t time.Time) time.Time {
	return NextMidnight(t, s.loc)
}

// NextMidnight returns the first local midnight strictly after t.
func NextMidnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	y, mo, d := t.Date()
	return time.Date(y, mo, d+1, 0, 0, 0, 0, loc)
}

// Scheduler runs one backup at every local midnight. Runs are pinned to the
// wall clock, so across a daylight saving change consecutive runs are 23 or
// 25 hours apart instead of 24.
type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	manager ManagerInterface
	token   *StartToken
	cron    *gron.Cron
	loc     *time.Location
	opsMu   sync.Mutex
}

// Init starts the nightly backup job unless scheduling is disabled or the
// token was already spent.
func (s *Scheduler) Init() {
	if !s.config.Backup.Schedule {
		s.logger.Infof(providers.TypeBackup, "Backup scheduling disabled")
		return
	}
	if !s.token.Acquire() {
		s.logger.Warnf(providers.TypeBackup, "Backup scheduler already started, ignoring")
		return
	}

	s.cron = gron.New()
	s.cron.AddFunc(midnightSchedule{loc: s.loc}, s.Run)
	s.cron.Start()
	s.logger.Infof(providers.TypeBackup, "Next scheduled backup at %s", NextMidnight(time.Now(), s.loc).Format(time.RFC3339))
}

// Run performs one scheduled backup. Failures are logged and leave the
// schedule intact.
func (s *Scheduler) Run() {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeBackup, "Running scheduled backup...")
	path, err := s.manager.CreateBackup(context.Background())
	if err != nil {
		s.logger.Errorf(providers.TypeBackup, "Scheduled backup failed: %s", err)
		return
	}
	s.logger.Infof(providers.TypeBackup, "Scheduled backup written to %s", path)
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func NewScheduler(config *structures.Config, logger providers.Logger, manager ManagerInterface, token *StartToken) interfaces.SchedulerInterface {
	return &Scheduler{
		config:  config,
		logger:  logger,
		manager: manager,
		token:   token,
		loc:     time.Local,
	}
}
