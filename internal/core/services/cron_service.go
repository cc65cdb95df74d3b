package services

import (
	"context"
	"log"
	"time"

	"kada-admin/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// sweepTimeout bounds one orphan sweep
const sweepTimeout = 5 * time.Minute

// CronService runs scheduled maintenance jobs
type CronService struct {
	cron    *cron.Cron
	reports *ReportService
	cfg     config.CronConfig
	log     *zap.Logger
}

// NewCronService creates a new cron service
func NewCronService(reports *ReportService, cfg config.CronConfig, log *zap.Logger) *CronService {
	return &CronService{
		cron:    cron.New(),
		reports: reports,
		cfg:     cfg,
		log:     log,
	}
}

// Start schedules the jobs and starts the scheduler
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.OrphanSweepSpec, s.SweepOrphans); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("⏰ Cron started: orphan report sweep %q", s.cfg.OrphanSweepSpec)
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	log.Println("🛑 Cron stopped")
}

// SweepOrphans removes report files that have no record
func (s *CronService) SweepOrphans() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	n, err := s.reports.SweepOrphans(ctx, s.cfg.OrphanGrace)
	if err != nil {
		s.log.Error("orphan report sweep failed", zap.Error(err))
		return
	}
	s.log.Debug("orphan report sweep finished", zap.Int("removed", n))
}
