package jobs

import (
	"fmt"
	"log"

	"RekapLamongan/internal/config"
	"RekapLamongan/internal/logger"
	"RekapLamongan/internal/serviceiface"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
)

// CronService schedules the background jobs of the app. Right now that is
// one job: the nightly rekap snapshot refresh.
type CronService struct {
	config map[string]interface{}
	pool   *pgxpool.Pool
	cron   *cron.Cron
}

func NewCronService(cfg map[string]interface{}, pool *pgxpool.Pool) serviceiface.Service {
	return &CronService{
		config: cfg,
		pool:   pool,
	}
}

func (s *CronService) Name() string {
	return "cron"
}

func (s *CronService) Start() error {
	schedule := config.DefaultRekapSchedule
	if s.config != nil {
		if v, ok := s.config["rekap_schedule"].(string); ok && v != "" {
			schedule = v
		}
	}

	s.cron = cron.New()
	if _, err := s.cron.AddFunc(schedule, func() {
		if err := RefreshRekapSnapshot(s.pool); err != nil {
			log.Printf("[CRON] rekap snapshot refresh failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule rekap refresh: %w", err)
	}
	s.cron.Start()

	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit("Cron service started — rekap refresh scheduled " + schedule)
	}
	log.Println("Cron service started — rekap refresh scheduled", schedule)
	return nil
}

func (s *CronService) Stop() error {
	if s.cron != nil {
		s.cron.Stop()
	}
	return nil
}
