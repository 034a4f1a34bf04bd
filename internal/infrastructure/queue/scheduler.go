package queue

import (
	"encoding/json"
	"time"

	"library-backend/internal/config"
	loanjob "library-backend/internal/domains/loan/job"
	"library-backend/internal/shared"
	"library-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

// Scheduler registers the cron jobs and runs the asynq scheduler
type Scheduler struct {
	scheduler    *asynq.Scheduler
	workerConfig config.WorkerConfig
}

func NewScheduler(redisAddress string, workerConfig config.WorkerConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler:    scheduler,
		workerConfig: workerConfig,
	}
}

// RegisterLoanJobs registers all scheduled loan maintenance jobs
func (s *Scheduler) RegisterLoanJobs() error {
	return s.registerSyncOverdueLoansJob()
}

// Overdue sync runs nightly after the date rolls over, so the status
// column catches up with the previous day's due dates.
func (s *Scheduler) registerSyncOverdueLoansJob() error {
	payload, err := json.Marshal(loanjob.SyncOverdueLoansPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeSyncOverdueLoans, payload)

	_, err = s.scheduler.Register(
		s.workerConfig.OverdueSyncCron,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(2),
		asynq.Timeout(s.workerConfig.OverdueSyncTimeout),
	)

	if err != nil {
		logger.Error("Failed to register SyncOverdueLoans job", err)
		return err
	}

	logger.Info("Registered SyncOverdueLoans job", map[string]interface{}{
		"cron": s.workerConfig.OverdueSyncCron,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
