package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/FeyzullahTeklik/esantiyem-backend/config"
	"github.com/FeyzullahTeklik/esantiyem-backend/models"
	"github.com/FeyzullahTeklik/esantiyem-backend/services/maintenance"
	"github.com/FeyzullahTeklik/esantiyem-backend/services/notification"
	"github.com/FeyzullahTeklik/esantiyem-backend/services/tasks"

	"github.com/hibiken/asynq"
)

// InitWorker runs the async worker and the periodic scheduler in background.
// The worker delivers queued emails and executes the orphan sweep; the
// scheduler enqueues a sweep on the configured interval.
func InitWorker(mailer *notification.SMTPMailer, maintSvc maintenance.MaintenanceService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeEmailSend, handleEmailTask(mailer))
	mux.HandleFunc(tasks.TypeOrphanSweep, handleOrphanSweepTask(maintSvc))

	go func() {
		log.Println("[Worker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[Worker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[Worker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	go runSweepScheduler(redisOpts)
}

func handleEmailTask(mailer *notification.SMTPMailer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.EmailPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[EmailHandler] Invalid payload: %v", err)
			return err
		}

		if err := mailer.Send(ctx, p.To, p.Subject, p.Body); err != nil {
			log.Printf("[EmailHandler] Failed to send email to %s: %v", p.To, err)
			return err
		}
		return nil
	}
}

func handleOrphanSweepTask(maintSvc maintenance.MaintenanceService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		report, err := maintSvc.SweepOrphans(ctx)
		if err != nil {
			log.Printf("[SweepHandler] Orphan sweep failed: %v", err)
			return err
		}
		log.Printf("[SweepHandler] Sweep done: %d/%d proposals, %d/%d reviews removed",
			report.Proposals.Deleted, report.Proposals.Checked,
			report.Reviews.Deleted, report.Reviews.Checked)
		return nil
	}
}

// runSweepScheduler enqueues the orphan sweep on a fixed interval.
func runSweepScheduler(redisOpts asynq.RedisClientOpt) {
	hours := config.AppConfig.OrphanSweepIntervalHours
	if hours < 1 {
		hours = 24
	}

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{Location: time.UTC})
	spec := fmt.Sprintf("@every %dh", hours)
	if _, err := scheduler.Register(spec, tasks.NewOrphanSweepTask()); err != nil {
		log.Printf("[Scheduler] Failed to register orphan sweep: %v", err)
		return
	}

	if err := scheduler.Run(); err != nil {
		log.Printf("[Scheduler] Scheduler stopped: %v", err)
	}
}
