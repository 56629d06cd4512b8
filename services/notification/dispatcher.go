package notification

import (
	"context"
	"fmt"

	"github.com/FeyzullahTeklik/esantiyem-backend/config"
	"github.com/FeyzullahTeklik/esantiyem-backend/models"
	"github.com/FeyzullahTeklik/esantiyem-backend/services/tasks"
	"github.com/FeyzullahTeklik/esantiyem-backend/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// AsynqDispatcher implements Service by enqueuing email tasks on the redis
// queue instead of sending inline. The cron worker picks the tasks up and
// delivers them through the SMTPMailer.
type AsynqDispatcher struct {
	client *asynq.Client
	mailer *SMTPMailer
}

// NewAsynqDispatcher creates a dispatcher backed by the queue redis DB.
func NewAsynqDispatcher() *AsynqDispatcher {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	return &AsynqDispatcher{client: client, mailer: NewSMTPMailer()}
}

// Close releases the underlying queue client.
func (d *AsynqDispatcher) Close() error {
	return d.client.Close()
}

func (d *AsynqDispatcher) enqueue(payload models.EmailPayload) error {
	task, err := tasks.NewEmailTask(payload)
	if err != nil {
		return fmt.Errorf("failed to build email task: %w", err)
	}
	info, err := d.client.Enqueue(task)
	if err != nil {
		return fmt.Errorf("failed to enqueue email task: %w", err)
	}
	utils.GetLogger().Debug("Enqueued email task",
		zap.String("taskID", info.ID), zap.String("to", payload.To))
	return nil
}

// ProposalSubmitted queues the new-proposal email for the job owner.
func (d *AsynqDispatcher) ProposalSubmitted(ctx context.Context, to, jobTitle, providerName string, price float64) error {
	subject, body := composeProposalSubmitted(jobTitle, providerName, price)
	return d.enqueue(models.EmailPayload{To: to, Subject: subject, Body: body})
}

// ProposalAccepted queues the acceptance email for the winning provider.
func (d *AsynqDispatcher) ProposalAccepted(ctx context.Context, to, jobTitle, customerName string, price float64) error {
	subject, body := composeProposalAccepted(jobTitle, customerName, price)
	return d.enqueue(models.EmailPayload{To: to, Subject: subject, Body: body})
}

// JobApproved queues the go-live email for the job owner.
func (d *AsynqDispatcher) JobApproved(ctx context.Context, to, jobTitle string) error {
	subject, body := composeJobApproved(jobTitle)
	return d.enqueue(models.EmailPayload{To: to, Subject: subject, Body: body})
}

// PasswordResetOTP sends the reset code inline. The code expires in minutes,
// so it never waits in the queue behind other mail.
func (d *AsynqDispatcher) PasswordResetOTP(ctx context.Context, to, otp string) error {
	return d.mailer.PasswordResetOTP(ctx, to, otp)
}
