package tasks

import (
	"encoding/json"

	"github.com/FeyzullahTeklik/esantiyem-backend/models"

	"github.com/hibiken/asynq"
)

const (
	TypeEmailSend   = "notification:email"
	TypeOrphanSweep = "maintenance:orphan-sweep"
)

// NewEmailTask builds a queued email delivery task.
func NewEmailTask(payload models.EmailPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeEmailSend, b, asynq.MaxRetry(3)), nil
}

// NewOrphanSweepTask builds the periodic orphan sweep task. It carries no
// payload; the sweep always examines the full proposal and review stores.
func NewOrphanSweepTask() *asynq.Task {
	return asynq.NewTask(TypeOrphanSweep, nil, asynq.MaxRetry(1))
}
