package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// Enqueuer pushes receipt email tasks onto the asynq queue. It satisfies the
// invoice service's delivery contract.
type Enqueuer struct {
	Client  *asynq.Client
	Queue   string
	Retries int
}

// NewEnqueuer wires an enqueuer with the default queue and retry policy.
func NewEnqueuer(client *asynq.Client) *Enqueuer {
	return &Enqueuer{Client: client, Queue: QueueEmails, Retries: 5}
}

// EnqueueReceiptEmail schedules delivery of one receipt. The task is retried
// with backoff by the worker on transient failures.
func (e *Enqueuer) EnqueueReceiptEmail(ctx context.Context, invoiceID, userID, to string) error {
	task, err := NewReceiptEmailTask(invoiceID, userID, to)
	if err != nil {
		return err
	}
	opts := []asynq.Option{
		asynq.Queue(e.Queue),
		asynq.MaxRetry(e.Retries),
		asynq.Timeout(30 * time.Second),
	}
	if _, err := e.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue %s: %w", TypeReceiptEmail, err)
	}
	return nil
}
