package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"motoslot/models"

	"github.com/hibiken/asynq"
)

// TypeSMSSend is the asynq task type for queued booking confirmations.
const TypeSMSSend = "sms:booking_confirmed"

// AsynqDispatcher queues confirmation SMS on redis for the background worker.
type AsynqDispatcher struct {
	client *asynq.Client
}

func NewAsynqDispatcher(client *asynq.Client) *AsynqDispatcher {
	return &AsynqDispatcher{client: client}
}

func (d *AsynqDispatcher) DispatchBookingConfirmation(ctx context.Context, sms models.BookingSMS) error {
	payload, err := json.Marshal(sms)
	if err != nil {
		return fmt.Errorf("failed to encode sms payload: %w", err)
	}
	task := asynq.NewTask(TypeSMSSend, payload, asynq.MaxRetry(3))
	if _, err := d.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue sms task: %w", err)
	}
	return nil
}
