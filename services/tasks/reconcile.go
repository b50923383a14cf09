package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeBookingReconcile = "booking:reconcile"

// ReconcilePayload identifies a booking whose calendar registration must be
// retried.
type ReconcilePayload struct {
	BookingID string `json:"bookingId"`
}

// NewReconcileTask builds the asynq task enqueued when a booking is flagged.
func NewReconcileTask(bookingID string) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(ReconcilePayload{BookingID: bookingID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingReconcile, b)
	opts := []asynq.Option{asynq.MaxRetry(10), asynq.Queue("reconcile")}

	return task, opts, nil
}
