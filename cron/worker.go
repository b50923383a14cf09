package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"freshnest/config"
	bookingRepo "freshnest/database/repository/booking"
	"freshnest/models"
	"freshnest/services/availability"
	"freshnest/services/tasks"

	"github.com/hibiken/asynq"
)

// InitReconcileWorker runs the reconciliation worker in the background. It
// re-attempts calendar registration for bookings that were persisted locally but
// never made it onto the external calendar.
func InitReconcileWorker(repo bookingRepo.BookingRepository, gateway availability.Gateway) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"reconcile": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingReconcile, handleReconcileTask(repo, gateway))

	go func() {
		log.Println("[ReconcileWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReconcileWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReconcileWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReconcileTask(repo bookingRepo.BookingRepository, gateway availability.Gateway) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.ReconcilePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReconcileWorker] invalid payload: %v", err)
			return err
		}

		booking, err := repo.GetByID(ctx, p.BookingID)
		if err != nil {
			log.Printf("[ReconcileWorker] booking %s not found: %v", p.BookingID, err)
			return err
		}
		if !booking.NeedsReconciliation {
			// Already reconciled by a concurrent run.
			return nil
		}

		window := models.TimeWindowUTC{Start: booking.ScheduledStart, End: booking.ScheduledEnd}
		attendee := models.Attendee{
			Name:  booking.Customer.Name,
			Email: booking.Customer.Email,
			Phone: booking.Customer.Phone,
		}
		metadata := map[string]string{
			"bookingId":   booking.ID,
			"serviceType": booking.Request.ServiceType,
			"reconciled":  "true",
		}

		conf, err := gateway.CreateBooking(ctx, booking.CalendarResourceID, window, attendee, metadata)
		if err != nil {
			log.Printf("[ReconcileWorker] re-registration failed for booking %s: %v", booking.ID, err)
			return err // asynq retries with backoff
		}

		if err := repo.SetCalendarConfirmation(ctx, booking.ID, conf.ConfirmationID); err != nil {
			log.Printf("[ReconcileWorker] failed to store confirmation for booking %s: %v", booking.ID, err)
			return err
		}
		if err := repo.UpdateStatus(ctx, booking.ID, models.BookingConfirmed); err != nil {
			log.Printf("[ReconcileWorker] failed to confirm booking %s: %v", booking.ID, err)
			return err
		}

		log.Printf("[ReconcileWorker] booking %s reconciled (confirmation %s)", booking.ID, conf.ConfirmationID)
		return nil
	}
}
