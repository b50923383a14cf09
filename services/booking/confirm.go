package booking

import (
	"context"
	"errors"
	"time"

	"freshnest/models"
	"freshnest/services/availability"
	"freshnest/services/tasks"
	"freshnest/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConfirmBooking finalizes a session: re-checks the chosen slot is still free,
// verifies the payment reference, persists a pending booking with denormalized
// snapshots, then registers it on the external calendar.
//
// The re-check plus the calendar's atomic create is the only concurrency control:
// optimistic check-then-commit, with the calendar as the arbiter of the race. If
// the calendar registration fails after local persistence, the booking stays
// pending with a reconciliation flag instead of being rolled back, so the
// customer's slot isn't lost to a downstream hiccup.
func (s *DefaultBookingSessionService) ConfirmBooking(ctx context.Context, input models.ConfirmInput) (*models.Booking, error) {
	logger := utils.GetLogger()

	session, err := s.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	var chosen *models.MatchResult
	for i := range session.Outcome.Results {
		if session.Outcome.Results[i].Provider.ID == input.ProviderID {
			chosen = &session.Outcome.Results[i]
			break
		}
	}
	if chosen == nil {
		return nil, newSessionError("selected provider is not in the matched providers list")
	}
	if !input.Slot.Start.Before(input.Slot.End) {
		return nil, newSessionError("confirmed slot has a non-positive duration")
	}

	if len(chosen.FreeSlots) == 0 {
		return nil, newSessionError("selected provider has no free slots in this session")
	}
	if !validPriceBreakdown(input.Price) {
		return nil, newSessionError("price breakdown does not sum")
	}
	resourceID := chosen.FreeSlots[0].ResourceID

	// Fresh re-check immediately before committing. ConfirmGateway bypasses the
	// busy-window cache, so this sees the calendar's current state.
	busy, err := s.ConfirmGateway.BusyWindows(ctx, resourceID, input.Slot.Start, input.Slot.End)
	if err != nil {
		return nil, &UpstreamError{Stage: "calendar", Err: err}
	}
	for _, w := range busy {
		if w.Busy && w.Overlaps(input.Slot.Start, input.Slot.End) {
			return nil, &SlotConflictError{ProviderID: input.ProviderID}
		}
	}

	if s.Payments != nil && input.PaymentReference != "" {
		if err := s.Payments.Verify(ctx, input.PaymentReference); err != nil {
			return nil, &UpstreamError{Stage: "payment", Err: err}
		}
	}

	booking := &models.Booking{
		ID:         uuid.New().String(),
		ProviderID: chosen.Provider.ID,
		Provider:   chosen.Provider,
		Customer:   input.Customer,
		Request: models.RequestSnapshot{
			ServiceType: session.Request.ServiceType,
			Location:    session.Request.Location,
			Date:        session.Request.Date,
			Urgency:     session.Request.Urgency,
		},
		ScheduledStart:     input.Slot.Start,
		ScheduledEnd:       input.Slot.End,
		Status:             models.BookingPending,
		Price:              input.Price,
		PaymentReference:   input.PaymentReference,
		CalendarResourceID: resourceID,
	}

	if err := s.BookingRepo.Insert(ctx, booking); err != nil {
		return nil, &UpstreamError{Stage: "persistence", Err: err}
	}

	metadata := map[string]string{
		"bookingId":   booking.ID,
		"serviceType": booking.Request.ServiceType,
	}
	conf, err := s.ConfirmGateway.CreateBooking(ctx, resourceID, input.Slot, attendee(input.Customer), metadata)
	if err != nil {
		var conflict *availability.ConflictError
		if errors.As(err, &conflict) {
			// Lost the race at the calendar. The pending record is cancelled, not
			// deleted; the caller re-runs matching.
			if uErr := s.BookingRepo.UpdateStatus(ctx, booking.ID, models.BookingCancelled); uErr != nil {
				logger.Error("failed to cancel conflicted booking",
					zap.String("bookingId", booking.ID), zap.Error(uErr))
			}
			return nil, &SlotConflictError{ProviderID: input.ProviderID}
		}

		// Registration failed after local persistence: keep the booking, flag it,
		// and let the reconciliation sweep retry out of band.
		logger.Error("calendar registration failed, flagging booking for reconciliation",
			zap.String("bookingId", booking.ID), zap.Error(err))
		if mErr := s.BookingRepo.MarkNeedsReconciliation(ctx, booking.ID); mErr != nil {
			logger.Error("failed to flag booking for reconciliation",
				zap.String("bookingId", booking.ID), zap.Error(mErr))
		}
		booking.NeedsReconciliation = true
		s.enqueueReconcile(booking.ID)
		_ = s.Sessions.Del(ctx, sessionKey(input.SessionID))
		return booking, &UpstreamError{Stage: "calendar", Err: err}
	}

	booking.CalendarConfirmation = conf.ConfirmationID
	if err := s.BookingRepo.SetCalendarConfirmation(ctx, booking.ID, conf.ConfirmationID); err != nil {
		logger.Error("failed to store calendar confirmation",
			zap.String("bookingId", booking.ID), zap.Error(err))
	}
	if err := s.BookingRepo.UpdateStatus(ctx, booking.ID, models.BookingConfirmed); err != nil {
		logger.Error("failed to confirm booking status",
			zap.String("bookingId", booking.ID), zap.Error(err))
	} else {
		booking.Status = models.BookingConfirmed
	}

	_ = s.Sessions.Del(ctx, sessionKey(input.SessionID))

	logger.Info("booking confirmed",
		zap.String("bookingId", booking.ID),
		zap.String("providerId", booking.ProviderID),
		zap.Time("start", booking.ScheduledStart))
	return booking, nil
}

// GetBooking fetches a booking by ID.
func (s *DefaultBookingSessionService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	return s.BookingRepo.GetByID(ctx, id)
}

// TransitionBooking moves a booking through its status state machine. Invalid
// transitions are rejected; records are never deleted.
func (s *DefaultBookingSessionService) TransitionBooking(ctx context.Context, id, next string) (*models.Booking, error) {
	booking, err := s.BookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(booking.Status, next) {
		return nil, newSessionError("invalid status transition " + booking.Status + " -> " + next)
	}
	if err := s.BookingRepo.UpdateStatus(ctx, id, next); err != nil {
		return nil, &UpstreamError{Stage: "persistence", Err: err}
	}
	booking.Status = next
	booking.UpdatedAt = time.Now()
	return booking, nil
}

func (s *DefaultBookingSessionService) enqueueReconcile(bookingID string) {
	if s.TaskClient == nil {
		return
	}
	task, opts, err := tasks.NewReconcileTask(bookingID)
	if err == nil {
		_, err = s.TaskClient.Enqueue(task, opts...)
	}
	if err != nil {
		utils.GetLogger().Error("failed to enqueue reconciliation task",
			zap.String("bookingId", bookingID), zap.Error(err))
	}
}

func attendee(c models.Customer) models.Attendee {
	return models.Attendee{Name: c.Name, Email: c.Email, Phone: c.Phone}
}

// validPriceBreakdown rejects client-supplied breakdowns with negative components
// or a total that doesn't sum, so a tampered payload can't persist an arbitrary
// price. A zero-value breakdown (no price attached) is accepted.
func validPriceBreakdown(p models.PriceBreakdown) bool {
	if p.Base < 0 || p.AddOnTotal < 0 || p.Discount < 0 || p.Total < 0 {
		return false
	}
	diff := p.Total - (p.Base - p.Discount + p.AddOnTotal)
	return diff < 0.005 && diff > -0.005
}
