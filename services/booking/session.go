package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"freshnest/models"
	"freshnest/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sessions expire after this TTL; losing one only costs the customer a re-match.
const sessionTTL = 30 * time.Minute

// StartSession runs matching for the request and stores the outcome in Redis
// keyed by a fresh session ID. An empty outcome still creates a session so the
// client can retry with looser preferences.
func (s *DefaultBookingSessionService) StartSession(ctx context.Context, req models.ServiceRequest) (string, models.MatchOutcome, error) {
	logger := utils.GetLogger()

	outcome, err := s.MatchingSvc.FindProviders(ctx, req)
	if err != nil {
		return "", models.MatchOutcome{}, err
	}

	sessionID := uuid.New().String()
	session := models.BookingSession{
		SessionID: sessionID,
		Request:   req,
		Outcome:   outcome,
	}

	sessionData, err := json.Marshal(session)
	if err != nil {
		return "", models.MatchOutcome{}, fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := s.Sessions.Set(ctx, sessionKey(sessionID), string(sessionData), sessionTTL); err != nil {
		return "", models.MatchOutcome{}, fmt.Errorf("failed to store booking session: %w", err)
	}

	logger.Info("booking session started",
		zap.String("sessionId", sessionID),
		zap.String("serviceType", req.ServiceType),
		zap.Int("matches", len(outcome.Results)),
		zap.Bool("degraded", outcome.Degraded))
	return sessionID, outcome, nil
}

// CancelSession allows the client to explicitly abandon a booking session.
func (s *DefaultBookingSessionService) CancelSession(ctx context.Context, sessionID string) error {
	if err := s.Sessions.Del(ctx, sessionKey(sessionID)); err != nil {
		return fmt.Errorf("failed to cancel booking session: %w", err)
	}
	return nil
}

func (s *DefaultBookingSessionService) loadSession(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	sessionData, err := s.Sessions.Get(ctx, sessionKey(sessionID))
	if err != nil {
		return nil, newSessionError("booking session not found or expired")
	}
	var session models.BookingSession
	if err := json.Unmarshal([]byte(sessionData), &session); err != nil {
		return nil, fmt.Errorf("failed to parse booking session: %w", err)
	}
	return &session, nil
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}
