package booking

import "fmt"

// SlotConflictError is returned when the chosen slot was taken between matching
// and confirmation. The caller is expected to re-run matching.
type SlotConflictError struct {
	ProviderID string
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("slot no longer available for provider %s", e.ProviderID)
}

// SessionError covers missing/expired sessions and selections outside the
// matched set.
type SessionError struct {
	Code    string
	Message string
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newSessionError(msg string) error {
	return &SessionError{Code: "sessionError", Message: msg}
}

// UpstreamError wraps a payment or persistence boundary failure during
// confirmation. Details are logged; customers only ever see a generic message.
type UpstreamError struct {
	Stage string // "payment", "persistence", "calendar"
	Err   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream failure during %s: %v", e.Stage, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
