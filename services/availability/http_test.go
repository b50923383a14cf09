package availability

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"freshnest/models"
)

func testGateway(url string) *HTTPGateway {
	return NewHTTPGateway(Config{BaseURL: url, APIKey: "test-key", Timeout: 2 * time.Second}, nil)
}

func TestBusyWindowsParsesResponse(t *testing.T) {
	from := time.Date(2026, 9, 4, 8, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 4, 18, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/resources/cal-1/busy" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization = %q", got)
		}
		if got := r.URL.Query().Get("from"); got != from.Format(time.RFC3339) {
			t.Errorf("from = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"busy": []map[string]string{
				{"start": "2026-09-04T10:00:00Z", "end": "2026-09-04T11:30:00Z"},
				{"start": "2026-09-04T14:00:00Z", "end": "2026-09-04T15:00:00Z"},
			},
		})
	}))
	defer srv.Close()

	windows, err := testGateway(srv.URL).BusyWindows(context.Background(), "cal-1", from, to)
	if err != nil {
		t.Fatalf("BusyWindows: %v", err)
	}
	if len(windows) != 2 {
		t.Fatalf("got %d windows, want 2", len(windows))
	}
	first := windows[0]
	if first.ResourceID != "cal-1" || !first.Busy {
		t.Errorf("window not tagged with resource/busy: %+v", first)
	}
	if !first.Start.Equal(time.Date(2026, 9, 4, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", first.Start)
	}
}

func TestBusyWindowsEmptyCalendar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"busy":[]}`))
	}))
	defer srv.Close()

	windows, err := testGateway(srv.URL).BusyWindows(context.Background(), "cal-1", time.Now(), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("BusyWindows: %v", err)
	}
	if len(windows) != 0 {
		t.Errorf("got %d windows, want 0", len(windows))
	}
}

func TestBusyWindowsUpstreamErrorIsUnavailable(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "internal", http.StatusInternalServerError)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"busy": not-json`))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			_, err := testGateway(srv.URL).BusyWindows(context.Background(), "cal-1", time.Now(), time.Now().Add(time.Hour))
			var unavailable *UnavailableError
			if !errors.As(err, &unavailable) {
				t.Fatalf("got %v, want UnavailableError", err)
			}
			if unavailable.ResourceID != "cal-1" {
				t.Errorf("resource = %s, want cal-1", unavailable.ResourceID)
			}
		})
	}
}

func TestBusyWindowsUnreachableHost(t *testing.T) {
	g := testGateway("http://127.0.0.1:1")
	_, err := g.BusyWindows(context.Background(), "cal-1", time.Now(), time.Now().Add(time.Hour))
	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("got %v, want UnavailableError", err)
	}
}

func TestCreateBookingSendsPayloadAndParsesConfirmation(t *testing.T) {
	window := models.TimeWindowUTC{
		Start: time.Date(2026, 9, 4, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 9, 4, 11, 0, 0, 0, time.UTC),
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/resources/cal-1/bookings" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var body struct {
			Start    time.Time         `json:"start"`
			End      time.Time         `json:"end"`
			Attendee models.Attendee   `json:"attendee"`
			Metadata map[string]string `json:"metadata"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if !body.Start.Equal(window.Start) || body.Attendee.Email != "pat@example.com" {
			t.Errorf("unexpected payload: %+v", body)
		}
		if body.Metadata["bookingId"] != "b-1" {
			t.Errorf("metadata = %v", body.Metadata)
		}
		json.NewEncoder(w).Encode(models.BookingConfirmation{ConfirmationID: "ext-42", Status: "confirmed"})
	}))
	defer srv.Close()

	conf, err := testGateway(srv.URL).CreateBooking(context.Background(), "cal-1", window,
		models.Attendee{Name: "Pat Doe", Email: "pat@example.com"},
		map[string]string{"bookingId": "b-1"})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if conf.ConfirmationID != "ext-42" {
		t.Errorf("confirmationId = %s, want ext-42", conf.ConfirmationID)
	}
}

func TestCreateBookingConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"slot taken"}`, http.StatusConflict)
	}))
	defer srv.Close()

	window := models.TimeWindowUTC{Start: time.Now(), End: time.Now().Add(time.Hour)}
	_, err := testGateway(srv.URL).CreateBooking(context.Background(), "cal-1", window, models.Attendee{}, nil)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("got %v, want ConflictError", err)
	}
	if conflict.ResourceID != "cal-1" {
		t.Errorf("resource = %s, want cal-1", conflict.ResourceID)
	}
}

func TestCreateBookingServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	window := models.TimeWindowUTC{Start: time.Now(), End: time.Now().Add(time.Hour)}
	_, err := testGateway(srv.URL).CreateBooking(context.Background(), "cal-1", window, models.Attendee{}, nil)
	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("got %v, want UnavailableError", err)
	}
}
