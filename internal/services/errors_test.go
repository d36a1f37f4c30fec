package services_test

import (
	"errors"
	"testing"

	"chatscribe/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	inner := errors.New("websocket: close 1006")
	err := services.Wrap(services.ErrSourceClosed, "devtools", "observe", "connection lost", inner)
	if !errors.Is(err, services.ErrSourceClosed) {
		t.Fatalf("expected marker to survive wrapping: %v", err)
	}
	if !errors.Is(err, inner) {
		t.Fatalf("expected inner error to survive wrapping: %v", err)
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "devtools", "observe", "empty render", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestIsFatal(t *testing.T) {
	cases := []struct {
		err   error
		fatal bool
	}{
		{services.Wrap(services.ErrSourceClosed, "devtools", "reveal", "", nil), true},
		{services.Wrap(services.ErrLogin, "devtools", "wait", "", nil), true},
		{services.Wrap(services.ErrConfiguration, "pipeline", "run", "", nil), true},
		{services.Wrap(services.ErrTransient, "devtools", "observe", "", nil), false},
		{services.Wrap(services.ErrStaleLocators, "devtools", "observe", "", nil), false},
	}
	for _, tc := range cases {
		if services.IsFatal(tc.err) != tc.fatal {
			t.Errorf("IsFatal(%v) = %v, want %v", tc.err, !tc.fatal, tc.fatal)
		}
	}
}
