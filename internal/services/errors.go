package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSourceClosed marks loss of the observation source connection
	// itself (browser gone, websocket closed). Always fatal to a run.
	ErrSourceClosed = errors.New("observation source closed")
	// ErrLogin marks a failure to reach an authenticated session within
	// the configured wait.
	ErrLogin = errors.New("login not achieved")
	// ErrStaleLocators marks a page structure that no longer matches the
	// versioned locator set.
	ErrStaleLocators = errors.New("locators did not match page")
	// ErrConfiguration marks unusable settings discovered at run time.
	ErrConfiguration = errors.New("configuration error")
	// ErrPersistence marks a failure writing run output to disk.
	ErrPersistence = errors.New("persistence error")
	// ErrTransient marks a per-cycle failure the caller may absorb.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error that includes component context while tagging it with
// the provided marker for later classification. The marker should be one of
// the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether an error must abort the whole extraction run
// rather than just the current cycle.
func IsFatal(err error) bool {
	return errors.Is(err, ErrSourceClosed) || errors.Is(err, ErrLogin) || errors.Is(err, ErrConfiguration)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
