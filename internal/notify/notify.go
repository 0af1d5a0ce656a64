// Package notify implements the transient user-facing message surface.
package notify

import (
	"storefront-client/internal/apperr"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type Severity = string

const (
	Info    Severity = apperr.SeverityInfo
	Success Severity = apperr.SeveritySuccess
	Warning Severity = apperr.SeverityWarning
	Danger  Severity = apperr.SeverityDanger
)

// DismissAfter is how long a notification stays visible.
const DismissAfter = 3 * time.Second

type Notifier interface {
	Notify(message string, severity Severity)
}

type Notification struct {
	Message  string
	Severity Severity
	Expires  time.Time
}

// Stack keeps the notifications that are still visible. Notify never blocks
// and entries stack until they expire.
type Stack struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items []Notification
}

func NewStack() *Stack {
	return &Stack{ttl: DismissAfter, now: time.Now}
}

func (s *Stack) Notify(message string, severity Severity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, Notification{
		Message:  message,
		Severity: severity,
		Expires:  s.now().Add(s.ttl),
	})
}

// Visible drops expired notifications and returns the rest, oldest first.
func (s *Stack) Visible() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	kept := s.items[:0]
	for _, n := range s.items {
		if now.Before(n.Expires) {
			kept = append(kept, n)
		}
	}
	s.items = kept
	out := make([]Notification, len(kept))
	copy(out, kept)
	return out
}

// LogNotifier writes notifications through a logrus logger, mapping
// severities onto log levels.
type LogNotifier struct {
	logger logrus.FieldLogger
}

func NewLogNotifier(logger logrus.FieldLogger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(message string, severity Severity) {
	entry := n.logger.WithField("severity", severity)
	switch severity {
	case Danger:
		entry.Error(message)
	case Warning:
		entry.Warn(message)
	default:
		entry.Info(message)
	}
}

// Multi fans a notification out to several surfaces.
type Multi []Notifier

func (m Multi) Notify(message string, severity Severity) {
	for _, n := range m {
		n.Notify(message, severity)
	}
}
