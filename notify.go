package balcao

import "github.com/rs/zerolog"

// Severity of a user-facing notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is a transient toast shown to the user. The layer only fires
// it; display and lifetime belong to the caller.
type Notification struct {
	Title       string
	Description string
	Severity    Severity
}

// Notifier receives user-facing notifications. Notify must not block.
type Notifier interface {
	Notify(n Notification)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(Notification) {}

// LogNotifier writes notifications to a zerolog logger, for headless use.
type LogNotifier struct {
	Logger zerolog.Logger
}

func (l LogNotifier) Notify(n Notification) {
	evt := l.Logger.Info()
	if n.Severity == SeverityError {
		evt = l.Logger.Error()
	}
	evt.Str("titulo", n.Title).Str("detalhe", n.Description).Msg("notificacao")
}
