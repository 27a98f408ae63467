package port

type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notifier surfaces user-facing messages. Implementations must not block the caller.
type Notifier interface {
	Notify(severity Severity, message string)
}
