// Package notify fans workflow events out to role-scoped channels over
// websockets. Delivery is best-effort and fire-and-forget: a transition
// never fails or rolls back because nobody was listening.
package notify

// Severity classifies a notification for the dashboards.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
)

// Wire event names, kept identical to what the dashboard clients
// subscribe to.
const (
	EventDirectorNotification = "directorNotification"
	EventGuardNotification    = "guardNotification"
	EventNewVisitor           = "newVisitor"
	EventVisitorExited        = "visitorExited"
)

// Dispatcher is the notification port the workflow services emit
// through. Implementations must never block the caller and must swallow
// delivery failures (logging them is enough).
type Dispatcher interface {
	// NotifyDirector broadcasts to every connected director.
	NotifyDirector(message string, severity Severity)
	// NotifyGuard broadcasts to every connected guard.
	NotifyGuard(message string, severity Severity)
	// NotifyFaculty delivers an event to one faculty member's room.
	NotifyFaculty(facultyID, event, message string, record interface{})
}
