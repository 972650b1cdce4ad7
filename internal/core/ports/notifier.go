package ports

const (
	NotifySuccess     = "success"
	NotifyDestructive = "destructive"
)

// Notification is the transient message shown to the operator after every
// mutation attempt.
type Notification struct {
	Title       string
	Description string
	Variant     string // NotifySuccess or NotifyDestructive
	// Subject identifies the affected record; deliveries for the same
	// subject are kept in order.
	Subject string
}

// Notifier delivers notifications asynchronously. Notify never blocks the
// mutation path and never returns an error to it.
type Notifier interface {
	Notify(n Notification)
}
