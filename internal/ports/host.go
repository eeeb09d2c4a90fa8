package ports

// SessionHost owns the active session slot. It supplies the session to
// activate and is notified when the completion pipeline reaches Closed.
type SessionHost interface {
	// Close releases the active session.
	Close()
}
