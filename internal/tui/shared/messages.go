package shared

// DetachMsg asks the display to stop drawing while copies keep running.
type DetachMsg struct{}
