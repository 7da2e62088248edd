package session

import "time"

// Scheduler is a cancellable delayed task, the controller's only notion of
// time. Tests substitute a manual implementation to advance virtual time
// deterministically.
type Scheduler interface {
	// Schedule runs fn after d. The returned cancel stops the task if it
	// has not fired yet.
	Schedule(d time.Duration, fn func()) (cancel func())
}

type timerScheduler struct{}

func NewTimerScheduler() Scheduler {
	return timerScheduler{}
}

func (timerScheduler) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)

	return func() { t.Stop() }
}
