package packaging

import "time"

// EventKind classifies controller events.
type EventKind string

const (
	EventRunStarted     EventKind = "RUN_STARTED"
	EventStageStarted   EventKind = "STAGE_STARTED"
	EventStageCompleted EventKind = "STAGE_COMPLETED"
	EventStageFailed    EventKind = "STAGE_FAILED"
	EventRunCompleted   EventKind = "RUN_COMPLETED"
	EventRunFailed      EventKind = "RUN_FAILED"
	EventRunRejected    EventKind = "REJECTED"
	EventRunBusy        EventKind = "BUSY"
)

// Event is a structured state transition emitted by the controller.
type Event struct {
	Kind    EventKind
	RunID   string // empty for REJECTED and BUSY
	Stage   StageName
	At      time.Time
	Elapsed time.Duration // set on stage and run completion/failure
	Detail  map[string]any
	Err     error
}

// Observer receives controller events synchronously, in emission order.
// Implementations must not block for long: the run waits on them.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }

// MultiObserver fans an event out to several observers in order.
type MultiObserver []Observer

func (m MultiObserver) Observe(e Event) {
	for _, o := range m {
		if o != nil {
			o.Observe(e)
		}
	}
}
