package orchestrator

import (
	"context"
	"sync"

	"github.com/apex/log"
	"github.com/veedubyou/split-studio/src/shared/split/entity"
)

// Observer is told about every phase change of a page, in order, on a
// goroutine owned by the page
type Observer interface {
	PhaseChanged(transition Transition)
}

type ObserverFunc func(transition Transition)

func (o ObserverFunc) PhaseChanged(transition Transition) {
	o(transition)
}

// Recorder keeps a record of successful splits. Failing to record never
// affects the page.
type Recorder interface {
	RecordSplit(ctx context.Context, sessionID string, file splitentity.UploadedFile, result splitentity.SplitResult) error
}

// backlogWarning is how many undelivered transitions get a slow observer
// logged
const backlogWarning = 64

// dispatcher delivers transitions in order. send never blocks, so a page
// can queue while holding its lock however slow an observer is.
type dispatcher struct {
	observers []Observer
	wake      chan struct{}
	done      chan struct{}

	mu      sync.Mutex
	queue   []Transition
	stopped bool
}

func newDispatcher(observers []Observer) *dispatcher {
	d := &dispatcher{
		observers: observers,
		wake:      make(chan struct{}, 1),
		done:      make(chan struct{}),
	}

	go d.run()
	return d
}

func (d *dispatcher) run() {
	defer close(d.done)

	for {
		d.mu.Lock()
		batch := d.queue
		d.queue = nil
		stopped := d.stopped
		d.mu.Unlock()

		for _, transition := range batch {
			for _, observer := range d.observers {
				observer.PhaseChanged(transition)
			}
		}

		if stopped {
			if len(batch) == 0 {
				return
			}
			continue
		}

		if len(batch) == 0 {
			<-d.wake
		}
	}
}

func (d *dispatcher) send(transition Transition) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}

	d.queue = append(d.queue, transition)
	backlog := len(d.queue)
	d.mu.Unlock()

	if backlog == backlogWarning {
		log.WithFields(log.Fields{
			"session_id": transition.SessionID,
			"backlog":    backlog,
		}).Warn("Phase observers are falling behind")
	}

	d.signal()
}

func (d *dispatcher) signal() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// stop delivers whatever is queued and then returns
func (d *dispatcher) stop() {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()

	d.signal()
	<-d.done
}
