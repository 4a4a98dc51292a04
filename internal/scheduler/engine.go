package scheduler

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidTriggerTime = errors.New("scheduler: invalid trigger time")
	ErrEngineStopped      = errors.New("scheduler: engine stopped")
)

// Wake is the single pending alarm. Exact wakes fire at At; inexact wakes may
// fire up to the engine's inexact window later.
type Wake struct {
	ID     string
	At     time.Time
	Exact  bool
	Hour   int
	Minute int

	// gen is the engine generation the wake fired in.
	gen uint64
}

func (w Wake) due(window time.Duration) time.Time {
	if w.Exact || window <= 0 {
		return w.At
	}
	return w.At.Add(window)
}

// Engine owns one alarm slot. Arm overwrites the slot and Cancel clears it.
type Engine struct {
	mu            sync.Mutex
	slot          *Wake
	inexactWindow time.Duration
	out           chan Wake
	wakeup        chan struct{}
	stopCh        chan struct{}
	doneCh        chan struct{}
	started       bool
	stopped       bool
	dropped       uint64
	// gen counts Arm and Cancel calls.
	gen uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		out:    make(chan Wake, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (e *Engine) SetInexactWindow(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if d < 0 {
		d = 0
	}
	e.inexactWindow = d
	e.signalWakeup()
}

func (e *Engine) C() <-chan Wake {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.stopped = true
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

func (e *Engine) Arm(w Wake) error {
	if w.At.IsZero() {
		return ErrInvalidTriggerTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrEngineStopped
	}

	armed := w
	e.slot = &armed
	e.gen++
	e.signalWakeup()
	return nil
}

// Cancel clears the slot. With nothing armed it only records that a cancel
// happened, so a wake already handed out is not re-armed by Run.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gen++
	if e.slot == nil {
		return
	}
	e.slot = nil
	e.signalWakeup()
}

// ChangedSince reports whether Arm or Cancel ran after w fired.
func (e *Engine) ChangedSince(w Wake) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gen != w.gen
}

func (e *Engine) Pending() (Wake, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.slot == nil {
		return Wake{}, false
	}
	return *e.slot, true
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		due, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(due)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			if ev, ok := e.popDue(time.Now()); ok {
				select {
				case e.out <- ev:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			if timer != nil {
				stopTimer(timer)
			}
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (time.Time, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.slot == nil {
		return time.Time{}, false
	}
	return e.slot.due(e.inexactWindow), true
}

func (e *Engine) popDue(now time.Time) (Wake, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.slot == nil || e.slot.due(e.inexactWindow).After(now) {
		return Wake{}, false
	}
	ev := *e.slot
	ev.gen = e.gen
	e.slot = nil
	return ev, true
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
