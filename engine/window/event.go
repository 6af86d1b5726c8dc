package window

// Event is a window event delivered to the Run handler.
// The set is closed: ResizeEvent, KeyboardEvent, DrawEvent and ExitEvent.
type Event interface {
	isEvent()
}

// ResizeEvent reports a new framebuffer size in pixels.
type ResizeEvent struct {
	Width  int
	Height int
}

// KeyboardEvent reports a key press or release. Repeats are reported as presses.
type KeyboardEvent struct {
	Key     Key
	Pressed bool
}

// DrawEvent is emitted once per loop iteration, after pending input is delivered.
type DrawEvent struct{}

// ExitEvent is the last event delivered by Run.
type ExitEvent struct{}

func (ResizeEvent) isEvent()   {}
func (KeyboardEvent) isEvent() {}
func (DrawEvent) isEvent()     {}
func (ExitEvent) isEvent()     {}

// eventQueue buffers events raised from platform callbacks until the loop drains them.
// Consecutive resizes collapse into the latest one.
type eventQueue struct {
	events []Event
}

func (q *eventQueue) push(e Event) {
	if r, ok := e.(ResizeEvent); ok && len(q.events) > 0 {
		if _, last := q.events[len(q.events)-1].(ResizeEvent); last {
			q.events[len(q.events)-1] = r
			return
		}
	}
	q.events = append(q.events, e)
}

// drain delivers every queued event in order and empties the queue.
func (q *eventQueue) drain(handler func(Event)) {
	for i := 0; i < len(q.events); i++ {
		handler(q.events[i])
	}
	clear(q.events)
	q.events = q.events[:0]
}
