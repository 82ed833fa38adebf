package event

// Handler consumes cues of the types it declares
type Handler interface {
	HandleEvent(ev GameEvent)
	EventTypes() []EventType
}

// Router fans queued cues out to registered handlers
// Register before the first DispatchAll; not safe for concurrent registration
type Router struct {
	queue    *EventQueue
	handlers [eventTypeCount][]Handler
}

func NewRouter(queue *EventQueue) *Router {
	return &Router{queue: queue}
}

// Register adds h for each of its declared types
func (r *Router) Register(h Handler) {
	for _, t := range h.EventTypes() {
		if t < eventTypeCount {
			r.handlers[t] = append(r.handlers[t], h)
		}
	}
}

// DispatchAll drains the queue and delivers each cue in order, returning the count
func (r *Router) DispatchAll() int {
	events := r.queue.Consume()
	for _, ev := range events {
		for _, h := range r.handlers[ev.Type] {
			h.HandleEvent(ev)
		}
	}
	return len(events)
}
