package chart

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	remove func()
}

// Remove unregisters the callback. Calling Remove more than once is a no-op.
func (h CallbackHandle) Remove() {
	if h.remove != nil {
		h.remove()
	}
}

type handlerEntry[T any] struct {
	id uint32
	fn func(T)
}

// handlerList is an ordered set of callbacks for one event type.
type handlerList[T any] struct {
	entries []handlerEntry[T]
	nextID  uint32
}

func (l *handlerList[T]) add(fn func(T)) CallbackHandle {
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, handlerEntry[T]{id: id, fn: fn})
	return CallbackHandle{remove: func() { l.remove(id) }}
}

func (l *handlerList[T]) remove(id uint32) {
	s := l.entries
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = handlerEntry[T]{}
			l.entries = s[:len(s)-1]
			return
		}
	}
}

// emit calls every handler in registration order. Handlers added or removed
// during emit take effect on the next emit.
func (l *handlerList[T]) emit(v T) {
	if len(l.entries) == 0 {
		return
	}
	snapshot := make([]handlerEntry[T], len(l.entries))
	copy(snapshot, l.entries)
	for _, e := range snapshot {
		e.fn(v)
	}
}

func (l *handlerList[T]) len() int { return len(l.entries) }

func (l *handlerList[T]) clear() { l.entries = nil }
