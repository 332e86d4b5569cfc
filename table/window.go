package table

import (
	"image"

	"github.com/rjkroege/mdgrid/draw"
)

// SignalKind enumerates window level signals.
type SignalKind int

const (
	SignalBlur SignalKind = iota
	SignalResize
	SignalScroll
	SignalPointerUp // button release anywhere in the window
)

// Signal is a window level event the engine listens for.
type Signal struct {
	Kind  SignalKind
	Point image.Point // SignalPointerUp only
}

// Source is a stream of window signals.
type Source interface {
	Subscribe(fn func(Signal)) Subscription
}

// Subscription is one registration with a Source.
type Subscription interface {
	Unsubscribe()
}

// Bus is a Source that hosts publish into. The zero value is ready to
// use.
type Bus struct {
	next int
	subs map[int]func(Signal)
}

type busSubscription struct {
	bus *Bus
	id  int
}

func (s busSubscription) Unsubscribe() {
	delete(s.bus.subs, s.id)
}

// Subscribe registers fn for every subsequent Publish.
func (b *Bus) Subscribe(fn func(Signal)) Subscription {
	if b.subs == nil {
		b.subs = make(map[int]func(Signal))
	}
	b.next++
	b.subs[b.next] = fn
	return busSubscription{bus: b, id: b.next}
}

// Publish delivers s to every subscriber in subscription order.
func (b *Bus) Publish(s Signal) {
	for id := 1; id <= b.next; id++ {
		if fn, ok := b.subs[id]; ok {
			fn(s)
		}
	}
}

// Len returns the number of live subscriptions.
func (b *Bus) Len() int { return len(b.subs) }

// signal reacts to a window signal. Blur, resize and scroll invalidate
// what the pointer was over; a release outside the document view ends
// a press the view itself never saw end.
func (e *Engine) signal(s Signal) {
	switch s.Kind {
	case SignalBlur:
		e.drag = nil
		e.selecting = nil
		e.clearHover()
	case SignalResize, SignalScroll:
		e.clearHover()
	case SignalPointerUp:
		if e.drag != nil || e.selecting != nil {
			e.PointerUp(Pointer{Mouse: draw.Mouse{Point: s.Point}})
		}
	}
}
