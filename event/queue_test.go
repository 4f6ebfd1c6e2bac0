package event

import (
	"sync"
	"testing"

	"github.com/lixenwraith/zengarden/parameter"
)

func TestQueueFIFO(t *testing.T) {
	q := NewEventQueue()
	if q.Consume() != nil {
		t.Fatal("empty queue returned events")
	}
	for i := int64(1); i <= 3; i++ {
		q.Push(GameEvent{Type: EventDirectionToggle, Frame: i})
	}
	if q.Len() != 3 {
		t.Fatalf("Len = %d", q.Len())
	}
	got := q.Consume()
	for i, ev := range got {
		if ev.Frame != int64(i+1) {
			t.Errorf("event %d frame = %d", i, ev.Frame)
		}
	}
	if q.Len() != 0 {
		t.Errorf("Len after consume = %d", q.Len())
	}
}

func TestQueueOverflowDropsOldest(t *testing.T) {
	q := NewEventQueue()
	extra := 5
	for i := 0; i < parameter.EventQueueSize+extra; i++ {
		q.Push(GameEvent{Frame: int64(i)})
	}
	if q.Dropped() != uint64(extra) {
		t.Errorf("Dropped = %d, want %d", q.Dropped(), extra)
	}
	got := q.Consume()
	if len(got) != parameter.EventQueueSize {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].Frame != int64(extra) || got[len(got)-1].Frame != int64(parameter.EventQueueSize+extra-1) {
		t.Errorf("window = [%d, %d]", got[0].Frame, got[len(got)-1].Frame)
	}
}

func TestQueueConcurrentPush(t *testing.T) {
	q := NewEventQueue()
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				q.Push(GameEvent{Type: EventSyncReceived})
			}
		}()
	}
	wg.Wait()
	if n := len(q.Consume()); n != 400 {
		t.Errorf("consumed %d, want 400", n)
	}
}
