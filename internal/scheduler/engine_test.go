package scheduler

import (
	"container/heap"
	"testing"
	"time"
)

func TestEngineEmitsInTriggerOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(Event{ID: "later", At: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(Event{ID: "sooner", At: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.ID != "sooner" || second.ID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.ID, second.ID)
	}
}

func TestEngineCancelSupersededEvent(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(Event{ID: "notice", Seq: 1, At: now.Add(30 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule first: %v", err)
	}
	if !engine.Cancel("notice") {
		t.Fatal("expected pending event to be cancelled")
	}
	if engine.Cancel("notice") {
		t.Fatal("second cancel must report nothing removed")
	}
	if err := engine.Schedule(Event{ID: "notice", Seq: 2, At: now.Add(60 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule replacement: %v", err)
	}

	got := waitEvent(t, engine.C(), time.Second)
	if got.Seq != 2 {
		t.Fatalf("expected replacement seq 2, got %d", got.Seq)
	}
	select {
	case extra := <-engine.C():
		t.Fatalf("cancelled event leaked: %+v", extra)
	case <-time.After(80 * time.Millisecond):
	}
	if engine.Pending() != 0 {
		t.Fatalf("expected empty queue, got %d", engine.Pending())
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	at := time.Now().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(Event{ID: "evt", At: at}); err != nil {
			t.Fatalf("schedule event: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped events > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidatesTriggerTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(Event{ID: "bad"}); err != ErrInvalidTriggerTime {
		t.Fatalf("expected ErrInvalidTriggerTime, got %v", err)
	}
}

func TestScheduleAfterStopFails(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	engine.Stop()
	if err := engine.Schedule(Event{ID: "late", At: time.Now()}); err != ErrStopped {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
	if _, ok := <-engine.C(); ok {
		t.Fatal("expected output channel closed after stop")
	}
}

func waitEvent(t *testing.T, ch <-chan Event, timeout time.Duration) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for event")
		return Event{}
	}
}

func TestEngineCancelRemovesEveryMatchAndKeepsOrder(t *testing.T) {
	engine := NewEngine(1)
	defer engine.Stop()

	base := time.Now().Add(time.Hour)
	// Descending trigger times make removals pull late items toward the root.
	for i := 0; i < 24; i++ {
		id := "keep"
		if i%3 == 0 {
			id = "drop"
		}
		if err := engine.Schedule(Event{ID: id, Seq: uint64(i), At: base.Add(time.Duration(24-i) * time.Second)}); err != nil {
			t.Fatalf("schedule %d: %v", i, err)
		}
	}

	if !engine.Cancel("drop") {
		t.Fatal("expected drop events to be cancelled")
	}
	if engine.Pending() != 16 {
		t.Fatalf("expected 16 pending events, got %d", engine.Pending())
	}
	if engine.Cancel("drop") {
		t.Fatal("second cancel should find nothing")
	}

	engine.mu.Lock()
	defer engine.mu.Unlock()
	var last time.Time
	for engine.queue.Len() > 0 {
		item := heap.Pop(&engine.queue).(queueItem)
		if item.event.ID == "drop" {
			t.Fatalf("cancelled event %d still queued", item.event.Seq)
		}
		if item.event.At.Before(last) {
			t.Fatalf("heap order broken at seq %d", item.event.Seq)
		}
		last = item.event.At
	}
}
