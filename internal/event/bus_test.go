package event

import (
	"sync"
	"testing"
)

func TestBus_Subscribe(t *testing.T) {
	bus := NewBus()

	called := false
	id := bus.Subscribe("status.changed", func(e Event) {
		called = true
	})

	if id == 0 {
		t.Error("Subscribe should return a non-zero ID")
	}
	if bus.SubscriptionCount() != 1 {
		t.Errorf("Expected 1 subscription, got %d", bus.SubscriptionCount())
	}
	if called {
		t.Error("Handler should not be called until an event is published")
	}
}

func TestBus_Publish(t *testing.T) {
	bus := NewBus()

	var receivedEvent Event
	bus.Subscribe("player.added", func(e Event) {
		receivedEvent = e
	})

	bus.Publish(NewPlayerAddedEvent("org.mpris.MediaPlayer2.vlc", ":1.9"))

	if receivedEvent == nil {
		t.Fatal("Handler should have received the event")
	}
	if receivedEvent.EventType() != "player.added" {
		t.Errorf("Expected event type 'player.added', got '%s'", receivedEvent.EventType())
	}
	added, ok := receivedEvent.(PlayerAddedEvent)
	if !ok {
		t.Fatalf("Expected PlayerAddedEvent, got %T", receivedEvent)
	}
	if added.Owner != ":1.9" {
		t.Errorf("Expected owner ':1.9', got '%s'", added.Owner)
	}
}

func TestBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewBus()

	callCount := 0
	bus.Subscribe("players.none", func(e Event) {
		callCount++
	})
	bus.Subscribe("players.none", func(e Event) {
		callCount++
	})

	bus.Publish(NewNoActivePlayersEvent())

	if callCount != 2 {
		t.Errorf("Expected both handlers to be called, got %d calls", callCount)
	}
}

func TestBus_PublishNoMatchingHandlers(t *testing.T) {
	bus := NewBus()

	bus.Subscribe("player.removed", func(e Event) {
		t.Error("handler for another type should not fire")
	})

	// Must not panic or call the mismatched handler.
	bus.Publish(NewStatusChangedEvent("Playing: Band - Song"))
}

func TestBus_SubscribeAll(t *testing.T) {
	bus := NewBus()

	var types []string
	bus.SubscribeAll(func(e Event) {
		types = append(types, e.EventType())
	})

	bus.Publish(NewPlayerAddedEvent("org.mpris.MediaPlayer2.mpv", ":1.3"))
	bus.Publish(NewPrimaryChangedEvent("org.mpris.MediaPlayer2.mpv", ":1.3"))

	if len(types) != 2 {
		t.Fatalf("Expected wildcard handler to see 2 events, got %d", len(types))
	}
	if types[0] != "player.added" || types[1] != "primary.changed" {
		t.Errorf("Unexpected event order: %v", types)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()

	called := false
	id := bus.Subscribe("status.changed", func(e Event) {
		called = true
	})

	if !bus.Unsubscribe(id) {
		t.Fatal("Unsubscribe should report the subscription as removed")
	}
	if bus.Unsubscribe(id) {
		t.Error("Second Unsubscribe of the same ID should return false")
	}

	bus.Publish(NewStatusChangedEvent("x"))
	if called {
		t.Error("Unsubscribed handler should not be called")
	}
}

func TestBus_PanickingHandler(t *testing.T) {
	bus := NewBus()

	secondCalled := false
	bus.Subscribe("status.changed", func(e Event) {
		panic("handler failure")
	})
	bus.Subscribe("status.changed", func(e Event) {
		secondCalled = true
	})

	bus.Publish(NewStatusChangedEvent("x"))

	if !secondCalled {
		t.Error("A panicking handler should not block later handlers")
	}
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	count := 0
	bus.Subscribe("status.changed", func(e Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish(NewStatusChangedEvent("line"))
		}()
	}
	wg.Wait()

	if count != 10 {
		t.Errorf("Expected 10 deliveries, got %d", count)
	}
}
