package watch

import (
	"testing"
)

func TestPublishReachesSubscriber(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("u1")
	defer sub.Close()

	hub.Publish("u1")

	select {
	case <-sub.C:
	default:
		t.Fatal("expected a pending signal")
	}
}

func TestPublishCoalesces(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("u1")
	defer sub.Close()

	hub.Publish("u1")
	hub.Publish("u1")
	hub.Publish("u1")

	<-sub.C
	select {
	case <-sub.C:
		t.Fatal("undrained signals must coalesce into one")
	default:
	}
}

func TestPublishIsKeyScoped(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("u1")
	defer sub.Close()

	hub.Publish("u2")

	select {
	case <-sub.C:
		t.Fatal("signal leaked across keys")
	default:
	}
}

func TestClosedSubscriptionStopsReceiving(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("u1")
	sub.Close()
	sub.Close() // idempotent

	hub.Publish("u1")

	select {
	case <-sub.C:
		t.Fatal("closed subscription must not receive")
	default:
	}
}

func TestMultipleSubscribersEachReceive(t *testing.T) {
	hub := NewHub()
	a := hub.Subscribe("u1")
	b := hub.Subscribe("u1")
	defer a.Close()
	defer b.Close()

	hub.Publish("u1")

	for _, sub := range []*Subscription{a, b} {
		select {
		case <-sub.C:
		default:
			t.Fatal("every subscriber gets its own signal")
		}
	}
}
