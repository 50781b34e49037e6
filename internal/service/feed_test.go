package service

import (
	"context"
	"testing"

	"vacuum_packaging/internal/packaging"
)

func TestFeed_DeliversAndUnsubscribes(t *testing.T) {
	feed := NewFeed(64)
	events, cancel := feed.Subscribe()

	ctl := packaging.NewController(packaging.WithClock(newInstantClock()), packaging.WithObservers(feed))
	res, err := ctl.StartPackaging(context.Background(), frozenFish(), barrierSettings())
	if err != nil || !res.Succeeded() {
		t.Fatalf("run failed: %+v, %v", res, err)
	}

	first := <-events
	if first.Type != "RUN_STARTED" || first.RunID != res.RunID {
		t.Fatalf("unexpected first event: %+v", first)
	}

	cancel()
	cancel() // idempotent
	for range events {
	}
	if len(feed.subs) != 0 {
		t.Fatalf("subscriber not removed")
	}
}

func TestFeed_SlowSubscriberDropsEvents(t *testing.T) {
	feed := NewFeed(1)
	events, cancel := feed.Subscribe()
	defer cancel()

	ctl := packaging.NewController(packaging.WithClock(newInstantClock()), packaging.WithObservers(feed))
	if _, err := ctl.StartPackaging(context.Background(), frozenFish(), barrierSettings()); err != nil {
		t.Fatalf("StartPackaging: %v", err)
	}
	if got := len(events); got != 1 {
		t.Fatalf("expected buffer to hold exactly 1 event, got %d", got)
	}
}
