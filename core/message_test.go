package characters

import (
	"testing"
	"time"
)

func TestUtteranceReadyRequiresBothFinals(t *testing.T) {
	message := newUtterance(newMessageBase("i1", "u1", time.Now()))

	if message.IsReady() {
		t.Fatal("expected utterance without finals to not be ready")
	}

	message.TextFinal = true
	if message.IsReady() {
		t.Fatal("expected utterance with only final text to not be ready")
	}

	message.AudioFinal = true
	if !message.IsReady() {
		t.Fatal("expected utterance with both finals to be ready")
	}
}

func TestUtteranceReadyAllowsEmptyAudio(t *testing.T) {
	message := newUtterance(newMessageBase("i1", "u1", time.Now()))
	message.TextFinal = true
	message.AudioFinal = true

	if len(message.AudioData) != 0 {
		t.Fatalf("expected no audio data, got %d bytes", len(message.AudioData))
	}
	if !message.IsReady() {
		t.Fatal("expected text-only utterance to be ready")
	}
}

func TestMessageOutdatedAfterStaleTimeout(t *testing.T) {
	createdAt := time.Unix(100, 0)
	message := newUtterance(newMessageBase("i1", "u1", createdAt))

	if message.IsOutdated(createdAt.Add(staleTimeout)) {
		t.Fatal("expected message at exactly the stale timeout to not be outdated")
	}
	if !message.IsOutdated(createdAt.Add(staleTimeout + time.Millisecond)) {
		t.Fatal("expected message past the stale timeout to be outdated")
	}
}

func TestSilenceReadyOnlyWithDuration(t *testing.T) {
	message := newSilence(newMessageBase("i1", "u1", time.Now()))

	if message.IsReady() {
		t.Fatal("expected zero-duration silence to not be ready")
	}

	message.Duration = 500 * time.Millisecond
	if !message.IsReady() {
		t.Fatal("expected timed silence to be ready")
	}
}

func TestTriggerReadyOnlyWithName(t *testing.T) {
	message := newTrigger(newMessageBase("i1", "u1", time.Now()))

	if message.IsReady() {
		t.Fatal("expected unnamed trigger to not be ready")
	}

	message.Name = "quest_complete"
	if !message.IsReady() {
		t.Fatal("expected named trigger to be ready")
	}
}

func TestInteractionEndIsNeverSkippable(t *testing.T) {
	message := newInteractionEnd(newMessageBase("i1", "u1", time.Now()))

	if message.IsSkippable() {
		t.Fatal("expected interaction end to not be skippable")
	}
	if !message.IsReady() {
		t.Fatal("expected interaction end to be immediately ready")
	}
}
