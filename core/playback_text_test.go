package characters

import (
	"testing"
	"time"
)

func TestTextPlaybackCaptionLifecycle(t *testing.T) {
	playback := NewTextPlayback()

	var started, changed, finalized []string
	playback.SetCallbacks(TextPlaybackCallbacks{
		OnCaptionStarted:   func(caption Caption) { started = append(started, caption.Text) },
		OnCaptionChanged:   func(caption Caption) { changed = append(changed, caption.Text) },
		OnCaptionFinalized: func(caption Caption) { finalized = append(finalized, caption.Text) },
	})

	base := newMessageBase("i1", "u1", time.Unix(1000, 0))

	partial := newUtterance(base)
	partial.Text = "hel"
	playback.HandlePlayerTalking(partial)

	final := newUtterance(base)
	final.Text = "hello"
	final.TextFinal = true
	playback.HandlePlayerTalking(final)

	if len(started) != 1 || started[0] != "hel" {
		t.Fatalf("expected caption started once with first text, got %v", started)
	}
	// Every update broadcasts a change, the creating one included.
	if len(changed) != 2 {
		t.Fatalf("expected two caption changes for two fragments, got %v", changed)
	}
	if changed[0] != "hel" || changed[1] != "hello" {
		t.Fatalf("expected changes [hel hello], got %v", changed)
	}
	if len(finalized) != 1 || finalized[0] != "hello" {
		t.Fatalf("expected one finalized caption, got %v", finalized)
	}
}

func TestTextPlaybackSeparatesPlayerAndCharacterCaptions(t *testing.T) {
	playback := NewTextPlayback()

	playerSpeech := newUtterance(newMessageBase("i1", "u1", time.Unix(1000, 0)))
	playerSpeech.Text = "a question"
	playerSpeech.TextFinal = true
	playback.HandlePlayerTalking(playerSpeech)

	reply := newUtterance(newMessageBase("i1", "u2", time.Unix(1000, 0)))
	reply.Text = "an answer"
	reply.TextFinal = true
	playback.VisitUtterance(reply)

	captions := playback.Captions("i1")
	if len(captions) != 2 {
		t.Fatalf("expected two captions, got %d", len(captions))
	}
	if !captions[0].IsPlayer {
		t.Fatal("expected first caption to belong to the player")
	}
	if captions[1].IsPlayer {
		t.Fatal("expected second caption to belong to the character")
	}
}

func TestTextPlaybackIgnoresEmptyText(t *testing.T) {
	playback := NewTextPlayback()

	message := newUtterance(newMessageBase("i1", "u1", time.Unix(1000, 0)))
	playback.VisitUtterance(message)

	if got := len(playback.Captions("i1")); got != 0 {
		t.Fatalf("expected no captions for empty text, got %d", got)
	}
}

func TestTextPlaybackInteractionEndReleasesCaptionsOnce(t *testing.T) {
	playback := NewTextPlayback()

	ended := 0
	playback.SetCallbacks(TextPlaybackCallbacks{
		OnInteractionEnded: func(string) { ended++ },
	})

	message := newUtterance(newMessageBase("i1", "u1", time.Unix(1000, 0)))
	message.Text = "hello"
	message.TextFinal = true
	playback.VisitUtterance(message)

	end := newInteractionEnd(newMessageBase("i1", "u9", time.Unix(1000, 0)))
	playback.VisitInteractionEnd(end)
	playback.VisitInteractionEnd(end)

	if ended != 1 {
		t.Fatalf("expected interaction end callback once, got %d", ended)
	}
	if got := len(playback.Captions("i1")); got != 0 {
		t.Fatalf("expected captions released, got %d", got)
	}
}

func TestCaptionWrapped(t *testing.T) {
	caption := Caption{Text: "the quick brown fox jumps"}

	wrapped := caption.Wrapped(10)
	if wrapped == caption.Text {
		t.Fatal("expected wrapping to insert line breaks")
	}
	if caption.Wrapped(0) != caption.Text {
		t.Fatal("expected non-positive width to return raw text")
	}
}
