package characters

import (
	"slices"
	"strings"
	"time"

	"github.com/jinzhu/copier"

	"github.com/koscakluka/avatar-core/core/events"
)

// messageQueue assembles packet fragments into pending messages and keeps
// them in first-fragment arrival order until the character dispatches them.
type messageQueue struct {
	pending   []Message
	cancelled []string

	now func() time.Time

	// onCancelledFragment fires when a fragment arrives for an interaction
	// that was already cancelled, so the agent service can be told to drop
	// that single utterance.
	onCancelledFragment func(interactionID, utteranceID string)
}

func newMessageQueue(now func() time.Time) *messageQueue {
	return &messageQueue{
		now:                 now,
		onCancelledFragment: func(string, string) {},
	}
}

// findOrCreate returns the pending message for the id pair, creating it with
// construct if none exists yet. It returns false when the interaction was
// cancelled, or when the pending message is of a different variant than
// requested (a protocol violation upstream, logged and skipped).
func findOrCreate[T Message](q *messageQueue, interactionID, utteranceID string, construct func(messageBase) T) (T, bool) {
	var zero T

	if slices.Contains(q.cancelled, interactionID) {
		q.onCancelledFragment(interactionID, utteranceID)
		return zero, false
	}

	for _, message := range q.pending {
		if message.InteractionID() != interactionID || message.UtteranceID() != utteranceID {
			continue
		}

		typed, ok := message.(T)
		if !ok {
			logger.Error("pending message requested under mismatched variant",
				"interaction_id", interactionID, "utterance_id", utteranceID)
			return zero, false
		}
		return typed, true
	}

	message := construct(newMessageBase(interactionID, utteranceID, q.now()))
	q.pending = append(q.pending, message)
	return message, true
}

func (q *messageQueue) applyText(event events.Text) {
	packet := event.Packet()
	if message, ok := findOrCreate(q, packet.InteractionID, packet.UtteranceID, newUtterance); ok {
		message.Text = event.Text
		message.TextFinal = event.Final
	}
}

func (q *messageQueue) applyAudioChunk(event events.AudioChunk) {
	packet := event.Packet()
	message, ok := findOrCreate(q, packet.InteractionID, packet.UtteranceID, newUtterance)
	if !ok {
		return
	}

	message.AudioData = append(message.AudioData, event.Audio...)

	if message.AudioFinal {
		logger.Error("audio chunk arrived for already finalized utterance",
			"interaction_id", packet.InteractionID, "utterance_id", packet.UtteranceID)
	}
	message.AudioFinal = event.Final

	var samples []VisemeInfo
	copier.Copy(&samples, event.Visemes)
	message.Visemes = append(message.Visemes, samples...)
}

func (q *messageQueue) applySilence(event events.Silence) {
	packet := event.Packet()
	if message, ok := findOrCreate(q, packet.InteractionID, packet.UtteranceID, newSilence); ok {
		message.Duration = time.Duration(event.Duration * float64(time.Second))
	}
}

func (q *messageQueue) applyControl(event events.Control) {
	if event.Action != events.ControlInteractionEnd {
		return
	}

	packet := event.Packet()
	findOrCreate(q, packet.InteractionID, packet.UtteranceID, newInteractionEnd)
}

func (q *messageQueue) applyCustom(event events.Custom, gesturePrefix string) {
	packet := event.Packet()
	if strings.HasPrefix(event.Name, gesturePrefix) {
		if message, ok := findOrCreate(q, packet.InteractionID, packet.UtteranceID, newUtterance); ok {
			message.CustomGesture = event.Name
		}
		return
	}

	if message, ok := findOrCreate(q, packet.InteractionID, packet.UtteranceID, newTrigger); ok {
		message.Name = event.Name
	}
}

func (q *messageQueue) head() Message {
	if len(q.pending) == 0 {
		return nil
	}

	return q.pending[0]
}

func (q *messageQueue) popHead() Message {
	if len(q.pending) == 0 {
		return nil
	}

	head := q.pending[0]
	q.pending = q.pending[1:]
	return head
}

func (q *messageQueue) clear() {
	q.pending = nil
}

func (q *messageQueue) markCancelled(interactionID string) {
	if !slices.Contains(q.cancelled, interactionID) {
		q.cancelled = append(q.cancelled, interactionID)
	}
}
