package characters

import "time"

// staleTimeout is how long an incomplete message may sit at the head of the
// queue before it is dispatched anyway.
const staleTimeout = 3 * time.Second

// MessageVisitor routes a dispatched message to variant-specific handling.
// The variant set is closed; playbacks embed PlaybackBase to opt out of
// variants they don't care about.
type MessageVisitor interface {
	VisitUtterance(message *Utterance)
	VisitSilence(message *Silence)
	VisitTrigger(message *Trigger)
	VisitInteractionEnd(message *InteractionEnd)
}

// Message is one conversational unit assembled from packet fragments.
type Message interface {
	InteractionID() string
	UtteranceID() string
	CreatedAt() time.Time

	// IsReady reports that every fragment required for dispatch has arrived.
	IsReady() bool
	// IsSkippable reports whether the message may be dropped without
	// delivery when its interaction is cancelled.
	IsSkippable() bool
	// IsOutdated reports that the message has waited past the staleness
	// timeout without becoming ready.
	IsOutdated(now time.Time) bool

	Accept(visitor MessageVisitor)
}

type messageBase struct {
	interactionID string
	utteranceID   string
	createdAt     time.Time
}

func newMessageBase(interactionID, utteranceID string, createdAt time.Time) messageBase {
	return messageBase{interactionID: interactionID, utteranceID: utteranceID, createdAt: createdAt}
}

func (b messageBase) InteractionID() string {
	return b.interactionID
}

func (b messageBase) UtteranceID() string {
	return b.utteranceID
}

func (b messageBase) CreatedAt() time.Time {
	return b.createdAt
}

func (b messageBase) IsReady() bool {
	return true
}

func (b messageBase) IsSkippable() bool {
	return true
}

func (b messageBase) IsOutdated(now time.Time) bool {
	return now.Sub(b.createdAt) > staleTimeout
}

// VisemeInfo is one mouth-shape sample at an offset into utterance audio.
type VisemeInfo struct {
	Code      string
	Timestamp float64
}

// Utterance is one speakable unit: caption text plus optional audio and its
// viseme track. Audio may legitimately be empty for text-only utterances.
type Utterance struct {
	messageBase

	Text      string
	TextFinal bool

	AudioData  []byte
	AudioFinal bool

	Visemes       []VisemeInfo
	CustomGesture string
}

func newUtterance(base messageBase) *Utterance {
	return &Utterance{messageBase: base}
}

func (u *Utterance) IsReady() bool {
	return u.TextFinal && u.AudioFinal
}

func (u *Utterance) Accept(visitor MessageVisitor) {
	visitor.VisitUtterance(u)
}

// Silence is a timed pause the character holds before the next unit.
type Silence struct {
	messageBase

	Duration time.Duration
}

func newSilence(base messageBase) *Silence {
	return &Silence{messageBase: base}
}

func (s *Silence) IsReady() bool {
	return s.Duration != 0
}

func (s *Silence) Accept(visitor MessageVisitor) {
	visitor.VisitSilence(s)
}

// Trigger is a named gameplay event tied to an interaction.
type Trigger struct {
	messageBase

	Name string
}

func newTrigger(base messageBase) *Trigger {
	return &Trigger{messageBase: base}
}

func (t *Trigger) IsReady() bool {
	return t.Name != ""
}

func (t *Trigger) Accept(visitor MessageVisitor) {
	visitor.VisitTrigger(t)
}

// InteractionEnd closes an interaction's lifecycle. It is never skippable:
// even a cancelled interaction must deliver its end so per-interaction state
// can be cleaned up.
type InteractionEnd struct {
	messageBase
}

func newInteractionEnd(base messageBase) *InteractionEnd {
	return &InteractionEnd{messageBase: base}
}

func (e *InteractionEnd) IsSkippable() bool {
	return false
}

func (e *InteractionEnd) Accept(visitor MessageVisitor) {
	visitor.VisitInteractionEnd(e)
}
