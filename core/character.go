package characters

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/koscakluka/avatar-core/core/agents"
	"github.com/koscakluka/avatar-core/core/events"
)

// customGesturePrefix marks custom event names that tag the utterance with a
// gesture instead of raising a trigger.
const customGesturePrefix = "gesture"

// Character assembles inbound packets into messages and plays them back
// through its registered playbacks, one message in flight at a time.
//
// All mutation happens on the host's tick thread; HandlePacket is the only
// method safe to call from other goroutines.
type Character struct {
	agentID   string
	brainName string
	givenName string

	targetPlayerID string

	queue     *messageQueue
	playbacks []Playback
	current   Message

	ingressMu sync.Mutex
	ingress   []events.Event

	agent agents.Client

	emotionBehavior events.EmotionBehavior
	emotionStrength events.EmotionStrength

	now func() time.Time

	callbacks characterCallbacks
}

type characterCallbacks struct {
	OnEmotionChanged          func(behavior events.EmotionBehavior, strength events.EmotionStrength)
	OnInteractionStateChanged func(interacting bool)
}

func (c *characterCallbacks) defaults() *characterCallbacks {
	c.OnEmotionChanged = func(events.EmotionBehavior, events.EmotionStrength) {}
	c.OnInteractionStateChanged = func(bool) {}
	return c
}

func NewCharacter(brainName string, opts ...CharacterOption) *Character {
	character := &Character{
		brainName:       brainName,
		now:             time.Now,
		emotionBehavior: events.EmotionNeutral,
		emotionStrength: events.EmotionStrengthUnspecified,
		callbacks:       *(new(characterCallbacks).defaults()),
	}

	character.queue = newMessageQueue(func() time.Time { return character.now() })
	character.queue.onCancelledFragment = func(interactionID, utteranceID string) {
		if character.agent == nil || character.agentID == "" {
			return
		}

		if err := character.agent.CancelResponse(character.agentID, interactionID, []string{utteranceID}); err != nil {
			logger.Error("failed to cancel late fragment", "error", err,
				"interaction_id", interactionID, "utterance_id", utteranceID)
		}
	}

	for _, opt := range opts {
		opt(character)
	}

	return character
}

func (c *Character) AgentID() string {
	return c.agentID
}

func (c *Character) SetAgentID(agentID string) {
	c.agentID = agentID
}

func (c *Character) BrainName() string {
	return c.brainName
}

func (c *Character) GivenName() string {
	return c.givenName
}

func (c *Character) SetGivenName(name string) {
	c.givenName = name
}

// CurrentMessage returns the message currently being played back, nil when
// none is in flight.
func (c *Character) CurrentMessage() Message {
	return c.current
}

// RegisterPlayback appends a playback to the fixed dispatch order. Playbacks
// registered first see every message first.
func (c *Character) RegisterPlayback(playback Playback) {
	if playback == nil {
		return
	}

	playback.setCharacter(c)
	c.playbacks = append(c.playbacks, playback)
}

// HandlePacket buffers an inbound packet for the next tick. Safe to call
// from any goroutine.
func (c *Character) HandlePacket(event events.Event) {
	c.ingressMu.Lock()
	defer c.ingressMu.Unlock()

	c.ingress = append(c.ingress, event)
}

// Tick runs one scheduling step: drain buffered packets into the assembler,
// poll playbacks, and when all are idle dispatch the next ready-or-outdated
// message to every playback in registration order.
func (c *Character) Tick() {
	c.drainIngress()

	idle := true
	for _, playback := range c.playbacks {
		idle = playback.Update() && idle
	}
	if !idle {
		return
	}

	c.current = nil

	head := c.queue.head()
	if head == nil {
		return
	}

	now := c.now()
	if !head.IsReady() && !head.IsOutdated(now) {
		return
	}

	c.current = c.queue.popHead()
	for _, playback := range c.playbacks {
		c.current.Accept(playback)
	}
}

func (c *Character) drainIngress() {
	c.ingressMu.Lock()
	batch := c.ingress
	c.ingress = nil
	c.ingressMu.Unlock()

	for _, event := range batch {
		c.visitPacket(event)
	}
}

func (c *Character) visitPacket(event events.Event) {
	switch typedEvent := event.(type) {
	case events.Text:
		if typedEvent.Routing().Target.Type == events.ActorAgent {
			c.handlePlayerTalking(typedEvent)
			return
		}
		c.queue.applyText(typedEvent)
	case events.AudioChunk:
		c.queue.applyAudioChunk(typedEvent)
	case events.Silence:
		c.queue.applySilence(typedEvent)
	case events.Control:
		c.queue.applyControl(typedEvent)
	case events.Custom:
		c.queue.applyCustom(typedEvent, customGesturePrefix)
	case events.Emotion:
		c.handleEmotion(typedEvent)
	default:
		logger.Warn("skipped packet of unknown kind", "kind", string(event.Kind()))
	}
}

// handlePlayerTalking echoes the player's speech to playbacks and cancels
// the current interaction when the player talks over a different one.
func (c *Character) handlePlayerTalking(event events.Text) {
	packet := event.Packet()
	if c.current != nil && c.current.InteractionID() != packet.InteractionID {
		c.CancelCurrentInteraction()
	}

	message := newUtterance(newMessageBase(packet.InteractionID, packet.UtteranceID, c.now()))
	message.Text = event.Text
	message.TextFinal = event.Final

	for _, playback := range c.playbacks {
		playback.HandlePlayerTalking(message)
	}
}

// CancelCurrentInteraction discards the current interaction: non-skippable
// pending messages are still delivered, the whole pending queue is dropped,
// and the agent service is told which utterances were discarded.
func (c *Character) CancelCurrentInteraction() {
	if c.current == nil {
		logger.Error("interaction cancel requested with no current message")
		return
	}

	_, span := tracer.Start(context.Background(), "cancel interaction")
	defer span.End()

	interactionID := c.current.InteractionID()
	span.SetAttributes(attribute.String("interaction.id", interactionID))

	utteranceIDs := []string{c.current.UtteranceID()}
	for _, message := range c.queue.pending {
		if message.InteractionID() == interactionID {
			utteranceIDs = append(utteranceIDs, message.UtteranceID())
		}

		if !message.IsSkippable() {
			for _, playback := range c.playbacks {
				message.Accept(playback)
			}
		}
	}
	span.SetAttributes(attribute.Int("interaction.cancelled_utterances", len(utteranceIDs)))

	if len(utteranceIDs) > 0 && c.agentID != "" && c.agent != nil {
		if err := c.agent.CancelResponse(c.agentID, interactionID, utteranceIDs); err != nil {
			err = fmt.Errorf("failed to cancel response: %w", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}

	c.queue.markCancelled(interactionID)
	c.queue.clear()
}

func (c *Character) handleEmotion(event events.Emotion) {
	c.emotionStrength = event.Strength

	if event.Behavior != c.emotionBehavior {
		c.emotionBehavior = event.Behavior
		c.callbacks.OnEmotionChanged(c.emotionBehavior, c.emotionStrength)
	}
}

func (c *Character) EmotionalBehavior() events.EmotionBehavior {
	return c.emotionBehavior
}

func (c *Character) EmotionStrength() events.EmotionStrength {
	return c.emotionStrength
}

// StartPlayerInteraction associates the character with a player. Returns
// false when the character is already interacting with someone.
func (c *Character) StartPlayerInteraction(playerID string) bool {
	if c.targetPlayerID != "" || playerID == "" {
		return false
	}

	c.targetPlayerID = playerID
	c.callbacks.OnInteractionStateChanged(true)
	return true
}

// StopPlayerInteraction dissolves the association with the given player.
func (c *Character) StopPlayerInteraction(playerID string) bool {
	if c.targetPlayerID == "" || c.targetPlayerID != playerID {
		return false
	}

	c.targetPlayerID = ""
	c.callbacks.OnInteractionStateChanged(false)
	return true
}

func (c *Character) IsInteractingWithPlayer() bool {
	return c.targetPlayerID != ""
}

func (c *Character) TargetPlayerID() string {
	return c.targetPlayerID
}

func (c *Character) SendText(text string) error {
	if c.agent == nil || c.agentID == "" {
		return fmt.Errorf("no agent session")
	}

	return c.agent.SendText(c.agentID, text)
}

func (c *Character) SendCustomEvent(name string) error {
	if c.agent == nil || c.agentID == "" {
		return fmt.Errorf("no agent session")
	}

	return c.agent.SendCustomEvent(c.agentID, name)
}

func (c *Character) SendAudio(audio []byte) error {
	if c.agent == nil || c.agentID == "" {
		return fmt.Errorf("no agent session")
	}

	return c.agent.SendAudio(c.agentID, audio)
}

func (c *Character) StartAudioSession() error {
	if c.agent == nil || c.agentID == "" {
		return fmt.Errorf("no agent session")
	}

	return c.agent.StartAudioSession(c.agentID)
}

func (c *Character) StopAudioSession() error {
	if c.agent == nil || c.agentID == "" {
		return fmt.Errorf("no agent session")
	}

	return c.agent.StopAudioSession(c.agentID)
}
