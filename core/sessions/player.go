package sessions

import (
	"sync"

	"github.com/google/uuid"
	characters "github.com/koscakluka/avatar-core/core"
	"github.com/koscakluka/avatar-core/core/events"
)

// PlayerController is the player's half of a conversation: it pins the
// character the player is talking to and converts the player's transcripts
// into packets that character understands. Safe for concurrent use.
type PlayerController struct {
	id string

	mu     sync.Mutex
	target *characters.Character

	currentInteractionID string
	currentUtteranceID   string
}

func NewPlayerController() *PlayerController {
	return &PlayerController{id: uuid.NewString()}
}

func (p *PlayerController) ID() string {
	return p.id
}

// SetTargetCharacter points the controller at a character, releasing the
// previous one. Returns false when the character is already in a
// conversation with another player.
func (p *PlayerController) SetTargetCharacter(character *characters.Character) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if character == p.target {
		return character != nil
	}

	if character != nil && !character.StartPlayerInteraction(p.id) {
		return false
	}

	if p.target != nil {
		p.target.StopPlayerInteraction(p.id)
	}

	p.target = character
	p.currentInteractionID = ""
	p.currentUtteranceID = ""
	return true
}

func (p *PlayerController) ClearTargetCharacter() {
	p.SetTargetCharacter(nil)
}

func (p *PlayerController) Target() *characters.Character {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.target
}

// NotifyTranscript feeds one of the player's transcripts, interim or final,
// to the target character and forwards final transcripts to its agent. All
// updates of one stretch of speech share a packet id; a final transcript
// closes it.
func (p *PlayerController) NotifyTranscript(transcript string, final bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.target == nil || transcript == "" {
		return
	}

	if p.currentInteractionID == "" {
		p.currentInteractionID = uuid.NewString()
		p.currentUtteranceID = uuid.NewString()
	}

	packet := events.PacketID{
		InteractionID: p.currentInteractionID,
		UtteranceID:   p.currentUtteranceID,
	}
	routing := events.Routing{
		Source: events.Actor{Type: events.ActorPlayer, Name: p.id},
		Target: events.Actor{Type: events.ActorAgent, Name: p.target.AgentID()},
	}

	p.target.HandlePacket(events.NewText(packet, transcript, final, events.WithRouting(routing)))

	if final {
		p.currentInteractionID = ""
		p.currentUtteranceID = ""

		if err := p.target.SendText(transcript); err != nil {
			logger.Error("failed to forward transcript to agent", "error", err,
				"brain", p.target.BrainName())
		}
	}
}

// SendTextToTarget sends typed chat to the target's agent. A missing target
// is a silent no-op so input surfaces don't need their own guard.
func (p *PlayerController) SendTextToTarget(text string) error {
	if target := p.Target(); target != nil {
		return target.SendText(text)
	}
	return nil
}

func (p *PlayerController) SendCustomEventToTarget(name string) error {
	if target := p.Target(); target != nil {
		return target.SendCustomEvent(name)
	}
	return nil
}

func (p *PlayerController) SendAudioToTarget(audio []byte) error {
	if target := p.Target(); target != nil {
		return target.SendAudio(audio)
	}
	return nil
}

func (p *PlayerController) StartAudioSessionWithTarget() error {
	if target := p.Target(); target != nil {
		return target.StartAudioSession()
	}
	return nil
}

func (p *PlayerController) StopAudioSessionWithTarget() error {
	if target := p.Target(); target != nil {
		return target.StopAudioSession()
	}
	return nil
}
