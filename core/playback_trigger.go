package characters

import "github.com/koscakluka/avatar-core/core/triggers"

type TriggerPlaybackCallbacks struct {
	// OnTriggerFired reports every fired trigger, handled or not.
	OnTriggerFired func(name, interactionID string, handled bool)
}

func (c *TriggerPlaybackCallbacks) defaults() *TriggerPlaybackCallbacks {
	c.OnTriggerFired = func(string, string, bool) {}
	return c
}

func (c *TriggerPlaybackCallbacks) with(callbacks TriggerPlaybackCallbacks) *TriggerPlaybackCallbacks {
	if callbacks.OnTriggerFired != nil {
		c.OnTriggerFired = callbacks.OnTriggerFired
	}
	return c
}

// TriggerPlayback fires dispatched triggers into a handler registry. A
// trigger is held until its interaction ends, then fired once; the stored
// interaction id is cleared so a repeated end cannot fire it again.
type TriggerPlayback struct {
	PlaybackBase

	registry *triggers.Registry

	pendingName          string
	pendingInteractionID string

	callbacks TriggerPlaybackCallbacks
}

// NewTriggerPlayback creates a trigger playback firing into registry, which
// may be nil when the host only wants the callback.
func NewTriggerPlayback(registry *triggers.Registry) *TriggerPlayback {
	return &TriggerPlayback{
		registry:  registry,
		callbacks: *(new(TriggerPlaybackCallbacks).defaults()),
	}
}

func (p *TriggerPlayback) SetCallbacks(callbacks TriggerPlaybackCallbacks) {
	p.callbacks = *p.callbacks.with(callbacks)
}

func (p *TriggerPlayback) Registry() *triggers.Registry {
	return p.registry
}

func (p *TriggerPlayback) VisitTrigger(message *Trigger) {
	p.pendingName = message.Name
	p.pendingInteractionID = message.InteractionID()
}

func (p *TriggerPlayback) VisitInteractionEnd(message *InteractionEnd) {
	if p.pendingName == "" || p.pendingInteractionID != message.InteractionID() {
		return
	}

	name, interactionID := p.pendingName, p.pendingInteractionID
	p.pendingName, p.pendingInteractionID = "", ""

	handled := p.registry.Fire(name, nil)
	if !handled {
		logger.Warn("trigger fired with no registered handler", "trigger", name)
	}
	p.callbacks.OnTriggerFired(name, interactionID, handled)
}
