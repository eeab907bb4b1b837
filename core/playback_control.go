package characters

type ControlPlaybackCallbacks struct {
	// OnInteractionEnd fires when an interaction's end marker is dispatched,
	// including for cancelled interactions.
	OnInteractionEnd func(interactionID string)
}

func (c *ControlPlaybackCallbacks) defaults() *ControlPlaybackCallbacks {
	c.OnInteractionEnd = func(string) {}
	return c
}

func (c *ControlPlaybackCallbacks) with(callbacks ControlPlaybackCallbacks) *ControlPlaybackCallbacks {
	if callbacks.OnInteractionEnd != nil {
		c.OnInteractionEnd = callbacks.OnInteractionEnd
	}
	return c
}

// ControlPlayback surfaces interaction lifecycle boundaries to the host. It
// never holds the dispatch loop.
type ControlPlayback struct {
	PlaybackBase

	callbacks ControlPlaybackCallbacks
}

func NewControlPlayback() *ControlPlayback {
	return &ControlPlayback{callbacks: *(new(ControlPlaybackCallbacks).defaults())}
}

func (p *ControlPlayback) SetCallbacks(callbacks ControlPlaybackCallbacks) {
	p.callbacks = *p.callbacks.with(callbacks)
}

func (p *ControlPlayback) VisitInteractionEnd(message *InteractionEnd) {
	p.callbacks.OnInteractionEnd(message.InteractionID())
}
