package characters

import "github.com/muesli/reflow/wordwrap"

// Caption is the textual record of one utterance, the character's or the
// player's.
type Caption struct {
	InteractionID string
	UtteranceID   string
	Text          string
	Final         bool
	IsPlayer      bool
}

// Wrapped returns the caption text word-wrapped to the given width, the raw
// text when width is not positive.
func (c Caption) Wrapped(width int) string {
	if width <= 0 {
		return c.Text
	}

	return wordwrap.String(c.Text, width)
}

type TextPlaybackCallbacks struct {
	// OnCaptionStarted fires once per caption, when its first text arrives.
	OnCaptionStarted func(caption Caption)
	// OnCaptionChanged fires on every caption update, the creating one
	// included.
	OnCaptionChanged func(caption Caption)
	// OnCaptionFinalized fires once the caption's text stops changing.
	OnCaptionFinalized func(caption Caption)
	// OnInteractionEnded fires when the interaction's captions are released.
	OnInteractionEnded func(interactionID string)
}

func (c *TextPlaybackCallbacks) defaults() *TextPlaybackCallbacks {
	c.OnCaptionStarted = func(Caption) {}
	c.OnCaptionChanged = func(Caption) {}
	c.OnCaptionFinalized = func(Caption) {}
	c.OnInteractionEnded = func(string) {}
	return c
}

func (c *TextPlaybackCallbacks) with(callbacks TextPlaybackCallbacks) *TextPlaybackCallbacks {
	if callbacks.OnCaptionStarted != nil {
		c.OnCaptionStarted = callbacks.OnCaptionStarted
	}
	if callbacks.OnCaptionChanged != nil {
		c.OnCaptionChanged = callbacks.OnCaptionChanged
	}
	if callbacks.OnCaptionFinalized != nil {
		c.OnCaptionFinalized = callbacks.OnCaptionFinalized
	}
	if callbacks.OnInteractionEnded != nil {
		c.OnInteractionEnded = callbacks.OnInteractionEnded
	}
	return c
}

// TextPlayback keeps live captions per interaction, covering both the
// character's utterances and the echo of the player's speech. It never holds
// the dispatch loop.
type TextPlayback struct {
	PlaybackBase

	captions map[string][]*Caption

	callbacks TextPlaybackCallbacks
}

func NewTextPlayback() *TextPlayback {
	return &TextPlayback{
		captions:  map[string][]*Caption{},
		callbacks: *(new(TextPlaybackCallbacks).defaults()),
	}
}

func (p *TextPlayback) SetCallbacks(callbacks TextPlaybackCallbacks) {
	p.callbacks = *p.callbacks.with(callbacks)
}

// Captions returns the interaction's captions in arrival order.
func (p *TextPlayback) Captions(interactionID string) []Caption {
	stored := p.captions[interactionID]

	captions := make([]Caption, 0, len(stored))
	for _, caption := range stored {
		captions = append(captions, *caption)
	}

	return captions
}

func (p *TextPlayback) VisitUtterance(message *Utterance) {
	if message.Text == "" {
		return
	}

	p.updateCaption(message.InteractionID(), message.UtteranceID(), message.Text, message.TextFinal, false)
}

func (p *TextPlayback) VisitInteractionEnd(message *InteractionEnd) {
	interactionID := message.InteractionID()
	if _, ok := p.captions[interactionID]; !ok {
		return
	}

	delete(p.captions, interactionID)
	p.callbacks.OnInteractionEnded(interactionID)
}

func (p *TextPlayback) HandlePlayerTalking(message *Utterance) {
	if message.Text == "" {
		return
	}

	p.updateCaption(message.InteractionID(), message.UtteranceID(), message.Text, message.TextFinal, true)
}

func (p *TextPlayback) updateCaption(interactionID, utteranceID, text string, final, isPlayer bool) {
	caption := p.findCaption(interactionID, utteranceID)
	if caption == nil {
		caption = &Caption{
			InteractionID: interactionID,
			UtteranceID:   utteranceID,
			Text:          text,
			IsPlayer:      isPlayer,
		}
		p.captions[interactionID] = append(p.captions[interactionID], caption)
		p.callbacks.OnCaptionStarted(*caption)
	}

	caption.Text = text
	p.callbacks.OnCaptionChanged(*caption)

	if final && !caption.Final {
		caption.Final = true
		p.callbacks.OnCaptionFinalized(*caption)
	}
}

func (p *TextPlayback) findCaption(interactionID, utteranceID string) *Caption {
	for _, caption := range p.captions[interactionID] {
		if caption.UtteranceID == utteranceID {
			return caption
		}
	}

	return nil
}
