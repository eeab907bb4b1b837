package characters

// Playback consumes the character's dispatched message stream and drives one
// presentation concern. Implementations embed PlaybackBase and override the
// visitor methods they care about.
type Playback interface {
	MessageVisitor

	// Update runs once per character tick and reports whether the playback
	// is idle. A false return holds the next dispatch.
	Update() bool

	// HandlePlayerTalking receives the echo of the player's own speech. The
	// utterance is not queued; it never reaches the visitor methods.
	HandlePlayerTalking(message *Utterance)

	setCharacter(character *Character)
}

// PlaybackBase provides no-op defaults for every Playback method and access
// to the owning character.
type PlaybackBase struct {
	character *Character
}

func (b *PlaybackBase) setCharacter(character *Character) {
	b.character = character
}

// Character returns the owning character, nil until the playback is
// registered.
func (b *PlaybackBase) Character() *Character {
	return b.character
}

func (b *PlaybackBase) VisitUtterance(*Utterance)           {}
func (b *PlaybackBase) VisitSilence(*Silence)               {}
func (b *PlaybackBase) VisitTrigger(*Trigger)               {}
func (b *PlaybackBase) VisitInteractionEnd(*InteractionEnd) {}

func (b *PlaybackBase) Update() bool { return true }

func (b *PlaybackBase) HandlePlayerTalking(*Utterance) {}
