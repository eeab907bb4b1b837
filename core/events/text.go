package events

const (
	// KindText identifies caption text fragments.
	KindText Kind = "packet.text"
)

// Text carries a caption fragment for one utterance. Text replaces the
// previously received text rather than appending to it.
type Text struct {
	Base
	Text  string
	Final bool
}

// NewText creates a text packet.
func NewText(packet PacketID, text string, final bool, opts ...BaseOption) Text {
	return Text{Base: NewBase(KindText, packet, opts...), Text: text, Final: final}
}
