package events

const (
	// KindCustom identifies named application events.
	KindCustom Kind = "packet.custom"
)

// Custom carries a named application event. Names with the gesture prefix
// tag the matching utterance; any other name becomes a trigger message.
type Custom struct {
	Base
	Name string
}

// NewCustom creates a custom event packet.
func NewCustom(packet PacketID, name string, opts ...BaseOption) Custom {
	return Custom{Base: NewBase(KindCustom, packet, opts...), Name: name}
}
