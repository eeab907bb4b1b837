package events

const (
	// KindSilence identifies timed pause packets.
	KindSilence Kind = "packet.silence"
)

// Silence carries a pause the character should hold before the next unit.
type Silence struct {
	Base
	Duration float64
}

// NewSilence creates a silence packet with a duration in seconds.
func NewSilence(packet PacketID, duration float64, opts ...BaseOption) Silence {
	return Silence{Base: NewBase(KindSilence, packet, opts...), Duration: duration}
}
