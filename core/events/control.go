package events

const (
	// KindControl identifies interaction lifecycle packets.
	KindControl Kind = "packet.control"
)

type ControlAction string

const (
	ControlInteractionEnd ControlAction = "interaction_end"
)

// Control carries an interaction lifecycle action.
type Control struct {
	Base
	Action ControlAction
}

// NewControl creates a control packet.
func NewControl(packet PacketID, action ControlAction, opts ...BaseOption) Control {
	return Control{Base: NewBase(KindControl, packet, opts...), Action: action}
}
