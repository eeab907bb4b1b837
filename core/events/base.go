package events

import "time"

type Kind string

// PacketID identifies a single conversational unit within an interaction.
// Every fragment of the same unit carries the same pair.
type PacketID struct {
	InteractionID string
	UtteranceID   string
}

type ActorType string

const (
	ActorUnknown ActorType = "unknown"
	ActorPlayer  ActorType = "player"
	ActorAgent   ActorType = "agent"
)

// Actor names one endpoint of a packet route.
type Actor struct {
	Type ActorType
	Name string
}

// Routing records where a packet came from and who it is addressed to.
type Routing struct {
	Source Actor
	Target Actor
}

type Event interface {
	Kind() Kind
	Packet() PacketID
	Routing() Routing
	Timestamp() time.Time
}

type Base struct {
	kind      Kind
	packet    PacketID
	routing   Routing
	timestamp time.Time
}

type BaseOption func(*Base)

func WithRouting(routing Routing) BaseOption {
	return func(b *Base) {
		b.routing = routing
	}
}

func NewBase(kind Kind, packet PacketID, opts ...BaseOption) Base {
	base := Base{kind: kind, packet: packet, timestamp: time.Now()}
	for _, opt := range opts {
		opt(&base)
	}

	return base
}

func (b Base) Kind() Kind {
	return b.kind
}

func (b Base) Packet() PacketID {
	return b.packet
}

func (b Base) Routing() Routing {
	return b.routing
}

func (b Base) Timestamp() time.Time {
	return b.timestamp
}
