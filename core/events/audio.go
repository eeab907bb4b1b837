package events

const (
	// KindAudioChunk identifies utterance audio fragments.
	KindAudioChunk Kind = "packet.audio_chunk"
)

// VisemeSample pairs a mouth-shape code with its offset into the utterance
// audio. Samples arrive in increasing timestamp order.
type VisemeSample struct {
	Code      string
	Timestamp float64
}

// AudioChunk carries a slice of utterance audio. Chunks are append-only;
// Final marks the last chunk of the utterance.
type AudioChunk struct {
	Base
	Audio   []byte
	Final   bool
	Visemes []VisemeSample
}

// NewAudioChunk creates an audio chunk packet.
func NewAudioChunk(packet PacketID, audio []byte, final bool, visemes []VisemeSample, opts ...BaseOption) AudioChunk {
	return AudioChunk{Base: NewBase(KindAudioChunk, packet, opts...), Audio: audio, Final: final, Visemes: visemes}
}
