// Package audio holds the encoding description shared across the module and
// the playback seam the character core polls. The host engine's mixing stays
// behind the Player interface; the miniaudio sub-package carries a reference
// implementation.
package audio

// Player plays one utterance worth of raw audio at a time. Implementations
// are polled from the tick thread and must not block.
type Player interface {
	// Start begins playback of the given raw audio, replacing whatever was
	// playing before.
	Start(data []byte) error
	// Stop halts playback immediately and drops the remaining audio.
	Stop() error
	// IsPlaying reports whether started audio has not finished yet.
	IsPlaying() bool
	// Progress reports playback position as a fraction in [0, 1].
	Progress() float64
}
