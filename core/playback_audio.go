package characters

import (
	"sort"
	"time"

	"github.com/koscakluka/avatar-core/core/audio"
	"github.com/koscakluka/avatar-core/core/visemes"
)

// AudioPlaybackState tracks what the audio playback is currently holding the
// dispatch loop for.
type AudioPlaybackState string

const (
	AudioStateIdle    AudioPlaybackState = "idle"
	AudioStatePlaying AudioPlaybackState = "playing"
	AudioStateSilence AudioPlaybackState = "silence"
)

type AudioPlaybackCallbacks struct {
	// OnUtteranceStarted fires when an utterance is handed to the player,
	// with the audio duration in seconds and the gesture tag, if any. For
	// text-only utterances duration is 0 and no matching stop follows.
	OnUtteranceStarted func(duration float64, customGesture string)
	// OnUtteranceStopped fires when started audio runs to completion.
	OnUtteranceStopped func()
	// OnUtteranceInterrupted fires instead of OnUtteranceStopped when the
	// player's speech cuts the utterance short.
	OnUtteranceInterrupted func()

	OnSilenceStarted func(duration float64)
	// OnSilenceStopped fires once per silence, when its deadline passes.
	OnSilenceStopped func()

	// OnBlendsChanged fires every tick while audio plays and once more with
	// the rest pose when it stops.
	OnBlendsChanged func(blends visemes.Blends)
}

func (c *AudioPlaybackCallbacks) defaults() *AudioPlaybackCallbacks {
	c.OnUtteranceStarted = func(float64, string) {}
	c.OnUtteranceStopped = func() {}
	c.OnUtteranceInterrupted = func() {}
	c.OnSilenceStarted = func(float64) {}
	c.OnSilenceStopped = func() {}
	c.OnBlendsChanged = func(visemes.Blends) {}
	return c
}

func (c *AudioPlaybackCallbacks) with(callbacks AudioPlaybackCallbacks) *AudioPlaybackCallbacks {
	if callbacks.OnUtteranceStarted != nil {
		c.OnUtteranceStarted = callbacks.OnUtteranceStarted
	}
	if callbacks.OnUtteranceStopped != nil {
		c.OnUtteranceStopped = callbacks.OnUtteranceStopped
	}
	if callbacks.OnUtteranceInterrupted != nil {
		c.OnUtteranceInterrupted = callbacks.OnUtteranceInterrupted
	}
	if callbacks.OnSilenceStarted != nil {
		c.OnSilenceStarted = callbacks.OnSilenceStarted
	}
	if callbacks.OnSilenceStopped != nil {
		c.OnSilenceStopped = callbacks.OnSilenceStopped
	}
	if callbacks.OnBlendsChanged != nil {
		c.OnBlendsChanged = callbacks.OnBlendsChanged
	}
	return c
}

// AudioPlayback plays utterance audio and silences, publishing viseme blend
// weights while audio is in flight. It holds the character's dispatch loop
// until the player finishes or the silence deadline passes.
type AudioPlayback struct {
	PlaybackBase

	player   audio.Player
	encoding audio.EncodingInfo

	state                AudioPlaybackState
	currentInteractionID string
	duration             float64
	visemes              []VisemeInfo

	silenceDeadline time.Time

	blends visemes.Blends

	callbacks AudioPlaybackCallbacks
}

type AudioPlaybackOption func(*AudioPlayback)

func WithEncodingInfo(encoding audio.EncodingInfo) AudioPlaybackOption {
	return func(p *AudioPlayback) {
		if !encoding.IsZero() {
			p.encoding = encoding
		}
	}
}

// NewAudioPlayback creates an audio playback driving the given player. A nil
// player is allowed; timing then runs on the callbacks alone.
func NewAudioPlayback(player audio.Player, opts ...AudioPlaybackOption) *AudioPlayback {
	playback := &AudioPlayback{
		player:    player,
		encoding:  audio.DefaultEncodingInfo(),
		state:     AudioStateIdle,
		blends:    visemes.Rest(),
		callbacks: *(new(AudioPlaybackCallbacks).defaults()),
	}

	for _, opt := range opts {
		opt(playback)
	}

	return playback
}

func (p *AudioPlayback) SetCallbacks(callbacks AudioPlaybackCallbacks) {
	p.callbacks = *p.callbacks.with(callbacks)
}

func (p *AudioPlayback) State() AudioPlaybackState {
	return p.state
}

// VisemeBlends returns the blend weights published on the last update.
func (p *AudioPlayback) VisemeBlends() visemes.Blends {
	return p.blends
}

// RemainingUtteranceTime reports the seconds of audio left in the current
// utterance, 0 when nothing is playing.
func (p *AudioPlayback) RemainingUtteranceTime() float64 {
	if p.state != AudioStatePlaying || p.player == nil {
		return 0
	}

	return p.duration * (1 - p.player.Progress())
}

func (p *AudioPlayback) Update() bool {
	switch p.state {
	case AudioStateSilence:
		if p.clockNow().Before(p.silenceDeadline) {
			return false
		}

		p.state = AudioStateIdle
		p.callbacks.OnSilenceStopped()
		return true

	case AudioStatePlaying:
		if p.player != nil && p.player.IsPlaying() {
			p.updateBlends()
			return false
		}

		p.finishUtterance()
		return true
	}

	return true
}

func (p *AudioPlayback) VisitUtterance(message *Utterance) {
	if p.state != AudioStateIdle {
		logger.Warn("utterance dispatched while audio playback is busy",
			"state", string(p.state), "interaction_id", message.InteractionID())
		return
	}

	if len(message.AudioData) == 0 {
		p.callbacks.OnUtteranceStarted(0, message.CustomGesture)
		return
	}

	p.visemes = p.visemes[:0]
	for _, sample := range message.Visemes {
		if sample.Code == "" {
			continue
		}
		p.visemes = append(p.visemes, sample)
	}
	sort.SliceStable(p.visemes, func(i, j int) bool {
		return p.visemes[i].Timestamp < p.visemes[j].Timestamp
	})

	if p.player != nil {
		if err := p.player.Start(message.AudioData); err != nil {
			logger.Error("failed to start utterance audio", "error", err,
				"interaction_id", message.InteractionID())
			return
		}
	}

	p.duration = p.encoding.Duration(len(message.AudioData))
	p.currentInteractionID = message.InteractionID()
	p.state = AudioStatePlaying
	p.callbacks.OnUtteranceStarted(p.duration, message.CustomGesture)
}

func (p *AudioPlayback) VisitSilence(message *Silence) {
	if p.state != AudioStateIdle {
		logger.Warn("silence dispatched while audio playback is busy",
			"state", string(p.state), "interaction_id", message.InteractionID())
		return
	}

	p.silenceDeadline = p.clockNow().Add(message.Duration)
	p.state = AudioStateSilence
	p.callbacks.OnSilenceStarted(message.Duration.Seconds())
}

// HandlePlayerTalking cuts playing audio short when the player talks over a
// different interaction. A running silence is left to its timer.
func (p *AudioPlayback) HandlePlayerTalking(message *Utterance) {
	if p.state != AudioStatePlaying {
		return
	}
	if message != nil && message.InteractionID() == p.currentInteractionID {
		return
	}

	if p.player != nil {
		if err := p.player.Stop(); err != nil {
			logger.Error("failed to stop interrupted audio", "error", err)
		}
	}

	p.state = AudioStateIdle
	p.rest()
	p.callbacks.OnUtteranceInterrupted()
}

func (p *AudioPlayback) finishUtterance() {
	p.state = AudioStateIdle
	p.rest()
	p.callbacks.OnUtteranceStopped()
}

func (p *AudioPlayback) rest() {
	p.blends = visemes.Rest()
	p.callbacks.OnBlendsChanged(p.blends)
}

// updateBlends interpolates between the viseme sample bracketing the current
// playback position and its predecessor.
func (p *AudioPlayback) updateBlends() {
	if len(p.visemes) == 0 || p.player == nil || p.duration <= 0 {
		return
	}

	elapsed := p.duration * p.player.Progress()

	index := sort.Search(len(p.visemes), func(i int) bool {
		return p.visemes[i].Timestamp >= elapsed
	})
	if index >= len(p.visemes) {
		return
	}

	current := p.visemes[index]

	previousTimestamp := 0.0
	previousChannel := visemes.ChannelStop
	if index > 0 {
		previousTimestamp = p.visemes[index-1].Timestamp
		previousChannel = visemes.ChannelForCode(p.visemes[index-1].Code)
	}

	blend := 1.0
	if span := current.Timestamp - previousTimestamp; span > 0 {
		blend = (elapsed - previousTimestamp) / span
	}
	blend = min(max(blend, 0), 1)

	next := visemes.Blends{}
	next[previousChannel] = 1 - blend
	next[visemes.ChannelForCode(current.Code)] = blend

	p.blends = next
	p.callbacks.OnBlendsChanged(next)
}

func (p *AudioPlayback) clockNow() time.Time {
	if character := p.Character(); character != nil && character.now != nil {
		return character.now()
	}

	return time.Now()
}
