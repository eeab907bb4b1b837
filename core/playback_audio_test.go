package characters

import (
	"math"
	"testing"
	"time"

	"github.com/koscakluka/avatar-core/core/visemes"
)

type fakePlayer struct {
	playing  bool
	progress float64

	started [][]byte
	stops   int
}

func (p *fakePlayer) Start(data []byte) error {
	p.started = append(p.started, data)
	p.playing = true
	p.progress = 0
	return nil
}

func (p *fakePlayer) Stop() error {
	p.playing = false
	p.stops++
	return nil
}

func (p *fakePlayer) IsPlaying() bool   { return p.playing }
func (p *fakePlayer) Progress() float64 { return p.progress }

func testUtterance(audio []byte, samples []VisemeInfo) *Utterance {
	message := newUtterance(newMessageBase("i1", "u1", time.Unix(1000, 0)))
	message.Text = "hello"
	message.TextFinal = true
	message.AudioData = audio
	message.AudioFinal = true
	message.Visemes = samples
	return message
}

func TestAudioPlaybackUtteranceLifecycle(t *testing.T) {
	player := &fakePlayer{}
	playback := NewAudioPlayback(player)

	started := 0
	stopped := 0
	playback.SetCallbacks(AudioPlaybackCallbacks{
		OnUtteranceStarted: func(duration float64, customGesture string) { started++ },
		OnUtteranceStopped: func() { stopped++ },
	})

	playback.VisitUtterance(testUtterance(make([]byte, 3200), nil))

	if playback.State() != AudioStatePlaying {
		t.Fatalf("expected playing state, got %q", playback.State())
	}
	if started != 1 {
		t.Fatalf("expected start callback once, got %d", started)
	}
	if playback.Update() {
		t.Fatal("expected playback to report busy while audio plays")
	}

	player.playing = false
	if !playback.Update() {
		t.Fatal("expected playback to report idle once audio finishes")
	}
	if stopped != 1 {
		t.Fatalf("expected stop callback once, got %d", stopped)
	}
	if playback.VisemeBlends() != visemes.Rest() {
		t.Fatal("expected rest pose after the utterance finished")
	}
}

func TestAudioPlaybackReportsDurationFromEncoding(t *testing.T) {
	player := &fakePlayer{}
	playback := NewAudioPlayback(player)

	var duration float64
	playback.SetCallbacks(AudioPlaybackCallbacks{
		OnUtteranceStarted: func(d float64, _ string) { duration = d },
	})

	// 32000 bytes of 16kHz linear16 is one second.
	playback.VisitUtterance(testUtterance(make([]byte, 32000), nil))

	if math.Abs(duration-1.0) > 1e-9 {
		t.Fatalf("expected duration 1s, got %v", duration)
	}

	player.progress = 0.25
	if remaining := playback.RemainingUtteranceTime(); math.Abs(remaining-0.75) > 1e-9 {
		t.Fatalf("expected 0.75s remaining, got %v", remaining)
	}
}

func TestAudioPlaybackTextOnlyUtteranceStaysIdle(t *testing.T) {
	playback := NewAudioPlayback(&fakePlayer{})

	started := 0
	gesture := ""
	playback.SetCallbacks(AudioPlaybackCallbacks{
		OnUtteranceStarted: func(duration float64, customGesture string) {
			started++
			gesture = customGesture
		},
	})

	message := testUtterance(nil, nil)
	message.CustomGesture = "gesture.wave"
	playback.VisitUtterance(message)

	if playback.State() != AudioStateIdle {
		t.Fatalf("expected idle state for a text-only utterance, got %q", playback.State())
	}
	if started != 1 {
		t.Fatalf("expected start callback once, got %d", started)
	}
	if gesture != "gesture.wave" {
		t.Fatalf("expected gesture tag to pass through, got %q", gesture)
	}
}

func TestAudioPlaybackSilenceStopsExactlyOnce(t *testing.T) {
	clock := &manualClock{now: time.Unix(2000, 0)}
	character := NewCharacter("test_brain", WithClock(clock.Now))
	playback := NewAudioPlayback(nil)
	character.RegisterPlayback(playback)

	stopped := 0
	playback.SetCallbacks(AudioPlaybackCallbacks{
		OnSilenceStopped: func() { stopped++ },
	})

	silence := newSilence(newMessageBase("i1", "u1", clock.Now()))
	silence.Duration = 500 * time.Millisecond
	playback.VisitSilence(silence)

	if playback.Update() {
		t.Fatal("expected playback busy during silence")
	}

	clock.Advance(499 * time.Millisecond)
	if playback.Update() {
		t.Fatal("expected playback still busy just before the deadline")
	}

	clock.Advance(2 * time.Millisecond)
	if !playback.Update() {
		t.Fatal("expected playback idle once the deadline passed")
	}
	if !playback.Update() {
		t.Fatal("expected playback to stay idle")
	}
	if stopped != 1 {
		t.Fatalf("expected silence stop callback exactly once, got %d", stopped)
	}
}

func TestAudioPlaybackInterruptedByPlayerSpeech(t *testing.T) {
	player := &fakePlayer{}
	playback := NewAudioPlayback(player)

	interrupted := 0
	stopped := 0
	playback.SetCallbacks(AudioPlaybackCallbacks{
		OnUtteranceInterrupted: func() { interrupted++ },
		OnUtteranceStopped:     func() { stopped++ },
	})

	playback.VisitUtterance(testUtterance(make([]byte, 3200), nil))

	sameInteraction := newUtterance(newMessageBase("i1", "u5", time.Unix(1000, 0)))
	playback.HandlePlayerTalking(sameInteraction)
	if player.stops != 0 {
		t.Fatal("expected same-interaction speech to not interrupt")
	}

	foreign := newUtterance(newMessageBase("i2", "u1", time.Unix(1000, 0)))
	playback.HandlePlayerTalking(foreign)

	if player.stops != 1 {
		t.Fatalf("expected player stopped once, got %d", player.stops)
	}
	if interrupted != 1 || stopped != 0 {
		t.Fatalf("expected interruption without a stop callback, got %d and %d", interrupted, stopped)
	}
	if playback.State() != AudioStateIdle {
		t.Fatalf("expected idle state after interruption, got %q", playback.State())
	}
	if playback.VisemeBlends() != visemes.Rest() {
		t.Fatal("expected rest pose after interruption")
	}
}

func TestAudioPlaybackSilenceSurvivesPlayerSpeech(t *testing.T) {
	clock := &manualClock{now: time.Unix(2000, 0)}
	character := NewCharacter("test_brain", WithClock(clock.Now))
	playback := NewAudioPlayback(nil)
	character.RegisterPlayback(playback)

	stopped := 0
	playback.SetCallbacks(AudioPlaybackCallbacks{
		OnSilenceStopped: func() { stopped++ },
	})

	silence := newSilence(newMessageBase("i1", "u1", clock.Now()))
	silence.Duration = 500 * time.Millisecond
	playback.VisitSilence(silence)

	foreign := newUtterance(newMessageBase("i2", "u1", clock.Now()))
	playback.HandlePlayerTalking(foreign)

	if playback.State() != AudioStateSilence {
		t.Fatalf("expected silence to keep running through player speech, got %q", playback.State())
	}
	if stopped != 0 {
		t.Fatalf("expected no early silence stop, got %d", stopped)
	}

	clock.Advance(501 * time.Millisecond)
	if !playback.Update() {
		t.Fatal("expected playback idle once the timer ran out")
	}
	if stopped != 1 {
		t.Fatalf("expected silence stop callback exactly once, got %d", stopped)
	}
}

func TestAudioPlaybackRejectsDispatchWhileBusy(t *testing.T) {
	player := &fakePlayer{}
	playback := NewAudioPlayback(player)

	playback.VisitUtterance(testUtterance(make([]byte, 3200), nil))
	playback.VisitUtterance(testUtterance(make([]byte, 3200), nil))

	if len(player.started) != 1 {
		t.Fatalf("expected only the first utterance to start, got %d", len(player.started))
	}
}

func TestAudioPlaybackBlendsInterpolateBetweenSamples(t *testing.T) {
	player := &fakePlayer{}
	playback := NewAudioPlayback(player)

	// One second of audio with two samples bracketing the middle.
	samples := []VisemeInfo{
		{Code: "PP", Timestamp: 0.0},
		{Code: "Aa", Timestamp: 1.0},
	}
	playback.VisitUtterance(testUtterance(make([]byte, 32000), samples))

	player.progress = 0.25
	playback.Update()

	blends := playback.VisemeBlends()
	if got := blends.Weight(visemes.ChannelPP); math.Abs(got-0.75) > 1e-9 {
		t.Fatalf("expected PP weight 0.75, got %v", got)
	}
	if got := blends.Weight(visemes.ChannelAa); math.Abs(got-0.25) > 1e-9 {
		t.Fatalf("expected Aa weight 0.25, got %v", got)
	}
	if got := blends.Sum(); math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("expected blend weights to sum to 1, got %v", got)
	}
}

func TestAudioPlaybackBlendsBeforeFirstSampleFadeFromRest(t *testing.T) {
	player := &fakePlayer{}
	playback := NewAudioPlayback(player)

	samples := []VisemeInfo{{Code: "Aa", Timestamp: 0.5}}
	playback.VisitUtterance(testUtterance(make([]byte, 32000), samples))

	player.progress = 0.25
	playback.Update()

	blends := playback.VisemeBlends()
	if got := blends.Weight(visemes.ChannelStop); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("expected rest weight 0.5 before the first sample, got %v", got)
	}
	if got := blends.Weight(visemes.ChannelAa); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("expected Aa weight 0.5, got %v", got)
	}
}

func TestAudioPlaybackBlendsPastLastSampleHold(t *testing.T) {
	player := &fakePlayer{}
	playback := NewAudioPlayback(player)

	samples := []VisemeInfo{{Code: "Aa", Timestamp: 0.1}}
	playback.VisitUtterance(testUtterance(make([]byte, 32000), samples))

	player.progress = 0.1
	playback.Update()
	held := playback.VisemeBlends()

	player.progress = 0.9
	playback.Update()

	if playback.VisemeBlends() != held {
		t.Fatal("expected blends to hold past the last sample")
	}
}

func TestAudioPlaybackFiltersAndSortsVisemes(t *testing.T) {
	player := &fakePlayer{}
	playback := NewAudioPlayback(player)

	samples := []VisemeInfo{
		{Code: "Aa", Timestamp: 0.8},
		{Code: "", Timestamp: 0.1},
		{Code: "PP", Timestamp: 0.2},
	}
	playback.VisitUtterance(testUtterance(make([]byte, 32000), samples))

	player.progress = 0.1
	playback.Update()

	blends := playback.VisemeBlends()
	if got := blends.Weight(visemes.ChannelPP); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("expected PP weight 0.5, got %v", got)
	}
}
