// Package miniaudio implements the audio.Player seam on top of a malgo
// playback device. It is meant for hosts without their own audio mixing;
// engines that mix audio themselves should adapt their mixer instead.
package miniaudio

import (
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"

	"github.com/koscakluka/avatar-core/core/audio"
)

type Player struct {
	audioContext *malgo.AllocatedContext
	device       *malgo.Device
	config       malgo.DeviceConfig

	mu       sync.Mutex
	pending  []byte
	consumed int
	total    int

	closeOnce sync.Once
}

// NewPlayer initializes a playback device for the given encoding. The device
// keeps running and emits silence while no utterance is playing.
func NewPlayer(encoding audio.EncodingInfo) (*Player, error) {
	if encoding.IsZero() {
		encoding = audio.DefaultEncodingInfo()
	}
	if encoding.Format != audio.FormatLinear16 {
		return nil, fmt.Errorf("unsupported playback format: %s", encoding.Format.Name())
	}

	audioCtx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audio context: %w", err)
	}

	player := &Player{audioContext: audioCtx}

	sampleRate := uint32(encoding.SampleRate)
	channels := 1
	format := malgo.FormatS16

	player.config = malgo.DefaultDeviceConfig(malgo.Playback)
	player.config.SampleRate = sampleRate
	player.config.Playback.Format = format
	player.config.Playback.Channels = uint32(channels)
	player.config.Alsa.NoMMap = 1
	player.config.PeriodSizeInFrames = sampleRate / 10 // ~100ms of audio
	player.config.Periods = 4

	bytesPerFrame := malgo.SampleSizeInBytes(format) * channels
	if player.device, err = malgo.InitDevice(
		audioCtx.Context,
		player.config,
		malgo.DeviceCallbacks{Data: player.processAudio(bytesPerFrame)},
	); err != nil {
		player.Close()
		return nil, fmt.Errorf("failed to initialize playback device: %w", err)
	}

	if err := player.device.Start(); err != nil {
		player.Close()
		return nil, fmt.Errorf("failed to start playback device: %w", err)
	}

	return player, nil
}

func (p *Player) processAudio(bytesPerFrame int) func(output, input []byte, frameCount uint32) {
	return func(output, _ []byte, frameCount uint32) {
		p.mu.Lock()
		defer p.mu.Unlock()

		wanted := int(frameCount) * bytesPerFrame
		available := min(wanted, len(p.pending))
		copy(output, p.pending[:available])
		p.pending = p.pending[available:]
		p.consumed += available
		// Rest of the output stays zeroed, which is linear16 silence.
	}
}

func (p *Player) Start(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.device == nil {
		return fmt.Errorf("device not initialized")
	}

	p.pending = append([]byte(nil), data...)
	p.consumed = 0
	p.total = len(data)
	return nil
}

func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pending = nil
	p.consumed = p.total
	return nil
}

func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.pending) > 0
}

func (p *Player) Progress() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.total == 0 {
		return 0
	}

	return float64(p.consumed) / float64(p.total)
}

func (p *Player) Close() {
	p.closeOnce.Do(func() {
		if p.device != nil {
			p.device.Uninit()
			p.device = nil
		}
		if p.audioContext != nil {
			_ = p.audioContext.Uninit()
			p.audioContext.Free()
			p.audioContext = nil
		}
	})
}
