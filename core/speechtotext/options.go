// Package speechtotext defines the transcription options shared by
// speech-to-text client implementations.
package speechtotext

import "github.com/koscakluka/avatar-core/core/audio"

type TranscriptionOptions struct {
	InterimTranscriptionCallback func(transcript string)
	TranscriptionCallback        func(transcript string)

	SpeechStartedCallback func()
	SpeechEndedCallback   func()

	EncodingInfo audio.EncodingInfo
}

type TranscriptionOption func(*TranscriptionOptions)

// WithTranscriptionCallback registers a callback for the full transcript of
// one stretch of speech, fired when the speaker stops.
func WithTranscriptionCallback(callback func(transcript string)) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.TranscriptionCallback = callback
	}
}

// WithInterimTranscriptionCallback registers a callback for in-progress
// transcriptions that may still be revised.
func WithInterimTranscriptionCallback(callback func(transcript string)) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.InterimTranscriptionCallback = callback
	}
}

func WithSpeechStartedCallback(callback func()) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.SpeechStartedCallback = callback
	}
}

func WithSpeechEndedCallback(callback func()) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.SpeechEndedCallback = callback
	}
}

func WithEncodingInfo(encodingInfo audio.EncodingInfo) TranscriptionOption {
	return func(o *TranscriptionOptions) {
		o.EncodingInfo = encodingInfo
	}
}
