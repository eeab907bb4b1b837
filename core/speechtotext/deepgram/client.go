// Package deepgram streams player microphone audio to Deepgram's live
// transcription API and surfaces transcripts through the speechtotext
// callbacks.
package deepgram

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type TranscriptionClient struct {
	connMu sync.Mutex
	conn   *websocket.Conn

	lastAudioAt time.Time

	accumulatedTranscript string
	unendedSegment        bool
}

func NewTranscriptionClient() *TranscriptionClient {
	return &TranscriptionClient{}
}
