package deepgram

import (
	"fmt"

	"github.com/koscakluka/avatar-core/core/audio"
)

// validateEncoding checks the encoding against what the live API accepts.
// The a-law and mu-law encodings are only served at 8kHz.
func validateEncoding(encoding audio.EncodingInfo) error {
	switch encoding.SampleRate {
	case 8000, 16000, 24000, 32000, 48000:
	default:
		return fmt.Errorf("unsupported sample rate %d", encoding.SampleRate)
	}

	switch encoding.Format {
	case audio.FormatLinear16:
	case audio.FormatALaw, audio.FormatMulaw:
		if encoding.SampleRate != 8000 {
			return fmt.Errorf("unsupported sample rate %d for %s encoding", encoding.SampleRate, encoding.Format.Name())
		}
	default:
		return fmt.Errorf("unsupported encoding %q", encoding.Format.Name())
	}

	return nil
}
