package audio

const (
	DefaultSampleRate = 16000
	DefaultFormat     = FormatLinear16
)

type Format string

const (
	FormatLinear16 Format = "linear16"
	FormatALaw     Format = "alaw"
	FormatMulaw    Format = "mulaw"
)

func (f Format) Name() string {
	return string(f)
}

func (f Format) ByteSize() int {
	switch f {
	case FormatMulaw, FormatALaw:
		return 1
	case FormatLinear16:
		return 2
	}
	return -1
}

func DefaultEncodingInfo() EncodingInfo {
	return EncodingInfo{SampleRate: DefaultSampleRate, Format: DefaultFormat}
}

type EncodingInfo struct {
	SampleRate int
	Format     Format
}

func (e EncodingInfo) IsZero() bool {
	return e.SampleRate == 0 || e.Format.Name() == ""
}

// SilenceValue returns the byte value representing silence in this encoding.
func (e EncodingInfo) SilenceValue() byte {
	switch e.Format {
	case FormatMulaw:
		return 0xFF
	case FormatALaw:
		return 0xD5
	}
	return 0x00
}

// Duration returns the playback length in seconds of byteLen bytes of
// single-channel audio in this encoding, 0 when the encoding is unusable.
func (e EncodingInfo) Duration(byteLen int) float64 {
	byteSize := e.Format.ByteSize()
	if e.SampleRate <= 0 || byteSize <= 0 {
		return 0
	}

	return float64(byteLen) / float64(byteSize) / float64(e.SampleRate)
}
