// Package visemes defines the closed set of mouth-shape channels used for
// lip-sync blending and the per-channel weight map published while an
// utterance plays.
package visemes

import "strings"

// Channel is one mouth shape in the closed blend set.
type Channel int

const (
	ChannelPP Channel = iota
	ChannelFF
	ChannelTH
	ChannelDD
	ChannelKk
	ChannelCH
	ChannelSS
	ChannelNn
	ChannelRR
	ChannelAa
	ChannelE
	ChannelI
	ChannelO
	ChannelU
	// ChannelStop is the rest pose. Unknown codes resolve here.
	ChannelStop

	ChannelCount int = iota
)

var channelNames = [ChannelCount]string{
	"PP", "FF", "TH", "DD", "Kk", "CH", "SS", "Nn", "RR", "Aa", "E", "I", "O", "U", "STOP",
}

func (c Channel) String() string {
	if c < 0 || int(c) >= ChannelCount {
		return ""
	}

	return channelNames[c]
}

// ChannelForCode resolves a viseme code to its channel. Codes are matched
// case-insensitively; unknown or empty codes resolve to the rest channel.
func ChannelForCode(code string) Channel {
	for i, name := range channelNames {
		if strings.EqualFold(code, name) {
			return Channel(i)
		}
	}

	return ChannelStop
}

// Blends holds one weight per channel. The zero value has every channel at
// zero; use Rest for the rest pose.
type Blends [ChannelCount]float64

// Rest returns the blend map for a closed mouth, rest channel fully on.
func Rest() Blends {
	blends := Blends{}
	blends[ChannelStop] = 1

	return blends
}

func (b Blends) Weight(c Channel) float64 {
	if c < 0 || int(c) >= ChannelCount {
		return 0
	}

	return b[c]
}

// Sum returns the total weight across all channels.
func (b Blends) Sum() float64 {
	total := 0.0
	for _, weight := range b {
		total += weight
	}

	return total
}
