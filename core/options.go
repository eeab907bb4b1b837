package characters

import (
	"time"

	"github.com/koscakluka/avatar-core/core/agents"
	"github.com/koscakluka/avatar-core/core/events"
)

type CharacterOption func(*Character)

// WithAgentClient wires the outbound boundary to the remote agent service.
func WithAgentClient(client agents.Client) CharacterOption {
	return func(c *Character) {
		c.agent = client
	}
}

func WithAgentID(agentID string) CharacterOption {
	return func(c *Character) {
		c.agentID = agentID
	}
}

func WithGivenName(name string) CharacterOption {
	return func(c *Character) {
		c.givenName = name
	}
}

// WithClock replaces the wall clock used for message staleness and silence
// timing.
func WithClock(now func() time.Time) CharacterOption {
	return func(c *Character) {
		if now != nil {
			c.now = now
		}
	}
}

// WithPlaybacks registers playbacks in the given dispatch order.
func WithPlaybacks(playbacks ...Playback) CharacterOption {
	return func(c *Character) {
		for _, playback := range playbacks {
			c.RegisterPlayback(playback)
		}
	}
}

func WithEmotionChangedCallback(callback func(behavior events.EmotionBehavior, strength events.EmotionStrength)) CharacterOption {
	return func(c *Character) {
		if callback != nil {
			c.callbacks.OnEmotionChanged = callback
		}
	}
}

func WithInteractionStateChangedCallback(callback func(interacting bool)) CharacterOption {
	return func(c *Character) {
		if callback != nil {
			c.callbacks.OnInteractionStateChanged = callback
		}
	}
}
