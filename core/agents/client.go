// Package agents defines the outbound boundary to the remote conversational
// agent service. The character core only ever talks to the service through
// this interface; inworldws carries the websocket implementation.
package agents

// Client sends participant input and control messages to a remote agent.
// All methods address a single agent by its service-assigned id.
type Client interface {
	SendText(agentID, text string) error
	SendCustomEvent(agentID, name string) error
	SendAudio(agentID string, audio []byte) error
	StartAudioSession(agentID string) error
	StopAudioSession(agentID string) error
	// CancelResponse tells the service which utterances of an interaction
	// were discarded locally and should not be resent.
	CancelResponse(agentID, interactionID string, utteranceIDs []string) error
}
