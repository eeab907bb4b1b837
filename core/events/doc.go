// Package events defines the typed packet contract between the transport
// collaborator and the character core.
//
// Every packet is keyed by a PacketID (interaction id, utterance id); the
// core coalesces packets sharing a PacketID into one character message.
//
// Packet kinds:
//
//   - Text (packet.text): caption fragment with a final flag.
//   - AudioChunk (packet.audio_chunk): raw audio bytes with a final flag and
//     the viseme samples covering the chunk.
//   - Silence (packet.silence): a timed pause between utterances.
//   - Control (packet.control): lifecycle actions, currently interaction end.
//   - Custom (packet.custom): named application event, either a gesture tag
//     or a gameplay trigger.
//   - Emotion (packet.emotion): character emotional state change; applied
//     directly to the character, never queued as a message.
//
// Semantics used across the package:
//
//   - Final: no further fragments of that field will arrive for the unit.
//   - Routing: source/target actors, used by the session layer and the core
//     to tell agent-originated packets from player-directed ones.
package events
