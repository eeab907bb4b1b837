// Package sessions tracks the live characters of a running session and
// routes inbound packets to them. It also carries the player's side of the
// conversation through PlayerController.
package sessions

import (
	"fmt"
	"sync"

	characters "github.com/koscakluka/avatar-core/core"
	"github.com/koscakluka/avatar-core/core/events"
)

// Registry indexes characters by brain name and by the agent id the service
// assigned them. Safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	byBrain   map[string]*characters.Character
	byAgentID map[string]*characters.Character
}

func NewRegistry() *Registry {
	return &Registry{
		byBrain:   map[string]*characters.Character{},
		byAgentID: map[string]*characters.Character{},
	}
}

// Register adds a character under its brain name. A character that already
// carries an agent id is indexed by it as well.
func (r *Registry) Register(character *characters.Character) error {
	if character == nil || character.BrainName() == "" {
		return fmt.Errorf("character has no brain name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byBrain[character.BrainName()]; ok {
		return fmt.Errorf("character %q already registered", character.BrainName())
	}

	r.byBrain[character.BrainName()] = character
	if character.AgentID() != "" {
		r.byAgentID[character.AgentID()] = character
	}
	return nil
}

// Unregister removes the character registered under brainName, dropping its
// agent id index as well.
func (r *Registry) Unregister(brainName string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	character, ok := r.byBrain[brainName]
	if !ok {
		return
	}

	delete(r.byBrain, brainName)
	if character.AgentID() != "" {
		delete(r.byAgentID, character.AgentID())
	}
}

// BindAgent assigns the service-issued agent id to the character registered
// under brainName. Agent ids are only known once the session is open, so
// binding is a separate step from registration.
func (r *Registry) BindAgent(brainName, agentID string) error {
	if agentID == "" {
		return fmt.Errorf("empty agent id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	character, ok := r.byBrain[brainName]
	if !ok {
		return fmt.Errorf("no character registered under %q", brainName)
	}

	if previous := character.AgentID(); previous != "" {
		delete(r.byAgentID, previous)
	}

	character.SetAgentID(agentID)
	r.byAgentID[agentID] = character
	return nil
}

func (r *Registry) CharacterByBrainName(brainName string) *characters.Character {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.byBrain[brainName]
}

func (r *Registry) CharacterByAgentID(agentID string) *characters.Character {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.byAgentID[agentID]
}

// Characters returns every registered character in no particular order.
func (r *Registry) Characters() []*characters.Character {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*characters.Character, 0, len(r.byBrain))
	for _, character := range r.byBrain {
		all = append(all, character)
	}
	return all
}

// Dispatch hands an inbound packet to the character its source agent maps
// to, reporting whether one was found. Packets from unknown agents are
// dropped with a log line; sessions can outlive individual characters.
func (r *Registry) Dispatch(event events.Event) bool {
	agentID := event.Routing().Source.Name

	character := r.CharacterByAgentID(agentID)
	if character == nil {
		logger.Warn("dropped packet from unknown agent",
			"agent_id", agentID, "kind", string(event.Kind()))
		return false
	}

	character.HandlePacket(event)
	return true
}
