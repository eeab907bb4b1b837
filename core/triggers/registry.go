// Package triggers holds the registry of gameplay trigger handlers the
// character core fires into when an agent trigger completes its interaction.
package triggers

import (
	"encoding/json"
	"sync"

	"github.com/invopop/jsonschema"
)

// Handler runs when a registered trigger fires. Params is nil for triggers
// registered without a payload type.
type Handler func(params json.RawMessage)

// Definition describes one registered trigger. Schema is nil for triggers
// without a payload type.
type Definition struct {
	Name        string
	Description string
	Schema      *jsonschema.Schema

	handler Handler
}

type Registry struct {
	mu   sync.RWMutex
	defs map[string]Definition
}

func NewRegistry() *Registry {
	return &Registry{defs: map[string]Definition{}}
}

// Register binds a handler to a trigger name, replacing any previous binding.
func (r *Registry) Register(name, description string, handler Handler) {
	if r == nil || name == "" || handler == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs[name] = Definition{Name: name, Description: description, handler: handler}
}

// RegisterWithPayload binds a handler whose payload schema is reflected from
// T, so hosts can surface what a trigger expects.
func RegisterWithPayload[T any](r *Registry, name, description string, handler func(T)) {
	if r == nil || name == "" || handler == nil {
		return
	}

	reflector := jsonschema.Reflector{DoNotReference: true}
	var payload T
	schema := reflector.Reflect(&payload)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs[name] = Definition{
		Name:        name,
		Description: description,
		Schema:      schema,
		handler: func(params json.RawMessage) {
			var parsed T
			if len(params) > 0 {
				if err := json.Unmarshal(params, &parsed); err != nil {
					return
				}
			}
			handler(parsed)
		},
	}
}

// Fire runs the handler registered under name and reports whether one was
// found. Unknown names are a normal condition, not an error.
func (r *Registry) Fire(name string, params json.RawMessage) bool {
	if r == nil {
		return false
	}

	r.mu.RLock()
	def, ok := r.defs[name]
	r.mu.RUnlock()
	if !ok {
		return false
	}

	def.handler(params)
	return true
}

// Definitions lists registered triggers for host introspection.
func (r *Registry) Definitions() []Definition {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]Definition, 0, len(r.defs))
	for _, def := range r.defs {
		defs = append(defs, def)
	}
	return defs
}
