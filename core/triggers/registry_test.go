package triggers

import (
	"encoding/json"
	"testing"
)

func TestRegistryFireRunsHandler(t *testing.T) {
	registry := NewRegistry()

	fired := 0
	registry.Register("open_door", "opens the tavern door", func(json.RawMessage) { fired++ })

	if !registry.Fire("open_door", nil) {
		t.Fatal("expected registered trigger to be handled")
	}
	if fired != 1 {
		t.Fatalf("expected handler to run once, got %d", fired)
	}

	if registry.Fire("unknown", nil) {
		t.Fatal("expected unknown trigger to report unhandled")
	}
}

func TestRegistryRegisterReplacesHandler(t *testing.T) {
	registry := NewRegistry()

	first, second := 0, 0
	registry.Register("open_door", "", func(json.RawMessage) { first++ })
	registry.Register("open_door", "", func(json.RawMessage) { second++ })

	registry.Fire("open_door", nil)

	if first != 0 || second != 1 {
		t.Fatalf("expected only the replacement handler to run, got %d and %d", first, second)
	}
}

func TestRegisterWithPayloadDecodesParams(t *testing.T) {
	registry := NewRegistry()

	type giveItemParams struct {
		Item  string `json:"item"`
		Count int    `json:"count"`
	}

	var received giveItemParams
	RegisterWithPayload(registry, "give_item", "hands the player an item", func(params giveItemParams) {
		received = params
	})

	registry.Fire("give_item", json.RawMessage(`{"item":"ale","count":2}`))

	if received.Item != "ale" || received.Count != 2 {
		t.Fatalf("unexpected decoded params %+v", received)
	}
}

func TestRegisterWithPayloadExposesSchema(t *testing.T) {
	registry := NewRegistry()

	type questParams struct {
		Quest string `json:"quest"`
	}
	RegisterWithPayload(registry, "start_quest", "starts a quest", func(questParams) {})

	defs := registry.Definitions()
	if len(defs) != 1 {
		t.Fatalf("expected one definition, got %d", len(defs))
	}
	if defs[0].Schema == nil {
		t.Fatal("expected a reflected payload schema")
	}
}

func TestNilRegistryIsInert(t *testing.T) {
	var registry *Registry

	registry.Register("noop", "", func(json.RawMessage) {})
	if registry.Fire("noop", nil) {
		t.Fatal("expected nil registry to handle nothing")
	}
	if defs := registry.Definitions(); defs != nil {
		t.Fatalf("expected no definitions, got %v", defs)
	}
}
