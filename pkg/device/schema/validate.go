package schema

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/IAmThe2ndHuman/interra-api/pkg/device"
)

// ACTargetSchema describes a PATCH body for the AC. Every field is optional;
// roomTemp is read-only on the hub but accepted so a GET body can be sent
// back unchanged.
var ACTargetSchema = json.RawMessage(`{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"roomTemp": {"type": ["number", "null"]},
		"setTemp":  {"type": ["integer", "null"], "minimum": 20, "maximum": 25},
		"fanSpeed": {"enum": [0, 1, 2, 3, null]},
		"active":   {"type": ["boolean", "null"]}
	},
	"additionalProperties": false
}`)

// LightStateSchema describes a PATCH body for a light.
var LightStateSchema = json.RawMessage(`{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"active": {"type": "boolean"}
	},
	"required": ["active"]
}`)

// Validator validates JSON payloads against JSON Schema documents.
// It caches compiled schemas keyed by their raw bytes.
type Validator struct {
	mu    sync.RWMutex
	cache map[string]*jsonschema.Schema
}

// NewValidator creates a new Validator with an empty cache.
func NewValidator() *Validator {
	return &Validator{
		cache: make(map[string]*jsonschema.Schema),
	}
}

// ValidateACTarget checks an AC PATCH body against ACTargetSchema.
func (v *Validator) ValidateACTarget(payload map[string]any) error {
	return v.Validate(ACTargetSchema, payload)
}

// ValidateLightState checks a light PATCH body against LightStateSchema.
func (v *Validator) ValidateLightState(payload map[string]any) error {
	return v.Validate(LightStateSchema, payload)
}

// Validate validates payload against the given JSON Schema document.
// Violations are reported wrapped in device.ErrValidation.
func (v *Validator) Validate(schemaDoc json.RawMessage, payload map[string]any) error {
	if len(schemaDoc) == 0 || string(schemaDoc) == "{}" || string(schemaDoc) == "null" {
		return nil // No schema = no validation
	}

	compiled, err := v.compile(schemaDoc)
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}

	if err := compiled.Validate(payload); err != nil {
		return fmt.Errorf("%w: %w", device.ErrValidation, err)
	}
	return nil
}

func (v *Validator) compile(schemaDoc json.RawMessage) (*jsonschema.Schema, error) {
	key := string(schemaDoc)

	v.mu.RLock()
	if s, ok := v.cache[key]; ok {
		v.mu.RUnlock()
		return s, nil
	}
	v.mu.RUnlock()

	v.mu.Lock()
	defer v.mu.Unlock()

	// Double-check after acquiring write lock
	if s, ok := v.cache[key]; ok {
		return s, nil
	}

	var schemaMap any
	if err := json.Unmarshal(schemaDoc, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", schemaMap); err != nil {
		return nil, fmt.Errorf("failed to add resource: %w", err)
	}
	compiled, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile: %w", err)
	}

	v.cache[key] = compiled
	return compiled, nil
}
