package schema

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/IAmThe2ndHuman/interra-api/pkg/device"
)

func TestValidateACTarget_Valid(t *testing.T) {
	v := NewValidator()

	payloads := []map[string]any{
		{},
		{"setTemp": float64(20)},
		{"setTemp": float64(25), "fanSpeed": float64(3), "active": true},
		{"roomTemp": 23.5, "setTemp": nil, "fanSpeed": nil, "active": nil},
	}
	for _, p := range payloads {
		if err := v.ValidateACTarget(p); err != nil {
			t.Errorf("expected %v to be valid, got: %v", p, err)
		}
	}
}

func TestValidateACTarget_Invalid(t *testing.T) {
	v := NewValidator()

	payloads := map[string]map[string]any{
		"too hot":          {"setTemp": float64(26)},
		"too cold":         {"setTemp": float64(19)},
		"fractional temp":  {"setTemp": 22.5},
		"unknown fan":      {"fanSpeed": float64(4)},
		"fan by name":      {"fanSpeed": "fast"},
		"active as string": {"active": "yes"},
		"unknown property": {"mode": "cool"},
	}
	for name, p := range payloads {
		err := v.ValidateACTarget(p)
		if err == nil {
			t.Errorf("%s: expected validation error", name)
			continue
		}
		if !errors.Is(err, device.ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got: %v", name, err)
		}
	}
}

func TestValidateLightState(t *testing.T) {
	v := NewValidator()

	if err := v.ValidateLightState(map[string]any{"active": true}); err != nil {
		t.Errorf("expected valid payload, got: %v", err)
	}
	if err := v.ValidateLightState(map[string]any{}); err == nil {
		t.Error("expected validation error for missing active")
	}
	if err := v.ValidateLightState(map[string]any{"active": "on"}); err == nil {
		t.Error("expected validation error for non-boolean active")
	}
}

func TestValidate_EmptySchema(t *testing.T) {
	v := NewValidator()

	// Empty schema means no validation
	err := v.Validate(json.RawMessage(`{}`), map[string]any{
		"anything": "goes",
	})
	if err != nil {
		t.Errorf("empty schema should skip validation, got: %v", err)
	}
}

func TestValidate_NilSchema(t *testing.T) {
	v := NewValidator()

	err := v.Validate(nil, map[string]any{
		"anything": "goes",
	})
	if err != nil {
		t.Errorf("nil schema should skip validation, got: %v", err)
	}
}

func TestValidate_BrokenSchema(t *testing.T) {
	v := NewValidator()

	err := v.Validate(json.RawMessage(`{"type": 5`), map[string]any{})
	if err == nil {
		t.Error("expected error for unparseable schema")
	}
	if errors.Is(err, device.ErrValidation) {
		t.Error("a broken schema is not a payload validation failure")
	}
}

func TestValidate_CachesSchema(t *testing.T) {
	v := NewValidator()

	// First call compiles
	if err := v.ValidateACTarget(map[string]any{"active": true}); err != nil {
		t.Fatal(err)
	}

	// Second call should use cache
	if err := v.ValidateACTarget(map[string]any{"active": false}); err != nil {
		t.Fatal(err)
	}

	v.mu.RLock()
	cacheSize := len(v.cache)
	v.mu.RUnlock()
	if cacheSize != 1 {
		t.Errorf("expected 1 cached schema, got %d", cacheSize)
	}
}
