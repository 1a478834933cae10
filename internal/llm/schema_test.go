package llm

import (
	"slices"
	"testing"
)

func TestMoodSchema_Strict(t *testing.T) {
	if moodSchema["type"] != "object" {
		t.Fatalf("type = %v, want object", moodSchema["type"])
	}
	if moodSchema["additionalProperties"] != false {
		t.Error("additionalProperties must be false")
	}
	if _, ok := moodSchema["$ref"]; ok {
		t.Error("schema must not use references")
	}

	required, ok := moodSchema["required"].([]string)
	if !ok {
		t.Fatalf("required = %T, want []string", moodSchema["required"])
	}
	for _, field := range []string{"emotional_valence", "tension_level", "hope_factor", "energy_level", "dominant_themes", "summary"} {
		if !slices.Contains(required, field) {
			t.Errorf("field %q not required", field)
		}
	}

	props := moodSchema["properties"].(map[string]any)
	energy := props["energy_level"].(map[string]any)
	enum, _ := energy["enum"].([]any)
	if len(enum) != 3 {
		t.Errorf("energy_level enum = %v, want low/medium/high", energy["enum"])
	}
}

func TestGenerateSchema_NestedObjects(t *testing.T) {
	type inner struct {
		Name string `json:"name"`
	}
	type outer struct {
		Items []inner `json:"items"`
		One   inner   `json:"one"`
	}

	s := GenerateSchema[outer]()
	props := s["properties"].(map[string]any)

	one := props["one"].(map[string]any)
	if one["additionalProperties"] != false {
		t.Error("nested object allows additional properties")
	}
	items := props["items"].(map[string]any)["items"].(map[string]any)
	if items["additionalProperties"] != false {
		t.Error("array item object allows additional properties")
	}
	if req, _ := items["required"].([]string); !slices.Contains(req, "name") {
		t.Errorf("array item required = %v", items["required"])
	}
}
