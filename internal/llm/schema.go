package llm

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// moodResponse is the shape the model must return.
type moodResponse struct {
	EmotionalValence float64  `json:"emotional_valence" jsonschema_description:"Overall tone from -1 (crisis, tragedy) through 0 (neutral) to 1 (celebration, breakthrough)"`
	TensionLevel     float64  `json:"tension_level" jsonschema_description:"Conflict and uncertainty from 0 (calm, stable) to 1 (high tension)"`
	HopeFactor       float64  `json:"hope_factor" jsonschema_description:"Hope or optimism from 0 (dire) to 1 (very hopeful)"`
	EnergyLevel      string   `json:"energy_level" jsonschema:"enum=low,enum=medium,enum=high"`
	DominantThemes   []string `json:"dominant_themes" jsonschema_description:"Up to 5 short theme words such as conflict, economy, science"`
	Summary          string   `json:"summary" jsonschema_description:"One sentence capturing the day's overall mood"`
}

var moodSchema = GenerateSchema[moodResponse]()

// GenerateSchema reflects T into a JSON schema accepted by strict
// structured outputs: no refs, no additional properties, every property
// required.
func GenerateSchema[T any]() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	schema := reflector.Reflect(v)

	b, err := schema.MarshalJSON()
	if err != nil {
		panic(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		panic(err)
	}
	delete(m, "$schema")
	delete(m, "$id")

	strictify(m)
	return m
}

func strictify(schema map[string]any) {
	if t, ok := schema["type"].(string); ok && t == "object" {
		schema["additionalProperties"] = false

		if props, ok := schema["properties"].(map[string]any); ok && len(props) > 0 {
			required := make([]string, 0, len(props))
			for name := range props {
				required = append(required, name)
			}
			schema["required"] = required
		}
	}

	if props, ok := schema["properties"].(map[string]any); ok {
		for _, p := range props {
			if pm, ok := p.(map[string]any); ok {
				strictify(pm)
			}
		}
	}
	if items, ok := schema["items"].(map[string]any); ok {
		strictify(items)
	}
}
