package texture

// GeneralTheme is the bucket for themes with no alias or table entry.
const GeneralTheme = "general"

var textures = map[string]Texture{
	// Human and social
	"conflict": {
		Timbre:   []string{"shadowed", "distant", "veiled", "muted", "heavy"},
		Movement: []string{"unsettled", "shifting", "restless", "turbulent"},
		Harmonic: []string{"minor undertones", "dissonant hints", "unresolved", "tense"},
	},
	"war": {
		Timbre:   []string{"distant", "industrial", "metallic", "dark"},
		Movement: []string{"marching", "relentless", "pounding"},
		Harmonic: []string{"minor", "diminished", "stark"},
	},
	"peace": {
		Timbre:   []string{"open", "sunlit", "clear", "radiant", "luminous"},
		Movement: []string{"breathing", "gentle swells", "expansive", "releasing"},
		Harmonic: []string{"major", "resolved", "consonant", "bright"},
	},
	"politics": {
		Timbre:   []string{"complex", "layered", "textured", "dense", "woven"},
		Movement: []string{"measured", "deliberate", "careful", "calculated"},
		Harmonic: []string{"modal", "ambiguous", "shifting", "nuanced"},
	},
	"humanitarian": {
		Timbre:   []string{"human", "communal", "embracing", "tender", "connected"},
		Movement: []string{"gathering", "uplifting", "joining", "rising together"},
		Harmonic: []string{"hopeful", "warm major", "supportive", "unified"},
	},
	"community": {
		Timbre:   []string{"warm", "familiar", "grounded", "intimate"},
		Movement: []string{"rhythmic", "shared pulse", "collective"},
		Harmonic: []string{"folk-like", "simple", "honest"},
	},
	"tragedy": {
		Timbre:   []string{"somber", "hollow", "echoing", "fragile"},
		Movement: []string{"slow descent", "fading", "grieving"},
		Harmonic: []string{"minor", "lamenting", "sorrowful"},
	},
	"celebration": {
		Timbre:   []string{"bright", "sparkling", "vibrant", "festive"},
		Movement: []string{"dancing", "joyful", "energetic"},
		Harmonic: []string{"major", "triumphant", "elated"},
	},

	// Technology and science
	"technology": {
		Timbre:   []string{"digital", "crystalline", "precise", "clean", "synthetic"},
		Movement: []string{"pulsing", "sequenced", "algorithmic", "gridded"},
		Harmonic: []string{"electronic", "processed", "pure tones"},
	},
	"science": {
		Timbre:   []string{"exploratory", "vast", "curious", "analytical", "discovering"},
		Movement: []string{"expanding", "probing", "systematic", "building"},
		Harmonic: []string{"open intervals", "spacious", "questioning"},
	},
	"ai": {
		Timbre:   []string{"synthetic", "evolving", "emergent", "neural"},
		Movement: []string{"learning", "adapting", "processing"},
		Harmonic: []string{"algorithmic", "generative", "unpredictable"},
	},
	"space": {
		Timbre:   []string{"cosmic", "infinite", "stellar", "ethereal", "void"},
		Movement: []string{"drifting", "orbiting", "floating", "weightless"},
		Harmonic: []string{"vast", "suspended", "otherworldly"},
	},
	"medical": {
		Timbre:   []string{"clinical", "sterile", "precise", "careful"},
		Movement: []string{"steady pulse", "monitoring", "rhythmic"},
		Harmonic: []string{"neutral", "functional", "measured"},
	},

	// Environment and nature
	"environment": {
		Timbre:   []string{"organic", "earthen", "natural", "living", "verdant"},
		Movement: []string{"flowing", "cyclical", "seasonal", "breathing"},
		Harmonic: []string{"pastoral", "grounded", "rooted"},
	},
	"climate": {
		Timbre:   []string{"elemental", "weathered", "shifting", "atmospheric"},
		Movement: []string{"building", "receding", "storming", "clearing"},
		Harmonic: []string{"evolving", "transforming", "unstable"},
	},
	"nature": {
		Timbre:   []string{"acoustic", "woody", "rustling", "living"},
		Movement: []string{"wind-like", "water-like", "organic flow"},
		Harmonic: []string{"natural", "pentatonic", "folk"},
	},
	"disaster": {
		Timbre:   []string{"crushing", "overwhelming", "raw", "primal"},
		Movement: []string{"sudden", "chaotic", "destructive"},
		Harmonic: []string{"dissonant", "crashing", "uncontrolled"},
	},
	"ocean": {
		Timbre:   []string{"deep", "flowing", "vast", "tidal"},
		Movement: []string{"waves", "surging", "ebbing"},
		Harmonic: []string{"blue", "mysterious", "ancient"},
	},

	// Economy
	"economy": {
		Timbre:   []string{"structured", "measured", "balanced", "mechanical"},
		Movement: []string{"steady", "rhythmic", "cycling", "trading"},
		Harmonic: []string{"neutral", "functional", "ordered"},
	},
	"finance": {
		Timbre:   []string{"precise", "calculated", "sharp", "metallic"},
		Movement: []string{"ticking", "fluctuating", "nervous"},
		Harmonic: []string{"tense", "anticipating", "volatile"},
	},
	"markets": {
		Timbre:   []string{"electric", "buzzing", "active", "rapid"},
		Movement: []string{"rising", "falling", "volatile"},
		Harmonic: []string{"unstable", "shifting", "reactive"},
	},

	// Health
	"health": {
		Timbre:   []string{"healing", "restorative", "warm", "nurturing"},
		Movement: []string{"gentle pulse", "recovering", "strengthening"},
		Harmonic: []string{"consonant", "soothing", "therapeutic"},
	},
	"wellness": {
		Timbre:   []string{"pure", "clean", "refreshing", "vital"},
		Movement: []string{"breathing", "centering", "balancing"},
		Harmonic: []string{"harmonious", "aligned", "peaceful"},
	},
	"disease": {
		Timbre:   []string{"troubled", "weakened", "struggling"},
		Movement: []string{"labored", "fighting", "persisting"},
		Harmonic: []string{"strained", "discordant", "recovering"},
	},

	// Culture
	"culture": {
		Timbre:   []string{"rich", "layered", "storied", "traditional"},
		Movement: []string{"ceremonial", "ritualistic", "expressive"},
		Harmonic: []string{"heritage", "ancestral", "timeless"},
	},
	"arts": {
		Timbre:   []string{"creative", "expressive", "colorful", "imaginative"},
		Movement: []string{"flowing", "interpretive", "free"},
		Harmonic: []string{"artistic", "experimental", "inspired"},
	},
	"sports": {
		Timbre:   []string{"energetic", "powerful", "athletic", "driving"},
		Movement: []string{"competitive", "racing", "pushing"},
		Harmonic: []string{"triumphant", "determined", "intense"},
	},
	"entertainment": {
		Timbre:   []string{"playful", "bright", "engaging", "fun"},
		Movement: []string{"bouncing", "lively", "animated"},
		Harmonic: []string{"catchy", "upbeat", "accessible"},
	},

	// Fallback
	"general": {
		Timbre:   []string{"balanced", "neutral", "even"},
		Movement: []string{"steady", "consistent"},
		Harmonic: []string{"stable", "centered"},
	},
}

// aliases maps synonyms to canonical texture keys.
var aliases = map[string]string{
	"military":               "conflict",
	"violence":               "conflict",
	"tension":                "conflict",
	"crisis":                 "conflict",
	"warfare":                "war",
	"fighting":               "war",
	"diplomacy":              "peace",
	"treaty":                 "peace",
	"ceasefire":              "peace",
	"reconciliation":         "peace",
	"government":             "politics",
	"election":               "politics",
	"policy":                 "politics",
	"legislation":            "politics",
	"democracy":              "politics",
	"tech":                   "technology",
	"digital":                "technology",
	"innovation":             "technology",
	"computing":              "technology",
	"artificial intelligence":"ai",
	"machine learning":       "ai",
	"research":               "science",
	"discovery":              "science",
	"breakthrough":           "science",
	"astronomy":              "space",
	"nasa":                   "space",
	"weather":                "climate",
	"pollution":              "environment",
	"sustainability":         "environment",
	"green":                  "environment",
	"earthquake":             "disaster",
	"flood":                  "disaster",
	"hurricane":              "disaster",
	"wildfire":               "disaster",
	"business":               "economy",
	"trade":                  "economy",
	"inflation":              "finance",
	"stocks":                 "markets",
	"investment":             "finance",
	"medicine":               "health",
	"healthcare":             "health",
	"pandemic":               "disease",
	"virus":                  "disease",
	"vaccine":                "health",
	"refugee":                "humanitarian",
	"aid":                    "humanitarian",
	"charity":                "humanitarian",
	"poverty":                "humanitarian",
	"local":                  "community",
	"neighborhood":           "community",
}
