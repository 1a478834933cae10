package archetype

var descriptors = [numArchetypes]Descriptor{
	TranquilOptimism: {
		Name:          TranquilOptimism,
		Title:         "Tranquil Optimism",
		Genre:         "ambient electronic",
		Instruments:   []string{"soft synth pads", "gentle piano", "subtle chimes", "light bells"},
		MoodMusical:   []string{"flowing", "light", "melodic", "airy"},
		MoodEmotional: []string{"peaceful", "hopeful", "serene", "uplifting"},
		Tempo:         "slow 65 BPM",
		BPM:           65,
		Technical:     []string{"stereo", "warm", "clean"},
	},
	ReflectiveCalm: {
		Name:          ReflectiveCalm,
		Title:         "Reflective Calm",
		Genre:         "ambient new age",
		Instruments:   []string{"flowing synth textures", "soft strings", "gentle pads", "nature sounds"},
		MoodMusical:   []string{"sustained", "atmospheric", "gentle", "spacious"},
		MoodEmotional: []string{"contemplative", "calm", "introspective", "meditative"},
		Tempo:         "very slow 58 BPM",
		BPM:           58,
		Technical:     []string{"stereo", "spacious", "reverb"},
	},
	GentleTension: {
		Name:          GentleTension,
		Title:         "Gentle Tension",
		Genre:         "cinematic ambient",
		Instruments:   []string{"atmospheric pads", "subtle strings", "soft drones", "distant piano"},
		MoodMusical:   []string{"atmospheric", "layered", "evolving", "textural"},
		MoodEmotional: []string{"thoughtful", "uncertain", "bittersweet", "restrained"},
		Tempo:         "slow 68 BPM",
		BPM:           68,
		Technical:     []string{"stereo", "reverb", "cinematic"},
	},
	MelancholicBeauty: {
		Name:          MelancholicBeauty,
		Title:         "Melancholic Beauty",
		Genre:         "ambient orchestral",
		Instruments:   []string{"expressive strings", "warm piano", "ethereal pads", "soft cello"},
		MoodMusical:   []string{"flowing", "swelling", "tender", "emotional"},
		MoodEmotional: []string{"melancholic", "nostalgic", "beautiful", "wistful"},
		Tempo:         "slow 62 BPM",
		BPM:           62,
		Technical:     []string{"stereo", "cinematic", "warm"},
	},
	CautiousHope: {
		Name:          CautiousHope,
		Title:         "Cautious Hope",
		Genre:         "ambient electronic",
		Instruments:   []string{"soft synths", "gentle bells", "flowing textures", "light arpeggios"},
		MoodMusical:   []string{"building", "delicate", "atmospheric", "subtle"},
		MoodEmotional: []string{"hopeful", "restrained", "peaceful", "anticipating"},
		Tempo:         "slow 70 BPM",
		BPM:           70,
		Technical:     []string{"stereo", "clean", "bright"},
	},
	SereneResilience: {
		Name:          SereneResilience,
		Title:         "Serene Resilience",
		Genre:         "ambient post-rock",
		Instruments:   []string{"swelling strings", "soft guitar", "atmospheric synths", "gentle drums"},
		MoodMusical:   []string{"building", "expansive", "dynamic", "flowing"},
		MoodEmotional: []string{"calm", "determined", "uplifting", "grounded"},
		Tempo:         "medium 75 BPM",
		BPM:           75,
		Technical:     []string{"stereo", "warm", "spacious"},
	},
}

var profiles = [numArchetypes]Profile{
	TranquilOptimism: {
		Valence:         Range{Center: 0.6, Tolerance: 0.4},
		Tension:         Range{Center: 0.2, Tolerance: 0.3},
		Hope:            Range{Center: 0.8, Tolerance: 0.3},
		PreferredEnergy: []Energy{EnergyLow, EnergyMedium},
	},
	ReflectiveCalm: {
		Valence:         Range{Center: 0.2, Tolerance: 0.4},
		Tension:         Range{Center: 0.2, Tolerance: 0.3},
		Hope:            Range{Center: 0.5, Tolerance: 0.3},
		PreferredEnergy: []Energy{EnergyLow, EnergyMedium},
	},
	GentleTension: {
		Valence:         Range{Center: -0.1, Tolerance: 0.4},
		Tension:         Range{Center: 0.6, Tolerance: 0.3},
		Hope:            Range{Center: 0.4, Tolerance: 0.3},
		PreferredEnergy: []Energy{EnergyMedium, EnergyHigh},
	},
	MelancholicBeauty: {
		Valence:         Range{Center: -0.4, Tolerance: 0.4},
		Tension:         Range{Center: 0.5, Tolerance: 0.3},
		Hope:            Range{Center: 0.3, Tolerance: 0.3},
		PreferredEnergy: []Energy{EnergyLow, EnergyMedium},
	},
	CautiousHope: {
		Valence:         Range{Center: 0.2, Tolerance: 0.4},
		Tension:         Range{Center: 0.5, Tolerance: 0.3},
		Hope:            Range{Center: 0.6, Tolerance: 0.3},
		PreferredEnergy: []Energy{EnergyMedium},
	},
	SereneResilience: {
		Valence:         Range{Center: 0.3, Tolerance: 0.4},
		Tension:         Range{Center: 0.4, Tolerance: 0.3},
		Hope:            Range{Center: 0.7, Tolerance: 0.3},
		PreferredEnergy: []Energy{EnergyMedium, EnergyHigh},
	},
}

var compatibility = [numArchetypes][]Name{
	TranquilOptimism:  {CautiousHope, ReflectiveCalm, SereneResilience},
	ReflectiveCalm:    {CautiousHope, SereneResilience, MelancholicBeauty},
	GentleTension:     {MelancholicBeauty, CautiousHope, ReflectiveCalm},
	MelancholicBeauty: {GentleTension, ReflectiveCalm},
	CautiousHope:      {TranquilOptimism, GentleTension, SereneResilience},
	SereneResilience:  {CautiousHope, ReflectiveCalm, TranquilOptimism},
}
