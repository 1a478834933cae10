package archetype

import (
	"encoding/json"
	"testing"
)

func TestIntensityLevel(t *testing.T) {
	tests := []struct {
		name    string
		tension float64
		want    Intensity
	}{
		{name: "zero", tension: 0, want: IntensityLow},
		{name: "just below low boundary", tension: 0.29, want: IntensityLow},
		{name: "low boundary is medium", tension: 0.30, want: IntensityMedium},
		{name: "just below high boundary", tension: 0.59, want: IntensityMedium},
		{name: "high boundary is high", tension: 0.60, want: IntensityHigh},
		{name: "max", tension: 1, want: IntensityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IntensityLevel(tt.tension); got != tt.want {
				t.Errorf("IntensityLevel(%v) = %q, want %q", tt.tension, got, tt.want)
			}
		})
	}
}

func TestCompatible(t *testing.T) {
	tests := []struct {
		name      string
		primary   Name
		candidate Name
		want      bool
	}{
		{name: "listed candidate", primary: TranquilOptimism, candidate: CautiousHope, want: true},
		{name: "last listed candidate", primary: TranquilOptimism, candidate: SereneResilience, want: true},
		{name: "unlisted candidate", primary: TranquilOptimism, candidate: GentleTension, want: false},
		{name: "self is not compatible", primary: ReflectiveCalm, candidate: ReflectiveCalm, want: false},
		{name: "melancholic has two partners", primary: MelancholicBeauty, candidate: CautiousHope, want: false},
		{name: "gentle tension to melancholic", primary: GentleTension, candidate: MelancholicBeauty, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compatible(tt.primary, tt.candidate); got != tt.want {
				t.Errorf("Compatible(%s, %s) = %v, want %v", tt.primary, tt.candidate, got, tt.want)
			}
		})
	}
}

func TestAll_CatalogOrder(t *testing.T) {
	want := []string{
		"tranquil_optimism",
		"reflective_calm",
		"gentle_tension",
		"melancholic_beauty",
		"cautious_hope",
		"serene_resilience",
	}

	all := All()
	if len(all) != len(want) {
		t.Fatalf("All() returned %d archetypes, want %d", len(all), len(want))
	}
	for i, n := range all {
		if n.String() != want[i] {
			t.Errorf("All()[%d] = %s, want %s", i, n, want[i])
		}
	}
}

func TestDescribe_CatalogShape(t *testing.T) {
	for _, n := range All() {
		d := Describe(n)
		if d.Name != n {
			t.Errorf("Describe(%s).Name = %s", n, d.Name)
		}
		if d.Genre == "" {
			t.Errorf("Describe(%s) has empty genre", n)
		}
		if len(d.Instruments) != 4 || len(d.MoodMusical) != 4 || len(d.MoodEmotional) != 4 {
			t.Errorf("Describe(%s) lists = %d/%d/%d, want 4/4/4",
				n, len(d.Instruments), len(d.MoodMusical), len(d.MoodEmotional))
		}
		if d.BPM < 50 || d.BPM > 90 {
			t.Errorf("Describe(%s).BPM = %d, outside ambient range", n, d.BPM)
		}
		if len(CompatibleWith(n)) == 0 {
			t.Errorf("CompatibleWith(%s) is empty", n)
		}
	}
}

func TestDescribe_ReturnsCopies(t *testing.T) {
	d := Describe(TranquilOptimism)
	d.Instruments[0] = "kazoo"

	if got := Describe(TranquilOptimism).Instruments[0]; got != "soft synth pads" {
		t.Errorf("catalog mutated through Describe: Instruments[0] = %q", got)
	}
}

func TestDescribe_PanicsOnUnknownName(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Describe(Name(42)) did not panic")
		}
	}()
	Describe(Name(42))
}

func TestParse(t *testing.T) {
	for _, n := range All() {
		got, err := Parse(n.String())
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", n, err)
		}
		if got != n {
			t.Errorf("Parse(%q) = %s", n, got)
		}
	}

	if _, err := Parse("joyful_chaos"); err == nil {
		t.Error("Parse(\"joyful_chaos\") error = nil, want error")
	}
}

func TestName_JSON(t *testing.T) {
	data, err := json.Marshal(map[string]Name{"primary": GentleTension})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"primary":"gentle_tension"}` {
		t.Errorf("Marshal() = %s", data)
	}

	var got struct {
		Primary Name `json:"primary"`
	}
	if err := json.Unmarshal([]byte(`{"primary":"cautious_hope"}`), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.Primary != CautiousHope {
		t.Errorf("Unmarshal() primary = %s, want cautious_hope", got.Primary)
	}
}

func TestParseIntensity(t *testing.T) {
	tests := []struct {
		in   string
		want Intensity
	}{
		{"low", IntensityLow},
		{"medium", IntensityMedium},
		{"high", IntensityHigh},
		{"extreme", IntensityMedium},
		{"", IntensityMedium},
	}
	for _, tt := range tests {
		if got := ParseIntensity(tt.in); got != tt.want {
			t.Errorf("ParseIntensity(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEnergy_Scale(t *testing.T) {
	tests := []struct {
		in   Energy
		want float64
	}{
		{EnergyLow, 0.33},
		{EnergyMedium, 0.66},
		{EnergyHigh, 1.0},
		{"loud", 0.5},
	}
	for _, tt := range tests {
		if got := tt.in.Scale(); got != tt.want {
			t.Errorf("Energy(%q).Scale() = %v, want %v", tt.in, got, tt.want)
		}
	}
}
