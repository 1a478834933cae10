package viz

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/justestif/go-world-theme-player/internal/analysis"
	"github.com/justestif/go-world-theme-player/internal/archetype"
	"github.com/justestif/go-world-theme-player/internal/prompt"
	"github.com/justestif/go-world-theme-player/internal/selector"
)

// Palette holds the chart colors.
type Palette struct {
	Primary         string
	Secondary       string
	Accent          string
	Positive        string
	Negative        string
	Neutral         string
	Background      string
	BackgroundLight string
	Grid            string
	Text            string
	TextDim         string
}

// DefaultPalette is the dark dashboard theme.
var DefaultPalette = Palette{
	Primary:         "#6366f1",
	Secondary:       "#8b5cf6",
	Accent:          "#ec4899",
	Positive:        "#10b981",
	Negative:        "#ef4444",
	Neutral:         "#6b7280",
	Background:      "#1e1e2e",
	BackgroundLight: "#2d2d3d",
	Grid:            "#3d3d4d",
	Text:            "#e2e8f0",
	TextDim:         "#94a3b8",
}

var archetypeColors = map[archetype.Name]string{
	archetype.TranquilOptimism:  "#34d399",
	archetype.ReflectiveCalm:    "#60a5fa",
	archetype.GentleTension:     "#fbbf24",
	archetype.MelancholicBeauty: "#a78bfa",
	archetype.CautiousHope:      "#2dd4bf",
	archetype.SereneResilience:  "#f472b6",
}

// ArchetypeColor returns the chart color for n.
func ArchetypeColor(n archetype.Name) string {
	if c, ok := archetypeColors[n]; ok {
		return c
	}
	return DefaultPalette.Neutral
}

// wheelOrder walks from bright to dark moods around the wheel.
var wheelOrder = []archetype.Name{
	archetype.TranquilOptimism,
	archetype.SereneResilience,
	archetype.CautiousHope,
	archetype.GentleTension,
	archetype.MelancholicBeauty,
	archetype.ReflectiveCalm,
}

type point struct{ X, Y float64 }

type label struct {
	X, Y float64
	Text string
}

// polar converts an angle measured clockwise from 12 o'clock.
func polar(cx, cy, r, deg float64) point {
	rad := (deg - 90) * math.Pi / 180
	return point{X: cx + r*math.Cos(rad), Y: cy + r*math.Sin(rad)}
}

type frame struct {
	Name          string
	Width, Height int
	Title         string
	TitleX        float64
	TitleY        int
	Palette       Palette
}

type ring struct {
	R       float64
	Opacity float64
}

type radar struct {
	frame
	CX, CY      float64
	Rings       []ring
	Spokes      []point
	AxisLabels  []label
	Polygon     string
	Dots        []point
	ValueLabels []label
	Overall     string
}

const radarRadius = 120.0

func radarView(a analysis.NewsAnalysis, date string) radar {
	const cx, cy = 200.0, 200.0

	v := radar{
		frame: frame{Name: "Mood Radar", Width: 400, Height: 450, Title: titled("Mood Analysis", date), TitleX: cx, TitleY: 35, Palette: DefaultPalette},
		CX:    cx,
		CY:    cy,
	}

	for _, r := range []float64{0.25, 0.5, 0.75, 1.0} {
		opacity := 0.3
		if r == 1.0 {
			opacity = 0.6
		}
		v.Rings = append(v.Rings, ring{R: r * radarRadius, Opacity: opacity})
	}

	angles := []float64{0, 90, 180, 270}
	names := []string{"Hope", "Tension", "Valence", "Energy"}
	values := []float64{a.Hope, a.Tension, (a.Valence + 1) / 2, a.Energy.Scale()}
	texts := []string{
		fmt.Sprintf("%.2f", a.Hope),
		fmt.Sprintf("%.2f", a.Tension),
		fmt.Sprintf("%+.2f", a.Valence),
		strings.ToUpper(string(a.Energy)),
	}
	offsets := []point{{0, -20}, {25, 0}, {0, 25}, {-25, 0}}

	var polygon []string
	for i, deg := range angles {
		v.Spokes = append(v.Spokes, polar(cx, cy, radarRadius+10, deg))

		p := polar(cx, cy, radarRadius+30, deg)
		v.AxisLabels = append(v.AxisLabels, label{X: p.X + offsets[i].X, Y: p.Y + offsets[i].Y, Text: names[i]})

		dot := polar(cx, cy, values[i]*radarRadius, deg)
		v.Dots = append(v.Dots, dot)
		polygon = append(polygon, fmt.Sprintf("%.1f,%.1f", dot.X, dot.Y))

		lp := polar(cx, cy, max(values[i]*radarRadius-25, 20), deg)
		v.ValueLabels = append(v.ValueLabels, label{X: lp.X, Y: lp.Y, Text: texts[i]})
	}
	v.Polygon = strings.Join(polygon, " ")
	v.Overall = Overall(a)

	return v
}

// Overall summarizes an analysis in a word or two, e.g. "Somber, Tense".
func Overall(a analysis.NewsAnalysis) string {
	mood := "Balanced"
	switch {
	case a.Valence > 0.3:
		mood = "Optimistic"
	case a.Valence < -0.3:
		mood = "Somber"
	}

	switch {
	case a.Tension > 0.6:
		mood += ", Tense"
	case a.Tension < 0.3:
		mood += ", Calm"
	}
	return mood
}

type segment struct {
	Path           string
	Fill           string
	Opacity        float64
	Stroke         string
	StrokeWidth    int
	LabelX, LabelY float64
	Anchor         string
	Label          string
	ScoreX, ScoreY float64
	Score          float64
}

type wheel struct {
	frame
	CX, CY         float64
	HubRadius      float64
	Segments       []segment
	PrimaryLabel   string
	PrimaryColor   string
	SecondaryColor string
}

func wheelView(sel selector.Selection, date string) wheel {
	const (
		cx, cy = 225.0, 230.0
		inner  = 50.0
		outer  = 140.0
	)

	scores := make(map[archetype.Name]float64, len(sel.Scores))
	for _, s := range sel.Scores {
		scores[s.Archetype] = s.Score
	}

	v := wheel{
		frame:        frame{Name: "Archetype Selection", Width: 450, Height: 500, Title: titled("Archetype Scores", date), TitleX: cx, TitleY: 35, Palette: DefaultPalette},
		CX:           cx,
		CY:           cy,
		HubRadius:    inner - 5,
		PrimaryLabel: shortTitle(sel.Primary),
		PrimaryColor: ArchetypeColor(sel.Primary),
	}
	if sel.Secondary != nil {
		v.SecondaryColor = ArchetypeColor(*sel.Secondary)
	}

	step := 360.0 / float64(len(wheelOrder))
	for i, name := range wheelOrder {
		score := scores[name]
		start := float64(i) * step
		end := start + step
		mid := (start + end) / 2
		r := inner + (outer-inner)*score

		seg := segment{
			Path:        arcPath(cx, cy, inner, r, start, end),
			Fill:        ArchetypeColor(name),
			Opacity:     0.4,
			Stroke:      DefaultPalette.Grid,
			StrokeWidth: 1,
			Anchor:      anchorFor(mid),
			Label:       shortTitle(name),
			Score:       score,
		}
		switch {
		case name == sel.Primary:
			seg.Opacity, seg.Stroke, seg.StrokeWidth = 0.9, DefaultPalette.Text, 3
		case sel.Secondary != nil && name == *sel.Secondary:
			seg.Opacity, seg.Stroke, seg.StrokeWidth = 0.7, DefaultPalette.Text, 2
		}

		lp := polar(cx, cy, outer+30, mid)
		seg.LabelX, seg.LabelY = lp.X, lp.Y
		sp := polar(cx, cy, inner+(outer-inner)*score/2+10, mid)
		seg.ScoreX, seg.ScoreY = sp.X, sp.Y

		v.Segments = append(v.Segments, seg)
	}

	return v
}

// arcPath draws an annular sector between two angles.
func arcPath(cx, cy, inner, outer, start, end float64) string {
	i1 := polar(cx, cy, inner, start)
	i2 := polar(cx, cy, inner, end)
	o1 := polar(cx, cy, outer, start)
	o2 := polar(cx, cy, outer, end)

	return fmt.Sprintf("M %.1f %.1f L %.1f %.1f A %.1f %.1f 0 0 1 %.1f %.1f L %.1f %.1f A %.1f %.1f 0 0 0 %.1f %.1f Z",
		i1.X, i1.Y, o1.X, o1.Y, outer, outer, o2.X, o2.Y, i2.X, i2.Y, inner, inner, i1.X, i1.Y)
}

func anchorFor(deg float64) string {
	switch {
	case deg > 45 && deg < 135:
		return "start"
	case deg > 225 && deg < 315:
		return "end"
	default:
		return "middle"
	}
}

func shortTitle(n archetype.Name) string {
	if !n.Valid() {
		return "?"
	}
	title, _, _ := strings.Cut(n.Title(), " ")
	return title
}

type column struct {
	X, Center, RuleEnd float64
	Header             string
	Color              string
}

type field struct {
	X, Y  float64
	Label string
	Small bool
	Lines []label
}

type arrow struct{ X1, X2 float64 }

type dna struct {
	frame
	Columns      []column
	Fields       []field
	Arrows       []arrow
	PreviewWidth int
	Preview      string
}

const (
	dnaWidth       = 500
	dnaColumnWidth = 150.0
	maxInstrument  = 20
	maxPreview     = 60
)

func dnaView(c prompt.Components, date string) dna {
	cols := []float64{30, 180, 330}

	v := dna{
		frame:        frame{Name: "Prompt DNA", Width: dnaWidth, Height: 400, Title: titled("Prompt Composition", date), TitleX: dnaWidth / 2, TitleY: 30, Palette: DefaultPalette},
		PreviewWidth: dnaWidth - 60,
		Arrows: []arrow{
			{X1: cols[0] + dnaColumnWidth - 20, X2: cols[1] - 10},
			{X1: cols[1] + dnaColumnWidth - 20, X2: cols[2] - 10},
		},
	}

	headers := []string{"STRUCTURE", "COLOR", "OUTPUT"}
	colors := []string{DefaultPalette.Positive, DefaultPalette.Accent, DefaultPalette.Primary}
	for i, x := range cols {
		v.Columns = append(v.Columns, column{X: x, Center: x + dnaColumnWidth/2, RuleEnd: x + dnaColumnWidth - 10, Header: headers[i], Color: colors[i]})
	}

	archetypeTitle := ""
	if c.PrimaryArchetype.Valid() {
		archetypeTitle = c.PrimaryArchetype.Title()
	}
	intensity := strings.ToUpper(string(c.Intensity))
	tempo := fmt.Sprintf("%d BPM", c.FinalTempo)

	// Structure column: one value per field.
	for i, f := range []struct{ label, value string }{
		{"Archetype", archetypeTitle},
		{"Genre", c.Genre},
		{"Tempo", tempo},
		{"Intensity", intensity},
	} {
		y := 95 + float64(i)*50
		v.Fields = append(v.Fields, field{X: cols[0], Y: y, Label: f.label, Lines: []label{{X: cols[0], Y: y + 18, Text: f.value}}})
	}

	v.Fields = append(v.Fields,
		listField(cols[1], 95, 16, "Themes", c.SourceThemes[:min(3, len(c.SourceThemes))]),
		listField(cols[1], 175, 16, "Moods", c.Moods[:min(3, len(c.Moods))]),
	)

	instruments := make([]string, 0, 3)
	for _, inst := range c.Instruments[:min(3, len(c.Instruments))] {
		instruments = append(instruments, truncate(inst, maxInstrument, maxInstrument))
	}
	v.Fields = append(v.Fields,
		listField(cols[2], 95, 18, "Instruments", instruments),
		listField(cols[2], 185, 16, "Characteristics", append(slices.Clone(c.Moods[:min(2, len(c.Moods))]), tempo)),
	)

	v.Preview = truncate(fmt.Sprintf("%s, %s, %s, %s", c.Genre, first(c.Instruments), first(c.Moods), tempo), maxPreview, maxPreview-3)
	return v
}

func listField(x, y, spacing float64, name string, items []string) field {
	f := field{X: x, Y: y, Label: name, Small: true}
	for i, item := range items {
		f.Lines = append(f.Lines, label{X: x, Y: y + 18 + float64(i)*spacing, Text: item})
	}
	return f
}

// truncate shortens s to keep runes followed by "..." when it is longer
// than limit runes.
func truncate(s string, limit, keep int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:keep]) + "..."
}

func first(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[0]
}
