package domain

// ColorCode identifies one of the four personality archetypes by its
// display color. Values arrive verbatim from the assessment backend.
type ColorCode string

const (
	ColorRed    ColorCode = "color_red"
	ColorYellow ColorCode = "color_yellow"
	ColorGreen  ColorCode = "color_green"
	ColorBlue   ColorCode = "color_blue"
)

// RGB is an 8-bit-per-channel display color.
type RGB struct {
	R, G, B int
}

// Archetype binds a color code to its display color and label.
type Archetype struct {
	Code  ColorCode
	Label string
	Hex   string
	Color RGB
}

var archetypes = map[ColorCode]Archetype{
	ColorRed:    {Code: ColorRed, Label: "Driver", Hex: "#E53E3E", Color: RGB{229, 62, 62}},
	ColorYellow: {Code: ColorYellow, Label: "Spark", Hex: "#F6AD3C", Color: RGB{246, 173, 60}},
	ColorGreen:  {Code: ColorGreen, Label: "Anchor", Hex: "#38A169", Color: RGB{56, 161, 105}},
	ColorBlue:   {Code: ColorBlue, Label: "Analyst", Hex: "#3182CE", Color: RGB{49, 130, 206}},
}

// FallbackArchetype is returned for any color code outside the four known
// values. Rendering must degrade to it rather than fail.
var FallbackArchetype = Archetype{
	Code:  "",
	Label: "Seeker",
	Hex:   "#718096",
	Color: RGB{113, 128, 150},
}

// ArchetypeFor resolves a color code to its archetype. The lookup is total:
// unknown codes yield FallbackArchetype and ok=false.
func ArchetypeFor(code ColorCode) (Archetype, bool) {
	a, ok := archetypes[code]
	if !ok {
		return FallbackArchetype, false
	}
	return a, true
}

// KnownColors returns the four valid color codes in a stable order.
func KnownColors() []ColorCode {
	return []ColorCode{ColorRed, ColorYellow, ColorGreen, ColorBlue}
}
