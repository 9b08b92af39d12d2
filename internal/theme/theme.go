package theme

import "github.com/charmbracelet/lipgloss"

// Scheme is one of the selectable color schemes
type Scheme int

const (
	Green Scheme = iota
	Blue
	Amber
	Orange
	LightGreen
	Red
	BrightRed
)

// Default is used when nothing (or something unknown) is configured
const Default = Green

var schemes = []Scheme{Green, Blue, Amber, Orange, LightGreen, Red, BrightRed}

var ids = map[Scheme]string{
	Green:      "Green",
	Blue:       "Blue",
	Amber:      "Amber",
	Orange:     "Orange",
	LightGreen: "LightGreen",
	Red:        "Red",
	BrightRed:  "BrightRed",
}

var names = map[Scheme]string{
	Green:      "Classic Green",
	Blue:       "Terminal Blue",
	Amber:      "Retro Amber",
	Orange:     "Bright Orange",
	LightGreen: "Light Green",
	Red:        "Alert Red",
	BrightRed:  "Vibrant Red",
}

// palette holds primary and secondary colors per scheme
var palette = map[Scheme][2]lipgloss.Color{
	Green:      {"2", "10"},
	Blue:       {"6", "12"},
	Amber:      {"3", "11"},
	Orange:     {"#FFA500", "#FFC864"},
	LightGreen: {"10", "2"},
	Red:        {"1", "9"},
	BrightRed:  {"#FF4500", "#FF6464"},
}

// All returns every scheme in display order
func All() []Scheme {
	out := make([]Scheme, len(schemes))
	copy(out, schemes)
	return out
}

// Parse maps a persisted scheme name back to a Scheme, falling back to Default
func Parse(s string) Scheme {
	for scheme, id := range ids {
		if id == s {
			return scheme
		}
	}
	return Default
}

// String returns the name persisted in the config file
func (s Scheme) String() string {
	if id, ok := ids[s]; ok {
		return id
	}
	return ids[Default]
}

// Name returns the human-readable display name
func (s Scheme) Name() string {
	if name, ok := names[s]; ok {
		return name
	}
	return names[Default]
}

// Primary is the main foreground color
func (s Scheme) Primary() lipgloss.Color {
	if p, ok := palette[s]; ok {
		return p[0]
	}
	return palette[Default][0]
}

// Secondary is used for highlights and directories
func (s Scheme) Secondary() lipgloss.Color {
	if p, ok := palette[s]; ok {
		return p[1]
	}
	return palette[Default][1]
}

// Index returns the position of s in All(), or 0 if unknown
func (s Scheme) Index() int {
	for i, scheme := range schemes {
		if scheme == s {
			return i
		}
	}
	return 0
}
