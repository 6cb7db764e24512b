package render

import (
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var namedColors = map[string]string{
	"black":     "#000000",
	"white":     "#ffffff",
	"red":       "#ff0000",
	"green":     "#008000",
	"lime":      "#00ff00",
	"blue":      "#0000ff",
	"yellow":    "#ffff00",
	"orange":    "#ffa500",
	"purple":    "#800080",
	"pink":      "#ffc0cb",
	"hotpink":   "#ff69b4",
	"cyan":      "#00ffff",
	"aqua":      "#00ffff",
	"magenta":   "#ff00ff",
	"fuchsia":   "#ff00ff",
	"gray":      "#808080",
	"grey":      "#808080",
	"silver":    "#c0c0c0",
	"teal":      "#008080",
	"navy":      "#000080",
	"maroon":    "#800000",
	"olive":     "#808000",
	"violet":    "#ee82ee",
	"indigo":    "#4b0082",
	"gold":      "#ffd700",
	"coral":     "#ff7f50",
	"salmon":    "#fa8072",
	"crimson":   "#dc143c",
	"tomato":    "#ff6347",
	"turquoise": "#40e0d0",
	"orchid":    "#da70d6",
	"plum":      "#dda0dd",
	"khaki":     "#f0e68c",
	"lavender":  "#e6e6fa",
	"skyblue":   "#87ceeb",
}

// TerminalColor converts a CSS color to the "#rrggbb" form lipgloss accepts.
// It returns "" for colors it cannot represent.
func TerminalColor(css string) string {
	s := strings.ToLower(strings.TrimSpace(css))
	switch {
	case s == "":
		return ""
	case strings.HasPrefix(s, "#"):
		return hexColor(s)
	case strings.HasPrefix(s, "rgb"):
		return rgbColor(s)
	case strings.HasPrefix(s, "hsl"):
		return hslColor(s)
	default:
		return namedColors[s]
	}
}

func hexColor(s string) string {
	switch len(s) {
	case 5: // #rgba
		s = s[:4]
	case 9: // #rrggbbaa
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return ""
	}
	return c.Hex()
}

func rgbColor(s string) string {
	args, ok := functionArgs(s)
	if !ok || len(args) < 3 {
		return ""
	}
	var channels [3]float64
	for i := 0; i < 3; i++ {
		v, ok := channel(args[i], 255)
		if !ok {
			return ""
		}
		channels[i] = v
	}
	return colorful.Color{R: channels[0], G: channels[1], B: channels[2]}.Clamped().Hex()
}

func hslColor(s string) string {
	args, ok := functionArgs(s)
	if !ok || len(args) < 3 {
		return ""
	}
	h, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
	if err != nil {
		return ""
	}
	sat, ok := channel(args[1], 100)
	if !ok {
		return ""
	}
	light, ok := channel(args[2], 100)
	if !ok {
		return ""
	}
	return colorful.Hsl(h, sat, light).Clamped().Hex()
}

// functionArgs splits the arguments of rgb(...) / hsl(...), accepting both
// comma and space separated forms.
func functionArgs(s string) ([]string, bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil, false
	}
	body := strings.NewReplacer(",", " ", "/", " ").Replace(s[open+1 : len(s)-1])
	return strings.Fields(body), true
}

// channel parses a number or percentage and scales it to [0, 1].
func channel(arg string, max float64) (float64, bool) {
	if pct, ok := strings.CutSuffix(arg, "%"); ok {
		v, err := strconv.ParseFloat(pct, 64)
		if err != nil {
			return 0, false
		}
		return v / 100, true
	}
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, false
	}
	return v / max, true
}
