package theme

// Names of the themes shipped with rainbow.
const (
	DefaultName   = "default"
	NeonName      = "neon"
	SynthwaveName = "synthwave"
)

// Builtins returns fresh copies of every bundled theme keyed by name.
func Builtins() map[string]Theme {
	return map[string]Theme{
		DefaultName:   Default(),
		NeonName:      Neon(),
		SynthwaveName: Synthwave(),
	}
}

func styled(color, weight string) StyleConfig {
	return StyleConfig{Color: color, FontWeight: weight}
}

func palette(weight string, pairs ...string) StyleMap {
	var m StyleMap
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], styled(pairs[i+1], weight))
	}
	return m
}

// Default is the violet/green palette used when no theme is configured.
func Default() Theme {
	arbitrary := styled("#f472b6", "bold")
	important := styled("#ef4444", "bold")
	return Theme{
		Prefix: palette("bold",
			// responsive
			"xs", "#fa8bfa",
			"sm", "#d18bfa",
			"md", "#b88bfa",
			"lg", "#a78bfa",
			"xl", "#8b8bfa",
			"2xl", "#8b9dfa",
			// pseudo-elements
			"before", "#fb7185",
			"after", "#fb5c5c",
			"placeholder", "#fb8a5c",
			"first-letter", "#fb6d5c",
			"first-line", "#fb5c7a",
			// interaction
			"hover", "#4ade80",
			"focus", "#4ada95",
			"active", "#4ad6aa",
			"visited", "#4acdb8",
			"target", "#4ac5c5",
			// group and peer
			"group-hover", "#5cb8fb",
			"group-focus", "#5c9efb",
			"peer-hover", "#5c85fb",
			"peer-focus", "#5c6cfb",
			// color scheme
			"dark", "#fbbf24",
			"light", "#fbad24",
			// forms
			"disabled", "#c45cfb",
			"checked", "#d65cfb",
			"required", "#e85cfb",
			"valid", "#fb5cf3",
			"invalid", "#fb5cdc",
			// media
			"print", "#94a3b8",
			"landscape", "#94b8b3",
			"portrait", "#94b8a3",
			// direction
			"rtl", "#fbd45c",
			"ltr", "#fbcc5c",
		),
		Arbitrary: &arbitrary,
		Important: &important,
	}
}

// Neon is a saturated high-contrast palette.
func Neon() Theme {
	arbitrary := styled("#ff00aa", "bold")
	important := styled("#ff0000", "bold")
	return Theme{
		Prefix: palette("bold",
			"xs", "#ff00ff",
			"sm", "#ff00d6",
			"md", "#cc00ff",
			"lg", "#9d00ff",
			"xl", "#6e00ff",
			"2xl", "#00ffff",
			"before", "#ff0000",
			"after", "#ff3300",
			"placeholder", "#ff6600",
			"first-letter", "#ff9900",
			"first-line", "#ffcc00",
			"hover", "#00ff00",
			"focus", "#00ff33",
			"active", "#00ff66",
			"visited", "#00ff99",
			"target", "#00ffcc",
			"group-hover", "#00ccff",
			"group-focus", "#0099ff",
			"peer-hover", "#0066ff",
			"peer-focus", "#0033ff",
			"dark", "#ffff00",
			"light", "#ffff33",
			"disabled", "#cc00cc",
			"checked", "#9900cc",
			"required", "#6600cc",
			"valid", "#3300cc",
			"invalid", "#0000cc",
			"print", "#ffffff",
			"landscape", "#f0f0f0",
			"portrait", "#e0e0e0",
			"rtl", "#ff6600",
			"ltr", "#ff9900",
		),
		Arbitrary: &arbitrary,
		Important: &important,
	}
}

// Synthwave is a pink/cyan retro palette.
func Synthwave() Theme {
	arbitrary := styled("#fdf500", "700")
	important := styled("#ff1105", "700")
	return Theme{
		Prefix: palette("700",
			"sm", "#ff71ce",
			"md", "#ff2fb9",
			"lg", "#ff00a4",
			"xl", "#df008f",
			"2xl", "#bf007a",
			"max-sm", "#ff71ce",
			"max-md", "#ff2fb9",
			"max-lg", "#ff00a4",
			"max-xl", "#df008f",
			"max-2xl", "#bf007a",
			"before", "#ff9e4f",
			"after", "#ff6b21",
			"hover", "#b967ff",
			"focus", "#a742ff",
			"active", "#951dff",
			"dark", "#5d6ca7",
			"placeholder", "#ff2182",
			"checked", "#ff1e69",
			"valid", "#ff1a50",
			"invalid", "#ff1737",
			"disabled", "#ff141e",
			"required", "#ff1105",
			"first", "#00ffff",
			"last", "#00e5ff",
			"only", "#00ccff",
			"odd", "#00b2ff",
			"even", "#0099ff",
		),
		Arbitrary: &arbitrary,
		Important: &important,
	}
}
