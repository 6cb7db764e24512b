package theme

// Merge layers override on top of base and returns a new theme. Prefix and
// Base entries are replaced per key (base keys keep their position, new keys
// are appended); the Arbitrary and Important slots are merged field by field.
// Neither input is modified.
func Merge(base, override Theme) Theme {
	out := base.Clone()

	for _, e := range override.Prefix.Entries() {
		out.Prefix.Set(e.Key, e.Config.clone())
	}
	for _, e := range override.Base.Entries() {
		out.Base.Set(e.Key, e.Config.clone())
	}

	out.Arbitrary = mergeSlot(out.Arbitrary, override.Arbitrary)
	out.Important = mergeSlot(out.Important, override.Important)

	return out
}

func mergeSlot(base, override *StyleConfig) *StyleConfig {
	if override == nil {
		return base
	}
	merged := override.clone()
	if base != nil {
		if merged.Color == "" {
			merged.Color = base.Color
		}
		if merged.FontWeight == "" {
			merged.FontWeight = base.FontWeight
		}
		if merged.Enabled == nil && base.Enabled != nil {
			merged.Enabled = Bool(*base.Enabled)
		}
	}
	return &merged
}
