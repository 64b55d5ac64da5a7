package scss

import "slices"

var offsets = []string{"top", "right", "bottom", "left"}

// NibPosition expands nib's position shorthands used as properties, for
// example "absolute: top 5px left" becomes position, top and left
// declarations. Offsets without a value are set to 0.
func NibPosition(name string, values []string) ([]Declaration, bool) {
	switch name {
	case "absolute", "fixed", "relative":
	default:
		return nil, false
	}

	decls := []Declaration{{Name: "position", Value: name}}
	pending := ""
	for _, v := range values {
		if slices.Contains(offsets, v) {
			if pending != "" {
				decls = append(decls, Declaration{Name: pending, Value: "0"})
			}
			pending = v
			continue
		}
		if pending != "" {
			decls = append(decls, Declaration{Name: pending, Value: v})
			pending = ""
		}
	}
	if pending != "" {
		decls = append(decls, Declaration{Name: pending, Value: "0"})
	}
	return decls, true
}
