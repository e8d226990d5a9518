package recipe

import (
	"fmt"
	"slices"
)

// Boolean variant values.
const (
	On  = "on"
	Off = "off"
)

// Variant declares a build-time knob: its name, default value and value
// domain. A nil Values domain means boolean (on/off).
type Variant struct {
	Name        string
	Default     string
	Values      []string // enumerated domain; nil means {on, off}
	Description string
}

// Bool declares a boolean variant.
func Bool(name string, def bool, desc string) Variant {
	v := Variant{Name: name, Default: Off, Description: desc}
	if def {
		v.Default = On
	}
	return v
}

// Enum declares a single-valued enumerated variant.
func Enum(name, def, desc string, values ...string) Variant {
	return Variant{Name: name, Default: def, Values: values, Description: desc}
}

// domain returns the value domain of the variant.
func (v Variant) domain() []string {
	if v.Values == nil {
		return []string{On, Off}
	}
	return v.Values
}

func (v Variant) validate() error {
	if v.Name == "" {
		return fmt.Errorf("variant has no name")
	}
	if !slices.Contains(v.domain(), v.Default) {
		return fmt.Errorf("variant %q: default %q not in domain %v", v.Name, v.Default, v.domain())
	}
	return nil
}

// resolveVariants merges a user selection over the declared defaults,
// yielding exactly one concrete value per variant. Unknown names and
// out-of-domain values are configuration-incompatibility errors.
func resolveVariants(pkg string, declared []Variant, selection map[string]string) (map[string]string, error) {
	values := make(map[string]string, len(declared))
	for _, v := range declared {
		values[v.Name] = v.Default
	}
	for name, value := range selection {
		var decl *Variant
		for i := range declared {
			if declared[i].Name == name {
				decl = &declared[i]
				break
			}
		}
		if decl == nil {
			return nil, fmt.Errorf("%s: %w: unknown variant %q", pkg, ErrIncompatible, name)
		}
		if !slices.Contains(decl.domain(), value) {
			return nil, fmt.Errorf("%s: %w: variant %q does not accept %q (one of %v)",
				pkg, ErrIncompatible, name, value, decl.domain())
		}
		values[name] = value
	}
	return values, nil
}
