package recipe

import "sort"

// Matrix enumerates the concrete configuration space of a recipe: fixed
// required axes (platform, architecture) crossed with the variant domains.
type Matrix struct {
	Require map[string][]string
	Options map[string][]string
}

// Matrix returns the configuration matrix of the recipe, with one Options
// axis per declared variant ("name=value" entries).
func (r *Recipe) Matrix(require map[string][]string) Matrix {
	options := make(map[string][]string, len(r.Variants))
	for _, v := range r.Variants {
		values := v.domain()
		axis := make([]string, len(values))
		for i, value := range values {
			axis[i] = v.Name + "=" + value
		}
		options[v.Name] = axis
	}
	return Matrix{Require: require, Options: options}
}

// Combinations enumerates every concrete configuration: the cartesian
// product of the Require axes joined with "-", crossed with the Options
// product, the two halves separated by "|". Axes expand in sorted key
// order so the enumeration is deterministic.
func (m *Matrix) Combinations() []string {
	require := expandAxes(m.Require)
	options := expandAxes(m.Options)

	if len(require) == 0 {
		return options
	}
	if len(options) == 0 {
		return require
	}
	combos := make([]string, 0, len(require)*len(options))
	for _, req := range require {
		for _, opt := range options {
			combos = append(combos, req+"|"+opt)
		}
	}
	return combos
}

// expandAxes renders the cartesian product of a set of axes, one
// "-"-joined string per combination.
func expandAxes(axes map[string][]string) []string {
	if len(axes) == 0 {
		return nil
	}
	keys := make([]string, 0, len(axes))
	for k := range axes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	combos := []string{""}
	for _, k := range keys {
		next := make([]string, 0, len(combos)*len(axes[k]))
		for _, prev := range combos {
			for _, v := range axes[k] {
				if prev == "" {
					next = append(next, v)
				} else {
					next = append(next, prev+"-"+v)
				}
			}
		}
		combos = next
	}
	return combos
}

// CombinationCount returns the number of combinations without rendering
// them.
func (m *Matrix) CombinationCount() int {
	require := axisCount(m.Require)
	options := axisCount(m.Options)

	if require == 0 {
		return options
	}
	if options == 0 {
		return require
	}
	return require * options
}

func axisCount(axes map[string][]string) int {
	if len(axes) == 0 {
		return 0
	}
	count := 1
	for _, values := range axes {
		count *= len(values)
	}
	return count
}
