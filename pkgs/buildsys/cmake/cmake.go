// Package cmake renders the CMake cache definitions of a configure step.
// It only generates arguments; running cmake belongs to the build engine.
package cmake

import (
	"sort"

	"github.com/mortar-build/mortar/recipe"
)

type defineValue struct {
	value    string
	typeName string
}

// Defines accumulates -D cache definitions.
type Defines struct {
	defines map[string]defineValue
}

// New returns an empty definition set.
func New() *Defines {
	return &Defines{defines: make(map[string]defineValue)}
}

// Set adds a -D<key>:STRING=<value> definition.
func (d *Defines) Set(key, value string) {
	d.defines[key] = defineValue{value: value, typeName: "STRING"}
}

// SetBool adds a -D<key>:BOOL=ON/OFF definition.
func (d *Defines) SetBool(key string, value bool) {
	v := "OFF"
	if value {
		v = "ON"
	}
	d.defines[key] = defineValue{value: v, typeName: "BOOL"}
}

// FromVariant adds a BOOL definition mirroring a boolean variant of the
// resolved context.
func (d *Defines) FromVariant(key string, ctx *recipe.BuildContext, variant string) {
	d.SetBool(key, ctx.Enabled(variant))
}

// Args renders the definitions as -D<key>:<type>=<value> arguments in
// sorted key order, so output is deterministic.
func (d *Defines) Args() []string {
	if len(d.defines) == 0 {
		return nil
	}
	keys := make([]string, 0, len(d.defines))
	for k := range d.defines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]string, 0, len(keys))
	for _, k := range keys {
		v := d.defines[k]
		args = append(args, "-D"+k+":"+v.typeName+"="+v.value)
	}
	return args
}
