package recipe

import (
	"maps"
	"sort"
	"strings"
)

// Env is an immutable set of environment overrides produced during
// planning and threaded through to the process-invocation layer. The
// ambient process environment is never mutated: consumers merge an Env
// into the environ of each spawned command instead.
type Env struct {
	kv map[string]string
}

// NewEnv returns an empty Env.
func NewEnv() Env { return Env{} }

// Set returns a copy of e with key set to value. The receiver is unchanged.
func (e Env) Set(key, value string) Env {
	kv := make(map[string]string, len(e.kv)+1)
	maps.Copy(kv, e.kv)
	kv[key] = value
	return Env{kv: kv}
}

// Get returns the value for key and whether it is present.
func (e Env) Get(key string) (string, bool) {
	v, ok := e.kv[key]
	return v, ok
}

// Len returns the number of overrides.
func (e Env) Len() int { return len(e.kv) }

// Keys returns the override keys in sorted order.
func (e Env) Keys() []string {
	keys := make([]string, 0, len(e.kv))
	for k := range e.kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Environ returns base with every override replaced or appended, in sorted
// key order, suitable for exec.Cmd.Env.
func (e Env) Environ(base []string) []string {
	out := make([]string, len(base))
	copy(out, base)

	idx := make(map[string]int, len(out))
	for i, kv := range out {
		if k, _, ok := strings.Cut(kv, "="); ok {
			idx[k] = i
		}
	}
	for _, k := range e.Keys() {
		v := e.kv[k]
		if i, ok := idx[k]; ok {
			out[i] = k + "=" + v
		} else {
			out = append(out, k+"="+v)
		}
	}
	return out
}
