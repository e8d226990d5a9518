package recipe

// Patch declares a source patch: a file bundled with the recipe or a remote
// URL with a mandatory integrity checksum. A patch is applied at most once
// per build, strictly before configuration; selection happens here,
// application belongs to the external build pipeline.
type Patch struct {
	File   string // bundled patch file name
	URL    string // remote patch location
	SHA256 string // required when URL is set
	When   Condition
}

// Locator returns the patch content locator.
func (p Patch) Locator() string {
	if p.URL != "" {
		return p.URL
	}
	return p.File
}

// PatchesFor returns the patches applicable to the resolved context,
// preserving declaration order.
func (r *Recipe) PatchesFor(ctx *BuildContext) []Patch {
	var patches []Patch
	for _, p := range r.Patches {
		if p.When.Matches(ctx) {
			patches = append(patches, p)
		}
	}
	return patches
}
