// Package flags gates optional wamark behavior behind config-driven switches.
// A Registry is read-only once built.
package flags

import (
	"maps"
	"slices"

	"github.com/zjrosen/wamark/internal/log"
)

const (
	// FlagGlamourPreview renders the editor preview through glamour instead
	// of the direct ANSI renderer.
	FlagGlamourPreview = "glamour-preview"

	// FlagSegmentCache memoises parse results between renders.
	FlagSegmentCache = "segment-cache"

	// FlagMouseToolbar enables clickable toolbar buttons in the editor.
	FlagMouseToolbar = "mouse-toolbar"
)

// defaults apply to known flags the config does not mention.
var defaults = map[string]bool{
	FlagGlamourPreview: false,
	FlagSegmentCache:   true,
	FlagMouseToolbar:   true,
}

// Registry holds feature flag state.
type Registry struct {
	flags map[string]bool
}

// New builds a Registry from config values layered over the defaults.
func New(configured map[string]bool) *Registry {
	merged := maps.Clone(defaults)
	maps.Copy(merged, configured)

	r := &Registry{flags: merged}
	log.Debug(log.CatConfig, "Feature flags initialized", "count", len(merged), "flags", r.All())
	return r
}

// Known returns the names of every built-in flag, sorted.
func Known() []string {
	return slices.Sorted(maps.Keys(defaults))
}

// Enabled reports whether name is on. Unknown flags and a nil Registry
// report false.
func (r *Registry) Enabled(name string) bool {
	if r == nil || r.flags == nil {
		return false
	}
	value, exists := r.flags[name]
	if !exists {
		log.Debug(log.CatConfig, "Unknown flag accessed", "flag", name)
		return false
	}
	return value
}

// All returns a copy of the flag values.
func (r *Registry) All() map[string]bool {
	if r == nil || r.flags == nil {
		return make(map[string]bool)
	}
	return maps.Clone(r.flags)
}
