package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_Enabled(t *testing.T) {
	tests := []struct {
		name     string
		registry *Registry
		flag     string
		expected bool
	}{
		{"default on", New(nil), FlagSegmentCache, true},
		{"default off", New(nil), FlagGlamourPreview, false},
		{"config overrides default", New(map[string]bool{FlagSegmentCache: false}), FlagSegmentCache, false},
		{"config enables default-off flag", New(map[string]bool{FlagGlamourPreview: true}), FlagGlamourPreview, true},
		{"unknown configured flag", New(map[string]bool{"experimental": true}), "experimental", true},
		{"unknown flag", New(nil), "missing", false},
		{"nil registry", nil, FlagSegmentCache, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.registry.Enabled(tt.flag))
		})
	}
}

func TestRegistry_All_ReturnsCopy(t *testing.T) {
	r := New(map[string]bool{FlagMouseToolbar: false})

	all := r.All()
	all[FlagMouseToolbar] = true
	all["new-flag"] = true

	require.False(t, r.Enabled(FlagMouseToolbar))
	require.False(t, r.Enabled("new-flag"))
	require.Empty(t, (*Registry)(nil).All())
}

func TestNew_DoesNotMutateDefaults(t *testing.T) {
	_ = New(map[string]bool{FlagSegmentCache: false})
	require.True(t, New(nil).Enabled(FlagSegmentCache))
}

func TestKnown(t *testing.T) {
	require.Equal(t, []string{FlagGlamourPreview, FlagMouseToolbar, FlagSegmentCache}, Known())
}
