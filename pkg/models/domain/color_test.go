package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArchetypeFor_KnownColors(t *testing.T) {
	expected := map[ColorCode]string{
		ColorRed:    "Driver",
		ColorYellow: "Spark",
		ColorGreen:  "Anchor",
		ColorBlue:   "Analyst",
	}

	for code, label := range expected {
		arch, ok := ArchetypeFor(code)
		assert.True(t, ok, "code %s should be known", code)
		assert.Equal(t, label, arch.Label)
		assert.NotEmpty(t, arch.Hex)
		assert.NotEqual(t, FallbackArchetype.Label, arch.Label)
	}
}

func TestArchetypeFor_UnknownInputsFallBackConsistently(t *testing.T) {
	for _, code := range []ColorCode{"", "color_purple", "red", "COLOR_RED"} {
		arch, ok := ArchetypeFor(code)
		assert.False(t, ok)
		assert.Equal(t, FallbackArchetype, arch)
	}
}

func TestArchetypeFor_IsInjective(t *testing.T) {
	seenLabels := map[string]ColorCode{}
	seenHex := map[string]ColorCode{}
	for _, code := range KnownColors() {
		arch, _ := ArchetypeFor(code)
		assert.NotContains(t, seenLabels, arch.Label)
		assert.NotContains(t, seenHex, arch.Hex)
		seenLabels[arch.Label] = code
		seenHex[arch.Hex] = code
	}
}
