package types

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	for _, k := range []Key{KeyCtrlC, KeyCtrlD, "q"} {
		assert.True(t, key.Matches(k, km.Quit), "%q should quit", k)
	}
	assert.False(t, key.Matches(Key("Q"), km.Quit), "Q quits VLC, not the menu")

	assert.True(t, key.Matches(KeyCtrlL, km.Redraw))
	assert.True(t, key.Matches(Key("D"), km.Debug))
	assert.False(t, key.Matches(Key("d"), km.Debug))
	assert.True(t, key.Matches(KeyPageUp, km.PageUp))
	assert.True(t, key.Matches(KeyPageDown, km.PageDown))
	assert.False(t, key.Matches(KeyPageDown, km.PageUp))
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, " ", KeySpace.String())
	assert.Equal(t, "left", KeyLeft.String())
}
