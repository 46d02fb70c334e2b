package keys

import (
	"fmt"

	"vlcrc/internal/toggle"
	"vlcrc/pkg/types"
)

// InterfaceToggle shows and hides the player's on-screen interface.
const InterfaceToggle = "interface"

// DefaultToggles declares the toggles the default table refers to.
func DefaultToggles() []toggle.Spec {
	return []toggle.Spec{
		{Name: InterfaceToggle, Initial: false, WhenFalse: "key key-intf-hide", WhenTrue: "key key-intf-show"},
	}
}

// Default returns the built-in VLC key table. Key names for the "key"
// command are VLC hotkey actions.
func Default() []Entry {
	entries := []Entry{
		// Playback and navigation
		{Key: "=", Label: "Pause", Column: 0, Command: Literal("pause")},
		{Key: types.KeySpace, Glyph: "␠", Label: "Pause", Column: 0, Command: Literal("pause")},
		{Key: "<", Label: "Prev Chapter", Column: 0, Command: Literal("chapter_p")},
		{Key: ">", Label: "Next Chapter", Column: 0, Command: Literal("chapter_n")},
		{Key: "[", Label: "Prev Title", Column: 0, Command: Literal("title_p")},
		{Key: "]", Label: "Next Title", Column: 0, Command: Literal("title_n")},
		{Key: "{", Label: "Prev in Playlist", Column: 0, Command: Literal("prev")},
		{Key: "}", Label: "Next in Playlist", Column: 0, Command: Literal("next")},
		{Key: "w", Label: "Back long", Column: 0, Command: Literal("key key-jump-long")},
		{Key: "e", Label: "Back medium", Column: 0, Command: Literal("key key-jump-medium")},
		{Key: "r", Label: "Back short", Column: 0, Command: Literal("key key-jump-short")},
		{Key: "t", Label: "Back v.short", Column: 0, Command: Literal("key key-jump-extrashort")},
		{Key: "y", Label: "Forw v.short", Column: 0, Command: Literal("key key-jump+extrashort")},
		{Key: "u", Label: "Forw short", Column: 0, Command: Literal("key key-jump+short")},
		{Key: "i", Label: "Forw medium", Column: 0, Command: Literal("key key-jump+medium")},
		{Key: "o", Label: "Forw long", Column: 0, Command: Literal("key key-jump+long")},

		// Audio, subtitles and rate
		{Key: "+", Label: "Volume Up", Column: 1, Command: Literal("volup")},
		{Key: "-", Label: "Volume Down", Column: 1, Command: Literal("voldown")},
		{Key: "m", Label: "Mute", Column: 1, Command: Literal("key key-vol-mute")},
		{Key: "a", Label: "Audio Track", Column: 1, Command: Literal("key key-audio-track")},
		{Key: "s", Label: "Subtitles", Column: 1, Command: Literal("key key-subtitle-track")},
		{Key: ",", Label: "Rate: slower", Column: 1, Command: Literal("slower")},
		{Key: ".", Label: "Rate: normal", Column: 1, Command: Literal("normal")},
		{Key: "/", Label: "Rate: faster", Column: 1, Command: Literal("faster")},
		{Key: "F", Label: "Rate: Frame", Column: 1, Command: Literal("frame")},

		// Display and queries
		{Key: "f", Label: "Fullscreen", Column: 2, Command: Literal("fullscreen")},
		{Key: "M", Label: "Menu", Column: 2, Command: Literal("key key-disc-menu")},
		{Key: "S", Label: "Stats", Column: 2, Command: Literal("stats"), Query: true},
		{Key: "T", Label: "Title", Column: 2, Command: Sequence("get_title", "get_time", "get_length"), Query: true},
		{Key: "I", Label: "Info", Column: 2, Command: Literal("info"), Query: true},
		{Key: "P", Label: "Playlist", Column: 2, Command: Literal("playlist"), Query: true},
		{Key: "?", Label: "Interface", Column: 2, Command: ToggleCommand(InterfaceToggle)},
		{Key: "Q", Label: "Quit VLC", Column: 2, Command: Literal("key key-quit")},

		// Menu navigation
		{Key: types.KeyLeft, Glyph: "←", Label: "Key Left", Column: 3, Command: Literal("key key-nav-left")},
		{Key: types.KeyRight, Glyph: "→", Label: "Key Right", Column: 3, Command: Literal("key key-nav-right")},
		{Key: types.KeyUp, Glyph: "↑", Label: "Key Up", Column: 3, Command: Literal("key key-nav-up")},
		{Key: types.KeyDown, Glyph: "↓", Label: "Key Down", Column: 3, Command: Literal("key key-nav-down")},
		{Key: types.KeyEnter, Glyph: "⏎", Label: "Key Enter", Column: 3, Command: Literal("key key-nav-activate")},
	}
	return append(entries, bookmarkEntries()...)
}

// bookmarkEntries binds 1-9,0 to play bookmarks 1-10 and their shifted
// counterparts on a US layout to set them. They are described by the
// bookmark notes instead of individual labels.
func bookmarkEntries() []Entry {
	shifted := "!@#$%^&*()"
	entries := make([]Entry, 0, 20)
	for i := 0; i < 10; i++ {
		digit := (i + 1) % 10
		slot := i + 1
		entries = append(entries,
			Entry{
				Key:     types.Key(fmt.Sprint(digit)),
				Glyph:   fmt.Sprintf("   %d", digit),
				Command: Literal(fmt.Sprintf("key key-play-bookmark%d", slot)),
			},
			Entry{
				Key:     types.Key(shifted[i : i+1]),
				Glyph:   fmt.Sprintf("Sh %d", digit),
				Command: Literal(fmt.Sprintf("key key-set-bookmark%d", slot)),
			},
		)
	}
	return entries
}
