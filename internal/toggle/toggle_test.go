package toggle

import (
	"testing"

	"vlcrc/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlipSequence(t *testing.T) {
	s, err := New(Spec{Name: "interface", Initial: false, WhenFalse: "show", WhenTrue: "hide"})
	require.NoError(t, err)

	for i, want := range []string{"hide", "show", "hide"} {
		got, err := s.Flip("interface")
		require.NoError(t, err)
		assert.Equal(t, want, got, "flip %d", i+1)
	}
	v, ok := s.Value("interface")
	assert.True(t, ok)
	assert.True(t, v)
}

func TestFlipUnknown(t *testing.T) {
	s, err := New(Spec{Name: "interface", WhenFalse: "a", WhenTrue: "b"})
	require.NoError(t, err)

	_, err = s.Flip("fullscreen")
	require.Error(t, err)
	assert.True(t, errors.IsUnknownToggle(err))
	assert.Contains(t, err.Error(), "fullscreen")

	v, _ := s.Value("interface")
	assert.False(t, v, "a failed flip must not touch other toggles")
}

func TestNewRejectsBadSpecs(t *testing.T) {
	_, err := New(Spec{Name: "a"}, Spec{Name: "a"})
	assert.True(t, errors.IsInvalidConfig(err))

	_, err = New(Spec{})
	assert.True(t, errors.IsInvalidConfig(err))
}

func TestSnapshotRestore(t *testing.T) {
	s, err := New(
		Spec{Name: "interface", WhenFalse: "key key-intf-hide", WhenTrue: "key key-intf-show"},
		Spec{Name: "loop", Initial: true, WhenFalse: "loop off", WhenTrue: "loop on"},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"interface", "loop"}, s.Names())

	snap := s.Snapshot()
	_, err = s.Flip("interface")
	require.NoError(t, err)
	_, err = s.Flip("loop")
	require.NoError(t, err)

	s.Restore(snap)
	v, _ := s.Value("interface")
	assert.False(t, v)
	v, _ = s.Value("loop")
	assert.True(t, v)
}

func TestReconcileKeepsValues(t *testing.T) {
	s, err := New(Spec{Name: "interface", WhenFalse: "hide", WhenTrue: "show"})
	require.NoError(t, err)
	_, err = s.Flip("interface")
	require.NoError(t, err)

	next, err := s.Reconcile([]Spec{
		{Name: "interface", WhenFalse: "hide2", WhenTrue: "show2"},
		{Name: "random", WhenFalse: "random off", WhenTrue: "random on"},
	})
	require.NoError(t, err)

	v, _ := next.Value("interface")
	assert.True(t, v)
	cmd, err := next.Flip("interface")
	require.NoError(t, err)
	assert.Equal(t, "hide2", cmd)

	v, ok := next.Value("random")
	assert.True(t, ok)
	assert.False(t, v)
}
