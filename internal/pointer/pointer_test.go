package pointer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestApply_PerformsInOrder(t *testing.T) {
	rec := NewRecorder(1920, 1080)
	actions := []Action{
		MoveTo(10, 20),
		{Kind: ButtonDown},
		MoveTo(30, 40),
		{Kind: ButtonUp},
		{Kind: Click},
		{Kind: RightClick},
		ScrollAction(-20),
	}

	failed := Apply(rec, actions, zap.NewNop())

	assert.Zero(t, failed)
	assert.Equal(t, actions, rec.Actions())

	x, y, err := rec.CursorPosition()
	require.NoError(t, err)
	assert.Equal(t, 30, x)
	assert.Equal(t, 40, y)
}

func TestApply_FailuresAreLoggedAndSkipped(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	rec := NewRecorder(800, 600)
	rec.Fail = map[Kind]error{Move: errors.New("display locked")}

	failed := Apply(rec, []Action{MoveTo(1, 1), {Kind: Click}, MoveTo(2, 2)}, zap.New(core))

	assert.Equal(t, 2, failed)
	assert.Equal(t, []Action{{Kind: Click}}, rec.Actions())
	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "pointer action failed", logs.All()[0].Message)
}

func TestApply_NilLogger(t *testing.T) {
	rec := NewRecorder(800, 600)
	rec.Fail = map[Kind]error{Click: errors.New("nope")}

	assert.NotPanics(t, func() {
		assert.Equal(t, 1, Apply(rec, []Action{{Kind: Click}}, nil))
	})
}

func TestPerform_UnknownKind(t *testing.T) {
	err := Perform(NewRecorder(1, 1), Action{Kind: Kind(99)})
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder(1920, 1080)

	w, h, err := rec.ScreenSize()
	require.NoError(t, err)
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)

	x, y, err := rec.CursorPosition()
	require.NoError(t, err)
	assert.Equal(t, 960, x)
	assert.Equal(t, 540, y)

	require.NoError(t, rec.ButtonDown())
	require.NoError(t, rec.ButtonUp())
	require.NoError(t, rec.ButtonDown())
	assert.Equal(t, 2, rec.Count(ButtonDown))
	assert.Equal(t, 1, rec.Count(ButtonUp))

	rec.Reset()
	assert.Empty(t, rec.Actions())

	rec.CursorErr = errors.New("no display")
	_, _, err = rec.CursorPosition()
	assert.Error(t, err)
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "move(3,4)", MoveTo(3, 4).String())
	assert.Equal(t, "scroll(-20)", ScrollAction(-20).String())
	assert.Equal(t, "button_down", Action{Kind: ButtonDown}.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}
