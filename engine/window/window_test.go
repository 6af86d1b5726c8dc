package window

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateKey(t *testing.T) {
	cases := []struct {
		in   glfw.Key
		want Key
	}{
		{glfw.Key0, KeyDigit(0)},
		{glfw.Key7, KeyDigit(7)},
		{glfw.KeyKP3, KeyDigit(3)},
		{glfw.KeyA, KeyLetter('a')},
		{glfw.KeyZ, KeyLetter('z')},
		{glfw.KeyF1, KeyFunction(1)},
		{glfw.KeyF12, KeyFunction(12)},
		{glfw.KeyEscape, KeyEscape},
		{glfw.KeySpace, KeyOther},
		{glfw.KeyLeftShift, KeyOther},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TranslateKey(tc.in), "glfw key %d", tc.in)
	}
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "Digit(4)", KeyDigit(4).String())
	assert.Equal(t, "Letter(q)", KeyLetter('Q').String())
	assert.Equal(t, "F5", KeyFunction(5).String())
	assert.Equal(t, "Escape", KeyEscape.String())
	assert.Equal(t, "Other", KeyOther.String())
}

func TestEventQueueCollapsesResizes(t *testing.T) {
	var q eventQueue
	q.push(ResizeEvent{Width: 10, Height: 10})
	q.push(ResizeEvent{Width: 20, Height: 15})
	q.push(KeyboardEvent{Key: KeyLetter('w'), Pressed: true})
	q.push(ResizeEvent{Width: 30, Height: 30})

	var got []Event
	q.drain(func(e Event) { got = append(got, e) })
	require.Len(t, got, 3)
	assert.Equal(t, ResizeEvent{Width: 20, Height: 15}, got[0])
	assert.Equal(t, KeyboardEvent{Key: KeyLetter('w'), Pressed: true}, got[1])
	assert.Equal(t, ResizeEvent{Width: 30, Height: 30}, got[2])

	got = got[:0]
	q.drain(func(e Event) { got = append(got, e) })
	assert.Empty(t, got)
}

func TestEscapeRequestsExit(t *testing.T) {
	w := &engineWindow{escapeCloses: true}
	w.onKey(KeyLetter('a'), true)
	assert.False(t, w.exitRequested)
	w.onKey(KeyEscape, false)
	assert.False(t, w.exitRequested)
	w.onKey(KeyEscape, true)
	assert.True(t, w.exitRequested)

	w = &engineWindow{}
	w.onKey(KeyEscape, true)
	assert.False(t, w.exitRequested)
	assert.Len(t, w.queue.events, 1)
}

func TestResizeTracksSize(t *testing.T) {
	w := &engineWindow{}
	w.onResize(800, 600)
	width, height := w.Size()
	assert.Equal(t, 800, width)
	assert.Equal(t, 600, height)
	assert.Equal(t, []Event{ResizeEvent{Width: 800, Height: 600}}, w.queue.events)
}

func TestUncreatedWindow(t *testing.T) {
	w := &engineWindow{}
	assert.False(t, w.IsRunning())
	assert.Nil(t, w.SurfaceDescriptor())
	assert.Error(t, w.Close())

	var got []Event
	w.Run(func(e Event) { got = append(got, e) })
	assert.Equal(t, []Event{ExitEvent{}}, got)
}
