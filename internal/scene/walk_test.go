package scene

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkDocumentOrder(t *testing.T) {
	elements := []Element{
		{Type: TypeRectangle, FillColor: "a"},
		{Type: TypeGroup, Children: []Element{
			{Type: TypeCircle, FillColor: "b"},
			{Type: TypeGroup, Children: []Element{
				{Type: TypeLine, FillColor: "c"},
			}},
			{Type: TypePolygon, FillColor: "d"},
		}},
		{Type: TypeImage, FillColor: "e"},
	}

	var order []string
	err := Walk(elements, func(e *Element) error {
		if e.Type == TypeGroup {
			order = append(order, "group")
		} else {
			order = append(order, e.FillColor)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "group", "b", "group", "c", "d", "e"}, order)
}

func TestWalkStop(t *testing.T) {
	elements := []Element{
		{Type: TypeRectangle},
		{Type: TypeCircle},
		{Type: TypeLine},
	}

	visits := 0
	err := Walk(elements, func(e *Element) error {
		visits++
		if visits == 2 {
			return ErrStopWalk
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, visits)
}

func TestWalkPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	err := Walk([]Element{{Type: TypeRectangle}}, func(*Element) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestWalkVisitsHidden(t *testing.T) {
	elements := []Element{
		{Type: TypeRectangle, Hidden: true},
		{Type: TypeCircle},
	}
	assert.Equal(t, 2, CountElements(elements))
}

// Deep nesting must not overflow; the walker carries its own stack.
func TestWalkDeepNesting(t *testing.T) {
	root := Element{Type: TypeLine}
	for i := 0; i < 200000; i++ {
		root = Element{Type: TypeGroup, Children: []Element{root}}
	}
	assert.Equal(t, 200001, CountElements([]Element{root}))
}

func TestFirstImage(t *testing.T) {
	elements := []Element{
		{Type: TypeRectangle},
		{Type: TypeGroup, Children: []Element{
			{Type: TypeImage},
			{Type: TypeImage, ImageSrc: "deep.png"},
		}},
		{Type: TypeImage, ImageSrc: "late.png"},
	}

	src, ok := FirstImage(elements)
	require.True(t, ok)
	assert.Equal(t, "deep.png", src)
}

func TestFirstImageNone(t *testing.T) {
	_, ok := FirstImage([]Element{{Type: TypeRectangle}})
	assert.False(t, ok)
}

func TestCountElementsEmpty(t *testing.T) {
	assert.Equal(t, 0, CountElements(nil))
}
