package scene

import "errors"

// ============================================================
// Scene Graph Walker
// ============================================================

// ErrStopWalk short-circuits a walk from inside the visitor. Walk
// swallows it and returns nil.
var ErrStopWalk = errors.New("stop walk")

// Walk traverses the element forest depth-first with an explicit work
// stack, so adversarially deep group nesting cannot exhaust the call
// stack. Children are pushed in reverse, which makes the visit order
// match document order. A node is visited before its children; only
// groups recurse.
func Walk(elements []Element, visit func(*Element) error) error {
	stack := make([]*Element, 0, len(elements))
	for i := len(elements) - 1; i >= 0; i-- {
		stack = append(stack, &elements[i])
	}

	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if err := visit(e); err != nil {
			if errors.Is(err, ErrStopWalk) {
				return nil
			}
			return err
		}

		if e.Type == TypeGroup {
			for i := len(e.Children) - 1; i >= 0; i-- {
				stack = append(stack, &e.Children[i])
			}
		}
	}
	return nil
}

// FirstImage returns the source of the first image element in document
// order, descending into groups.
func FirstImage(elements []Element) (string, bool) {
	var src string
	_ = Walk(elements, func(e *Element) error {
		if e.Type == TypeImage && e.ImageSrc != "" {
			src = e.ImageSrc
			return ErrStopWalk
		}
		return nil
	})
	return src, src != ""
}

// CountElements counts every node in the forest, groups and hidden
// elements included.
func CountElements(elements []Element) int {
	count := 0
	_ = Walk(elements, func(*Element) error {
		count++
		return nil
	})
	return count
}
