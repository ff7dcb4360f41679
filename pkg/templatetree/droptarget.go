package templatetree

// Drop-target resolution for the drag-and-drop board. The rule set mirrors
// what the pointer interaction needs: a dragged task can hover over another
// task, over an empty container, or over a container's padding, and brief
// gaps between elements must not make the highlight flicker.
//
// The function is pure geometry over synthetic rectangles so it can be
// exercised without a real pointer or layout engine.

// Point is a pointer position in board coordinates.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in board coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// MidY is the vertical midpoint of the rectangle.
func (r Rect) MidY() float64 {
	return r.Y + r.H/2
}

// ItemRect is the measured rectangle of one draggable item.
type ItemRect struct {
	ID string
	Rect
}

// ContainerRect is the measured rectangle of one container and its items in
// list order.
type ContainerRect struct {
	ID string
	Rect
	Items []ItemRect
}

// DropTarget is where the dragged item would land this tick: a container and
// an insertion index into its item list.
type DropTarget struct {
	ContainerID string
	Index       int
}

// ComputeDropTarget resolves the drop position for the current pointer
// position:
//
//   - Pointer over a container with items: the target index is derived from
//     the item vertically closest to the pointer — below that item's
//     midpoint inserts after it, above inserts before.
//   - Pointer over an empty container, or over a container but none of its
//     items: append to the end of that container.
//   - Pointer over nothing: reuse last, the target from the previous tick,
//     so a pointer crossing the gap between containers does not flicker.
//
// Returns nil only when there is no match and no previous target.
func ComputeDropTarget(p Point, containers []ContainerRect, last *DropTarget) *DropTarget {
	for _, c := range containers {
		if !c.Contains(p) {
			continue
		}
		if len(c.Items) == 0 {
			return &DropTarget{ContainerID: c.ID, Index: 0}
		}

		closest, dist := -1, 0.0
		for i, item := range c.Items {
			d := p.Y - item.MidY()
			if d < 0 {
				d = -d
			}
			if closest < 0 || d < dist {
				closest, dist = i, d
			}
		}

		index := closest
		if p.Y > c.Items[closest].MidY() {
			index = closest + 1
		}
		return &DropTarget{ContainerID: c.ID, Index: index}
	}
	return last
}
