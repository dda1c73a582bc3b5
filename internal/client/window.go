package client

import "greenbytes/internal/domain"

// WindowSize is the number of products shown per carousel page.
const WindowSize = 3

// Window is a circular carousel over a filtered product list. When
// fewer than WindowSize items remain past the offset, the visible slice
// wraps around and pads from the start of the list rather than showing
// a short page.
type Window struct {
	items  []domain.Product
	offset int
}

func NewWindow(items []domain.Product) *Window {
	return &Window{items: items}
}

// Visible returns the current page. Lists shorter than WindowSize are
// returned whole.
func (w *Window) Visible() []domain.Product {
	n := len(w.items)
	if n == 0 {
		return nil
	}
	if n <= WindowSize {
		out := make([]domain.Product, n)
		copy(out, w.items)
		return out
	}
	out := make([]domain.Product, 0, WindowSize)
	for i := 0; i < WindowSize; i++ {
		out = append(out, w.items[(w.offset+i)%n])
	}
	return out
}

// Next advances the window by one item, wrapping at the end.
func (w *Window) Next() {
	if n := len(w.items); n > 0 {
		w.offset = (w.offset + 1) % n
	}
}

// Prev retreats the window by one item, wrapping at the start.
func (w *Window) Prev() {
	if n := len(w.items); n > 0 {
		w.offset = (w.offset - 1 + n) % n
	}
}

// Offset reports the current window position.
func (w *Window) Offset() int { return w.offset }
