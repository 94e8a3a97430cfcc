package display

import (
	"sync"

	"github.com/guptarohit/asciigraph"
)

// Chart is one rendered trend plot.
type Chart struct {
	Name   string
	Labels []string
	Values []float64

	plot     string
	mu       sync.Mutex
	disposed bool
}

// NewChart plots values as a line chart of the given height and width.
func NewChart(labels []string, values []float64, name string, height, width int) *Chart {
	c := &Chart{Name: name, Labels: labels, Values: values}
	if len(values) == 0 {
		return c
	}
	data := values
	if len(data) == 1 {
		data = []float64{values[0], values[0]}
	}
	opts := []asciigraph.Option{asciigraph.Height(height), asciigraph.Caption(caption(name, labels))}
	if width > 0 {
		opts = append(opts, asciigraph.Width(width))
	}
	c.plot = asciigraph.Plot(data, opts...)
	return c
}

func caption(name string, labels []string) string {
	switch len(labels) {
	case 0:
		return name
	case 1:
		return name + "  " + labels[0]
	default:
		return name + "  " + labels[0] + " … " + labels[len(labels)-1]
	}
}

// String returns the plot, or "" once disposed.
func (c *Chart) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return ""
	}
	return c.plot
}

// Dispose releases the plot. Further calls are no-ops.
func (c *Chart) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disposed = true
	c.plot = ""
}

// Disposed reports whether Dispose has been called.
func (c *Chart) Disposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

// ChartSlot owns at most one live chart. Installing a chart disposes the
// previous occupant first.
type ChartSlot struct {
	mu      sync.Mutex
	current *Chart
}

// Install disposes the current chart and makes c current.
func (s *ChartSlot) Install(c *Chart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current != c {
		s.current.Dispose()
	}
	s.current = c
}

// Current returns the live chart, or nil.
func (s *ChartSlot) Current() *Chart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
