package display

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"PriceBoard/internal/model"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Terminal renders the price board to a writer. Each update redraws the
// whole board. Safe for concurrent use.
type Terminal struct {
	mu     sync.Mutex
	out    io.Writer
	title  string
	unit   string
	height int
	width  int
	colors bool

	slot   ChartSlot
	price  string
	change string
	trend  model.Trend
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithChartSize sets the plot height and width in characters.
func WithChartSize(height, width int) Option {
	return func(t *Terminal) {
		if height > 0 {
			t.height = height
		}
		t.width = width
	}
}

// WithColors toggles ANSI colors for the change cell.
func WithColors(on bool) Option {
	return func(t *Terminal) { t.colors = on }
}

// NewTerminal creates a board titled with the resource name and unit.
func NewTerminal(out io.Writer, title, unit string, opts ...Option) *Terminal {
	t := &Terminal{out: out, title: title, unit: unit, height: 12, width: 72, colors: true}
	for _, o := range opts {
		o(t)
	}
	return t
}

func (t *Terminal) ShowPrice(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.price = s
	t.render()
}

func (t *Terminal) ShowChange(s string, trend model.Trend) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.change = s
	t.trend = trend
	t.render()
}

// RenderTrend replaces the live chart with a new one.
func (t *Terminal) RenderTrend(labels []string, values []float64, name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.slot.Install(NewChart(labels, values, name, t.height, t.width))
	t.render()
}

// Chart returns the live chart, or nil before the first render.
func (t *Terminal) Chart() *Chart {
	return t.slot.Current()
}

func (t *Terminal) render() {
	tw := table.NewWriter()
	tw.SetTitle(t.title)
	tw.SetStyle(table.StyleRounded)

	tw.AppendRow(table.Row{"Цена", t.price})
	if t.unit != "" {
		tw.AppendRow(table.Row{"Единица", t.unit})
	}
	tw.AppendRow(table.Row{"Изменение", t.styledChange()})

	chart := t.slot.Current()
	if chart != nil && len(chart.Labels) > 0 {
		tw.AppendRow(table.Row{"Период", chart.Labels[0] + " - " + chart.Labels[len(chart.Labels)-1]})
		tw.AppendRow(table.Row{"Точек", len(chart.Values)})
	}

	var b strings.Builder
	b.WriteString(tw.Render())
	b.WriteString("\n")
	if chart != nil {
		if plot := chart.String(); plot != "" {
			b.WriteString(plot)
			b.WriteString("\n")
		}
	}
	fmt.Fprint(t.out, b.String())
}

func (t *Terminal) styledChange() string {
	if t.change == "" || !t.colors {
		return t.change
	}
	if t.trend == model.TrendNegative {
		return text.FgRed.Sprint(t.change)
	}
	return text.FgGreen.Sprint(t.change)
}
