package display

import (
	"bytes"
	"sync"
	"testing"

	"PriceBoard/internal/model"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartSlot_DisposesPrevious(t *testing.T) {
	var slot ChartSlot
	assert.Nil(t, slot.Current())

	a := NewChart([]string{"d1", "d2"}, []float64{1, 2}, "a", 5, 0)
	b := NewChart([]string{"d1", "d2"}, []float64{2, 1}, "b", 5, 0)

	slot.Install(a)
	assert.Same(t, a, slot.Current())
	assert.False(t, a.Disposed())

	slot.Install(b)
	assert.Same(t, b, slot.Current())
	assert.True(t, a.Disposed())
	assert.Empty(t, a.String())
	assert.False(t, b.Disposed())
}

func TestChartSlot_ReinstallSameChart(t *testing.T) {
	var slot ChartSlot
	c := NewChart([]string{"d1", "d2"}, []float64{1, 2}, "c", 5, 0)
	slot.Install(c)
	slot.Install(c)
	assert.False(t, c.Disposed())
}

func TestChartSlot_OneLiveChartUnderConcurrency(t *testing.T) {
	var slot ChartSlot
	charts := make([]*Chart, 32)
	for i := range charts {
		charts[i] = NewChart([]string{"d1", "d2"}, []float64{float64(i), float64(i + 1)}, "c", 3, 0)
	}

	var wg sync.WaitGroup
	for _, c := range charts {
		wg.Add(1)
		go func(c *Chart) {
			defer wg.Done()
			slot.Install(c)
		}(c)
	}
	wg.Wait()

	live := 0
	for _, c := range charts {
		if !c.Disposed() {
			live++
			assert.Same(t, c, slot.Current())
		}
	}
	assert.Equal(t, 1, live)
}

func TestNewChart(t *testing.T) {
	c := NewChart([]string{"2024-01-05", "2024-01-12", "2024-01-19"}, []float64{70, 72.5, 71}, "Нефть", 6, 0)
	plot := c.String()
	require.NotEmpty(t, plot)
	assert.Contains(t, plot, "Нефть")
	assert.Contains(t, plot, "2024-01-05")
	assert.Contains(t, plot, "2024-01-19")

	single := NewChart([]string{"2024-01-05"}, []float64{2500}, "Сталь", 4, 0)
	assert.NotEmpty(t, single.String())

	empty := NewChart(nil, nil, "x", 4, 0)
	assert.Empty(t, empty.String())
}

func TestTerminal_Render(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, "Золото", "$/унция", WithColors(false), WithChartSize(5, 40))

	term.ShowPrice("2 034,10")
	term.RenderTrend([]string{"2024-01-05", "2024-02-02"}, []float64{1900, 2034.1}, "Золото")
	term.ShowChange("+7.06%", model.TrendPositive)

	out := buf.String()
	assert.Contains(t, out, "2 034,10")
	assert.Contains(t, out, "$/унция")
	assert.Contains(t, out, "+7.06%")
	assert.Contains(t, out, "2024-01-05 - 2024-02-02")
	require.NotNil(t, term.Chart())
	assert.Equal(t, "Золото", term.Chart().Name)
}

func TestTerminal_RenderReplacesChart(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, "x", "", WithColors(false))

	term.RenderTrend([]string{"a", "b"}, []float64{1, 2}, "x")
	first := term.Chart()
	term.RenderTrend([]string{"c", "d"}, []float64{3, 4}, "x")

	assert.True(t, first.Disposed())
	assert.NotSame(t, first, term.Chart())
}

func TestTerminal_NegativeChangeColored(t *testing.T) {
	text.EnableColors()
	var buf bytes.Buffer
	term := NewTerminal(&buf, "x", "")
	term.ShowChange("-10.00%", model.TrendNegative)
	assert.Contains(t, buf.String(), "-10.00%")
	assert.Contains(t, buf.String(), "\x1b[")
}
