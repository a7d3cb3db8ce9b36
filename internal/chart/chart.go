// Package chart renders trend statistics as PNG images.
package chart

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/IlyaMakarovUI/darts-telegram-bot/internal/domain"
	"github.com/IlyaMakarovUI/darts-telegram-bot/internal/stats"
)

const (
	chartWidth  = 800
	chartHeight = 400
)

// Series colors roughly matching the rating emojis.
var (
	colorBad  = drawing.Color{R: 0xd6, G: 0x2c, B: 0x2c, A: 0xff}
	colorOK   = drawing.Color{R: 0xe8, G: 0xa8, B: 0x00, A: 0xff}
	colorGood = drawing.Color{R: 0x2c, G: 0x9e, B: 0x4b, A: 0xff}
)

// Render draws the three rating series as a line chart and returns the
// encoded PNG.
func Render(title string, series *stats.TrendSeries) ([]byte, error) {
	days := make([]time.Time, 0, len(series.Days))
	for _, d := range series.Days {
		day, err := time.Parse(domain.DayKey, d)
		if err != nil {
			return nil, fmt.Errorf("parse day %q: %w", d, err)
		}
		days = append(days, day)
	}

	graph := chart.Chart{
		Title:  title,
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			// Counts start at zero; padding the top keeps a flat series
			// from collapsing the range.
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount(series) + 1)},
		},
		Series: []chart.Series{
			timeSeries("Плохо", days, series.Bad, colorBad),
			timeSeries("Средне", days, series.OK, colorOK),
			timeSeries("Отлично", days, series.Good, colorGood),
		},
	}
	if len(days) == 1 {
		// A single day yields a zero-width X range, which go-chart
		// rejects. Pad the axis by half a day on each side.
		graph.XAxis.Range = &chart.ContinuousRange{
			Min: float64(days[0].Add(-12 * time.Hour).UnixNano()),
			Max: float64(days[0].Add(12 * time.Hour).UnixNano()),
		}
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}

func timeSeries(name string, days []time.Time, counts []int, color drawing.Color) chart.TimeSeries {
	values := make([]float64, len(counts))
	for i, c := range counts {
		values[i] = float64(c)
	}
	return chart.TimeSeries{
		Name:    name,
		XValues: days,
		YValues: values,
		Style: chart.Style{
			StrokeColor: color,
			StrokeWidth: 2.0,
			DotColor:    color,
			DotWidth:    3.0,
		},
	}
}

func maxCount(series *stats.TrendSeries) int {
	max := 0
	for _, counts := range [][]int{series.Bad, series.OK, series.Good} {
		for _, c := range counts {
			if c > max {
				max = c
			}
		}
	}
	return max
}
