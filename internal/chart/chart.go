package chart

import (
	"bytes"
	"fmt"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/ghpulse/ghpulse/internal/models"
)

// Render draws a bar chart of event counts for the last offsetMinutes
// minutes and returns the PNG bytes. Bars follow the stable order of
// models.KnownTypes so repeated renders of the same data are identical.
func Render(counts map[models.EventType]int, offsetMinutes int) ([]byte, error) {
	types := models.KnownTypes()

	bars := make([]gochart.Value, 0, len(types))
	maxCount := 1.0
	for _, t := range types {
		v := float64(counts[t])
		if v > maxCount {
			maxCount = v
		}
		bars = append(bars, gochart.Value{
			Label: string(t),
			Value: v,
		})
	}

	graph := gochart.BarChart{
		Title:    fmt.Sprintf("Event Counts in the Last %d Minutes", offsetMinutes),
		Width:    1024,
		Height:   512,
		BarWidth: 120,
		// Explicit range keeps go-chart from rejecting an all-zero series.
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: maxCount},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}
