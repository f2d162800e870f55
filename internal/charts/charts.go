package charts

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"cosmocast/internal/models"
)

// Generator renders static chart images from an assembled aggregate
type Generator struct{}

// NewGenerator creates a new chart generator
func NewGenerator() *Generator {
	return &Generator{}
}

// severityColors maps each tier to its bar color
var severityColors = map[models.Severity]drawing.Color{
	models.SeverityLow:      drawing.Color{R: 76, G: 175, B: 80, A: 255},
	models.SeverityModerate: drawing.Color{R: 255, G: 193, B: 7, A: 255},
	models.SeverityHigh:     drawing.Color{R: 255, G: 109, B: 0, A: 255},
	models.SeverityExtreme:  drawing.Color{R: 211, G: 47, B: 47, A: 255},
}

// RenderActivity writes a PNG bar chart of active events per severity tier
func (g *Generator) RenderActivity(w io.Writer, data *models.SpaceWeatherData) error {
	counts := map[models.Severity]int{}
	for _, event := range data.ActiveSolarStorms {
		counts[event.Severity]++
	}

	tiers := []models.Severity{
		models.SeverityLow,
		models.SeverityModerate,
		models.SeverityHigh,
		models.SeverityExtreme,
	}

	maxCount := 1
	bars := make([]chart.Value, 0, len(tiers))
	for _, tier := range tiers {
		count := counts[tier]
		if count > maxCount {
			maxCount = count
		}
		bars = append(bars, chart.Value{
			Value: float64(count),
			Label: string(tier),
			Style: chart.Style{
				FillColor:   severityColors[tier],
				StrokeColor: severityColors[tier],
			},
		})
	}

	graph := chart.BarChart{
		Title: fmt.Sprintf("Active Solar Events by Severity (Kp %.1f)", data.AuroraForecast.KpIndex),
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Height:   400,
		Width:    600,
		BarWidth: 80,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: float64(maxCount),
			},
		},
		Bars: bars,
	}

	return graph.Render(chart.PNG, w)
}
