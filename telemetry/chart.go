package telemetry

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotFitness draws best and average fitness against generation and saves
// the chart to outPath. The image format follows the file extension.
func PlotFitness(points []Point, title, outPath string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Fitness"

	bestPts := make(plotter.XYs, len(points))
	avgPts := make(plotter.XYs, len(points))
	for i, pt := range points {
		bestPts[i].X = float64(pt.Generation)
		bestPts[i].Y = pt.Best
		avgPts[i].X = float64(pt.Generation)
		avgPts[i].Y = pt.Average
	}

	bestLine, err := plotter.NewLine(bestPts)
	if err != nil {
		return err
	}
	avgLine, err := plotter.NewLine(avgPts)
	if err != nil {
		return err
	}
	avgLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(plotter.NewGrid(), bestLine, avgLine)
	p.Legend.Add("best", bestLine)
	p.Legend.Add("average", avgLine)
	p.Legend.Top = true
	p.Legend.Left = true

	return p.Save(6*vg.Inch, 4*vg.Inch, outPath)
}
