package util

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/cityops/parkfee/pkg/optimizer/framework"
)

// PlotFront renders a scatter plot of a computed front projected onto the
// (xAxis, yAxis) objective pair, optionally alongside a reference front.
// The reference series may be nil. Output is a standalone HTML file.
func PlotFront(results, reference []framework.ObjectiveSpacePoint, xAxis, yAxis int, xLabel, yLabel, title, outputPath string) error {
	if len(results) == 0 {
		return fmt.Errorf("results are empty for %q", title)
	}
	if xAxis >= len(results[0]) || yAxis >= len(results[0]) {
		return fmt.Errorf("objective axes (%d, %d) out of range for %d objectives", xAxis, yAxis, len(results[0]))
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: xLabel,
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: yLabel,
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))

	if len(reference) > 0 {
		refData := make([]opts.ScatterData, len(reference))
		for i, p := range reference {
			refData[i] = opts.ScatterData{
				Value:      []float64{p[xAxis], p[yAxis]},
				Symbol:     "circle",
				SymbolSize: 3,
			}
		}
		scatter.AddSeries("Reference Front", refData)
	}

	foundData := make([]opts.ScatterData, len(results))
	for i, p := range results {
		foundData[i] = opts.ScatterData{
			Value:      []float64{p[xAxis], p[yAxis]},
			Symbol:     "triangle",
			SymbolSize: 8,
		}
	}

	scatter.AddSeries("Computed Front", foundData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
			charts.WithEmphasisOpts(opts.Emphasis{}),
		)

	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return scatter.Render(f)
}
