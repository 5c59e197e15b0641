package main

import (
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	vybiumpolyperm "github.com/vybium/vybium-polyperm/pkg/vybium-polyperm"
)

// maxPlotPoints caps the domain drawn by renderPlot
const maxPlotPoints = 4096

// renderPlot writes an HTML scatter of x -> poly(x) over the domain of poly's modulus
func renderPlot(poly *vybiumpolyperm.Polynomial, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := writeAndClose(poly, f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// writeAndClose renders into w and closes it, reporting the close error when
// the render itself succeeded
func writeAndClose(poly *vybiumpolyperm.Polynomial, w io.WriteCloser) error {
	if err := writePlot(poly, w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func writePlot(poly *vybiumpolyperm.Polynomial, w io.Writer) error {
	if !poly.HasModulus() {
		return &vybiumpolyperm.Error{Code: vybiumpolyperm.ErrRequiresModulus, Message: "plot needs a modulus"}
	}
	m := poly.Modulus()
	if !m.IsInt64() || m.Int64() > maxPlotPoints {
		return &vybiumpolyperm.Error{
			Code:    vybiumpolyperm.ErrInvalidInput,
			Message: fmt.Sprintf("modulus %s too large to plot", m),
		}
	}

	size := m.Int64()
	points := make([]opts.ScatterData, 0, size)
	for x := int64(0); x < size; x++ {
		y, err := poly.Evaluate(big.NewRat(x, 1))
		if err != nil {
			return err
		}
		points = append(points, opts.ScatterData{Value: []interface{}{x, y.Num().Int64()}})
	}

	title := poly.String()
	page := components.NewPage().SetPageTitle(title)

	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "x -> P(x)",
			Subtitle: title,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "item",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "x",
			Type: "value",
			Max:  size - 1,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "P(x)",
			Type: "value",
			Max:  size - 1,
		}),
	)
	sc.AddSeries("P", points,
		charts.WithScatterChartOpts(opts.ScatterChart{Symbol: "circle", SymbolSize: 7}),
	)
	page.AddCharts(sc)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render error: %w", err)
	}
	return nil
}
