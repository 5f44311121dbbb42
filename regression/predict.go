package regression

import (
	"fmt"
	"math"
)

// Forecast is a fitted line evaluated at the series index of a target year.
type Forecast struct {
	Index    int
	Raw      float64
	Line     Line
	Equation string
}

// Rounded returns the prediction rounded to the nearest integer, halves
// towards positive infinity (-2.5 becomes -2).
func (f Forecast) Rounded() int64 {
	return roundHalfUp(f.Raw)
}

// SeriesIndex maps a calendar year onto the 1-based series axis anchored at
// earliestYear. Years before earliestYear yield an index <= 0.
func SeriesIndex(targetYear, earliestYear int) int {
	return targetYear - earliestYear + 1
}

// Predict evaluates line at targetYear. No bounds are enforced: extrapolating
// far from the observed years can produce extreme or negative values.
func Predict(line Line, targetYear, earliestYear int) Forecast {
	index := SeriesIndex(targetYear, earliestYear)
	return Forecast{
		Index:    index,
		Raw:      line.At(index),
		Line:     line,
		Equation: Equation(line, index),
	}
}

// Equation renders the fitted line for display, labelled with the index of
// the requested year.
func Equation(line Line, index int) string {
	return fmt.Sprintf("y = %.2f × (tahun ke-%d) + %.2f", line.Slope, index, line.Intercept)
}

// RoundedTotal sums the raw forecasts and rounds once. This can differ by one
// from adding the individually rounded values.
func RoundedTotal(forecasts ...Forecast) int64 {
	var sum float64
	for _, f := range forecasts {
		sum += f.Raw
	}
	return roundHalfUp(sum)
}

func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
