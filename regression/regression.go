// Package regression fits a least-squares line to a yearly series and
// projects it to a target year.
//
// Observations are indexed 1..N in the order given, never by calendar year,
// so a fit only depends on how many points there are and their values.
package regression

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrInsufficientData = errors.New("regression needs at least two data points")
	ErrNonFinite        = errors.New("regression produced a non-finite coefficient")
)

// Line is a fitted y = Slope·x + Intercept.
type Line struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// At evaluates the line at a series index.
func (l Line) At(index int) float64 {
	return l.Slope*float64(index) + l.Intercept
}

// Fit computes the ordinary least squares line through ys, where the i-th
// observation sits at x = i+1.
func Fit(ys []float64) (Line, error) {
	n := len(ys)
	if n < 2 {
		return Line{}, ErrInsufficientData
	}

	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i + 1)
	}

	nf := float64(n)
	sumX := floats.Sum(xs)
	sumY := floats.Sum(ys)
	sumXY := floats.Dot(xs, ys)
	sumXX := floats.Dot(xs, xs)

	slope := (nf*sumXY - sumX*sumY) / (nf*sumXX - sumX*sumX)
	intercept := (sumY - slope*sumX) / nf

	if !isFinite(slope) || !isFinite(intercept) {
		return Line{}, ErrNonFinite
	}
	return Line{Slope: slope, Intercept: intercept}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
