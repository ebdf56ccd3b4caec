package network

import (
	"fmt"
	"math"
)

// EdgeBaseRGB is the fixed edge colour; only its alpha varies with weight.
var EdgeBaseRGB = [3]uint8{100, 100, 100}

type alphaStep struct {
	upperBound float64
	alpha      float64
}

// Ordered, first match wins.
var edgeAlphaSteps = []alphaStep{
	{upperBound: 50, alpha: 0.1},
	{upperBound: 150, alpha: 0.3},
	{upperBound: 300, alpha: 0.5},
	{upperBound: 500, alpha: 0.7},
	{upperBound: math.Inf(1), alpha: 1.0},
}

// EdgeAlpha maps an edge weight to its colour intensity.
func EdgeAlpha(weight float64) float64 {
	for _, step := range edgeAlphaSteps {
		if weight <= step.upperBound {
			return step.alpha
		}
	}
	return edgeAlphaSteps[len(edgeAlphaSteps)-1].alpha
}

// EdgeColor returns the CSS rgba() colour for an edge of the given weight.
func EdgeColor(weight float64) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %.1f)", EdgeBaseRGB[0], EdgeBaseRGB[1], EdgeBaseRGB[2], EdgeAlpha(weight))
}
