// Package render turns a filtered category network into an interactive HTML page
// or a static SVG/PNG snapshot.
package render

import (
	"fmt"
	"image/color"

	"github.com/vanshika/recipenet/internal/network"
)

var (
	colorNode      = color.RGBA{R: 0xFF, G: 0x9F, B: 0x1C, A: 0xFF}
	colorNodeDim   = color.RGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
	colorLabel     = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	colorLabelDim  = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xFF}
	colorBackdrop  = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	colorCaption   = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xFF}
	colorCaptionBG = color.RGBA{R: 0xF4, G: 0xF4, B: 0xF4, A: 0xFF}
)

// NodeStyle is how a node is drawn in a given highlight state.
type NodeStyle struct {
	Size      int
	FontSize  int
	Fill      color.RGBA
	FontColor color.RGBA
}

var nodeStyles = map[network.HighlightState]NodeStyle{
	network.Neutral:    {Size: 25, FontSize: 14, Fill: colorNode, FontColor: colorLabel},
	network.Emphasized: {Size: 45, FontSize: 25, Fill: colorNode, FontColor: colorLabel},
	network.Dimmed:     {Size: 25, FontSize: 14, Fill: colorNodeDim, FontColor: colorLabelDim},
}

// StyleFor returns the style of state. Unknown states draw as Neutral.
func StyleFor(state network.HighlightState) NodeStyle {
	if s, ok := nodeStyles[state]; ok {
		return s
	}
	return nodeStyles[network.Neutral]
}

// styleJSON is the shape the page script repaints nodes with.
type styleJSON struct {
	Size      int    `json:"size"`
	FontSize  int    `json:"fontSize"`
	Color     string `json:"color"`
	FontColor string `json:"fontColor"`
}

func styleTable() map[string]styleJSON {
	table := make(map[string]styleJSON, len(nodeStyles))
	for state, s := range nodeStyles {
		table[state.String()] = styleJSON{
			Size:      s.Size,
			FontSize:  s.FontSize,
			Color:     css(s.Fill),
			FontColor: css(s.FontColor),
		}
	}
	return table
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// edgeColor is network.EdgeColor as a drawable colour.
func edgeColor(weight float64) color.NRGBA {
	rgb := network.EdgeBaseRGB
	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: uint8(network.EdgeAlpha(weight)*255 + 0.5)}
}
