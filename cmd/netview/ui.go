package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/vanshika/recipenet/internal/network"
)

var (
	brand  = color.New(color.FgHiGreen, color.Bold)
	subtle = color.New(color.FgHiBlack)
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed)
	accent = color.New(color.FgHiYellow, color.Bold)
)

func stateColor(state network.HighlightState) *color.Color {
	switch state {
	case network.Emphasized:
		return accent
	case network.Dimmed:
		return subtle
	default:
		return color.New(color.Reset)
	}
}

// table prints rows aligned under headers.
func table(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var header, sep strings.Builder
	for i, h := range headers {
		fmt.Fprintf(&header, "  %-*s", widths[i], h)
		sep.WriteString("  " + strings.Repeat("─", widths[i]))
	}
	subtle.Fprintln(w, header.String())
	subtle.Fprintln(w, sep.String())
	for _, row := range rows {
		var line strings.Builder
		for i, cell := range row {
			if i < len(widths) {
				fmt.Fprintf(&line, "  %-*s", widths[i], cell)
			}
		}
		fmt.Fprintln(w, line.String())
	}
}
