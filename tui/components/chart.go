package components

import (
	"fmt"
	"math"
	"strings"
)

// chartBlocks are block characters from empty to full. Index 0 is a space,
// index 8 a full block.
var chartBlocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

const (
	chartLabelWidth = 8
	avgMark         = '┈' // dashed rule drawn through empty cells on the average row
)

// RenderChart plots data (oldest to newest, left to right) as a block bar
// chart of width x height characters including the title row and the Y-axis
// labels. When avg is positive, the row containing it is ruled through the
// empty cells so the average over the window stays visible.
func RenderChart(data []float64, avg float64, width, height int, title string) string {
	width = max(width, 10)
	height = max(height, 4)
	plotWidth := max(width-chartLabelWidth, 2)
	rows := max(height-1, 2)

	lines := make([]string, 0, rows+1)
	lines = append(lines, centerText(title, width))

	if len(data) == 0 {
		blank := strings.Repeat(" ", chartLabelWidth+plotWidth)
		for range rows {
			lines = append(lines, blank)
		}
		return strings.Join(lines, "\n")
	}
	if len(data) > plotWidth {
		data = data[len(data)-plotWidth:]
	}

	// Y axis always starts at zero for rates.
	top := 0.0
	for _, v := range data {
		top = max(top, v)
	}
	if top == 0 {
		top = 1
	}
	cell := top / float64(rows)
	avgRow := -1
	if avg > 0 {
		avgRow = min(int(avg/cell), rows-1)
	}

	pad := plotWidth - len(data)
	for row := rows - 1; row >= 0; row-- {
		bottom := cell * float64(row)
		label := fmt.Sprintf("%7s ", FormatRate(bottom+cell))
		if len(label) > chartLabelWidth {
			label = label[len(label)-chartLabelWidth:]
		}

		empty := ' '
		if row == avgRow {
			empty = avgMark
		}
		var sb strings.Builder
		sb.WriteString(label)
		for range pad {
			sb.WriteRune(empty)
		}
		for _, v := range data {
			switch {
			case v <= bottom:
				sb.WriteRune(empty)
			case v >= bottom+cell:
				sb.WriteRune(chartBlocks[8])
			default:
				idx := int(math.Round((v - bottom) / cell * 8))
				if idx == 0 {
					sb.WriteRune(empty)
				} else {
					sb.WriteRune(chartBlocks[idx])
				}
			}
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}

// centerText centers s within the given width, padding with spaces.
func centerText(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-len(s)-pad)
}
