package components

import (
	"fmt"
	"strings"
	"time"
)

var blocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders the newest width values of data, right-aligned, scaled
// between their own minimum and maximum.
func Sparkline(data []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(data) == 0 {
		return strings.Repeat(" ", width)
	}
	if len(data) > width {
		data = data[len(data)-width:]
	}
	lo, hi := data[0], data[0]
	for _, v := range data {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", width-len(data)))
	spread := hi - lo
	for _, v := range data {
		if spread == 0 {
			sb.WriteRune(blocks[3])
			continue
		}
		idx := min(int((v-lo)/spread*float64(len(blocks)-1)), len(blocks)-1)
		sb.WriteRune(blocks[idx])
	}
	return sb.String()
}

// FormatRate renders a bit rate with an SI suffix.
func FormatRate(bps float64) string {
	switch {
	case bps == 0:
		return "0"
	case bps >= 1e12:
		return fmt.Sprintf("%.1fT", bps/1e12)
	case bps >= 1e9:
		return fmt.Sprintf("%.1fG", bps/1e9)
	case bps >= 1e6:
		return fmt.Sprintf("%.1fM", bps/1e6)
	case bps >= 1e3:
		return fmt.Sprintf("%.1fK", bps/1e3)
	default:
		return fmt.Sprintf("%.0fb", bps)
	}
}

// FormatAge renders a sample age compactly: "4s", "2m10s", "1h3m".
func FormatAge(d time.Duration) string {
	if d >= time.Hour {
		return strings.TrimSuffix(d.Round(time.Minute).String(), "0s")
	}
	return d.Round(time.Second).String()
}
