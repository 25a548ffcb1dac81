// Package colors provides hex color parsing and WCAG contrast math for
// theme accessibility checks.
package colors

import (
	"fmt"
	"strings"
)

// RGB holds a color with channels normalized to [0, 1].
type RGB struct {
	R, G, B float64
}

// ParseHex converts a hex color string to normalized RGB. A leading '#' is
// optional and 3-digit shorthand is expanded by doubling each nibble
// ("#abc" becomes "#aabbcc").
func ParseHex(hex string) (RGB, error) {
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}

	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q", hex)
	}

	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}

	return RGB{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}, nil
}

// Luminance returns the WCAG relative luminance of the color.
// Each channel is gamma-expanded, then weighted by the sRGB coefficients.
func (c RGB) Luminance() float64 {
	return 0.2126*expand(c.R) + 0.7152*expand(c.G) + 0.0722*expand(c.B)
}

// expand applies the WCAG gamma expansion to a single channel.
func expand(ch float64) float64 {
	if ch <= 0.03928 {
		return ch / 12.92
	}
	v := (ch + 0.055) / 1.055
	return v * v
}

// ContrastRatio returns the WCAG contrast ratio between two colors.
// The result is in [1, 21]; order of arguments does not matter.
func ContrastRatio(a, b RGB) float64 {
	la, lb := a.Luminance(), b.Luminance()

	lighter, darker := la, lb
	if lb > la {
		lighter, darker = lb, la
	}

	return (lighter + 0.05) / (darker + 0.05)
}
