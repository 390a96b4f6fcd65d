package utils

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// DefaultPPI is the print resolution used to convert physical sizes to pixels.
const DefaultPPI = 300

const cmPerInch = 2.54

// Contains checks if the slice contains the value.
func Contains[T comparable](slice []T, value T) bool {
	for _, v := range slice {
		if v == value {
			return true
		}
	}
	return false
}

// CmToPixel converts a length given in centimeters to pixels at the given print resolution.
func CmToPixel(cm float64, ppi int) int {
	if ppi <= 0 {
		ppi = DefaultPPI
	}
	return int(math.Round(cm * float64(ppi) / cmPerInch))
}

// ParseHexColor converts a color given in the #rrggbb or #rgb format.
func ParseHexColor(s string) (color.NRGBA, error) {
	c := color.NRGBA{A: 0xff}
	if !strings.HasPrefix(s, "#") {
		return c, fmt.Errorf("invalid color format: %q", s)
	}
	s = s[1:]
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return c, fmt.Errorf("invalid color length: %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return c, fmt.Errorf("invalid color value: %w", err)
	}
	c.R, c.G, c.B = uint8(v>>16), uint8(v>>8), uint8(v)
	return c, nil
}
