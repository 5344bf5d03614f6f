package length

import (
	"fmt"
	"strconv"

	"github.com/FocuswithJustin/lyxnorm/core/errors"
)

// Page geometry assumed by InBP: a 10pt font on A4 paper with default
// margins.
const (
	emWidth   = 10.0 / 72.27 // inches
	textWidth = 8.27 / 1.7   // inches
)

// bpScales converts one unit to big points. Percentage units are keyed
// with their "%" suffix.
var bpScales = map[string]float64{
	"bp":            1.0,
	"cc":            72.0 / (72.27 / (12.0 * 0.376 * 2.845)),
	"cm":            72.0 / 2.54,
	"dd":            72.0 / (72.27 / (0.376 * 2.845)),
	"em":            72.0 * emWidth,
	"ex":            72.0 * emWidth * 0.4305,
	"in":            72.0,
	"mm":            72.0 / 25.4,
	"mu":            72.0 * emWidth / 18.0,
	"pc":            72.0 / (72.27 / 12.0),
	"pt":            72.0 / 72.27,
	"sp":            72.0 / (72.27 * 65536.0),
	"text%":         72.0 * textWidth / 100.0,
	"col%":          72.0 * textWidth / 100.0, // one column
	"page%":         72.0 * textWidth * 1.7 / 100.0,
	"line%":         72.0 * textWidth / 100.0,
	"theight%":      72.0 * textWidth * 1.787 / 100.0,
	"pheight%":      72.0 * textWidth * 2.2 / 100.0,
	"baselineskip%": 12.0 * 72.0 / 72.27 / 100.0, // 12pt baseline for a 10pt font
}

// InBP converts a length to big points (1/72 inch) and formats it with
// six significant digits, e.g. InBP("1in") == "72".
func InBP(s string) (string, error) {
	spec, err := Parse(s)
	if err != nil {
		return "", err
	}

	key := spec.Unit
	if spec.Percent {
		key += "%"
	}
	scale, ok := bpScales[key]
	if !ok {
		return "", errors.NewUnknownUnit(spec.Unit, s, spec.Percent)
	}

	v, err := strconv.ParseFloat(spec.Sign+spec.Magnitude, 64)
	if err != nil {
		return "", errors.NewMalformedLength(s, err)
	}
	return fmt.Sprintf("%.6g", v*scale), nil
}
