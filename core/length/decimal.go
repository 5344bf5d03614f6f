package length

import "strings"

// shiftLeft2 divides an unsigned decimal string by 100 by moving its
// decimal point two places left. Leading zeros of the integer part and
// trailing zeros of the fraction are dropped, so no digit of the source
// is lost and no zero is invented: "30.5" -> "0.305", "35" -> "0.35",
// "100" -> "1", ".5" -> "0.005".
func shiftLeft2(mag string) string {
	intPart, fracPart, _ := strings.Cut(mag, ".")
	digits := intPart + fracPart
	point := len(intPart) - 2

	var whole, frac string
	if point <= 0 {
		whole = "0"
		frac = strings.Repeat("0", -point) + digits
	} else {
		whole = digits[:point]
		frac = digits[point:]
	}

	whole = strings.TrimLeft(whole, "0")
	if whole == "" {
		whole = "0"
	}
	frac = strings.TrimRight(frac, "0")
	if frac == "" {
		return whole
	}
	return whole + "." + frac
}
