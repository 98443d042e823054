package core

// Lightweight number formatting for debug output. The fmt package pulls
// in reflection, which is too heavy for the embedded targets, so the
// few conversions the firmware needs are done by hand.

// Itoa converts a signed integer to a string.
func Itoa(n int) string {
	if n == 0 {
		return "0"
	}

	negative := n < 0
	if negative {
		n = -n
	}

	temp := n
	digits := 0
	for temp > 0 {
		digits++
		temp /= 10
	}
	if negative {
		digits++
	}

	buf := make([]byte, digits)
	pos := digits - 1
	for n > 0 {
		buf[pos] = byte('0' + n%10)
		n /= 10
		pos--
	}
	if negative {
		buf[0] = '-'
	}
	return string(buf)
}

// Utoa converts an unsigned integer to a string.
func Utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	temp := n
	digits := 0
	for temp > 0 {
		digits++
		temp /= 10
	}

	buf := make([]byte, digits)
	pos := digits - 1
	for n > 0 {
		buf[pos] = byte('0' + n%10)
		n /= 10
		pos--
	}
	return string(buf)
}

// Ftoa converts a float to a string with the given number of fraction
// digits. Good enough for CV values and frequencies; not a general
// formatter.
func Ftoa(x float32, fracDigits int) string {
	neg := x < 0
	if neg {
		x = -x
	}

	scale := 1
	for i := 0; i < fracDigits; i++ {
		scale *= 10
	}

	// Round to the requested precision.
	scaled := int(x*float32(scale) + 0.5)
	whole := scaled / scale
	frac := scaled % scale

	s := Itoa(whole)
	if neg {
		s = "-" + s
	}
	if fracDigits == 0 {
		return s
	}

	fs := Itoa(frac)
	for len(fs) < fracDigits {
		fs = "0" + fs
	}
	return s + "." + fs
}
