package params

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// LargeCoordShiftDeg is the pointing shift, in degrees, beyond which a
// coordinate change needs coordinator attention.
const LargeCoordShiftDeg = 0.1333

// RAToHMS renders a right ascension in degrees as hh:mm:ss.ssss.
func RAToHMS(deg float64) string {
	deg = math.Mod(math.Mod(deg, 360)+360, 360)
	hours := deg / 15.0
	h := int(hours)
	minutes := (hours - float64(h)) * 60
	m := int(minutes)
	s := (minutes - float64(m)) * 60
	if s >= 59.99995 {
		s = 0
		m++
	}
	if m >= 60 {
		m = 0
		h++
	}
	if h >= 24 {
		h = 0
	}
	return fmt.Sprintf("%02d:%02d:%07.4f", h, m, s)
}

// DecToDMS renders a declination in degrees as +dd:mm:ss.ssss with an
// explicit sign.
func DecToDMS(deg float64) string {
	sign := "+"
	if deg < 0 {
		sign = "-"
		deg = -deg
	}
	d := int(deg)
	minutes := (deg - float64(d)) * 60
	m := int(minutes)
	s := (minutes - float64(m)) * 60
	if s >= 59.99995 {
		s = 0
		m++
	}
	if m >= 60 {
		m = 0
		d++
	}
	return fmt.Sprintf("%s%02d:%02d:%07.4f", sign, d, m, s)
}

// HMSToRA parses hh:mm:ss or hh mm ss right ascension into degrees.
func HMSToRA(s string) (float64, error) {
	parts, err := splitSexagesimal(s)
	if err != nil {
		return 0, err
	}
	return (parts[0] + parts[1]/60 + parts[2]/3600) * 15, nil
}

// DMSToDec parses +dd:mm:ss or dd mm ss declination into degrees.
func DMSToDec(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	negative := strings.HasPrefix(trimmed, "-")
	trimmed = strings.TrimLeft(trimmed, "+-")
	parts, err := splitSexagesimal(trimmed)
	if err != nil {
		return 0, err
	}
	deg := parts[0] + parts[1]/60 + parts[2]/3600
	if negative {
		deg = -deg
	}
	return deg, nil
}

func splitSexagesimal(s string) ([3]float64, error) {
	var out [3]float64
	fields := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return r == ':' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 || len(fields) > 3 {
		return out, fmt.Errorf("not a sexagesimal angle: %q", s)
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return out, fmt.Errorf("not a sexagesimal angle: %q", s)
		}
		out[i] = v
	}
	return out, nil
}

// IsLargeCoordShift reports whether the pointing moved far enough from the
// original to warrant a coordinate-shift flag. The comparison is a plain
// coordinate-plane distance, which overestimates near the poles but matches
// how coordinators eyeball the shift.
func IsLargeCoordShift(newRA, newDec, origRA, origDec float64) bool {
	diff := math.Sqrt((origRA-newRA)*(origRA-newRA) + (origDec-newDec)*(origDec-newDec))
	return diff > LargeCoordShiftDeg
}
