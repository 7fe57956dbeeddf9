package convert

import (
	"strconv"
	"strings"
)

var lengthUnits = []string{"em", "ex", "px", "in", "cm", "mm", "pt", "pc"}

var (
	LengthOrUnitless             = named("length_or_unitless", lengthOrUnitless)
	LengthOrPercentageOrUnitless = named("length_or_percentage_or_unitless", lengthOrPercentageOrUnitless)
)

// measure checks that s is a non-negative number followed by one of units
// (spaces between the two are allowed) and returns it without the spaces.
func measure(s string, units []string) (string, error) {
	s = strings.TrimSpace(s)
	num := s
	unit := ""
	for _, u := range units {
		if u != "" && strings.HasSuffix(s, u) {
			num, unit = strings.TrimRight(s[:len(s)-len(u)], " "), u
			break
		}
	}
	if unit == "" && !contains(units, "") {
		return "", measureError(units)
	}
	if num == "" || strings.Trim(num, "0123456789.") != "" {
		return "", measureError(units)
	}
	if _, err := strconv.ParseFloat(num, 64); err != nil {
		return "", measureError(units)
	}
	return num + unit, nil
}

func measureError(units []string) error {
	quoted := make([]string, len(units))
	for i, u := range units {
		quoted[i] = `"` + u + `"`
	}
	return fail("not a positive measure of one of the following units:\n%s", strings.Join(quoted, " "))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func lengthOrUnitless(arg *string) (any, error) {
	s, err := required(arg)
	if err != nil {
		return nil, err
	}
	return measure(s, append(append([]string{}, lengthUnits...), ""))
}

func lengthOrPercentageOrUnitless(arg *string) (any, error) {
	s, err := required(arg)
	if err != nil {
		return nil, err
	}
	units := append(append([]string{}, lengthUnits...), "%")
	if v, err := measure(s, units); err == nil {
		return v, nil
	}
	if v, err := measure(s, []string{""}); err == nil {
		return v, nil
	}
	return nil, measureError(append(units, ""))
}
