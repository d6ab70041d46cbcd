package layout

import (
	"strconv"
	"strings"
)

// Unit is the unit a template length was written in.
type Unit int

const (
	UnitNone Unit = iota
	UnitMM
	UnitCM
	UnitIN
	UnitPT
)

// PtToMm converts typographic points to millimetres.
const PtToMm = 25.4 / 72

var unitSuffixes = []struct {
	suffix string
	unit   Unit
}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}}

func (u Unit) String() string {
	for _, s := range unitSuffixes {
		if s.unit == u {
			return s.suffix
		}
	}
	return ""
}

// Length is a template length such as `30mm`.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// ToMM converts to millimetres; unit-less values count as millimetres.
func (l Length) ToMM() float64 {
	switch l.Unit {
	case UnitCM:
		return l.Value * 10
	case UnitIN:
		return l.Value * 25.4
	case UnitPT:
		return l.Value * PtToMm
	}
	return l.Value
}

// ParseRawLengthStr parses "30mm", "2.5cm", "1in", "72pt" or a bare number.
// Unparseable input yields the zero Length.
func ParseRawLengthStr(value string) Length {
	num := strings.ToLower(strings.TrimSpace(value))
	unit := UnitNone
	for _, s := range unitSuffixes {
		if strings.HasSuffix(num, s.suffix) {
			unit = s.unit
			num = strings.TrimSpace(strings.TrimSuffix(num, s.suffix))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}
	}
	return Length{Value: f, Unit: unit}
}
