package layout

import (
	"strconv"
	"strings"
)

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// Unit is the unit a deck author attached to a number.
type Unit int

const (
	UnitNone Unit = iota
	UnitMM
	UnitPT
	UnitPercent
)

// Length keeps a number together with the unit it was written in.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// ToMM converts the length to millimetres. Unit-less numbers are already mm;
// percentages resolve against reference.
func (l Length) ToMM(reference float64) float64 {
	switch l.Unit {
	case UnitPT:
		return l.Value * PtToMm
	case UnitPercent:
		return reference * l.Value / 100
	default:
		return l.Value
	}
}

// ToPT converts the length to points. Unit-less numbers are already pt, which
// is how font sizes are written.
func (l Length) ToPT() float64 {
	switch l.Unit {
	case UnitMM:
		return l.Value * MmToPt
	default:
		return l.Value
	}
}

// ParseLength parses values such as "180", "180mm", "24pt" or "50%".
// ok is false when value is not a number.
func ParseLength(value string) (Length, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, false
	}
	unit := UnitNone
	for _, suf := range []struct {
		s string
		u Unit
	}{{"mm", UnitMM}, {"pt", UnitPT}, {"%", UnitPercent}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			v = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return Length{}, false
	}
	return Length{Value: f, Unit: unit}, true
}

func toMM(pt float64) float64 { return pt * PtToMm }
