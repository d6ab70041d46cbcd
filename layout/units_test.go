package layout

import (
	"math"
	"testing"
)

func TestParseRawLengthStr(t *testing.T) {
	tests := []struct {
		in     string
		wantMM float64
		unit   Unit
	}{
		{"30mm", 30, UnitMM},
		{"2.5cm", 25, UnitCM},
		{"1in", 25.4, UnitIN},
		{" 72PT ", 25.4, UnitPT},
		{"12", 12, UnitNone},
		{"abc", 0, UnitNone},
		{"", 0, UnitNone},
	}
	for _, tt := range tests {
		l := ParseRawLengthStr(tt.in)
		if l.Unit != tt.unit {
			t.Fatalf("%q: unit %q, want %q", tt.in, l.Unit, tt.unit)
		}
		if diff := math.Abs(l.ToMM() - tt.wantMM); diff > 1e-9 {
			t.Fatalf("%q: %gmm, want %gmm", tt.in, l.ToMM(), tt.wantMM)
		}
	}
}

func TestUnitString(t *testing.T) {
	if got := UnitCM.String(); got != "cm" {
		t.Fatalf("UnitCM = %q", got)
	}
	if got := UnitNone.String(); got != "" {
		t.Fatalf("UnitNone = %q", got)
	}
}
