package play

import "testing"

func strPtr(v string) *string { return &v }

func TestNormalizeFormation(t *testing.T) {
	tests := []struct {
		name string
		raw  *string
		want *string
	}{
		{name: "nil input", raw: nil, want: nil},
		{name: "empty input", raw: strPtr(""), want: nil},
		{name: "whitespace input", raw: strPtr("   "), want: nil},
		{name: "trips right wins over fallback", raw: strPtr("Trips Right Heavy"), want: strPtr("Trips Right")},
		{name: "trips right lower case", raw: strPtr("  trips rt right "), want: strPtr("Trips Right")},
		{name: "trips left", raw: strPtr("TRIPS LEFT OPEN"), want: strPtr("Trips Left")},
		{name: "trips with both sides takes right", raw: strPtr("trips left right"), want: strPtr("Trips Right")},
		{name: "doubles", raw: strPtr("doubles tight"), want: strPtr("Doubles")},
		{name: "double singular", raw: strPtr("Double Wing"), want: strPtr("Doubles")},
		{name: "fallback title case", raw: strPtr("i-form"), want: strPtr("I-Form")},
		{name: "fallback lowers shouting", raw: strPtr("  SHOTGUN EMPTY "), want: strPtr("Shotgun Empty")},
		{name: "trips without side falls back", raw: strPtr("trips"), want: strPtr("Trips")},
		{name: "fallback collapses inner whitespace", raw: strPtr("shotgun  \tempty"), want: strPtr("Shotgun Empty")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeFormation(tc.raw)
			if tc.want == nil {
				if got != nil {
					t.Fatalf("expected nil, got %q", *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected %q, got nil", *tc.want)
			}
			if *got != *tc.want {
				t.Fatalf("unexpected formation: got=%q want=%q", *got, *tc.want)
			}
		})
	}
}

func TestNormalizeFormation_Idempotent(t *testing.T) {
	inputs := []string{"Trips Right", "Trips Left", "Doubles", "I-Form", "Shotgun Empty", "Pistol"}
	for _, in := range inputs {
		first := NormalizeFormation(strPtr(in))
		if first == nil {
			t.Fatalf("expected label for %q", in)
		}
		second := NormalizeFormation(first)
		if second == nil || *second != *first {
			t.Fatalf("normalization not idempotent for %q: first=%q second=%v", in, *first, second)
		}
		if *first != in {
			t.Fatalf("canonical label %q changed to %q", in, *first)
		}
	}
}

func TestNormalizePlayType(t *testing.T) {
	if got := NormalizePlayType(strPtr(" Run ")); got == nil || *got != TypeRun {
		t.Fatalf("expected run, got %v", got)
	}
	if got := NormalizePlayType(strPtr("PASS")); got == nil || *got != TypePass {
		t.Fatalf("expected pass, got %v", got)
	}
	if got := NormalizePlayType(strPtr("  ")); got != nil {
		t.Fatalf("expected nil for blank play type, got %q", *got)
	}
	if got := NormalizePlayType(nil); got != nil {
		t.Fatalf("expected nil for nil play type")
	}
}
