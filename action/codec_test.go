package action

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for v := Noop; v < NumVerbs; v++ {
		for arg := 0; arg < 25; arg++ {
			b := Encode(v, arg)
			got := Decode(b)
			if got.Verb != v || got.Arg != arg {
				t.Fatalf("roundtrip failed for verb=%d arg=%d: got verb=%d arg=%d", v, arg, got.Verb, got.Arg)
			}
		}
	}
}

func TestEncodeMatchesFormula(t *testing.T) {
	if got := Encode(Attack, 3); got != 2*25+3 {
		t.Fatalf("expected verb*25+arg, got %d", got)
	}
}
