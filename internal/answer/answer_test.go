package answer

import "testing"

func TestCheck(t *testing.T) {
	tests := []struct {
		name      string
		learner   string
		reference string
		want      bool
	}{
		{"exact", "6x+2", "6x+2", true},
		{"spacing", " 6x + 2 ", "6x+2", true},
		{"case", "6X+2", "6x+2", true},
		{"lhs on reference", "6x + 2", "f'(x) = 6x + 2", true},
		{"lhs on learner", "f'(x)=6x+2", "6x+2", true},
		{"commuted sum", "2 + 6x", "f'(x) = 6x + 2", true},
		{"wrong coefficient", "6x + 3", "f'(x) = 6x + 2", false},
		{"superscript", "3x²+2x-5", "3x^2 + 2x - 5", true},
		{"unicode minus", "−5", "-5", true},
		{"explicit times", "6*x+2", "6x+2", true},
		{"integer leading zero", "007", "7", true},
		{"decimal trailing zero", "3.50", "3.5", true},
		{"fraction equivalence", "2/4", "1/2", true},
		{"decimal vs fraction", "0.5", "1/2", true},
		{"negative fraction", "-3/6", "-1/2", true},
		{"wrong number", "43", "42", false},
		{"number vs expression", "42", "x+42", false},
		{"empty", "", "42", false},
		{"whitespace only", "   ", "42", false},
		{"assignment", "x = 3", "3", true},
		{"sign matters", "6x-2", "6x+2", false},
		{"less-or-equal vs greater-or-equal", "x <= 2", "x >= 2", false},
		{"not-equal vs equal", "x != 3", "x = 3", false},
		{"unicode relation", "x ≤ 2", "x<=2", true},
		{"unicode not-equal", "x ≠ 3", "x != 3", true},
		{"relation kept", "x >= 2", "2", false},
		{"hex prefix", "0x6", "6", false},
		{"octal prefix", "0o7", "7", false},
		{"different lhs", "y = 5", "x = 5", false},
		{"same lhs", "y=5", "y = 5.0", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Check(tc.learner, tc.reference)
			if got != tc.want {
				t.Errorf("Check(%q, %q) = %v, want %v", tc.learner, tc.reference, got, tc.want)
			}
		})
	}
}

func TestCheck_Deterministic(t *testing.T) {
	for i := 0; i < 50; i++ {
		if !Check("6x + 2", "f'(x) = 6x + 2") {
			t.Fatalf("iteration %d: expected correct verdict", i)
		}
		if Check("6x", "f'(x) = 6x + 2") {
			t.Fatalf("iteration %d: expected incorrect verdict", i)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  3x² + 2x − 5 ", "3x^2+2x-5"},
		{"f'(x) = 6x + 2", "6x+2"},
		{"x¹⁰", "x^10"},
		{"a = b = c", "a=b=c"},
		{"+4", "4"},
		{"x ≥ 2", "x>=2"},
		{"x <= 2", "x<=2"},
		{"x != 3", "x!=3"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCheckerFunc(t *testing.T) {
	var calls int
	c := CheckerFunc(func(l, r string) bool {
		calls++
		return l == r
	})
	if !c.Check("a", "a") || c.Check("a", "b") {
		t.Error("CheckerFunc did not delegate")
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}
