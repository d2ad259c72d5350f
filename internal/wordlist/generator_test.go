package wordlist

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"
)

// testOptions returns options with a fixed year range so tests do not
// depend on the current date.
func testOptions() Options {
	opts := DefaultOptions()
	opts.Years = YearRange{Start: 2023, End: 2025}
	return opts
}

// newTestGenerator creates a generator from opts, failing the test on error.
func newTestGenerator(t *testing.T, opts Options) *Generator {
	t.Helper()

	g, err := NewGenerator(opts)
	if err != nil {
		t.Fatalf("failed to create generator: %v", err)
	}
	return g
}

// generate runs Generate and returns the entries, failing the test on error.
func generate(t *testing.T, g *Generator, tokens []string, maxSize int) []string {
	t.Helper()

	wl, err := g.Generate(tokens, maxSize)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	return wl.Entries()
}

// TestGenerateExampleTokens tests the name + year scenario.
func TestGenerateExampleTokens(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, testOptions())
	entries := generate(t, g, []string{"vaishnav", "2004"}, 30000)

	for _, want := range []string{
		"vaishnav",
		"Vaishnav",
		"VAISHNAV",
		"v415hn4v",
		"v4ishn4v",
		"vaishnav2004",
		"vaishnav_2004",
		"Vaishnav2004!",
		"vaishnav123",
		"vaishnav2024",
	} {
		if !slices.Contains(entries, want) {
			t.Errorf("expected %q in generated wordlist", want)
		}
	}

	// Plain case variants come first.
	if entries[0] != "vaishnav" || entries[1] != "VAISHNAV" || entries[2] != "Vaishnav" {
		t.Errorf("unexpected leading entries: %v", entries[:3])
	}
}

// TestGenerateDeterminism tests that identical inputs give identical output.
func TestGenerateDeterminism(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, testOptions())
	tokens := []string{"alice", "london", "1990", "tennis"}

	first := generate(t, g, tokens, 5000)
	second := generate(t, g, tokens, 5000)

	if !slices.Equal(first, second) {
		t.Error("expected identical output for identical input")
	}

	other := newTestGenerator(t, testOptions())
	if !slices.Equal(first, generate(t, other, tokens, 5000)) {
		t.Error("expected identical output from a second generator with the same options")
	}
}

// TestGenerateCapAndUniqueness tests the cap and the no-duplicates invariant.
func TestGenerateCapAndUniqueness(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, testOptions())
	tokens := []string{"bob", "smith", "2001", "paris"}

	for _, n := range []int{1, 2, 7, 100, 1234, 20000} {
		entries := generate(t, g, tokens, n)
		if len(entries) > n {
			t.Errorf("cap %d: got %d entries", n, len(entries))
		}

		seen := make(map[string]bool, len(entries))
		for _, e := range entries {
			if seen[e] {
				t.Errorf("cap %d: duplicate entry %q", n, e)
			}
			seen[e] = true
		}
	}
}

// TestGeneratePrefixProperty tests that a smaller cap yields a prefix of a larger one.
func TestGeneratePrefixProperty(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, testOptions())
	tokens := []string{"maria", "rex", "1985"}

	full := generate(t, g, tokens, 10000)
	for _, n := range []int{1, 3, 10, 57, 500, 2000} {
		part := generate(t, g, tokens, n)
		if len(part) > len(full) || !slices.Equal(part, full[:len(part)]) {
			t.Errorf("cap %d: output is not a prefix of the larger output", n)
		}
	}
}

// TestGenerateMaxSize tests handling of non-positive caps.
func TestGenerateMaxSize(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, testOptions())

	for _, n := range []int{0, -1} {
		wl, err := g.Generate([]string{"alice"}, n)
		if !errors.Is(err, ErrInvalidMaxSize) {
			t.Errorf("cap %d: expected ErrInvalidMaxSize, got %v", n, err)
		}
		if wl == nil || wl.Len() != 0 {
			t.Errorf("cap %d: expected empty non-nil wordlist", n)
		}
	}
}

// TestGenerateEmptyTokens tests that no tokens produce no candidates.
func TestGenerateEmptyTokens(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, testOptions())

	for _, tokens := range [][]string{nil, {}, {"", "   ", "\t"}} {
		if entries := generate(t, g, tokens, 100); len(entries) != 0 {
			t.Errorf("tokens %q: expected empty wordlist, got %v", tokens, entries)
		}
	}
}

// TestGenerateSingleToken tests that one token yields no pairwise concatenation.
func TestGenerateSingleToken(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, testOptions())

	t.Run("tiny cap", func(t *testing.T) {
		t.Parallel()

		entries := generate(t, g, []string{"x"}, 5)
		want := []string{"x", "X", "x!", "x@", "x#"}
		if !slices.Equal(entries, want) {
			t.Errorf("expected %v, got %v", want, entries)
		}
	})

	t.Run("every entry derives from the token", func(t *testing.T) {
		t.Parallel()

		entries := generate(t, g, []string{"x"}, 10000)
		// 2 case variants, each with 10 suffixes and 3 years.
		if len(entries) != 2+2*10+2*3 {
			t.Errorf("expected %d entries, got %d", 2+2*10+2*3, len(entries))
		}
		for _, e := range entries {
			if !strings.HasPrefix(strings.ToLower(e), "x") {
				t.Errorf("entry %q does not derive from token", e)
			}
			for _, sep := range []string{"x_x", "xx", "x-x", "x.x"} {
				if strings.EqualFold(e, sep) {
					t.Errorf("unexpected pairwise entry %q", e)
				}
			}
		}
	})
}

// TestGenerateNonAlphabeticToken tests tokens without letters.
func TestGenerateNonAlphabeticToken(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, testOptions())
	entries := generate(t, g, []string{"1999"}, 1000)

	if entries[0] != "1999" {
		t.Errorf("expected plain token first, got %q", entries[0])
	}
	if !slices.Contains(entries, "1999!") || !slices.Contains(entries, "19992024") {
		t.Error("expected suffix and year variants for a numeric token")
	}
	// One case variant, no leet, 10 suffixes, 3 years.
	if len(entries) != 1+10+3 {
		t.Errorf("expected 14 entries, got %d: %v", len(entries), entries)
	}
}

// TestGenerateStageOrdering tests that speculative stages come after plain variants.
func TestGenerateStageOrdering(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, testOptions())
	entries := generate(t, g, []string{"tom", "1980"}, 100000)

	pos := func(s string) int {
		i := slices.Index(entries, s)
		if i < 0 {
			t.Fatalf("expected %q in output", s)
		}
		return i
	}

	if !(pos("Tom") < pos("70m")) {
		t.Error("expected case variants before leet variants")
	}
	if !(pos("70m") < pos("tom1980")) {
		t.Error("expected leet variants before pairwise concatenation")
	}
	if !(pos("tom1980") < pos("tom_1980")) {
		t.Error("expected empty separator before underscore")
	}
	if !(pos("tom_1980") < pos("70m1980")) {
		t.Error("expected plain pairs before leet pairs")
	}
	if !(pos("70m.1980") < pos("tom!")) {
		t.Error("expected pairwise concatenation before suffixes")
	}
	if !(pos("tom!") < pos("tom1980!")) {
		t.Error("expected single-token suffixes before pair suffixes")
	}
}

// TestGenerateLengthFilter tests the min/max length filter.
func TestGenerateLengthFilter(t *testing.T) {
	t.Parallel()

	opts := testOptions()
	opts.MinLength = 6
	opts.MaxLength = 10
	g := newTestGenerator(t, opts)

	entries := generate(t, g, []string{"ann", "1990"}, 50000)
	if len(entries) == 0 {
		t.Fatal("expected candidates")
	}
	for _, e := range entries {
		if n := len([]rune(e)); n < 6 || n > 10 {
			t.Errorf("entry %q violates length bounds", e)
		}
	}
	// Filtered bases still feed the suffix stage.
	if !slices.Contains(entries, "ann123") {
		t.Error("expected short base to be augmented with suffixes")
	}
	if slices.Contains(entries, "ann") {
		t.Error("expected short base itself to be filtered")
	}
}

// TestGenerateLongTokensBounded tests that tokens longer than MaxLength do
// not expand into combinations that can never be emitted.
func TestGenerateLongTokensBounded(t *testing.T) {
	opts := testOptions()
	opts.MinLength = 6
	opts.MaxLength = 20
	g := newTestGenerator(t, opts)

	tokens := make([]string, 0, 40)
	for i := range 40 {
		tokens = append(tokens, fmt.Sprintf("personal site of tester number %02d", i))
	}

	var entries []string
	allocs := testing.AllocsPerRun(1, func() {
		entries = generate(t, g, tokens, 50000)
	})
	if len(entries) != 0 {
		t.Errorf("expected no candidates within 20 characters, got %d", len(entries))
	}
	if allocs > 20000 {
		t.Errorf("expected generation to stay small, got %.0f allocations", allocs)
	}
}

// TestGenerateLongTokensDoNotChangeOutput tests that an over-long token
// leaves the candidates of the other tokens untouched.
func TestGenerateLongTokensDoNotChangeOutput(t *testing.T) {
	t.Parallel()

	opts := testOptions()
	opts.MinLength = 6
	opts.MaxLength = 20
	g := newTestGenerator(t, opts)

	want := generate(t, g, []string{"vaishnav", "2004"}, 50000)
	got := generate(t, g, []string{"vaishnav", "personal site of tester number 01", "2004"}, 50000)
	if !slices.Equal(got, want) {
		t.Errorf("expected %d candidates unchanged, got %d", len(want), len(got))
	}
}

// TestNormalize tests whitespace and control character handling.
func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"trims and lowercases", []string{"  Alice "}, []string{"alice"}},
		{"collapses inner whitespace", []string{"John\n    Smith"}, []string{"john smith"}},
		{"tabs and carriage returns", []string{"a\t\tb\r\n"}, []string{"a b"}},
		{"drops control characters", []string{"ja\x00ne\x1b"}, []string{"jane"}},
		{"control between words", []string{"john \x00 smith", "ann\nlee"}, []string{"john smith", "ann lee"}},
		{"whitespace only", []string{"\t\n "}, []string{}},
		{"duplicates after collapsing", []string{"john smith", "John  Smith"}, []string{"john smith"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Normalize(tt.input); !slices.Equal(got, tt.want) {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestGenerateNoLineBreaks tests that multi-line tokens yield single-line candidates.
func TestGenerateNoLineBreaks(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, testOptions())
	for _, e := range generate(t, g, []string{"John\n    Smith", "rex"}, 5000) {
		if strings.ContainsAny(e, "\r\n") {
			t.Fatalf("candidate %q contains a line break", e)
		}
	}
}

// TestGenerateNormalizesTokens tests token normalization.
func TestGenerateNormalizesTokens(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, testOptions())
	a := generate(t, g, []string{"  Alice ", "ALICE", "alice"}, 1000)
	b := generate(t, g, []string{"alice"}, 1000)

	if !slices.Equal(a, b) {
		t.Error("expected duplicate and differently cased tokens to collapse")
	}
}

// TestAllStopsEarly tests that the stream stops when the consumer stops.
func TestAllStopsEarly(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, testOptions())

	var got []string
	for c := range g.All([]string{"alice", "bob"}, 1000) {
		got = append(got, c)
		if len(got) == 4 {
			break
		}
	}
	if len(got) != 4 {
		t.Errorf("expected 4 candidates, got %d", len(got))
	}

	count := 0
	for range g.All([]string{"alice"}, 0) {
		count++
	}
	if count != 0 {
		t.Errorf("expected no candidates for zero cap, got %d", count)
	}
}

// TestNewGeneratorValidation tests option validation.
func TestNewGeneratorValidation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		mutate  func(o *Options)
		wantErr error
	}{
		{"no separators", func(o *Options) { o.Separators = nil }, ErrNoSeparators},
		{"no suffixes", func(o *Options) { o.Suffixes = []string{} }, ErrNoSuffixes},
		{"inverted years", func(o *Options) { o.Years = YearRange{Start: 2025, End: 2020} }, ErrInvalidYearRange},
		{"zero years", func(o *Options) { o.Years = YearRange{} }, ErrInvalidYearRange},
		{"empty leet entry", func(o *Options) { o.Leet = LeetMap{'a': nil} }, ErrInvalidLeetMap},
		{"negative min length", func(o *Options) { o.MinLength = -1 }, ErrInvalidLengthBounds},
		{"inverted length", func(o *Options) { o.MinLength = 10; o.MaxLength = 5 }, ErrInvalidLengthBounds},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			opts := testOptions()
			tc.mutate(&opts)
			if _, err := NewGenerator(opts); !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}

	t.Run("only empty separator is valid", func(t *testing.T) {
		t.Parallel()

		opts := testOptions()
		opts.Separators = []string{""}
		if _, err := NewGenerator(opts); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

// TestGeneratorCopiesOptions tests that caller mutations do not leak into a generator.
func TestGeneratorCopiesOptions(t *testing.T) {
	t.Parallel()

	opts := testOptions()
	g := newTestGenerator(t, opts)
	before := generate(t, g, []string{"kim", "2000"}, 3000)

	opts.Separators[0] = "#"
	opts.Suffixes[0] = "zzz"
	opts.Leet['a'] = []string{"^"}

	after := generate(t, g, []string{"kim", "2000"}, 3000)
	if !slices.Equal(before, after) {
		t.Error("expected generator to be unaffected by option mutation")
	}
}
