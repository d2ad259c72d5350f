package wordlist

import (
	"iter"
	"maps"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/nao1215/psawg/internal/model"
)

// Generator expands metadata tokens into candidate passwords.
// A Generator is immutable after construction and safe for concurrent use.
type Generator struct {
	opts     Options
	leetKeys []rune
	years    []string
}

// NewGenerator validates opts and returns a Generator using a private copy of them.
func NewGenerator(opts Options) (*Generator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	leet := make(LeetMap, len(opts.Leet))
	for k, v := range opts.Leet {
		leet[k] = slices.Clone(v)
	}
	opts.Leet = leet
	opts.Separators = slices.Clone(opts.Separators)
	opts.Suffixes = slices.Clone(opts.Suffixes)

	return &Generator{
		opts:     opts,
		leetKeys: leet.keys(),
		years:    opts.Years.Years(),
	}, nil
}

// Options returns a copy of the generator's options.
func (g *Generator) Options() Options {
	o := g.opts
	o.Separators = slices.Clone(o.Separators)
	o.Suffixes = slices.Clone(o.Suffixes)
	o.Leet = maps.Clone(o.Leet)
	return o
}

// Generate returns at most maxSize unique candidates derived from tokens.
//
// An empty token set yields an empty wordlist. A maxSize <= 0 yields an
// empty wordlist together with ErrInvalidMaxSize.
func (g *Generator) Generate(tokens []string, maxSize int) (*model.Wordlist, error) {
	wl := model.NewWordlist(maxSize)
	if maxSize <= 0 {
		return wl, ErrInvalidMaxSize
	}
	for candidate := range g.All(tokens, maxSize) {
		wl.Add(candidate)
	}
	return wl, nil
}

// All streams the same sequence Generate would return, producing each
// candidate only when the consumer asks for it. Generation halts when
// maxSize candidates have been yielded or the consumer stops ranging.
func (g *Generator) All(tokens []string, maxSize int) iter.Seq[string] {
	return func(yield func(string) bool) {
		if maxSize <= 0 {
			return
		}
		s := &stream{
			g:     g,
			seen:  make(map[string]struct{}),
			limit: maxSize,
			yield: yield,
			upper: cases.Upper(language.Und),
			title: cases.Title(language.Und),
		}
		s.run(Normalize(tokens))
	}
}

// Normalize collapses whitespace runs to one space, drops control
// characters, NFC-normalizes and lowercases tokens, dropping empty ones and
// later duplicates.
func Normalize(tokens []string) []string {
	lower := cases.Lower(language.Und)
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		t = strings.Join(strings.Fields(strings.Map(dropControl, t)), " ")
		if t == "" {
			continue
		}
		t = lower.String(norm.NFC.String(t))
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// dropControl is a strings.Map function removing control characters other
// than whitespace, which strings.Fields handles.
func dropControl(r rune) rune {
	if unicode.IsControl(r) && !unicode.IsSpace(r) {
		return -1
	}
	return r
}

// stream holds the state of one generation run.
type stream struct {
	g *Generator

	// seen holds every distinct string produced so far within MaxLength,
	// emitted or filtered.
	seen map[string]struct{}

	// bases are the distinct stage 2-4 strings, in generation order.
	bases []string

	emitted int
	limit   int
	yield   func(string) bool

	// cases.Caser keeps internal state, so each run owns its own.
	upper cases.Caser
	title cases.Caser
}

// offer records candidate and yields it if it is new and passes the length
// filter. It returns false once generation must stop.
//
// Later stages only append to a string, so a candidate longer than
// MaxLength is dropped without being recorded or kept as a base.
func (s *stream) offer(candidate string, isBase bool) bool {
	if s.g.opts.tooLong(utf8.RuneCountInString(candidate)) {
		return true
	}
	if _, ok := s.seen[candidate]; ok {
		return true
	}
	s.seen[candidate] = struct{}{}
	if isBase {
		s.bases = append(s.bases, candidate)
	}
	if !s.g.opts.fits(candidate) {
		return true
	}
	if !s.yield(candidate) {
		return false
	}
	s.emitted++
	return s.emitted < s.limit
}

// run drives the stages in priority order.
func (s *stream) run(tokens []string) {
	if len(tokens) == 0 {
		return
	}

	caseVariants := make([][]string, len(tokens))
	for i, t := range tokens {
		caseVariants[i] = s.caseVariants(t)
		for _, v := range caseVariants[i] {
			if !s.offer(v, true) {
				return
			}
		}
	}

	allVariants := make([][]string, len(tokens))
	for i, variants := range caseVariants {
		allVariants[i] = slices.Clone(variants)
		for _, v := range variants {
			// Substitutes are never empty, so leet forms are at least as long.
			if s.g.opts.tooLong(utf8.RuneCountInString(v)) {
				continue
			}
			for _, l := range s.g.leetVariants(v) {
				allVariants[i] = appendUnique(allVariants[i], l)
				if !s.offer(l, true) {
					return
				}
			}
		}
	}

	caseVariants = s.g.opts.pruneLong(caseVariants)
	allVariants = s.g.opts.pruneLong(allVariants)
	if !s.pairs(caseVariants) || !s.pairs(allVariants) {
		return
	}

	// Only stage 2-4 strings are augmented; bases does not grow below.
	for _, base := range s.bases {
		for _, suffix := range s.g.opts.Suffixes {
			if !s.offer(base+suffix, false) {
				return
			}
		}
		for _, year := range s.g.years {
			if !s.offer(base+year, false) {
				return
			}
		}
	}
}

// caseVariants returns lower, UPPER and Capitalized forms of a lowercase
// token, without duplicates.
func (s *stream) caseVariants(token string) []string {
	variants := []string{token}
	variants = appendUnique(variants, s.upper.String(token))
	variants = appendUnique(variants, s.title.String(token))
	return variants
}

// pairs joins variants of distinct tokens with every separator.
// Separators are the outer loop so plain concatenations come first.
// Combinations longer than MaxLength are skipped before they are built.
func (s *stream) pairs(variants [][]string) bool {
	lengths := make([][]int, len(variants))
	for i, vs := range variants {
		lengths[i] = make([]int, len(vs))
		for k, v := range vs {
			lengths[i][k] = utf8.RuneCountInString(v)
		}
	}

	for _, sep := range s.g.opts.Separators {
		sepLen := utf8.RuneCountInString(sep)
		for i := range variants {
			for j := range variants {
				if i == j {
					continue
				}
				for ka, a := range variants[i] {
					for kb, b := range variants[j] {
						if s.g.opts.tooLong(lengths[i][ka] + sepLen + lengths[j][kb]) {
							continue
						}
						if !s.offer(a+sep+b, true) {
							return false
						}
					}
				}
			}
		}
	}
	return true
}

// leetVariants returns the leetspeak forms of word.
//
// Passes, in order:
//   - one full pass per substitute index, replacing every eligible
//     character at once (falling back to the first substitute when a
//     character has fewer alternatives)
//   - one pass per eligible character and substitute, replacing only that
//     character
//
// This is linear in the size of the table instead of 2^k in the number of
// eligible characters. Words without eligible characters yield nothing.
func (g *Generator) leetVariants(word string) []string {
	eligible := make([]rune, 0, len(g.leetKeys))
	maxAlternatives := 0
	for _, key := range g.leetKeys {
		if strings.ContainsFunc(word, func(r rune) bool { return unicode.ToLower(r) == key }) {
			eligible = append(eligible, key)
			maxAlternatives = max(maxAlternatives, len(g.opts.Leet[key]))
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	out := make([]string, 0, maxAlternatives+len(eligible)*2)
	for k := range maxAlternatives {
		v := substitute(word, func(r rune) (string, bool) {
			subs, ok := g.opts.Leet[unicode.ToLower(r)]
			if !ok {
				return "", false
			}
			if k < len(subs) {
				return subs[k], true
			}
			return subs[0], true
		})
		if v != word {
			out = appendUnique(out, v)
		}
	}

	for _, key := range eligible {
		for _, sub := range g.opts.Leet[key] {
			v := substitute(word, func(r rune) (string, bool) {
				if unicode.ToLower(r) == key {
					return sub, true
				}
				return "", false
			})
			if v != word {
				out = appendUnique(out, v)
			}
		}
	}
	return out
}

// substitute rewrites word, replacing each rune for which repl reports true.
func substitute(word string, repl func(rune) (string, bool)) string {
	var sb strings.Builder
	sb.Grow(len(word))
	for _, r := range word {
		if s, ok := repl(r); ok {
			sb.WriteString(s)
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// appendUnique appends s unless list already holds it.
func appendUnique(list []string, s string) []string {
	if slices.Contains(list, s) {
		return list
	}
	return append(list, s)
}
