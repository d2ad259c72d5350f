package model

// Wordlist is an ordered sequence of unique candidate strings.
//
// Insertion order is generation order. Once Len reaches the cap, Add
// rejects every further entry, so the list never grows past its cap.
type Wordlist struct {
	entries []string
	index   map[string]struct{}
	limit   int
}

// NewWordlist creates an empty wordlist holding at most limit entries.
// A limit <= 0 produces a wordlist that accepts nothing.
func NewWordlist(limit int) *Wordlist {
	if limit < 0 {
		limit = 0
	}
	return &Wordlist{
		entries: make([]string, 0),
		index:   make(map[string]struct{}),
		limit:   limit,
	}
}

// Add appends candidate unless it is already present or the list is full.
// It reports whether the candidate was appended.
func (w *Wordlist) Add(candidate string) bool {
	if w.Full() {
		return false
	}
	if _, ok := w.index[candidate]; ok {
		return false
	}
	w.index[candidate] = struct{}{}
	w.entries = append(w.entries, candidate)
	return true
}

// Contains reports whether candidate is in the list.
func (w *Wordlist) Contains(candidate string) bool {
	_, ok := w.index[candidate]
	return ok
}

// Full reports whether the cap has been reached.
func (w *Wordlist) Full() bool {
	return len(w.entries) >= w.limit
}

// Len returns the number of entries.
func (w *Wordlist) Len() int {
	return len(w.entries)
}

// Limit returns the cap the list was created with.
func (w *Wordlist) Limit() int {
	return w.limit
}

// Entries returns a copy of the entries in insertion order.
func (w *Wordlist) Entries() []string {
	out := make([]string, len(w.entries))
	copy(out, w.entries)
	return out
}
