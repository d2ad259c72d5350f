// Package wordlist derives personalized password candidates from metadata tokens.
//
// A Generator expands tokens (names, dates, places, hobbies) through a fixed
// sequence of stages:
//
//  1. Normalization (trim, NFC, lowercase, drop empties and duplicates)
//  2. Case variants (lower, UPPER, Capitalized)
//  3. Leetspeak substitution (bounded passes, never every subset)
//  4. Pairwise concatenation with separators
//  5. Suffix and year augmentation
//  6. Deduplication and capping
//
// Stages run from most probable to most speculative, and generation stops as
// soon as the cap is reached, so a truncated list always keeps the likeliest
// candidates. Output is deterministic for identical tokens and options, and
// the list for a smaller cap is always a prefix of the list for a larger one.
package wordlist
