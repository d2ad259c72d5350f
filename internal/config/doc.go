// Package config provides configuration structures and utilities for psawg.
// It holds the defaults for wordlist generation, strength evaluation and
// auditing, and merges overrides from an optional YAML file (.psawg).
package config
