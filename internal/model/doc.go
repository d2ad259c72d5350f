// Package model defines the value objects shared by the psawg pipelines.
//
// This package contains the following main types:
//   - StrengthClass: The three-tier verdict (Weak, Medium, Strong)
//   - StrengthReport: The immutable result of evaluating one password
//   - AuditRow / AuditReport: One audit run, one row per input password
//   - Wordlist: An ordered, deduplicated, size-capped candidate list
//
// Design decision: We keep the models in their own package so that the
// strength, wordlist, audit, report and database packages can share them
// without import cycles. Everything here is serializable to JSON for report
// output and history storage.
package model
