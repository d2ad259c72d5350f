// Package report provides report generation and output functionality.
//
// This package contains writers for different output formats:
//   - SimpleWriter: human-readable text for a single analysis
//   - TableWriter: terminal table with coloured class labels
//   - CSVWriter: the analysis CSV, one row per audited password
//   - JSONWriter: structured JSON output for tool integration
//   - MarkdownWriter: GitHub Flavored Markdown with a class pie chart
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output. WriteWordlist
// streams generated candidates, one per line.
package report
