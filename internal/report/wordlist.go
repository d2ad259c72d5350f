package report

import (
	"bufio"
	"io"
	"iter"
)

// WriteWordlist writes one candidate per line and returns how many were written.
func WriteWordlist(output io.Writer, candidates iter.Seq[string]) (int, error) {
	bw := bufio.NewWriter(output)
	count := 0
	for c := range candidates {
		if _, err := bw.WriteString(c); err != nil {
			return count, err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return count, err
		}
		count++
	}
	return count, bw.Flush()
}
