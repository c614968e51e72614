package batch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// WriteReport writes a run summary: totals, per-strategy counts, and
// one line per file with the failures grouped at the end.
func WriteReport(w io.Writer, results []Result) error {
	buffered := bufio.NewWriter(w)

	succeeded := lo.Filter(results, func(r Result, _ int) bool { return r.Success })
	failed := lo.Filter(results, func(r Result, _ int) bool { return !r.Success })

	fmt.Fprintf(buffered, "files: %d\n", len(results))
	fmt.Fprintf(buffered, "decoded: %d\n", len(succeeded))
	fmt.Fprintf(buffered, "failed: %d\n", len(failed))

	strategyCounts := lo.CountValuesBy(succeeded, func(r Result) string { return r.Strategy })
	for _, strategy := range lo.Keys(strategyCounts) {
		fmt.Fprintf(buffered, "strategy %s: %d\n", strategy, strategyCounts[strategy])
	}

	fmt.Fprintln(buffered)
	for _, result := range succeeded {
		fmt.Fprintf(
			buffered, "ok %s: %d vertices, %d faces, %s, %s\n",
			result.File, result.VertexCount, result.FaceCount,
			result.Strategy, result.Elapsed.Round(time.Millisecond),
		)
	}
	for _, result := range failed {
		fmt.Fprintf(buffered, "failed %s: %s\n", result.File, result.Error)
	}
	return errors.Wrap(buffered.Flush(), "WriteReport flush")
}

// SaveReport writes the report into dir under a timestamped name and
// returns the path.
func SaveReport(dir string, results []Result) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(err, "SaveReport create directory")
	}
	path := filepath.Join(
		dir,
		fmt.Sprintf("decode_report_%s.txt", time.Now().Format("20060102_150405")),
	)
	file, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "SaveReport create file")
	}
	defer file.Close()
	if err := WriteReport(file, results); err != nil {
		return "", err
	}
	return path, errors.Wrap(file.Close(), "SaveReport close file")
}
