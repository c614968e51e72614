// Package meshdefs reads the engine's mesh definition table, whose
// per-resource flags say which assets were exported with packed
// encodings. The table is an optional hint source: decoding works
// without it, just with a less favorable strategy order.
package meshdefs

import (
	"os"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

type (
	// Params are the compression flags of one mesh resource entry.
	Params struct {
		CompressPositions bool
		CompressUvs       bool
	}

	// Table maps lowercased resource names to their parameters.
	Table struct {
		entries map[string]Params
	}
)

var (
	resourcePattern = regexp.MustCompile(`resource\s+"Mesh"\s+"([^"]+)"\s*\{([^}]+)\}`)
	fieldPattern    = regexp.MustCompile(`(\w+)\s*=\s*(true|false)`)

	// Filename fragments the exporter appends when it applies a packed
	// or stripped encoding. Seen in assets whose resource entry is
	// missing from the table.
	packedNameKeywords = []string{
		"StripAnim",
		"CompOcc",
		"ZipPos",
		"ZipUvs",
		"StripNorm",
		"StripUv13",
		"CopyFrameDelay",
	}
)

// Parse reads every mesh resource entry out of a definition script.
// Entries it cannot read are skipped, never fatal: the table is a hint
// source and a partial table is still useful.
func Parse(content []byte) *Table {
	table := Table{entries: map[string]Params{}}
	for _, match := range resourcePattern.FindAllStringSubmatch(string(content), -1) {
		name := strings.ToLower(strings.TrimSpace(match[1]))
		params := Params{}
		for _, field := range fieldPattern.FindAllStringSubmatch(match[2], -1) {
			value := field[2] == "true"
			switch field[1] {
			case "compressPositions":
				params.CompressPositions = value
			case "compressUvs":
				params.CompressUvs = value
			}
		}
		table.entries[name] = params
	}
	return &table
}

// Load parses the definition script at path. A missing file yields an
// empty table and no error; only a file that exists but cannot be read
// is reported.
func Load(path string) (*Table, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Parse(nil), nil
	}
	if err != nil {
		return nil, err
	}
	return Parse(content), nil
}

// Lookup finds the parameters of a resource by its base name,
// case-insensitively.
func (t *Table) Lookup(baseName string) (Params, bool) {
	params, ok := t.entries[strings.ToLower(baseName)]
	return params, ok
}

// Len reports how many resource entries the table holds.
func (t *Table) Len() int {
	return len(t.entries)
}

// PreferPacked decides whether a file should try the packed strategies
// first: either its resource entry says the positions were compressed,
// or its name carries one of the exporter's packed-encoding fragments.
func (t *Table) PreferPacked(fileName string) bool {
	baseName := fileName
	if dot := strings.LastIndex(baseName, "."); dot >= 0 {
		baseName = baseName[:dot]
	}
	if params, ok := t.Lookup(baseName); ok && params.CompressPositions {
		return true
	}
	return lo.SomeBy(
		packedNameKeywords,
		func(keyword string) bool {
			return strings.Contains(fileName, keyword)
		},
	)
}
