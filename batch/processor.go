// Package batch decodes many mesh files concurrently and collects
// per-file results for the report.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"skymesh/ds"
	"skymesh/export"
	"skymesh/mesh"
	"skymesh/meshdefs"
)

// Config holds the shared settings of one batch run.
type Config struct {
	OutputDir string
	// Format is "obj", "gltf", or "glb".
	Format        string
	NoUV          bool
	Workers       int
	MaxIterations int
	Trace         bool
	// Defs is the optional hint table; nil means no hints.
	Defs *meshdefs.Table
}

// Result is the outcome of decoding one file.
type Result struct {
	File        string
	Success     bool
	Strategy    string
	VertexCount int
	FaceCount   int
	Elapsed     time.Duration
	Error       string
}

// Run decodes every file through a worker pool and reports progress
// every two seconds. Results keep the input order.
func Run(cfg Config, files []string) []Result {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	total := len(files)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f files/sec\n", p, total, rate)
				}
			}
		}
	}()

	fileChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range fileChan {
				results[idx] = processFile(cfg, files[idx])
				processed.Add(1)
			}
		}()
	}

	indices := make([]int, total)
	for i := range indices {
		indices[i] = i
	}
	for _, chunk := range ds.MakeChunks(indices, cfg.Workers*4) {
		for _, idx := range chunk {
			fileChan <- idx
		}
	}
	close(fileChan)

	wg.Wait()
	close(done)

	return results
}

func processFile(cfg Config, path string) Result {
	result := Result{File: path}
	start := time.Now()

	data, err := os.ReadFile(path)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	opts := mesh.DecodeOptions{
		MaxIterations: cfg.MaxIterations,
		Trace:         cfg.Trace,
	}
	if cfg.Defs != nil {
		opts.PreferPacked = cfg.Defs.PreferPacked(filepath.Base(path))
	}
	outcome := mesh.DecodeMesh(data, opts)
	result.Elapsed = time.Since(start)
	if !outcome.Success() {
		result.Error = outcome.Err.Error()
		return result
	}
	result.Strategy = outcome.Strategy
	result.VertexCount = len(outcome.Mesh.Vertices)
	result.FaceCount = len(outcome.Mesh.Faces)

	if err := saveMesh(cfg, path, outcome.Mesh); err != nil {
		result.Error = err.Error()
		return result
	}
	result.Success = true
	return result
}

func saveMesh(cfg Config, inputPath string, decoded *mesh.DecodedMesh) error {
	baseName := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return err
	}
	options := export.Options{NoUV: cfg.NoUV}
	switch cfg.Format {
	case "gltf", "glb":
		outPath := filepath.Join(cfg.OutputDir, baseName+"."+cfg.Format)
		return export.SaveGLTF(outPath, decoded, options)
	default:
		outPath := filepath.Join(cfg.OutputDir, baseName+".obj")
		return export.SaveOBJ(outPath, decoded, options)
	}
}
