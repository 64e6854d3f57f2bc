// Package scan collects event marker names from every path document in a
// directory.
package scan

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/pedro-visualizer/backend/internal/parser"
	"github.com/pedro-visualizer/backend/internal/storage"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel file reads when no limit is given.
const DefaultConcurrency = 8

// FileError records a document that could not be read or parsed.
type FileError struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Result is the outcome of a directory scan.
type Result struct {
	Directory  string      `json:"directory"`
	EventNames []string    `json:"eventNames"`
	FilesRead  int         `json:"filesRead"`
	Skipped    []FileError `json:"skipped,omitempty"`
}

// EventNames reads every .pp document in dir in parallel and returns the
// sorted union of their event marker names.
//
// A file that fails to read or parse is logged and skipped; the scan still
// completes with the remaining files. Only a failure to list dir, or ctx
// being cancelled, is returned as an error.
func EventNames(ctx context.Context, fs storage.FileSystem, dir string, concurrency int) (*Result, error) {
	files, err := fs.ListFiles(dir)
	if err != nil {
		return nil, err
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var (
		mu      sync.Mutex
		names   = make(map[string]struct{})
		skipped []FileError
		read    int
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, f := range files {
		f := f
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			found, err := readEventNames(fs, f.Path)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				fmt.Printf("[Scan] Skipping %s: %v\n", f.Path, err)
				skipped = append(skipped, FileError{Path: f.Path, Reason: err.Error()})
				return nil
			}
			read++
			for _, n := range found {
				names[n] = struct{}{}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(names))
	for n := range names {
		out = append(out, n)
	}
	sort.Strings(out)
	sort.Slice(skipped, func(i, j int) bool { return skipped[i].Path < skipped[j].Path })

	return &Result{
		Directory:  dir,
		EventNames: out,
		FilesRead:  read,
		Skipped:    skipped,
	}, nil
}

func readEventNames(fs storage.FileSystem, path string) ([]string, error) {
	content, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading: %w", err)
	}

	data, err := parser.ParsePathData(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}

	var names []string
	for _, n := range parser.EventNames(*data) {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names, nil
}
