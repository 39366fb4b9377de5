package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/link2xt/image-meta/lib/image/fastsizer"
	"github.com/link2xt/image-meta/lib/image/meta"
)

type result struct {
	path string
	meta *meta.ImageMeta
	err  error
}

func readFile(sizer *fastsizer.FastImage, path string) (*meta.ImageMeta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return sizer.Detect(f)
}

// readAll reads every file, at most jobs at a time. Each file gets its own
// handle; results come back in the order of paths.
func readAll(paths []string, jobs int, log zerolog.Logger) []result {
	sizer := fastsizer.NewFastSizer()
	results := make([]result, len(paths))

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			m, err := readFile(sizer, path)
			results[i] = result{path: path, meta: m, err: err}
			if err != nil {
				log.Error().Err(err).Str("file", path).Msg("reading image metadata")
			} else {
				log.Debug().Str("file", path).Stringer("meta", m).Msg("read image metadata")
			}
			return nil
		})
	}
	// Failures are kept per file in results, the group never returns one.
	_ = g.Wait()

	return results
}

type jsonResult struct {
	Path  string          `json:"path"`
	Meta  *meta.ImageMeta `json:"meta,omitempty"`
	Error string          `json:"error,omitempty"`
}

// printResults writes one line per result, and reports whether they all
// succeeded. The error is set only if writing to w failed.
func printResults(w io.Writer, results []result, asJSON bool) (bool, error) {
	ok := true
	enc := json.NewEncoder(w)
	for _, r := range results {
		if r.err != nil {
			ok = false
		}

		var err error
		switch {
		case asJSON:
			jr := jsonResult{Path: r.path, Meta: r.meta}
			if r.err != nil {
				jr.Error = r.err.Error()
			}
			err = enc.Encode(jr)
		case r.err != nil:
			_, err = fmt.Fprintf(w, "%s: error: %s\n", r.path, r.err)
		default:
			_, err = fmt.Fprintf(w, "%s: %s\n", r.path, r.meta)
		}
		if err != nil {
			return false, fmt.Errorf("writing output: %w", err)
		}
	}
	return ok, nil
}
