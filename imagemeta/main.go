// imagemeta prints the format, size and frame count of image files, without
// decoding them.
//
//	imagemeta [-json] [-jobs N] [-log-level LEVEL] FILE...
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/rs/zerolog"
)

type config struct {
	json     bool
	jobs     int
	logLevel string
	files    []string
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	cfg := &config{}

	fs := flag.NewFlagSet("imagemeta", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&cfg.json, "json", false, "print one JSON object per file")
	fs.IntVar(&cfg.jobs, "jobs", runtime.NumCPU(), "number of files to read at once")
	fs.StringVar(&cfg.logLevel, "log-level", envOr("IMAGEMETA_LOG_LEVEL", "warn"), "log level (debug, info, warn, error)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: imagemeta [flags] FILE...\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.files = fs.Args()
	if len(cfg.files) == 0 {
		fs.Usage()
		return nil, fmt.Errorf("no files given")
	}
	if cfg.jobs < 1 {
		return nil, fmt.Errorf("-jobs must be at least 1, got %d", cfg.jobs)
	}
	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func newLogger(level string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("bad log level %q: %s", level, err)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(lvl).
		With().
		Timestamp().
		Logger(), nil
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		fmt.Fprintf(stderr, "imagemeta: %s\n", err)
		return 2
	}

	log, err := newLogger(cfg.logLevel, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "imagemeta: %s\n", err)
		return 2
	}

	results := readAll(cfg.files, cfg.jobs, log)
	ok, err := printResults(stdout, results, cfg.json)
	if err != nil {
		log.Error().Err(err).Msg("printing results")
		return 1
	}
	if !ok {
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
