// Package check runs an engine over many files with a bounded pool of
// workers.
package check

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	tt "github.com/gnoswap-labs/parsec/internal/types"
)

// CheckEngine runs a grammar over a file or an in-memory source.
type CheckEngine interface {
	Run(filePath string) ([]tt.Report, error)
	RunSource(source []byte) ([]tt.Report, error)
}

// Filter reports whether a file found while walking a directory is checked.
// Files named explicitly are always checked.
type Filter func(path string) bool

// ExtensionFilter accepts files with one of exts, given with or without the
// leading dot. No extensions accepts every file.
func ExtensionFilter(exts ...string) Filter {
	if len(exts) == 0 {
		return nil
	}
	allowed := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowed[ext] = true
	}
	return func(path string) bool {
		return allowed[filepath.Ext(path)]
	}
}

// Options tunes directory processing.
type Options struct {
	Filter Filter
	// Progress receives a progress bar per directory; nil shows none.
	Progress io.Writer
	// Workers bounds the files processed at once; 0 means one per CPU.
	Workers int
}

func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine CheckEngine,
	sources [][]byte,
	processor func(CheckEngine, []byte) ([]tt.Report, error),
) ([]tt.Report, error) {
	var allReports []tt.Report
	for i, source := range sources {
		if err := ctx.Err(); err != nil {
			return allReports, err
		}
		reports, err := processor(engine, source)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing source", zap.Int("source", i), zap.Error(err))
			}
			return nil, err
		}
		allReports = append(allReports, reports...)
	}

	return allReports, nil
}

// ProcessFiles processes every path. A path that fails does not stop the
// others; all errors are returned together.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine CheckEngine,
	paths []string,
	opts Options,
	processor func(CheckEngine, string) ([]tt.Report, error),
) ([]tt.Report, error) {
	allReports := []tt.Report{}
	var errs *multierror.Error
	for _, path := range paths {
		reports, err := ProcessPath(ctx, logger, engine, path, opts, processor)
		allReports = append(allReports, reports...)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return allReports, ctxErr
		}
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			errs = multierror.Append(errs, err)
		}
	}

	return allReports, errs.ErrorOrNil()
}

type fileResult struct {
	path    string
	reports []tt.Report
	err     error
}

// ProcessPath processes a file, or every file accepted by opts.Filter below a
// directory. Hidden files and directories are skipped while walking.
// Reports come back sorted by file and line.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine CheckEngine,
	path string,
	opts Options,
	processor func(CheckEngine, string) ([]tt.Report, error),
) ([]tt.Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		reports, err := processor(engine, path)
		if err != nil {
			return []tt.Report{}, err
		}
		return reports, nil
	}

	files, err := collectFiles(path, opts.Filter)
	if err != nil {
		return nil, err
	}

	maxWorkers := opts.Workers
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}
	sem := make(chan struct{}, maxWorkers)
	resultChan := make(chan fileResult, len(files))
	bar := newProgressBar(opts.Progress, len(files), path)

	var wg sync.WaitGroup
dispatch:
	for _, filePath := range files {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break dispatch
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(fp string) {
			defer wg.Done()
			defer func() { <-sem }()

			reports, err := processor(engine, fp)
			resultChan <- fileResult{path: fp, reports: reports, err: err}
			if bar != nil {
				_ = bar.Add(1)
			}
		}(filePath)
	}
	wg.Wait()
	close(resultChan)

	if bar != nil {
		fmt.Fprintln(opts.Progress)
	}

	// collect all results
	reports := []tt.Report{}
	var errs *multierror.Error
	for res := range resultChan {
		if res.err != nil {
			if logger != nil {
				logger.Error("Error processing file", zap.String("file", res.path), zap.Error(res.err))
			}
			errs = multierror.Append(errs, res.err)
			continue
		}
		reports = append(reports, res.reports...)
	}
	sortReports(reports)

	if err := ctx.Err(); err != nil {
		return reports, err
	}
	return reports, errs.ErrorOrNil()
}

func ProcessFile(engine CheckEngine, filePath string) ([]tt.Report, error) {
	return engine.Run(filePath)
}

func ProcessSource(engine CheckEngine, source []byte) ([]tt.Report, error) {
	return engine.RunSource(source)
}

// Failures keeps the reports of inputs that did not parse.
func Failures(reports []tt.Report) []tt.Report {
	return lo.Filter(reports, func(r tt.Report, _ int) bool {
		return !r.OK
	})
}

func collectFiles(root string, filter Filter) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		hidden := p != root && strings.HasPrefix(d.Name(), ".")
		if d.IsDir() {
			if hidden {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden || !d.Type().IsRegular() {
			return nil
		}
		if filter == nil || filter(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

func sortReports(reports []tt.Report) {
	sort.SliceStable(reports, func(i, j int) bool {
		if reports[i].Filename != reports[j].Filename {
			return reports[i].Filename < reports[j].Filename
		}
		return reports[i].Line < reports[j].Line
	})
}

func newProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	if w == nil {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
