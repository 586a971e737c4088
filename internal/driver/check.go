package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"lox/internal/diag"
	"lox/internal/observ"
	"lox/internal/source"
	"lox/internal/trace"
)

// CheckStatus reports whether a file started or finished checking.
type CheckStatus int

const (
	CheckStarted CheckStatus = iota
	CheckDone
)

// CheckEvent is sent to CheckOptions.Observer from worker goroutines.
type CheckEvent struct {
	Index  int
	Path   string
	Status CheckStatus
	Errors int
	Total  int
}

// CheckObserver receives progress events. It must be safe for concurrent use.
type CheckObserver func(CheckEvent)

// CheckOptions configures Check.
type CheckOptions struct {
	Jobs           int // 0 means GOMAXPROCS
	MaxDiagnostics int
	Observer       CheckObserver
}

// CheckResult содержит результат проверки одного файла.
type CheckResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	Slots  int // размер чанка, 0 при ошибке
	Timing observ.Report
}

// Failed reports whether the file has errors.
func (r CheckResult) Failed() bool { return r.Bag != nil && r.Bag.HasErrors() }

// ExpandInputs turns files and directories into a sorted, deduplicated list
// of scripts. Directories contribute every *.lox file beneath them.
func ExpandInputs(inputs []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil || !info.IsDir() {
			// ошибку загрузки покажет сам Check
			add(in)
			continue
		}
		err = filepath.WalkDir(in, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, ".lox") {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

// Check compiles every file in parallel. Results keep the order of paths.
func Check(ctx context.Context, paths []string, opts CheckOptions) (*source.FileSet, []CheckResult, error) {
	fileSet := source.NewFileSet()
	results := make([]CheckResult, len(paths))
	if len(paths) == 0 {
		return fileSet, results, nil
	}

	// FileSet не потокобезопасен: загружаем всё заранее
	fileIDs := make([]source.FileID, len(paths))
	loadErrors := make([]error, len(paths))
	for i, path := range paths {
		id, err := fileSet.Load(path)
		if err != nil {
			id = source.NoFile
		}
		fileIDs[i], loadErrors[i] = id, err
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	tracer := trace.FromContext(ctx)
	parent := trace.ParentID(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			notify(opts.Observer, CheckEvent{Index: i, Path: path, Status: CheckStarted, Total: len(paths)})

			span := trace.Begin(tracer, trace.ScopeFile, "check:"+path, parent)
			timer := observ.NewTimer()
			bag := diag.NewBag(maxOr16(opts.MaxDiagnostics))
			slots := 0

			if err := loadErrors[i]; err != nil {
				bag.Add((&LoadError{Code: diag.IOLoadFileError, Path: path, Err: err}).Diagnostic())
			} else {
				fctx := trace.ContextWithSpan(gctx, span)
				chunk, cbag := Compile(fctx, fileSet.Get(fileIDs[i]), CompileOptions{
					MaxDiagnostics: opts.MaxDiagnostics,
					Timer:          timer,
				})
				bag = cbag
				if chunk != nil {
					slots = chunk.Len()
				}
			}

			// индекс i уникален для горутины, мьютекс не нужен
			results[i] = CheckResult{
				Path:   path,
				FileID: fileIDs[i],
				Bag:    bag,
				Slots:  slots,
				Timing: timer.Report(),
			}
			span.End(fmt.Sprintf("errors=%d", bag.Len()))
			notify(opts.Observer, CheckEvent{Index: i, Path: path, Status: CheckDone, Errors: bag.Len(), Total: len(paths)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func notify(obs CheckObserver, ev CheckEvent) {
	if obs != nil {
		obs(ev)
	}
}

func maxOr16(n int) int {
	if n > 0 {
		return n
	}
	return 16
}

// Elapsed sums the recorded phase durations of a result.
func (r CheckResult) Elapsed() time.Duration {
	return time.Duration(r.Timing.TotalMS * float64(time.Millisecond))
}
