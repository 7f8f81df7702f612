package brushimage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/brush"
	"github.com/gogpu/brush/internal/parallel"
)

// Progress is called after each file of a batch has been decoded.
// Calls are serialized and done increases by one each time.
type Progress func(done, total int)

// Failure records a file that could not be imported.
type Failure struct {
	Path string
	Err  error
}

// Result summarizes a committed import batch.
type Result struct {
	// Added lists the names committed to the collection, in path order.
	Added []string

	// Failed lists the files that were skipped, in path order.
	Failed []Failure
}

// Importer decodes batches of brush files into a Collection.
type Importer struct {
	// Collection receives the decoded brushes. It must not be nil.
	Collection *Collection

	// Workers is the number of decoding goroutines. Zero means GOMAXPROCS.
	Workers int

	// MaxSize caps the side of each tip. Zero means DefaultMaxSize;
	// a negative value keeps tips at their decoded size.
	MaxSize int

	// Logger overrides brush.Logger() when set.
	Logger *slog.Logger
}

type decoded struct {
	brushes []Brush
	err     error
}

// Import decodes paths on a worker pool and commits every successfully
// decoded brush to the collection in one step. Files that fail to decode
// are logged, skipped and reported in the result.
//
// If ctx is canceled before all files are decoded, nothing is committed and
// the context error is returned.
func (im *Importer) Import(ctx context.Context, paths []string, progress Progress) (Result, error) {
	log := im.Logger
	if log == nil {
		log = brush.Logger()
	}
	maxSize := im.MaxSize
	if maxSize == 0 {
		maxSize = DefaultMaxSize
	}

	pool := parallel.NewWorkerPool(im.Workers)
	defer pool.Close()

	results := make([]decoded, len(paths))
	var (
		mu   sync.Mutex
		done int
	)
	work := make([]func(), len(paths))
	for i, path := range paths {
		work[i] = func() {
			b, err := decodeFile(path, maxSize)
			results[i] = decoded{brushes: b, err: err}
			if progress == nil {
				return
			}
			mu.Lock()
			done++
			progress(done, len(paths))
			mu.Unlock()
		}
	}

	if err := pool.ExecuteAll(ctx, work); err != nil {
		log.Debug("brush import canceled", "files", len(paths), "err", err)
		return Result{}, fmt.Errorf("brushimage: import: %w", err)
	}

	var (
		res   Result
		batch []Brush
	)
	for i, r := range results {
		if r.err != nil {
			log.Warn("skipping brush file", "path", paths[i], "err", r.err)
			res.Failed = append(res.Failed, Failure{Path: paths[i], Err: r.err})
			continue
		}
		for _, b := range r.brushes {
			res.Added = append(res.Added, b.Name)
		}
		batch = append(batch, r.brushes...)
	}
	im.Collection.Add(batch...)

	log.Info("brushes imported", "files", len(paths), "brushes", len(batch), "failed", len(res.Failed))
	return res, nil
}
