package fs

import (
	"context"
	"os"

	"go.trai.ch/shadercell/internal/core/domain"
	"go.trai.ch/shadercell/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.SourceReader = (*Reader)(nil)

// Reader reads shader sources concurrently.
type Reader struct {
	limit int
}

// NewReader creates a Reader. A positive limit bounds the number of files
// read at once.
func NewReader(limit int) *Reader {
	return &Reader{limit: limit}
}

// ReadAll reads every resource and returns their contents in input order.
func (r *Reader) ReadAll(ctx context.Context, resources []domain.WatchedResource) ([][]byte, error) {
	out := make([][]byte, len(resources))

	g, ctx := errgroup.WithContext(ctx)
	if r.limit > 0 {
		g.SetLimit(r.limit)
	}

	for i, res := range resources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return zerr.With(domain.Because(domain.ErrResourceReadFailed, err), "path", res.Path())
			}
			data, err := os.ReadFile(res.Path())
			if err != nil {
				return zerr.With(domain.Because(domain.ErrResourceReadFailed, err), "path", res.Path())
			}
			out[i] = data
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
