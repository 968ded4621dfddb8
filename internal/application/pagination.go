package application

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/JoaquinVilchez/business-manager-api/internal/domain/repository"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// PageQuery is the input of every findAll. Non-positive values fall back to the defaults.
type PageQuery struct {
	Page   int
	Limit  int
	Search string
}

func (q PageQuery) normalize() PageQuery {
	if q.Page <= 0 {
		q.Page = DefaultPage
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	return q
}

type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type Page[T any] struct {
	Data []T `json:"data"`
	Meta Meta `json:"meta"`
}

// NewMeta computes totalPages = ceil(total/limit).
func NewMeta(total int64, page, limit int) Meta {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Meta{Total: total, Page: page, Limit: limit, TotalPages: pages}
}

// paginate runs the page read and the count concurrently; they are independent reads.
func paginate[E any](
	ctx context.Context,
	q PageQuery,
	list func(context.Context, repository.ListParams) ([]E, error),
	count func(context.Context, string) (int64, error),
) ([]E, Meta, error) {
	q = q.normalize()
	var (
		rows  = []E{}
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	// A page whose offset does not fit in an int lies past any stored row.
	if q.Page-1 <= math.MaxInt/q.Limit {
		g.Go(func() error {
			var err error
			rows, err = list(gctx, repository.ListParams{
				Search: q.Search,
				Offset: (q.Page - 1) * q.Limit,
				Limit:  q.Limit,
			})
			return err
		})
	}
	g.Go(func() error {
		var err error
		total, err = count(gctx, q.Search)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, Meta{}, err
	}
	return rows, NewMeta(total, q.Page, q.Limit), nil
}

// mapSlice converts repository rows into their projection.
func mapSlice[E, V any](rows []E, fn func(E) V) []V {
	out := make([]V, 0, len(rows))
	for _, r := range rows {
		out = append(out, fn(r))
	}
	return out
}
