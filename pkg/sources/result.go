// Package sources fetches the optional, independently failing inputs of the
// board: calendar, weather, habits, content pipeline, reminders and host
// health. Every fetch returns a Result instead of an error so one broken
// source never takes the document down with it.
package sources

import (
	"context"
	"log/slog"
	"time"

	"github.com/stefanpenner/focusboard/pkg/store"
)

// DefaultTimeout bounds each network call or subprocess.
const DefaultTimeout = 10 * time.Second

// Status is how a source's value was obtained.
type Status string

const (
	StatusOK       Status = "ok"
	StatusCached   Status = "cached"
	StatusDisabled Status = "disabled"
	StatusFailed   Status = "failed"
)

// Result carries a source's value and how it was obtained. When Status is
// disabled or failed, Value is the source's empty shape.
type Result[T any] struct {
	Status Status
	Value  T
	Err    error
}

func OK[T any](v T) Result[T]     { return Result[T]{Status: StatusOK, Value: v} }
func Cached[T any](v T) Result[T] { return Result[T]{Status: StatusCached, Value: v} }

func Disabled[T any](empty T) Result[T] {
	return Result[T]{Status: StatusDisabled, Value: empty}
}

func Failed[T any](empty T, err error) Result[T] {
	return Result[T]{Status: StatusFailed, Value: empty, Err: err}
}

// Source is anything that can produce a T.
type Source[T any] interface {
	Fetch(ctx context.Context) Result[T]
}

// FetchFunc adapts a function to Source.
type FetchFunc[T any] func(ctx context.Context) Result[T]

func (f FetchFunc[T]) Fetch(ctx context.Context) Result[T] { return f(ctx) }

// Static returns a Source that always yields r.
func Static[T any](r Result[T]) Source[T] {
	return FetchFunc[T](func(context.Context) Result[T] { return r })
}

// withCache serves name from the store when fresher than ttl, otherwise
// calls fetch and stores a successful value. A nil store disables caching.
func withCache[T any](st *store.Store, name string, ttl time.Duration, now time.Time, fetch func() Result[T]) Result[T] {
	if st != nil && ttl > 0 {
		var v T
		if st.LoadCache(name, ttl, now, &v) {
			slog.Debug("cache hit", "source", name)
			return Cached(v)
		}
	}

	r := fetch()
	if r.Status == StatusOK && st != nil {
		if err := st.SaveCache(name, now, r.Value); err != nil {
			slog.Warn("cache write failed", "source", name, "err", err)
		}
	}
	return r
}
