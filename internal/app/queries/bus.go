package queries

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrHandlerNotFound = errors.New("queries: handler not found")
	ErrInvalidQuery    = errors.New("queries: invalid query for handler")
	ErrResultType      = errors.New("queries: result type mismatch")
	ErrNilBus          = errors.New("queries: bus not configured")
)

// Query is a read request routed by Key. Queries never change upstream state.
type Query interface {
	Key() string
}

type Handler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

type HandlerFunc[Q Query, R any] func(ctx context.Context, query Q) (R, error)

func (f HandlerFunc[Q, R]) Handle(ctx context.Context, query Q) (R, error) { return f(ctx, query) }

type Bus interface {
	Ask(ctx context.Context, query Query) (any, error)
}

// Ask runs query through bus and hands back the result as R.
func Ask[Q Query, R any](ctx context.Context, bus Bus, query Q) (R, error) {
	if bus == nil {
		var zero R
		return zero, ErrNilBus
	}
	res, err := bus.Ask(ctx, query)
	if err != nil {
		var zero R
		return zero, err
	}
	return resultAs[R](query.Key(), res)
}

func resultAs[R any](key string, res any) (R, error) {
	var zero R
	switch v := res.(type) {
	case nil:
		return zero, nil
	case R:
		return v, nil
	case *R:
		if v == nil {
			return zero, nil
		}
		return *v, nil
	}
	return zero, fmt.Errorf("%w: %s returned %T, want %T", ErrResultType, key, res, zero)
}
