package commands

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrHandlerNotFound = errors.New("commands: handler not found")
	ErrInvalidCommand  = errors.New("commands: invalid command for handler")
	ErrResultType      = errors.New("commands: result type mismatch")
	ErrNilBus          = errors.New("commands: bus not configured")
)

type Command interface {
	Key() string
}

type Handler[C Command, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

type HandlerFunc[C Command, R any] func(ctx context.Context, cmd C) (R, error)

func (f HandlerFunc[C, R]) Handle(ctx context.Context, cmd C) (R, error) { return f(ctx, cmd) }

// Bus is the untyped surface middleware wraps.
type Bus interface {
	Dispatch(ctx context.Context, cmd Command) (any, error)
}

// Dispatch sends cmd through bus and hands back the result as R.
func Dispatch[C Command, R any](ctx context.Context, bus Bus, cmd C) (R, error) {
	if bus == nil {
		var zero R
		return zero, ErrNilBus
	}
	res, err := bus.Dispatch(ctx, cmd)
	if err != nil {
		var zero R
		return zero, err
	}
	return resultAs[R](cmd.Key(), res)
}

// resultAs converts a bus result to R. Handlers with no meaningful result
// (struct{}) may return nil, and results replayed by the idempotency
// middleware arrive as *R.
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
