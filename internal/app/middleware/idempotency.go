package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"prorent/internal/app/commands"
)

// IdempotentCommand is implemented by commands whose result is replayed when
// the same key is dispatched again.
type IdempotentCommand interface {
	commands.Command
	IdempotencyKey() string
	ResultPrototype() any // value the stored payload is decoded into
}

// ScopedCommand narrows replays to one caller. Records written under one scope
// are never replayed to another, even when the idempotency keys match.
type ScopedCommand interface {
	IdempotencyScope() string
}

type IdempotencyRecord struct {
	Key        string    `json:"key"`
	Payload    []byte    `json:"payload"`
	OccurredAt time.Time `json:"occurred_at"`
}

// IdempotencyStore persists records; expiry is up to the implementation.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (IdempotencyRecord, bool, error)
	Save(ctx context.Context, rec IdempotencyRecord) error
}

type ResultCodec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, out any) error
}

type JSONResultCodec struct{}

func (JSONResultCodec) Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONResultCodec) Decode(data []byte, out any) error {
	return json.Unmarshal(data, out)
}

var errMissingPrototype = errors.New("middleware: idempotent command requires result prototype")

// Idempotency replays recorded results for repeated keys. Only successful
// results are recorded, so a rejected submission can be retried with the same
// key once the cause is gone.
func Idempotency(store IdempotencyStore, codec ResultCodec) CommandMiddleware {
	if store == nil {
		panic("middleware: idempotency store required")
	}
	if codec == nil {
		codec = JSONResultCodec{}
	}
	return func(next commands.Bus) commands.Bus {
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			idCmd, ok := cmd.(IdempotentCommand)
			if !ok || idCmd.IdempotencyKey() == "" {
				return next.Dispatch(ctx, cmd)
			}
			key := recordKey(idCmd)
			rec, found, err := store.Get(ctx, key)
			if err != nil {
				return nil, err
			}
			if found {
				proto := idCmd.ResultPrototype()
				if proto == nil {
					return nil, errMissingPrototype
				}
				if err := codec.Decode(rec.Payload, proto); err != nil {
					return nil, err
				}
				return proto, nil
			}

			result, err := next.Dispatch(ctx, cmd)
			if err != nil {
				return nil, err
			}
			record := IdempotencyRecord{Key: key, OccurredAt: time.Now().UTC()}
			if result != nil {
				payload, encErr := codec.Encode(result)
				if encErr != nil {
					return nil, encErr
				}
				record.Payload = payload
			}
			if saveErr := store.Save(ctx, record); saveErr != nil {
				return nil, saveErr
			}
			return result, nil
		})
	}
}

func recordKey(cmd IdempotentCommand) string {
	key := cmd.Key()
	if scoped, ok := cmd.(ScopedCommand); ok {
		if scope := scoped.IdempotencyScope(); scope != "" {
			key += ":" + scope
		}
	}
	return key + ":" + cmd.IdempotencyKey()
}
