package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoCommand struct{ Text string }

func (echoCommand) Key() string { return "test.echo" }

type otherCommand struct{}

func (otherCommand) Key() string { return "test.other" }

func TestInMemoryBus_DispatchTyped(t *testing.T) {
	bus := NewInMemoryBus()
	RegisterHandler[echoCommand, string](bus, "test.echo", HandlerFunc[echoCommand, string](
		func(_ context.Context, cmd echoCommand) (string, error) { return "echo:" + cmd.Text, nil },
	))

	out, err := Dispatch[echoCommand, string](context.Background(), bus, echoCommand{Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "echo:hi", out)

	_, err = Dispatch[echoCommand, int](context.Background(), bus, echoCommand{})
	assert.ErrorIs(t, err, ErrResultType)
}

func TestInMemoryBus_Errors(t *testing.T) {
	bus := NewInMemoryBus()
	_, err := bus.Dispatch(context.Background(), otherCommand{})
	assert.ErrorIs(t, err, ErrHandlerNotFound)

	_, err = Dispatch[otherCommand, string](context.Background(), nil, otherCommand{})
	assert.ErrorIs(t, err, ErrNilBus)

	bus.RegisterRaw("test.other", func(context.Context, Command) (any, error) { return nil, nil })
	assert.Panics(t, func() {
		bus.RegisterRaw("test.other", func(context.Context, Command) (any, error) { return nil, nil })
	})
}

type receipt struct{ ID string }

type replayCommand struct{}

func (replayCommand) Key() string { return "test.replay" }

func TestDispatch_ResultConversion(t *testing.T) {
	bus := NewInMemoryBus()
	replayed := &receipt{ID: "r-1"}
	bus.RegisterRaw("test.replay", func(context.Context, Command) (any, error) { return replayed, nil })
	bus.RegisterRaw("test.other", func(context.Context, Command) (any, error) { return nil, nil })

	byValue, err := Dispatch[replayCommand, receipt](context.Background(), bus, replayCommand{})
	require.NoError(t, err)
	assert.Equal(t, receipt{ID: "r-1"}, byValue)

	byPointer, err := Dispatch[replayCommand, *receipt](context.Background(), bus, replayCommand{})
	require.NoError(t, err)
	assert.Same(t, replayed, byPointer)

	empty, err := Dispatch[otherCommand, struct{}](context.Background(), bus, otherCommand{})
	require.NoError(t, err)
	assert.Equal(t, struct{}{}, empty)

	_, err = Dispatch[replayCommand, string](context.Background(), bus, replayCommand{})
	assert.ErrorIs(t, err, ErrResultType)
	assert.Contains(t, err.Error(), "test.replay returned *commands.receipt, want string")
}
