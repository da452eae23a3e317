package transforms

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func appender(id string, order int, suffix string) Func {
	return Func{ID: id, Order: order, Fn: func(_ context.Context, in []byte) ([]byte, error) {
		return append(append([]byte(nil), in...), suffix...), nil
	}}
}

// TestOrdering ensures transforms run by priority, then name.
func TestOrdering(t *testing.T) {
	r := NewRegistry()
	r.Register(appender("late", 90, "C"))
	r.Register(appender("b-early", 10, "B"))
	r.Register(appender("a-early", 10, "A"))

	names := make([]string, 0, 3)
	for _, tr := range r.List() {
		names = append(names, tr.Name())
	}
	require.Equal(t, []string{"a-early", "b-early", "late"}, names)

	out, err := r.Apply(t.Context(), []byte(">"))
	require.NoError(t, err)
	require.Equal(t, ">ABC", string(out))
}

func TestRegisterIdempotentByName(t *testing.T) {
	r := NewRegistry()
	r.Register(appender("x", 1, "first"))
	r.Register(appender("x", 1, "second"))
	r.Register(nil)

	require.Len(t, r.List(), 1)
	out, err := r.Apply(t.Context(), nil)
	require.NoError(t, err)
	require.Equal(t, "first", string(out))
}

func TestApplyStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	r := NewRegistry()
	r.Register(Func{ID: "fail", Order: 1, Fn: func(context.Context, []byte) ([]byte, error) { return nil, boom }})
	r.Register(appender("never", 2, "!"))

	_, err := r.Apply(t.Context(), []byte("x"))
	require.ErrorIs(t, err, boom)
	require.ErrorContains(t, err, "transform fail")
}

func TestApplyHonorsCancellation(t *testing.T) {
	r := NewRegistry()
	r.Register(appender("a", 1, "a"))
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := r.Apply(ctx, []byte("x"))
	require.ErrorIs(t, err, context.Canceled)
}
