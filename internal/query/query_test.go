package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestExecuteStoresDataAndParams(t *testing.T) {
	var calls []string
	q := New(func(_ context.Context, id string) (int, error) {
		calls = append(calls, id)
		return len(id), nil
	})

	v, err := q.Execute(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, 3, v)
	assert.Equal(t, State[int]{Data: 3, HasData: true}, q.Snapshot())

	v, ok, err := q.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, []string{"abc", "abc"}, calls)
}

func TestExecuteErrorIsStoredAndLogged(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	boom := errors.New("Order not found")
	fail := true
	q := New(func(context.Context, string) (string, error) {
		if fail {
			return "", boom
		}
		return "ok", nil
	}, WithLogger[string](zap.New(core)), WithInitial("initial"))

	_, err := q.Execute(context.Background(), "1")
	assert.ErrorIs(t, err, boom)
	s := q.Snapshot()
	assert.ErrorIs(t, s.Err, boom)
	assert.Equal(t, "initial", s.Data, "failed call keeps previous data")
	assert.False(t, s.Loading)
	require.Equal(t, 1, logs.FilterMessage("API Error").Len())

	fail = false
	_, err = q.Execute(context.Background(), "1")
	require.NoError(t, err)
	assert.NoError(t, q.Snapshot().Err, "new run clears the error")
}

func TestCancelledCallIsNotLogged(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	q := New(func(ctx context.Context, _ struct{}) (int, error) {
		return 0, ctx.Err()
	}, WithLogger[int](zap.New(core)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := q.Execute(ctx, struct{}{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, logs.Len())
}

func TestRefreshWithoutParamsIsNoop(t *testing.T) {
	called := false
	q := New(func(context.Context, int) (int, error) { called = true; return 1, nil })
	_, ok, err := q.Refresh(context.Background())
	assert.False(t, ok)
	assert.NoError(t, err)
	assert.False(t, called)
}

func TestReset(t *testing.T) {
	q := New(func(context.Context, int) (int, error) { return 42, nil }, WithInitial(7))
	assert.Equal(t, State[int]{Data: 7, HasData: true}, q.Snapshot())

	_, _ = q.Execute(context.Background(), 1)
	assert.Equal(t, 42, q.Snapshot().Data)

	q.Reset()
	assert.Equal(t, State[int]{Data: 7, HasData: true}, q.Snapshot())
	_, ok, _ := q.Refresh(context.Background())
	assert.False(t, ok, "reset forgets params")
}

func TestLoadingDuringCall(t *testing.T) {
	var q *Query[int, int]
	seen := false
	q = New(func(context.Context, int) (int, error) {
		seen = q.Loading()
		return 0, nil
	})
	_, _ = q.Execute(context.Background(), 0)
	assert.True(t, seen)
	assert.False(t, q.Loading())
}
