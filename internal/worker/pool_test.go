package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_KeepsOrder(t *testing.T) {
	pool := NewPool[int, int](4, func(_ context.Context, n int) (int, error) {
		return n * n, nil
	})

	tasks := pool.Execute(context.Background(), []int{1, 2, 3, 4, 5, 6})

	require.Len(t, tasks, 6)
	for i, task := range tasks {
		assert.Equal(t, i+1, task.Input)
		assert.Equal(t, (i+1)*(i+1), task.Result)
		assert.NoError(t, task.Err)
	}
}

func TestPool_SingleWorkerIsSequential(t *testing.T) {
	var order []string
	pool := NewPool[string, struct{}](0, func(_ context.Context, s string) (struct{}, error) {
		order = append(order, s)
		return struct{}{}, nil
	})

	pool.Execute(context.Background(), []string{"a", "b", "c"})

	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestPool_Errors(t *testing.T) {
	boom := errors.New("boom")
	pool := NewPool[int, int](2, func(_ context.Context, n int) (int, error) {
		if n%2 == 0 {
			return 0, boom
		}
		return n, nil
	})

	tasks := pool.Execute(context.Background(), []int{1, 2, 3, 4})

	assert.Equal(t, 2, Failed(tasks))
	assert.ErrorIs(t, tasks[1].Err, boom)
}

func TestPool_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	pool := NewPool[int, int](1, func(_ context.Context, n int) (int, error) {
		calls.Add(1)
		return n, nil
	})

	tasks := pool.Execute(ctx, []int{1, 2, 3})

	require.Len(t, tasks, 3)
	assert.Zero(t, calls.Load())
	assert.Equal(t, 3, Failed(tasks))
	assert.ErrorIs(t, tasks[2].Err, context.Canceled)
}
