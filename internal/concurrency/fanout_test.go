package concurrency

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFanOutRunsEveryItem(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	var processed int64

	err := FanOut(context.Background(), 2, items, func(_ context.Context, item int) error {
		atomic.AddInt64(&processed, int64(item))
		return nil
	})

	require.NoError(t, err)
	assert.EqualValues(t, 15, processed)
}

func TestFanOutAggregatesErrors(t *testing.T) {
	items := []int{1, 2, 3}

	err := FanOut(context.Background(), 3, items, func(_ context.Context, item int) error {
		if item == 2 {
			return assertErrorFor(item)
		}

		return nil
	})

	require.Error(t, err)
}

func TestFanOutCancelsOnFirstError(t *testing.T) {
	items := make([]int, 200)
	for i := range items {
		items[i] = i
	}

	var ran int64

	err := FanOut(context.Background(), 10, items, func(ctx context.Context, item int) error {
		atomic.AddInt64(&ran, 1)

		if item == 0 {
			return assertErrorFor(item)
		}

		<-ctx.Done()

		return ctx.Err()
	})

	require.Error(t, err)
}

func TestFanOutDefaultsWindow(t *testing.T) {
	err := FanOut(context.Background(), 0, []int{1}, func(_ context.Context, _ int) error {
		return nil
	})

	require.NoError(t, err)
}

func TestFanOutEmptyItems(t *testing.T) {
	err := FanOut[int](context.Background(), DefaultWindow, nil, func(_ context.Context, _ int) error {
		t.Fatal("fn should never be called for an empty item set")
		return nil
	})

	require.NoError(t, err)
}

type fanoutError struct {
	item int
}

func (e fanoutError) Error() string {
	return "fanout error"
}

func assertErrorFor(item int) error {
	return fanoutError{item: item}
}
