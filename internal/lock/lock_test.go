package lock_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MaxKochergin/NNGP-sub002/internal/lock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLockerSerializesSameKey(t *testing.T) {
	l := lock.NewLocalLocker()
	key := lock.AttemptStartKey(1, 2)

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Acquire(context.Background(), key, time.Second)
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			atomic.AddInt32(&inside, -1)
			release()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
}

func TestLocalLockerDifferentKeysDoNotBlock(t *testing.T) {
	l := lock.NewLocalLocker()

	releaseA, err := l.Acquire(context.Background(), lock.AttemptStartKey(1, 1), time.Second)
	require.NoError(t, err)
	defer releaseA()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	releaseB, err := l.Acquire(ctx, lock.AttemptStartKey(1, 2), time.Second)
	require.NoError(t, err)
	releaseB()
}

func TestLocalLockerHonoursContext(t *testing.T) {
	l := lock.NewLocalLocker()
	key := lock.AttemptStartKey(3, 4)

	release, err := l.Acquire(context.Background(), key, time.Second)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx, key, time.Second)
	assert.True(t, errors.Is(err, lock.ErrNotAcquired))

	release()
	release() // second call is a no-op

	again, err := l.Acquire(context.Background(), key, time.Second)
	require.NoError(t, err)
	again()
}

func TestAttemptStartKey(t *testing.T) {
	assert.Equal(t, "attempt-start:10:20", lock.AttemptStartKey(10, 20))
}
