package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedLocks_SerializesSameKey(t *testing.T) {
	t.Parallel()

	var locks keyedLocks
	const goroutines = 50

	counter := 0
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			unlock := locks.lock("sess-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines, counter)
}

func TestKeyedLocks_DistinctKeysDoNotBlock(t *testing.T) {
	t.Parallel()

	var locks keyedLocks
	unlockA := locks.lock("sess-a")

	done := make(chan struct{})
	go func() {
		unlockB := locks.lock("sess-b")
		unlockB()
		close(done)
	}()
	<-done

	unlockA()
}

func TestKeyedLocks_EntriesAreReleased(t *testing.T) {
	t.Parallel()

	var locks keyedLocks
	unlock := locks.lock("sess-1")
	unlock()

	locks.mu.Lock()
	defer locks.mu.Unlock()
	assert.Empty(t, locks.locks, "released entries must not linger in the map")
}
