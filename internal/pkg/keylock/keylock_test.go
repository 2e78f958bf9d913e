//go:build unit

package keylock_test

import (
	"sync"
	"testing"

	"ghar-ko-sathi/internal/pkg/keylock"

	"github.com/stretchr/testify/assert"
)

func TestKeyLock(t *testing.T) {
	t.Run("serializes the same key", func(t *testing.T) {
		l := keylock.New[string]()
		counter := 0
		var wg sync.WaitGroup
		for range 100 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				l.Lock("b1")
				defer l.Unlock("b1")
				counter++
			}()
		}
		wg.Wait()
		assert.Equal(t, 100, counter)
		assert.Equal(t, 0, l.Len())
	})

	t.Run("different keys do not block each other", func(t *testing.T) {
		l := keylock.New[string]()
		l.Lock("a")
		done := make(chan struct{})
		go func() {
			l.Lock("b")
			l.Unlock("b")
			close(done)
		}()
		<-done
		l.Unlock("a")
		assert.Equal(t, 0, l.Len())
	})

	t.Run("unlock without lock panics", func(t *testing.T) {
		l := keylock.New[int]()
		assert.Panics(t, func() { l.Unlock(1) })
	})
}
