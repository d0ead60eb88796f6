package sequence_test

import (
	"sync"
	"testing"

	"github.com/amirasaad/banking/pkg/sequence"
	"github.com/stretchr/testify/assert"
)

func TestNext(t *testing.T) {
	t.Parallel()
	g := sequence.New("C")

	assert.Equal(t, "C001", g.Next())
	assert.Equal(t, "C002", g.Next())
	assert.Equal(t, "C003", g.Peek())
	assert.Equal(t, "C003", g.Next())
}

func TestReseed(t *testing.T) {
	t.Parallel()

	t.Run("continues after the max stored id", func(t *testing.T) {
		t.Parallel()
		g := sequence.New("A")
		g.Reseed([]string{"A003", "A017", "A009"})
		assert.Equal(t, "A018", g.Next())
	})

	t.Run("ignores malformed ids", func(t *testing.T) {
		t.Parallel()
		g := sequence.New("A")
		g.Reseed([]string{"C005", "Axx7", "", "A", "A-12"})
		assert.Equal(t, "A001", g.Next())
	})

	t.Run("never moves backwards", func(t *testing.T) {
		t.Parallel()
		g := sequence.New("A")
		g.Reseed([]string{"A020"})
		g.Reseed([]string{"A004"})
		assert.Equal(t, "A021", g.Next())
	})
}

func TestWidthGrowsPastPadding(t *testing.T) {
	t.Parallel()
	g := sequence.New("A")
	g.Reseed([]string{"A999"})
	assert.Equal(t, "A1000", g.Next())
	assert.Equal(t, "A1001", g.Next())
}

func TestNextConcurrent(t *testing.T) {
	t.Parallel()
	g := sequence.New("T")

	const workers = 8
	const perWorker = 250

	ids := make(chan string, workers*perWorker)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				ids <- g.Next()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool, workers*perWorker)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id issued: %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers*perWorker)
}
