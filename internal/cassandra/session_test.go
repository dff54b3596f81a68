package cassandra

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPending_WaitReturnsResult(t *testing.T) {
	p := NewPending()
	rows := Rows{{"keyspace_name": "system"}}

	go p.Complete(rows, nil)

	got, err := p.Wait()
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestPending_WaitReturnsError(t *testing.T) {
	p := NewPending()
	failure := errors.New("node went away")

	go p.Complete(nil, failure)

	_, err := p.Wait()
	assert.Equal(t, failure, err)
}

func TestPending_MultipleWaiters(t *testing.T) {
	p := NewPending()
	rows := Rows{{"id": 1}}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := p.Wait()
			assert.NoError(t, err)
			assert.Equal(t, rows, got)
		}()
	}

	p.Complete(rows, nil)
	wg.Wait()
}
