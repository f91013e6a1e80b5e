package snowflake_test

import (
	"strings"
	"sync"
	"testing"

	"resort/infras/snowflake"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_InvoiceNumberUnique(t *testing.T) {
	gen, err := snowflake.NewWithNode(1)
	require.NoError(t, err)

	seen := make(map[string]struct{}, 10000)

	for range 10000 {
		number := gen.InvoiceNumber()

		assert.True(t, strings.HasPrefix(number, snowflake.InvoicePrefix))

		_, dup := seen[number]
		require.False(t, dup, "duplicate invoice number %s", number)

		seen[number] = struct{}{}
	}
}

func TestGenerator_ConcurrentNodes(t *testing.T) {
	first, err := snowflake.NewWithNode(1)
	require.NoError(t, err)

	second, err := snowflake.NewWithNode(2)
	require.NoError(t, err)

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		seen = map[string]struct{}{}
	)

	for _, gen := range []snowflake.Generator{first, second, first, second} {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for range 2500 {
				number := gen.InvoiceNumber()

				mu.Lock()
				seen[number] = struct{}{}
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	assert.Len(t, seen, 10000)
}

func TestNewWithNode_OutOfRange(t *testing.T) {
	_, err := snowflake.NewWithNode(1024)
	assert.Error(t, err)

	_, err = snowflake.NewWithNode(-1)
	assert.Error(t, err)
}
