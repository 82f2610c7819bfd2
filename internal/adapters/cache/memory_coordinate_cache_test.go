package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"travel-fee-service/internal/domain"
)

func TestMemoryCacheGetPut(t *testing.T) {
	c := NewMemoryCoordinateCache()

	_, ok := c.Get("17017337")
	require.False(t, ok)

	loc := domain.ResolvedLocation{
		CEP:         "17017-337",
		Cidade:      "Bauru",
		UF:          "SP",
		Coordinates: domain.Coordinates{Lat: -22.3155, Lon: -49.0708},
	}
	c.Put("17017337", loc)

	got, ok := c.Get("17017337")
	require.True(t, ok)
	require.Equal(t, loc, got)
	require.Equal(t, 1, c.Len())
}

func TestMemoryCachePutOverwrites(t *testing.T) {
	c := NewMemoryCoordinateCache()

	c.Put("k", domain.ResolvedLocation{Cidade: "Bauru"})
	c.Put("k", domain.ResolvedLocation{Cidade: "Marília"})

	got, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, "Marília", got.Cidade)
	require.Equal(t, 1, c.Len())
}

func TestMemoryCacheClear(t *testing.T) {
	c := NewMemoryCoordinateCache()
	c.Put("a", domain.ResolvedLocation{})
	c.Put("b", domain.ResolvedLocation{})

	require.Equal(t, 2, c.Clear())
	require.Equal(t, 0, c.Len())

	_, ok := c.Get("a")
	require.False(t, ok)

	require.Equal(t, 0, c.Clear())
}

func TestMemoryCacheConcurrentAccess(t *testing.T) {
	c := NewMemoryCoordinateCache()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("cep-%d", i%8)
			c.Put(key, domain.ResolvedLocation{Cidade: key})
			if loc, ok := c.Get(key); ok && loc.Cidade == "" {
				t.Error("read a corrupted entry")
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, 8, c.Len())
}
