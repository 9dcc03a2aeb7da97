package rooms

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_CreateIsIdempotent(t *testing.T) {
	reg := NewRegistry()

	first := reg.Create("r1", "m1", "i1")
	second := reg.Create("r1", "m2", "i2")

	assert.Same(t, first, second)
	// The first caller's material wins; re-creation never overwrites.
	assert.Equal(t, "m1", second.MaterialID())
}

func TestRegistry_GetAndDelete(t *testing.T) {
	reg := NewRegistry()

	assert.Nil(t, reg.Get("missing"))

	room := reg.Create("r1", "m1", "i1")
	assert.Same(t, room, reg.Get("r1"))

	reg.Delete("r1")
	assert.Nil(t, reg.Get("r1"))
	reg.Delete("r1") // no-op
}

func TestRegistry_List(t *testing.T) {
	reg := NewRegistry()
	assert.Empty(t, reg.List())

	reg.Create("r1", "m1", "i1")
	reg.Create("r2", "m2", "i2")

	states := reg.List()
	require.Len(t, states, 2)
	ids := map[string]string{}
	for _, s := range states {
		ids[s.RoomID] = s.MaterialID
	}
	assert.Equal(t, map[string]string{"r1": "m1", "r2": "m2"}, ids)
}

func TestRegistry_ConcurrentCreateSameID(t *testing.T) {
	reg := NewRegistry()

	const n = 32
	results := make([]*Room, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = reg.Create("r1", fmt.Sprintf("m%d", i), "i")
		}(i)
	}
	wg.Wait()

	// Every concurrent create resolves to the single surviving room.
	for i := 1; i < n; i++ {
		assert.Same(t, results[0], results[i])
	}
	assert.Len(t, reg.List(), 1)
}
