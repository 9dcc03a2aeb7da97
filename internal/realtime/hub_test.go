package realtime

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHubSubscribeUnsubscribe(t *testing.T) {
	h := NewHub(zap.NewNop())
	c1 := newTestClient("c1")
	c2 := newTestClient("c2")

	h.Subscribe("r1", c1)
	h.Subscribe("r1", c2)
	h.Subscribe("r2", c1)

	assert.Equal(t, 2, h.SubscriberCount("r1"))
	assert.Equal(t, 1, h.SubscriberCount("r2"))
	assert.ElementsMatch(t, []string{"r1", "r2"}, h.JoinedRooms("c1"))
	assert.ElementsMatch(t, []string{"r1"}, h.JoinedRooms("c2"))

	h.Unsubscribe("r1", c1.ID)
	assert.Equal(t, 1, h.SubscriberCount("r1"))
	assert.ElementsMatch(t, []string{"r2"}, h.JoinedRooms("c1"))

	// Unsubscribing twice is fine.
	h.Unsubscribe("r1", c1.ID)
	h.Unsubscribe("no-such-room", c1.ID)
	assert.Equal(t, 1, h.SubscriberCount("r1"))
}

func TestHubBroadcast(t *testing.T) {
	h := NewHub(zap.NewNop())
	c1 := newTestClient("c1")
	c2 := newTestClient("c2")
	c3 := newTestClient("c3")
	h.Subscribe("r1", c1)
	h.Subscribe("r1", c2)
	h.Subscribe("r2", c3)

	h.Broadcast("r1", EventPageChanged, map[string]int{"page_number": 4})

	for _, c := range []*Client{c1, c2} {
		msg := recv(t, c)
		assert.Equal(t, EventPageChanged, msg.Event)
	}
	assert.Empty(t, c3.send, "other rooms must not receive the event")

	h.BroadcastExcept("r1", c1.ID, EventSyncToggled, map[string]bool{"enabled": true})
	assert.Empty(t, c1.send)
	msg := recv(t, c2)
	assert.Equal(t, EventSyncToggled, msg.Event)
}

func TestHubBroadcastFullBufferDoesNotBlock(t *testing.T) {
	h := NewHub(zap.NewNop())
	slow := &Client{ID: "slow", send: make(chan Envelope, 1), logger: zap.NewNop()}
	h.Subscribe("r1", slow)

	// Second send overflows the buffer and must be dropped, not block.
	h.Broadcast("r1", EventPageChanged, map[string]int{"page_number": 1})
	h.Broadcast("r1", EventPageChanged, map[string]int{"page_number": 2})

	msg := recv(t, slow)
	require.Equal(t, EventPageChanged, msg.Event)
	assert.Empty(t, slow.send)
}

func TestHubDropRoom(t *testing.T) {
	h := NewHub(zap.NewNop())
	c1 := newTestClient("c1")
	h.Subscribe("r1", c1)
	h.Subscribe("r2", c1)

	h.DropRoom("r1")

	assert.Equal(t, 0, h.SubscriberCount("r1"))
	assert.ElementsMatch(t, []string{"r2"}, h.JoinedRooms("c1"))
}

func TestHubLockRoomSerialises(t *testing.T) {
	h := NewHub(zap.NewNop())

	var (
		wg      sync.WaitGroup
		counter int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := h.LockRoom("r1")
			counter++
			unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 16, counter)
}
