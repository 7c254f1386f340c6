package realtime

import (
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskly/internal/models"
)

func newTestRegistry(buffer int) *Registry {
	log, _ := test.NewNullLogger()
	return NewRegistry(buffer, log)
}

func event(id int64) models.NotificationPushed {
	return models.NotificationPushed{ID: id, Message: "m", Link: "/tasks/1", CreatedAt: time.Now()}
}

func TestRegistryFansOutToEveryConnection(t *testing.T) {
	r := newTestRegistry(4)
	tab1 := r.Subscribe(7)
	tab2 := r.Subscribe(7)
	other := r.Subscribe(8)

	assert.Equal(t, 2, r.Publish(7, event(1)))
	assert.Equal(t, int64(1), (<-tab1.Events()).ID)
	assert.Equal(t, int64(1), (<-tab2.Events()).ID)
	assert.Empty(t, other.Events())

	assert.Zero(t, r.Publish(99, event(2)))
	assert.Equal(t, 3, r.Count())
}

func TestRegistryUnsubscribe(t *testing.T) {
	r := newTestRegistry(1)
	sub := r.Subscribe(3)
	require.True(t, r.Connected(3))

	r.Unsubscribe(sub)
	r.Unsubscribe(sub)
	assert.False(t, r.Connected(3))
	_, open := <-sub.Events()
	assert.False(t, open)
	assert.Zero(t, r.Publish(3, event(1)))
}

func TestRegistryDropsWhenBufferFull(t *testing.T) {
	r := newTestRegistry(1)
	slow := r.Subscribe(5)
	fast := r.Subscribe(5)

	assert.Equal(t, 2, r.Publish(5, event(1)))
	<-fast.Events()

	// slow never drained its first event, so only fast takes the second
	assert.Equal(t, 1, r.Publish(5, event(2)))
	assert.Equal(t, int64(1), (<-slow.Events()).ID)
	assert.Equal(t, int64(2), (<-fast.Events()).ID)
}

func TestRegistryConcurrentUse(t *testing.T) {
	r := newTestRegistry(8)
	var wg sync.WaitGroup
	for u := int64(1); u <= 50; u++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				sub := r.Subscribe(userID)
				r.Publish(userID, event(int64(i)))
				r.Publish(userID+1, event(int64(i)))
				r.Connected(userID)
				r.Unsubscribe(sub)
			}
		}(u)
	}
	wg.Wait()
	assert.Zero(t, r.Count())
}
