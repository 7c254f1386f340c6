package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskly/internal/models"
)

func TestRecipients(t *testing.T) {
	assert.Equal(t, []int64{3, 1}, recipients([]int64{3, 1, 3, 2, 0, 1}, 2))
	assert.Empty(t, recipients([]int64{5, 5}, 5))
	assert.Empty(t, recipients(nil, 0))
}

func TestDispatchToOnlyTheActorIsNoop(t *testing.T) {
	e := newEnv(t)
	self := e.registry.Subscribe(e.f.Bob.ID)

	created, err := e.notifications.CreateAndDispatch(e.ctx, []int64{e.f.Bob.ID, e.f.Bob.ID}, e.f.Bob.ID, "hi", "/x")
	require.NoError(t, err)
	assert.Empty(t, created)
	assert.Empty(t, drain(self))
	assert.Empty(t, e.inbox(t, e.f.Bob.ID))
	e.notifications.Wait()
	assert.Empty(t, e.relay.deliveries())
}

func TestDispatchCreatesOneRowPerRecipient(t *testing.T) {
	e := newEnv(t)
	aliceTab1 := e.registry.Subscribe(e.f.Alice.ID)
	aliceTab2 := e.registry.Subscribe(e.f.Alice.ID)

	targets := []int64{e.f.Alice.ID, e.f.Bob.ID, e.f.Alice.ID, e.f.Lead.ID}
	created, err := e.notifications.CreateAndDispatch(e.ctx, targets, e.f.Lead.ID, "standup moved", "/app/calendar")
	require.NoError(t, err)
	require.Len(t, created, 2)

	// both of alice's tabs receive the push
	for _, tab := range []interface{ Events() <-chan models.NotificationPushed }{aliceTab1, aliceTab2} {
		select {
		case ev := <-tab.Events():
			assert.Equal(t, "standup moved", ev.Message)
			assert.False(t, ev.IsRead)
		default:
			t.Fatal("expected a pushed event")
		}
	}

	// bob was offline: the row is still there and the relay got it
	bobInbox := e.inbox(t, e.f.Bob.ID)
	require.Len(t, bobInbox, 1)
	e.notifications.Wait()
	deliveries := e.relay.deliveries()
	require.Len(t, deliveries, 1)
	assert.Equal(t, e.f.Bob.ID, deliveries[0].userID)

	// each row is marked independently
	_, err = e.notifications.MarkOneRead(e.ctx, e.f.Bob.ID, bobInbox[0].ID)
	require.NoError(t, err)
	assert.True(t, e.inbox(t, e.f.Bob.ID)[0].IsRead)
	assert.False(t, e.inbox(t, e.f.Alice.ID)[0].IsRead)
}

func TestRelayFailureIsLoggedOnly(t *testing.T) {
	e := newEnv(t)
	e.relay.err = errors.New("smtp down")

	created, err := e.notifications.CreateAndDispatch(e.ctx, []int64{e.f.Bob.ID}, 0, "m", "/l")
	require.NoError(t, err)
	require.Len(t, created, 1)
	e.notifications.Wait()

	assert.Len(t, e.inbox(t, e.f.Bob.ID), 1)
	require.NotNil(t, e.hook.LastEntry())
	assert.Equal(t, "offline delivery failed", e.hook.LastEntry().Message)
}

func TestDispatchBatchFailureIsFatal(t *testing.T) {
	e := newEnv(t)
	alice := e.registry.Subscribe(e.f.Alice.ID)

	_, err := e.notifications.CreateAndDispatch(e.ctx, []int64{e.f.Alice.ID, 9999}, 0, "m", "/l")
	require.Error(t, err)
	assert.Empty(t, drain(alice))
	assert.Empty(t, e.inbox(t, e.f.Alice.ID))
}

func TestListForUserNewestFirstCapped(t *testing.T) {
	e := newEnv(t)
	for i := 0; i < 20; i++ {
		_, err := e.notifications.CreateAndDispatch(e.ctx, []int64{e.f.Bob.ID}, 0, string(rune('a'+i)), "/l")
		require.NoError(t, err)
	}
	list := e.inbox(t, e.f.Bob.ID)
	require.Len(t, list, 15)
	assert.Equal(t, "t", list[0].Message)
	assert.Equal(t, "f", list[14].Message)
}

func TestMarkOneReadIsIdempotent(t *testing.T) {
	e := newEnv(t)
	created, err := e.notifications.CreateAndDispatch(e.ctx, []int64{e.f.Bob.ID}, 0, "m", "/tasks/7")
	require.NoError(t, err)
	id := created[0].ID

	link, err := e.notifications.MarkOneRead(e.ctx, e.f.Bob.ID, id)
	require.NoError(t, err)
	assert.Equal(t, "/tasks/7", link)
	first := e.inbox(t, e.f.Bob.ID)[0]

	link, err = e.notifications.MarkOneRead(e.ctx, e.f.Bob.ID, id)
	require.NoError(t, err)
	assert.Equal(t, "/tasks/7", link)
	second := e.inbox(t, e.f.Bob.ID)[0]
	assert.True(t, second.IsRead)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
}

func TestMarkOneReadHidesOtherUsersRows(t *testing.T) {
	e := newEnv(t)
	created, err := e.notifications.CreateAndDispatch(e.ctx, []int64{e.f.Bob.ID}, 0, "m", "/l")
	require.NoError(t, err)

	_, errOther := e.notifications.MarkOneRead(e.ctx, e.f.Alice.ID, created[0].ID)
	_, errMissing := e.notifications.MarkOneRead(e.ctx, e.f.Alice.ID, 424242)
	require.ErrorIs(t, errOther, ErrNotFound)
	require.ErrorIs(t, errMissing, ErrNotFound)
	assert.Equal(t, errMissing.Error(), errOther.Error())
	assert.False(t, e.inbox(t, e.f.Bob.ID)[0].IsRead)
}

func TestMarkAllRead(t *testing.T) {
	e := newEnv(t)
	for i := 0; i < 3; i++ {
		_, err := e.notifications.CreateAndDispatch(e.ctx, []int64{e.f.Bob.ID}, 0, "m", "/l")
		require.NoError(t, err)
	}
	n, err := e.notifications.MarkAllRead(e.ctx, e.f.Bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = e.notifications.MarkAllRead(e.ctx, e.f.Bob.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	for _, item := range e.inbox(t, e.f.Bob.ID) {
		assert.True(t, item.IsRead)
	}
}

func TestSendMeetingInvitation(t *testing.T) {
	e := newEnv(t)
	bob := e.registry.Subscribe(e.f.Bob.ID)

	n, err := e.notifications.SendMeetingInvitation(e.ctx, e.f.Alice.ID,
		[]int64{e.f.Bob.ID, e.f.Alice.ID, e.f.Bob.ID}, "Sprint review", "/app/meeting/sprint")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	events := drain(bob)
	require.Len(t, events, 1)
	assert.Equal(t, `Alice invites you to the meeting "Sprint review"`, events[0].Message)
	assert.Equal(t, "/app/meeting/sprint", events[0].Link)
	assert.Empty(t, e.inbox(t, e.f.Alice.ID))

	_, err = e.notifications.SendMeetingInvitation(e.ctx, e.f.Alice.ID, []int64{e.f.Bob.ID}, " ", "/l")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = e.notifications.SendMeetingInvitation(e.ctx, e.f.Alice.ID, nil, "t", "/l")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = e.notifications.SendMeetingInvitation(e.ctx, 9999, []int64{e.f.Bob.ID}, "t", "/l")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
