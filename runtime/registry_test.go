package runtime

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/mocks"
	"chat-relay/observability"
)

var errFake = errors.New("transport broken")

func newTestRegistry() *Registry {
	return NewRegistry(slog.Default(), observability.NewMonitor())
}

func registered(t *testing.T, ctrl *gomock.Controller, key, name string) (*mocks.MockTransport, *contract.Connection) {
	t.Helper()
	transport := mocks.NewMockTransport(ctrl)
	transport.EXPECT().Key().Return(key).AnyTimes()
	conn := &contract.Connection{
		Identity:  domain.Identity{ID: 1, DisplayName: name},
		Transport: transport,
	}
	return transport, conn
}

func TestRegistry_PresenceFollowsRegistrationOrder(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	registry := newTestRegistry()
	roomID := domain.RoomID(1)

	// Given three registered peers
	_, alice := registered(t, ctrl, "k-alice", "alice")
	_, bob := registered(t, ctrl, "k-bob", "bob")
	_, carol := registered(t, ctrl, "k-carol", "carol")
	registry.Register(roomID, alice)
	registry.Register(roomID, bob)
	registry.Register(roomID, carol)

	// Then presence lists them in registration order
	req.Equal([]string{"alice", "bob", "carol"}, registry.ListPresence(roomID))

	// When the middle peer leaves
	registry.Unregister(roomID, bob.Transport)

	// Then order of the remaining peers is preserved
	req.Equal([]string{"alice", "carol"}, registry.ListPresence(roomID))
}

func TestRegistry_UnknownRoomYieldsEmptyPresence(t *testing.T) {
	req := require.New(t)
	registry := newTestRegistry()

	presence := registry.ListPresence(domain.RoomID(404))

	req.NotNil(presence)
	req.Empty(presence)
}

func TestRegistry_UnregisterIsIdempotent(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	registry := newTestRegistry()
	roomID := domain.RoomID(1)

	_, alice := registered(t, ctrl, "k-alice", "alice")
	registry.Register(roomID, alice)

	// When the same peer is unregistered twice
	registry.Unregister(roomID, alice.Transport)
	registry.Unregister(roomID, alice.Transport)

	// Then the room is simply gone, no panic, no ghost entry
	req.Empty(registry.ListPresence(roomID))
}

func TestRegistry_LastLeaveRemovesRoom(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	registry := newTestRegistry()
	roomID := domain.RoomID(7)

	transport, alice := registered(t, ctrl, "k-alice", "alice")
	registry.Register(roomID, alice)
	registry.Unregister(roomID, alice.Transport)

	// A broadcast to the emptied room reaches nobody
	transport.EXPECT().Send(gomock.Any()).Times(0)
	registry.Broadcast(roomID, event.NewTyping("alice"))

	req.Empty(registry.ListPresence(roomID))
}

func TestRegistry_BroadcastDeliversInRegistrationOrder(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	registry := newTestRegistry()
	roomID := domain.RoomID(1)

	var delivery []string
	aliceTransport, alice := registered(t, ctrl, "k-alice", "alice")
	bobTransport, bob := registered(t, ctrl, "k-bob", "bob")
	registry.Register(roomID, alice)
	registry.Register(roomID, bob)

	aliceTransport.EXPECT().Send(gomock.Any()).DoAndReturn(func(event.ChatEvent) error {
		delivery = append(delivery, "alice")
		return nil
	}).Times(1)
	bobTransport.EXPECT().Send(gomock.Any()).DoAndReturn(func(event.ChatEvent) error {
		delivery = append(delivery, "bob")
		return nil
	}).Times(1)

	registry.Broadcast(roomID, event.NewTyping("alice"))

	req.Equal([]string{"alice", "bob"}, delivery)
}

func TestRegistry_FailedPeerDoesNotBlockOthers(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	registry := newTestRegistry()
	roomID := domain.RoomID(1)

	// Given the first peer's transport is broken
	aliceTransport, alice := registered(t, ctrl, "k-alice", "alice")
	bobTransport, bob := registered(t, ctrl, "k-bob", "bob")
	registry.Register(roomID, alice)
	registry.Register(roomID, bob)

	aliceTransport.EXPECT().Send(gomock.Any()).Return(errFake).Times(1)
	delivered := false
	bobTransport.EXPECT().Send(gomock.Any()).DoAndReturn(func(event.ChatEvent) error {
		delivered = true
		return nil
	}).Times(1)

	// When broadcasting
	registry.Broadcast(roomID, event.NewTyping("alice"))

	// Then the healthy peer still received the event and the room is intact
	req.True(delivered)
	req.Equal([]string{"alice", "bob"}, registry.ListPresence(roomID))
}

func TestRegistry_DuplicateKeyKeepsFirstConnection(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	registry := newTestRegistry()
	roomID := domain.RoomID(1)

	_, first := registered(t, ctrl, "same-key", "alice")
	_, second := registered(t, ctrl, "same-key", "impostor")
	registry.Register(roomID, first)
	registry.Register(roomID, second)

	req.Equal([]string{"alice"}, registry.ListPresence(roomID))
}
