package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/mocks"
)

func newRoomService(t *testing.T) (*RoomService, *mocks.MockIRoomRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	rooms := mocks.NewMockIRoomRepository(ctrl)
	return NewRoomService(rooms), rooms
}

func TestRoomService_Authorize(t *testing.T) {
	creator := domain.Identity{ID: 1, DisplayName: "alice"}

	t.Run("member passes", func(t *testing.T) {
		req := require.New(t)
		svc, rooms := newRoomService(t)

		rooms.EXPECT().IsMember(domain.RoomID(1), domain.UserID(1)).Return(true, nil)

		req.NoError(svc.Authorize(1, creator))
	})

	t.Run("non-member is refused", func(t *testing.T) {
		req := require.New(t)
		svc, rooms := newRoomService(t)

		rooms.EXPECT().IsMember(domain.RoomID(1), domain.UserID(1)).Return(false, nil)

		err := svc.Authorize(1, creator)
		req.ErrorIs(err, errors.ErrNotInRoom)
	})

	t.Run("unknown room keeps its own reason", func(t *testing.T) {
		req := require.New(t)
		svc, rooms := newRoomService(t)

		rooms.EXPECT().IsMember(domain.RoomID(404), domain.UserID(1)).
			Return(false, errors.ErrRoomNotFound)

		err := svc.Authorize(404, creator)
		req.ErrorIs(err, errors.ErrRoomNotFound)
		req.NotErrorIs(err, errors.ErrNotInRoom)
	})
}

func TestRoomService_CreateValidatesName(t *testing.T) {
	req := require.New(t)
	svc, rooms := newRoomService(t)

	// The repository is never reached with an empty name
	rooms.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Create("", domain.Identity{ID: 1, DisplayName: "alice"})
	req.ErrorIs(err, errors.ErrInvalidRoomName)
}

func TestRoomService_Join(t *testing.T) {
	req := require.New(t)
	svc, rooms := newRoomService(t)

	rooms.EXPECT().AddMember(domain.RoomID(1), domain.UserID(2)).Return(nil)
	rooms.EXPECT().Get(domain.RoomID(1)).
		Return(domain.Room{ID: 1, Name: "general", Members: []domain.UserID{1, 2}}, nil)

	room, err := svc.Join(1, 2)

	req.NoError(err)
	req.True(room.HasMember(2))
}

func TestRoomService_JoinUnknownRoom(t *testing.T) {
	req := require.New(t)
	svc, rooms := newRoomService(t)

	rooms.EXPECT().AddMember(domain.RoomID(404), domain.UserID(2)).
		Return(errors.ErrRoomNotFound)

	_, err := svc.Join(404, 2)
	req.ErrorIs(err, errors.ErrRoomNotFound)
}
