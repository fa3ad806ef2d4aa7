package repositories

import (
	"testing"

	"github.com/stretchr/testify/require"

	"chat-relay/domain"
	"chat-relay/errors"
)

func testRoomRepository(t *testing.T) *RoomRepository {
	t.Helper()
	repository, err := NewRoomRepository(testDB(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repository.Close() })
	return repository
}

func TestRoomRepository_CreatorIsFirstMember(t *testing.T) {
	req := require.New(t)
	repository := testRoomRepository(t)

	room, err := repository.Create("general", 7)
	req.NoError(err)
	req.Equal(domain.RoomID(1), room.ID)
	req.Equal([]domain.UserID{7}, room.Members)

	isMember, err := repository.IsMember(room.ID, 7)
	req.NoError(err)
	req.True(isMember)
}

func TestRoomRepository_JoinIsIdempotent(t *testing.T) {
	req := require.New(t)
	repository := testRoomRepository(t)

	room, err := repository.Create("general", 7)
	req.NoError(err)

	req.NoError(repository.AddMember(room.ID, 8))
	req.NoError(repository.AddMember(room.ID, 8))

	fetched, err := repository.Get(room.ID)
	req.NoError(err)
	req.Equal([]domain.UserID{7, 8}, fetched.Members)
}

func TestRoomRepository_NonMember(t *testing.T) {
	req := require.New(t)
	repository := testRoomRepository(t)

	room, err := repository.Create("general", 7)
	req.NoError(err)

	isMember, err := repository.IsMember(room.ID, 99)
	req.NoError(err)
	req.False(isMember)
}

func TestRoomRepository_UnknownRoom(t *testing.T) {
	req := require.New(t)
	repository := testRoomRepository(t)

	_, err := repository.Get(404)
	req.ErrorIs(err, errors.ErrRoomNotFound)

	err = repository.AddMember(404, 7)
	req.ErrorIs(err, errors.ErrRoomNotFound)

	_, err = repository.IsMember(404, 7)
	req.ErrorIs(err, errors.ErrRoomNotFound)
}

func TestRoomRepository_ListKeepsCreationOrder(t *testing.T) {
	req := require.New(t)
	repository := testRoomRepository(t)

	_, err := repository.Create("first", 1)
	req.NoError(err)
	_, err = repository.Create("second", 1)
	req.NoError(err)
	_, err = repository.Create("third", 1)
	req.NoError(err)

	rooms, err := repository.List()
	req.NoError(err)
	req.Len(rooms, 3)
	req.Equal("first", rooms[0].Name)
	req.Equal("second", rooms[1].Name)
	req.Equal("third", rooms[2].Name)
}
