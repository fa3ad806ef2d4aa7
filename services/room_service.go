package services

import (
	"fmt"

	"chat-relay/auth"
	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/repositories"
)

type IRoomService interface {
	Create(name string, creator domain.Identity) (domain.Room, error)
	List() ([]domain.Room, error)
	Join(roomID domain.RoomID, user domain.UserID) (domain.Room, error)
	Authorize(roomID domain.RoomID, identity domain.Identity) error
}

type RoomService struct {
	rooms repositories.IRoomRepository
}

func NewRoomService(rooms repositories.IRoomRepository) *RoomService {
	return &RoomService{rooms: rooms}
}

// Create makes a new room with the creator as its first member.
func (s *RoomService) Create(name string, creator domain.Identity) (domain.Room, error) {
	if err := auth.ValidateCreateRoom(auth.CreateRoomRequest{Name: name}); err != nil {
		return domain.Room{}, fmt.Errorf("%w: %v", errors.ErrInvalidRoomName, err)
	}
	return s.rooms.Create(name, creator.ID)
}

func (s *RoomService) List() ([]domain.Room, error) {
	return s.rooms.List()
}

func (s *RoomService) Join(roomID domain.RoomID, user domain.UserID) (domain.Room, error) {
	if err := s.rooms.AddMember(roomID, user); err != nil {
		return domain.Room{}, err
	}
	return s.rooms.Get(roomID)
}

// Authorize confirms room membership for a handshake. Pure read; a session
// checks once at connection time and relies on that answer for its lifetime.
func (s *RoomService) Authorize(roomID domain.RoomID, identity domain.Identity) error {
	member, err := s.rooms.IsMember(roomID, identity.ID)
	if err != nil {
		return err // ErrRoomNotFound
	}
	if !member {
		return fmt.Errorf("%w: user %d in room %d", errors.ErrNotInRoom, identity.ID, roomID)
	}
	return nil
}
