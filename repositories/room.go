package repositories

import (
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	json "github.com/goccy/go-json"
	"github.com/samber/lo"

	"chat-relay/domain"
	"chat-relay/errors"
)

type IRoomRepository interface {
	Create(name string, creator domain.UserID) (domain.Room, error)
	Get(id domain.RoomID) (domain.Room, error)
	AddMember(id domain.RoomID, user domain.UserID) error
	IsMember(id domain.RoomID, user domain.UserID) (bool, error)
	List() ([]domain.Room, error)
}

type roomRecord struct {
	ID        domain.RoomID   `json:"id"`
	Name      string          `json:"name"`
	CreatorID domain.UserID   `json:"creator_id"`
	Members   []domain.UserID `json:"members"`
	CreatedAt time.Time       `json:"created_at"`
}

type RoomRepository struct {
	db  *badger.DB
	seq *badger.Sequence
}

func NewRoomRepository(db *badger.DB) (*RoomRepository, error) {
	seq, err := db.GetSequence([]byte("seq:room"), 64)
	if err != nil {
		return nil, fmt.Errorf("room id sequence: %w", err)
	}
	return &RoomRepository{db: db, seq: seq}, nil
}

func (r *RoomRepository) Close() error { return r.seq.Release() }

// roomKey pads the id so a prefix scan lists rooms in creation order.
func roomKey(id domain.RoomID) []byte {
	return []byte(fmt.Sprintf("room:%019d", id))
}

func (r *RoomRepository) Create(name string, creator domain.UserID) (domain.Room, error) {
	next, err := r.seq.Next()
	if err != nil {
		return domain.Room{}, err
	}
	record := roomRecord{
		ID:        domain.RoomID(next + 1),
		Name:      name,
		CreatorID: creator,
		Members:   []domain.UserID{creator},
		CreatedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return domain.Room{}, err
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(roomKey(record.ID), data)
	})
	if err != nil {
		return domain.Room{}, err
	}
	return toRoom(record), nil
}

func (r *RoomRepository) Get(id domain.RoomID) (domain.Room, error) {
	var record roomRecord
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(roomKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	if err != nil {
		return domain.Room{}, fmt.Errorf("%w: id %d", errors.ErrRoomNotFound, id)
	}
	return toRoom(record), nil
}

// AddMember is idempotent: joining a room twice leaves one membership.
func (r *RoomRepository) AddMember(id domain.RoomID, user domain.UserID) error {
	return r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(roomKey(id))
		if err != nil {
			return fmt.Errorf("%w: id %d", errors.ErrRoomNotFound, id)
		}
		var record roomRecord
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		}); err != nil {
			return err
		}
		if lo.Contains(record.Members, user) {
			return nil
		}
		record.Members = append(record.Members, user)
		data, err := json.Marshal(record)
		if err != nil {
			return err
		}
		return txn.Set(roomKey(id), data)
	})
}

func (r *RoomRepository) IsMember(id domain.RoomID, user domain.UserID) (bool, error) {
	room, err := r.Get(id)
	if err != nil {
		return false, err
	}
	return room.HasMember(user), nil
}

// List scans the room prefix; padded keys keep creation order.
func (r *RoomRepository) List() ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte("room:")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var record roomRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &record)
			})
			if err != nil {
				return err
			}
			rooms = append(rooms, toRoom(record))
		}
		return nil
	})
	return rooms, err
}

func toRoom(record roomRecord) domain.Room {
	return domain.Room{
		ID:        record.ID,
		Name:      record.Name,
		CreatorID: record.CreatorID,
		Members:   record.Members,
	}
}
