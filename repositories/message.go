package repositories

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"chat-relay/domain"
)

type IMessageRepository interface {
	Store(m domain.Message) error
	Recent(room domain.RoomID, limit int) ([]domain.Message, error)
	Page(room domain.RoomID, cursor *string, limit int) ([]domain.Message, *string, error)
}

type messageRecord struct {
	ID        string        `json:"id"`
	Room      domain.RoomID `json:"room"`
	SenderID  domain.UserID `json:"sender_id"`
	Sender    string        `json:"sender"`
	Content   string        `json:"content"`
	At        int64         `json:"at"` // UnixNano
}

type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) MessageRepository {
	return MessageRepository{db: db, log: log}
}

// Store persists a message in BadgerDB.
// The key is formatted as "msg:{room_id}:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding
//     (lexicographical order).
//  2. Prevent data loss by using the UUID as a collision disconnector if two
//     messages arrive at the same nanosecond.
func (m MessageRepository) Store(message domain.Message) error {
	key := fmt.Sprintf("msg:%d:%019d:%s",
		message.Room,
		message.CreatedAt.UnixNano(),
		message.ID,
	)
	data, err := json.Marshal(fromMessage(message))
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// Recent returns the newest messages of a room, newest first.
func (m MessageRepository) Recent(room domain.RoomID, limit int) ([]domain.Message, error) {
	messages, _, err := m.Page(room, nil, limit)
	return messages, err
}

// Page retrieves messages for a room using a reverse prefix scan, newest
// first. Thanks to the padded timestamp in the key, ordering comes from the
// keys alone. The returned cursor resumes the scan on the next call.
func (m MessageRepository) Page(room domain.RoomID, cursor *string, limit int) ([]domain.Message, *string, error) {
	var raws [][]byte
	var lastKey string
	err := m.db.View(func(txn *badger.Txn) error {
		prefixStr := fmt.Sprintf("msg:%d:", room)
		prefix := []byte(prefixStr)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			// Seek past every possible timestamp, then walk backwards.
			seekKey = append(prefix, []byte("9999999999999999999")...)
		default:
			seekKey = append(prefix, []byte(*cursor)...)
		}

		it.Seek(seekKey)

		// The cursor points at the last key already served; skip it.
		if cursor != nil && it.ValidForPrefix(prefix) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(raws) == limit {
				m.log.Debug(fmt.Sprintf("Maximum of %d messages reached", limit))
				break
			}
			item := it.Item()
			lastKey = string(item.Key()[len(prefixStr):])
			err := item.Value(func(value []byte) error {
				raws = append(raws, append([]byte(nil), value...))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	var messages []domain.Message
	for _, raw := range raws {
		var record messageRecord
		if err = json.Unmarshal(raw, &record); err != nil {
			return nil, nil, err
		}
		message, err := toMessage(record)
		if err != nil {
			return nil, nil, err
		}
		messages = append(messages, message)
	}
	return messages, &lastKey, nil
}

func fromMessage(message domain.Message) messageRecord {
	return messageRecord{
		ID:       message.ID.String(),
		Room:     message.Room,
		SenderID: message.SenderID,
		Sender:   message.Sender,
		Content:  message.Content,
		At:       message.CreatedAt.UnixNano(),
	}
}

func toMessage(record messageRecord) (domain.Message, error) {
	parsedID, err := uuid.Parse(record.ID)
	if err != nil {
		return domain.Message{}, err
	}
	return domain.Message{
		ID:        parsedID,
		Room:      record.Room,
		SenderID:  record.SenderID,
		Sender:    record.Sender,
		Content:   record.Content,
		CreatedAt: time.Unix(0, record.At).UTC(),
	}, nil
}
