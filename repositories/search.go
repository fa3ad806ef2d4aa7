package repositories

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/blugelabs/bluge"

	"chat-relay/domain"
)

type ISearchIndex interface {
	Index(m domain.Message) error
	Search(ctx context.Context, room domain.RoomID, terms string, limit int) ([]SearchHit, error)
	Close() error
}

// SearchHit is one full-text match inside a room.
type SearchHit struct {
	MessageID string `json:"message_id"`
	Sender    string `json:"sender"`
	Content   string `json:"content"`
}

// MessageIndex maintains a Bluge full-text index next to the Badger store.
// Indexing is best-effort: the Badger record is the source of truth and a
// missing index entry only degrades search results.
type MessageIndex struct {
	writer *bluge.Writer
	log    *slog.Logger
}

func OpenMessageIndex(path string, log *slog.Logger) (*MessageIndex, error) {
	writer, err := bluge.OpenWriter(bluge.DefaultConfig(path))
	if err != nil {
		return nil, fmt.Errorf("bluge index opening failed: %w", err)
	}
	return &MessageIndex{writer: writer, log: log}, nil
}

func (i *MessageIndex) Close() error { return i.writer.Close() }

func roomTerm(room domain.RoomID) string { return fmt.Sprintf("%d", room) }

func (i *MessageIndex) Index(m domain.Message) error {
	doc := bluge.NewDocument(m.ID.String()).
		AddField(bluge.NewKeywordField("room", roomTerm(m.Room))).
		AddField(bluge.NewKeywordField("sender", m.Sender).StoreValue()).
		AddField(bluge.NewTextField("content", m.Content).StoreValue())
	return i.writer.Update(doc.ID(), doc)
}

// Search runs a match query on message content, restricted to one room.
func (i *MessageIndex) Search(ctx context.Context, room domain.RoomID, terms string, limit int) ([]SearchHit, error) {
	reader, err := i.writer.Reader()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := reader.Close(); err != nil {
			i.log.Warn("closing index reader failed", "error", err)
		}
	}()

	query := bluge.NewBooleanQuery().
		AddMust(bluge.NewTermQuery(roomTerm(room)).SetField("room")).
		AddMust(bluge.NewMatchQuery(terms).SetField("content"))

	iterator, err := reader.Search(ctx, bluge.NewTopNSearch(limit, query))
	if err != nil {
		return nil, err
	}

	var hits []SearchHit
	for {
		match, err := iterator.Next()
		if err != nil {
			return nil, err
		}
		if match == nil {
			break
		}

		var hit SearchHit
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "_id":
				hit.MessageID = string(value)
			case "sender":
				hit.Sender = string(value)
			case "content":
				hit.Content = string(value)
			}
			return true
		})
		if err != nil {
			return nil, err
		}
		hits = append(hits, hit)
	}
	return hits, nil
}
