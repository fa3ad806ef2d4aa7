package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abadojack/whatlanggo"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/moderation"
	"chat-relay/observability"
	"chat-relay/repositories"
)

// DefaultHistoryLimit is the number of messages replayed to a joining peer.
const DefaultHistoryLimit = 20

// ChatService is the persistence gateway for chat events: moderation,
// durable append, full-text indexing and history replay.
type ChatService struct {
	messages     repositories.IMessageRepository
	index        repositories.ISearchIndex
	moderator    *moderation.Moderator
	monitor      *observability.Monitor
	log          *slog.Logger
	historyLimit int
}

func NewChatService(messages repositories.IMessageRepository, index repositories.ISearchIndex,
	moderator *moderation.Moderator, monitor *observability.Monitor,
	log *slog.Logger, historyLimit int) *ChatService {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &ChatService{
		messages:     messages,
		index:        index,
		moderator:    moderator,
		monitor:      monitor,
		log:          log,
		historyLimit: historyLimit,
	}
}

// Append runs the moderation pass and persists the message. The index write
// is best-effort: the message is durable once Badger accepted it.
func (s *ChatService) Append(ctx context.Context, roomID domain.RoomID, sender domain.Identity, content string) (domain.Message, error) {
	censored, foundWords := s.moderator.Censor(content)
	if len(foundWords) > 0 {
		info := whatlanggo.Detect(content)
		s.monitor.MessageCensored()
		s.log.Warn("censored words masked",
			"room_id", roomID,
			"sender_id", sender.ID,
			"lang", info.Lang.Iso6391(),
			"words", len(foundWords))
	}

	message := domain.Message{
		ID:        uuid.New(),
		Room:      roomID,
		SenderID:  sender.ID,
		Sender:    sender.DisplayName,
		Content:   censored,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.messages.Store(message); err != nil {
		s.monitor.StoreFailure()
		return domain.Message{}, fmt.Errorf("%w: %v", errors.ErrStore, err)
	}
	s.monitor.MessagePersisted()

	if err := s.index.Index(message); err != nil {
		s.log.Error("search indexing failed", "message_id", message.ID, "error", err)
	}
	return message, nil
}

// RecentHistory returns the newest messages of a room reordered oldest
// first, ready for a history frame.
func (s *ChatService) RecentHistory(roomID domain.RoomID) ([]domain.Message, error) {
	messages, err := s.messages.Recent(roomID, s.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrStore, err)
	}
	s.monitor.HistoryReplayed()
	return lo.Reverse(messages), nil
}

// Page exposes cursor pagination for the REST history endpoint,
// newest first.
func (s *ChatService) Page(roomID domain.RoomID, cursor *string, limit int) ([]domain.Message, *string, error) {
	if limit <= 0 || limit > 100 {
		limit = s.historyLimit
	}
	return s.messages.Page(roomID, cursor, limit)
}

// Search runs a full-text query over one room's messages.
func (s *ChatService) Search(ctx context.Context, roomID domain.RoomID, terms string, limit int) ([]repositories.SearchHit, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.index.Search(ctx, roomID, terms, limit)
}
