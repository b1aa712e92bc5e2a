package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/segmentio/kafka-go"

	"todo-service/internal/entity"
)

var ErrEmptyText = errors.New("item text must not be empty")

type ItemRepository interface {
	ListByUser(ctx context.Context, userID int) ([]entity.Item, error)
	Create(ctx context.Context, item *entity.Item) (*entity.Item, error)
	Update(ctx context.Context, userID, itemID int, text string) error
	Delete(ctx context.Context, userID, itemID int) error
}

// EventWriter is satisfied by *kafka.Writer.
type EventWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// ItemService is a service that provides todo item operations scoped to
// their owning user.
type ItemService struct {
	itemRepo ItemRepository
	events   EventWriter
}

// NewItemService creates a new instance of ItemService. events may be nil
// when no broker is configured.
func NewItemService(itemRepo ItemRepository, events EventWriter) *ItemService {
	return &ItemService{itemRepo: itemRepo, events: events}
}

func (s *ItemService) ListItems(ctx context.Context, userID int) ([]entity.Item, error) {
	items, err := s.itemRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Int("user_id", userID).Msg("Error listing items")
		return nil, err
	}

	return items, nil
}

func (s *ItemService) AddItem(ctx context.Context, userID int, text string) (*entity.Item, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	item, err := s.itemRepo.Create(ctx, &entity.Item{UserID: userID, Text: text})
	if err != nil {
		logger.Error().Err(err).Int("user_id", userID).Msg("Error creating item")
		return nil, err
	}

	s.publishEvent(ctx, &entity.TodoEvent{
		UserID: userID,
		ItemID: item.ID,
		Action: "created",
		Text:   item.Text,
	})

	return item, nil
}

func (s *ItemService) UpdateItem(ctx context.Context, userID, itemID int, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}

	if err := s.itemRepo.Update(ctx, userID, itemID, text); err != nil {
		return err
	}

	s.publishEvent(ctx, &entity.TodoEvent{
		UserID: userID,
		ItemID: itemID,
		Action: "updated",
		Text:   text,
	})

	return nil
}

func (s *ItemService) DeleteItem(ctx context.Context, userID, itemID int) error {
	if err := s.itemRepo.Delete(ctx, userID, itemID); err != nil {
		return err
	}

	s.publishEvent(ctx, &entity.TodoEvent{
		UserID: userID,
		ItemID: itemID,
		Action: "deleted",
	})

	return nil
}

// publishEvent emits the mutation to the todo-events topic. Publishing is
// best-effort: a broker failure is logged and the parent operation still
// succeeds.
func (s *ItemService) publishEvent(ctx context.Context, event *entity.TodoEvent) {
	if s.events == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("Error marshalling todo event")
		return
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("todo.%s.%d", event.Action, event.ItemID)),
		Value: payload,
	}

	if err := s.events.WriteMessages(ctx, msg); err != nil {
		logger.Warn().Err(err).Str("action", event.Action).Msg("Todo event not published")
	}
}
