package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"todo-service/internal/entity"
)

// UserLookup resolves the owner of an event to check for a bound chat.
type UserLookup interface {
	GetUserByID(ctx context.Context, id int) (*entity.User, error)
}

// MessageReader is satisfied by *kafka.Reader.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// Consumer drains the todo-events topic and forwards each event to the
// owner's bound telegram chat. Users without a binding are skipped and
// delivery failures are logged, not retried.
type Consumer struct {
	reader MessageReader
	users  UserLookup
	sender Sender
}

func NewConsumer(reader MessageReader, users UserLookup, sender Sender) *Consumer {
	return &Consumer{reader: reader, users: users, sender: sender}
}

// Run blocks reading events until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error().Err(err).Msg("Error reading todo event")
			continue
		}

		c.processMessage(ctx, msg)
	}
}

func (c *Consumer) processMessage(ctx context.Context, msg kafka.Message) {
	var event entity.TodoEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error().Err(err).Msg("Error unmarshalling todo event")
		return
	}

	user, err := c.users.GetUserByID(ctx, event.UserID)
	if err != nil {
		log.Error().Err(err).Int("user_id", event.UserID).Msg("Error looking up event owner")
		return
	}
	if user.TelegramChatID == nil {
		return
	}

	var text string
	switch event.Action {
	case "created":
		text = fmt.Sprintf("Task added: %s", event.Text)
	case "updated":
		text = fmt.Sprintf("Task updated: %s", event.Text)
	case "deleted":
		text = "Task deleted"
	default:
		log.Error().Str("action", event.Action).Msg("Unknown todo event action")
		return
	}

	if err := c.sender.SendText(ctx, *user.TelegramChatID, text); err != nil {
		log.Error().Err(err).Int("user_id", event.UserID).Msg("Error delivering notification")
	}
}
