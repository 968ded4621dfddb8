package application

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// PasswordHasher is the one-way hashing collaborator used for user passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}

// EventPublisher receives a JSON-encodable event after each successful mutation.
type EventPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Event is the payload published for every create, update and delete.
type Event struct {
	Name       string    `json:"name"`
	Entity     string    `json:"entity"`
	ID         int64     `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data,omitempty"`
}

// Observers groups the best-effort side channels every service carries.
// Both fields are optional.
type Observers struct {
	Logger *logrus.Logger
	Events EventPublisher
}

func (o Observers) emit(ctx context.Context, entity, action string, id int64, data any) {
	if o.Logger != nil {
		o.Logger.WithFields(logrus.Fields{"entity": entity, "id": id}).Info(strings.ToLower(entity) + " " + action)
	}
	if o.Events == nil {
		return
	}
	ev := Event{
		Name:       strings.ToLower(entity) + "." + action,
		Entity:     entity,
		ID:         id,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
	if err := o.Events.PublishJSON(ctx, ev); err != nil && o.Logger != nil {
		o.Logger.WithError(err).WithField("event", ev.Name).Warn("publish event failed")
	}
}
