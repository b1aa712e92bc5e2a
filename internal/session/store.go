package session

import (
	"context"

	"todo-service/internal/entity"
)

// Store is the three-operation session contract. Find returns (nil, nil)
// for tokens that are unknown or past their expiry; Destroy of an unknown
// token is not an error.
type Store interface {
	Create(ctx context.Context, userID int, username string) (*entity.Session, error)
	Find(ctx context.Context, token string) (*entity.Session, error)
	Destroy(ctx context.Context, token string) error
}
