package repo

import (
	"context"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	CreateUser(ctx context.Context, u models.User) (models.User, error)
}
