package posts

import (
	"context"

	"github.com/dmitrijs2005/forumdesign/internal/forum/models"
	"github.com/google/uuid"
)

// Repository persists posts. Lookups by own id, updates and deletes that
// match no row return common.ErrorNotFound; collection lookups return an
// empty slice instead.
type Repository interface {
	Insert(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	FindByAuthorID(ctx context.Context, authorID uuid.UUID) ([]*models.Post, error)
	FindAll(ctx context.Context) ([]*models.Post, error)
}
