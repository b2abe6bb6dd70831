package comments

import (
	"context"

	"github.com/dmitrijs2005/forumdesign/internal/forum/models"
	"github.com/google/uuid"
)

// Repository persists comments. FindByID, Update and Delete return
// common.ErrorNotFound when no row matches; the collection lookups return an
// empty slice instead.
type Repository interface {
	Insert(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	FindByPostID(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error)
	FindByAuthorID(ctx context.Context, authorID uuid.UUID) ([]*models.Comment, error)
	FindByParentID(ctx context.Context, parentID uuid.UUID) ([]*models.Comment, error)
	FindAll(ctx context.Context) ([]*models.Comment, error)
}
