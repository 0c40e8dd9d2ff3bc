package migration

import (
	"context"

	"github.com/pngfun/backend/internal/entity"
	"github.com/pngfun/backend/pkg/xcontext"
)

// AutoMigrate creates the latest schema from the entities. It is used by
// tests and local sqlite databases, Migrate is used against postgres.
func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.Challenge{},
		&entity.Submission{},
		&entity.Vote{},
	)
}
