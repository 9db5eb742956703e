package migration

import (
	"context"

	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/pkg/xcontext"
)

// AutoMigrate builds the latest schema directly. Tests and fresh dev
// environments use it; deployments run Migrate instead.
func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.Task{},
		&entity.Submission{},
		&entity.ProofIntent{},
		&entity.Setting{},
		&entity.Migration{},
	)
}
