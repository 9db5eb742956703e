package migration

import (
	"context"

	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/pkg/xcontext"
)

// migrate0000 creates the initial schema.
func migrate0000(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.Task{},
		&entity.Submission{},
		&entity.ProofIntent{},
		&entity.Setting{},
	)
}
