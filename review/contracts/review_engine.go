package contracts

import (
	"context"

	"github.com/locr-dev/locr/review/models"
)

// IReviewEngine drives the per-file review pipeline: read and truncate,
// build prompt, consult the cache, invoke the model, normalize, store,
// and write artifacts.
type IReviewEngine interface {
	// CollectFiles walks rootDir and returns every eligible file in
	// deterministic order.
	CollectFiles(rootDir string) ([]string, error)

	// ReviewFile processes a single file end to end and writes both
	// output artifacts.
	ReviewFile(ctx context.Context, path string) (*models.FileReviewResult, error)

	// Run processes every eligible file under rootDir sequentially.
	// Per-file failures are logged and skipped, never fatal.
	Run(ctx context.Context, rootDir string) (*models.RunSummary, error)
}
