package interfaces

import (
	"context"

	domaintypes "lcforge/internal/domain/types"
)

// CampaignStore persists campaign runs and their per-trial outcomes.
type CampaignStore interface {
	SaveRun(ctx context.Context, run domaintypes.CampaignRun, trials []domaintypes.TrialResult) error
	LoadRun(ctx context.Context, id string) (domaintypes.CampaignRun, []domaintypes.TrialResult, error)
	ListRuns(ctx context.Context) ([]domaintypes.CampaignRun, error)
}
