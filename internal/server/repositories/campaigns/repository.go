// Package campaigns persists campaigns, their session timelines and their
// audit history.
package campaigns

import (
	"context"

	"github.com/campkeeper/campkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, campaign *models.Campaign) (*models.Campaign, error)

	GetByID(ctx context.Context, id int64) (*models.Campaign, error)

	// ListByGameMaster returns all campaigns owned by the given user.
	ListByGameMaster(ctx context.Context, gameMasterID int64) ([]*models.Campaign, error)

	AddTimelineEntry(ctx context.Context, entry *models.TimelineEntry) (*models.TimelineEntry, error)

	ListTimeline(ctx context.Context, campaignID int64) ([]*models.TimelineEntry, error)

	AddHistoryEntry(ctx context.Context, entry *models.CampaignHistoryEntry) error
}
