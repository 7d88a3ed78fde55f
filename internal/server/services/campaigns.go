package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/campkeeper/campkeeper/internal/common"
	"github.com/campkeeper/campkeeper/internal/dbx"
	"github.com/campkeeper/campkeeper/internal/logging"
	"github.com/campkeeper/campkeeper/internal/server/models"
	"github.com/campkeeper/campkeeper/internal/server/repositories/repomanager"
)

// CampaignService manages campaigns on behalf of game masters: creation,
// listing of owned campaigns, and session timeline bookkeeping. Ownership is
// enforced here; the HTTP layer only supplies the authenticated user.
type CampaignService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewCampaignService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *CampaignService {
	return &CampaignService{
		db:          db,
		repomanager: m,
		logger:      l.With("module", "campaign_service"),
	}
}

// Create stores a new campaign owned by gameMaster and records a history
// entry attributed to them.
func (s *CampaignService) Create(ctx context.Context, gameMaster *models.User, campaignName string, beginDate time.Time) (*models.Campaign, error) {
	if campaignName == "" {
		return nil, fmt.Errorf("%w: campaign name is empty", common.ErrInvalidArgument)
	}

	campaign := &models.Campaign{
		CampaignName: campaignName,
		BeginDate:    beginDate,
		GameMasterID: gameMaster.ID,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Campaigns(tx)

		var err error
		campaign, err = repo.Create(ctx, campaign)
		if err != nil {
			s.logger.Error(ctx, "campaign creation failed", "error", err.Error())
			return fmt.Errorf("%w: %v", common.ErrPersistence, err)
		}

		entry := &models.CampaignHistoryEntry{
			CampaignID: campaign.ID,
			EditorName: gameMaster.UserName,
			Message:    "Campaign created.",
		}
		if err := repo.AddHistoryEntry(ctx, entry); err != nil {
			s.logger.Error(ctx, "campaign history write failed", "error", err.Error())
			return fmt.Errorf("%w: %v", common.ErrPersistence, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "campaign created", "campaign_name", campaignName, "game_master", gameMaster.UserName)
	return campaign, nil
}

// ListOwned returns the campaigns run by the given game master.
func (s *CampaignService) ListOwned(ctx context.Context, gameMaster *models.User) ([]*models.Campaign, error) {
	campaigns, err := s.repomanager.Campaigns(s.db).ListByGameMaster(ctx, gameMaster.ID)
	if err != nil {
		s.logger.Error(ctx, "campaign listing failed", "error", err.Error())
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	return campaigns, nil
}

// AppendTimelineEntry adds a session summary to a campaign's timeline.
// Only the owning game master may append; anyone else gets
// common.ErrAccessDenied.
func (s *CampaignService) AppendTimelineEntry(ctx context.Context, editor *models.User, campaignID int64, entry *models.TimelineEntry) (*models.TimelineEntry, error) {
	if entry.Title == "" {
		return nil, fmt.Errorf("%w: title is empty", common.ErrInvalidArgument)
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Campaigns(tx)

		campaign, err := repo.GetByID(ctx, campaignID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrNotFound
			}
			s.logger.Error(ctx, "campaign lookup failed", "error", err.Error())
			return fmt.Errorf("%w: %v", common.ErrPersistence, err)
		}

		if campaign.GameMasterID != editor.ID {
			return common.ErrAccessDenied
		}

		entry.CampaignID = campaign.ID
		entry, err = repo.AddTimelineEntry(ctx, entry)
		if err != nil {
			s.logger.Error(ctx, "timeline write failed", "error", err.Error())
			return fmt.Errorf("%w: %v", common.ErrPersistence, err)
		}

		history := &models.CampaignHistoryEntry{
			CampaignID: campaign.ID,
			EditorName: editor.UserName,
			Message:    "Session summary added.",
		}
		if err := repo.AddHistoryEntry(ctx, history); err != nil {
			s.logger.Error(ctx, "campaign history write failed", "error", err.Error())
			return fmt.Errorf("%w: %v", common.ErrPersistence, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// ListTimeline returns a campaign's session summaries, oldest first. Only
// the owning game master may read them.
func (s *CampaignService) ListTimeline(ctx context.Context, reader *models.User, campaignID int64) ([]*models.TimelineEntry, error) {
	repo := s.repomanager.Campaigns(s.db)

	campaign, err := repo.GetByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		s.logger.Error(ctx, "campaign lookup failed", "error", err.Error())
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	if campaign.GameMasterID != reader.ID {
		return nil, common.ErrAccessDenied
	}

	entries, err := repo.ListTimeline(ctx, campaignID)
	if err != nil {
		s.logger.Error(ctx, "timeline listing failed", "error", err.Error())
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	return entries, nil
}
