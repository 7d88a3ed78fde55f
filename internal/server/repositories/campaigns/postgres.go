package campaigns

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/campkeeper/campkeeper/internal/common"
	"github.com/campkeeper/campkeeper/internal/dbx"
	"github.com/campkeeper/campkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, campaign *models.Campaign) (*models.Campaign, error) {

	query :=
		`INSERT INTO campaign (campaign_name, begin_date, passed_days, game_master_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_on, modified_on
		 `

	err := r.db.QueryRowContext(ctx, query,
		campaign.CampaignName, campaign.BeginDate, campaign.PassedDays, campaign.GameMasterID).
		Scan(&campaign.ID, &campaign.CreatedOn, &campaign.ModifiedOn)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return campaign, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Campaign, error) {
	query :=
		`SELECT id, campaign_name, begin_date, passed_days, game_master_id, created_on, modified_on
		 FROM campaign
		 WHERE id = $1
		 `

	c := &models.Campaign{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.CampaignName, &c.BeginDate, &c.PassedDays, &c.GameMasterID, &c.CreatedOn, &c.ModifiedOn)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

func (r *PostgresRepository) ListByGameMaster(ctx context.Context, gameMasterID int64) ([]*models.Campaign, error) {
	query :=
		`SELECT id, campaign_name, begin_date, passed_days, game_master_id, created_on, modified_on
		 FROM campaign
		 WHERE game_master_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, gameMasterID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var campaigns []*models.Campaign
	for rows.Next() {
		c := &models.Campaign{}
		if err := rows.Scan(&c.ID, &c.CampaignName, &c.BeginDate, &c.PassedDays, &c.GameMasterID, &c.CreatedOn, &c.ModifiedOn); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return campaigns, nil
}

func (r *PostgresRepository) AddTimelineEntry(ctx context.Context, entry *models.TimelineEntry) (*models.TimelineEntry, error) {
	query :=
		`INSERT INTO campaign_timeline (campaign_id, title, session_date, summary_text, attachment_key)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_on
		 `

	err := r.db.QueryRowContext(ctx, query,
		entry.CampaignID, entry.Title, entry.SessionDate, entry.SummaryText, entry.AttachmentKey).
		Scan(&entry.ID, &entry.CreatedOn)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

func (r *PostgresRepository) ListTimeline(ctx context.Context, campaignID int64) ([]*models.TimelineEntry, error) {
	query :=
		`SELECT id, campaign_id, title, session_date, summary_text, attachment_key, created_on
		 FROM campaign_timeline
		 WHERE campaign_id = $1
		 ORDER BY session_date, id
		 `

	rows, err := r.db.QueryContext(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var entries []*models.TimelineEntry
	for rows.Next() {
		e := &models.TimelineEntry{}
		var summary, attachment sql.NullString
		if err := rows.Scan(&e.ID, &e.CampaignID, &e.Title, &e.SessionDate, &summary, &attachment, &e.CreatedOn); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		e.SummaryText = summary.String
		e.AttachmentKey = attachment.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entries, nil
}

func (r *PostgresRepository) AddHistoryEntry(ctx context.Context, entry *models.CampaignHistoryEntry) error {
	query :=
		`INSERT INTO campaign_history (campaign_id, editor_name, message)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		entry.CampaignID, entry.EditorName, entry.Message).Scan(&entry.ID)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
