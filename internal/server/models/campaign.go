package models

import "time"

// Campaign is a game run by a single game master. PassedDays tracks
// in-world time elapsed since BeginDate.
type Campaign struct {
	ID           int64
	CampaignName string
	BeginDate    time.Time
	PassedDays   int
	GameMasterID int64
	CreatedOn    time.Time
	ModifiedOn   time.Time
}

// TimelineEntry is a session summary appended to a campaign's timeline.
// AttachmentKey, when set, points at an object in the attachment bucket.
type TimelineEntry struct {
	ID            int64
	CampaignID    int64
	Title         string
	SessionDate   time.Time
	SummaryText   string
	AttachmentKey string
	CreatedOn     time.Time
}

// CampaignHistoryEntry is an audit record of a change made to a campaign.
type CampaignHistoryEntry struct {
	ID         int64
	CampaignID int64
	EditorName string
	Message    string
	CreatedOn  time.Time
}
