package campaigns

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/campkeeper/campkeeper/internal/common"
	"github.com/campkeeper/campkeeper/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	begin := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now()
	mock.ExpectQuery(`INSERT\s+INTO\s+campaign\s`).
		WithArgs("Shadow of the Tower", begin, 0, int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_on", "modified_on"}).AddRow(int64(11), now, now))

	c := &models.Campaign{CampaignName: "Shadow of the Tower", BeginDate: begin, GameMasterID: 7}
	got, err := repo.Create(context.Background(), c)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 11 {
		t.Fatalf("unexpected campaign: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+campaign\s+WHERE\s+id`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected common.ErrNotFound, got %v", err)
	}
}

func TestListByGameMaster(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	begin := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now()
	mock.ExpectQuery(`FROM\s+campaign\s+WHERE\s+game_master_id`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "campaign_name", "begin_date", "passed_days", "game_master_id", "created_on", "modified_on"}).
			AddRow(int64(1), "First", begin, 10, int64(7), now, now).
			AddRow(int64(2), "Second", begin, 0, int64(7), now, now))

	got, err := repo.ListByGameMaster(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListByGameMaster error: %v", err)
	}
	if len(got) != 2 || got[0].CampaignName != "First" || got[1].PassedDays != 0 {
		t.Fatalf("unexpected campaigns: %+v", got)
	}
}

func TestAddTimelineEntry(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	session := time.Date(2023, 6, 12, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT\s+INTO\s+campaign_timeline`).
		WithArgs(int64(1), "Session 3", session, "The party reached the tower.", "users/2023/6/12/key").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(int64(30), time.Now()))

	entry := &models.TimelineEntry{
		CampaignID:    1,
		Title:         "Session 3",
		SessionDate:   session,
		SummaryText:   "The party reached the tower.",
		AttachmentKey: "users/2023/6/12/key",
	}
	got, err := repo.AddTimelineEntry(context.Background(), entry)
	if err != nil {
		t.Fatalf("AddTimelineEntry error: %v", err)
	}
	if got.ID != 30 {
		t.Fatalf("unexpected entry: %+v", got)
	}
}

func TestListTimeline(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	session := time.Date(2023, 6, 12, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM\s+campaign_timeline\s+WHERE\s+campaign_id`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "campaign_id", "title", "session_date", "summary_text", "attachment_key", "created_on"}).
			AddRow(int64(30), int64(1), "Session 3", session, "summary", nil, time.Now()))

	got, err := repo.ListTimeline(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListTimeline error: %v", err)
	}
	if len(got) != 1 || got[0].AttachmentKey != "" {
		t.Fatalf("unexpected timeline: %+v", got)
	}
}

func TestAddHistoryEntry(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+campaign_history`).
		WithArgs(int64(1), "alice", "Campaign created.").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(8)))

	entry := &models.CampaignHistoryEntry{CampaignID: 1, EditorName: "alice", Message: "Campaign created."}
	if err := repo.AddHistoryEntry(context.Background(), entry); err != nil {
		t.Fatalf("AddHistoryEntry error: %v", err)
	}
	if entry.ID != 8 {
		t.Fatalf("expected assigned id, got %+v", entry)
	}
}
