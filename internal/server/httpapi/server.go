package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/campkeeper/campkeeper/internal/logging"
	"github.com/campkeeper/campkeeper/internal/server/models"
	"github.com/campkeeper/campkeeper/internal/server/roles"
	"github.com/campkeeper/campkeeper/internal/server/services"
)

// Authenticator is the slice of AuthService the HTTP layer depends on.
type Authenticator interface {
	LogIn(ctx context.Context, userName, password string) (*services.LoginResult, error)
	LogOut(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string, requiredRoles []string) (*models.User, error)
}

// UserDirectory covers user administration.
type UserDirectory interface {
	Create(ctx context.Context, editorName, userName, password string, roleNames []string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
}

// CampaignManager covers campaign and timeline operations.
type CampaignManager interface {
	Create(ctx context.Context, gameMaster *models.User, campaignName string, beginDate time.Time) (*models.Campaign, error)
	ListOwned(ctx context.Context, gameMaster *models.User) ([]*models.Campaign, error)
	AppendTimelineEntry(ctx context.Context, editor *models.User, campaignID int64, entry *models.TimelineEntry) (*models.TimelineEntry, error)
	ListTimeline(ctx context.Context, reader *models.User, campaignID int64) ([]*models.TimelineEntry, error)
}

// AttachmentPresigner vends presigned object-storage URLs for session
// summary attachments.
type AttachmentPresigner interface {
	GetPresignedPutURL(ctx context.Context) (string, string, error)
	GetPresignedGetURL(ctx context.Context, key string) (string, error)
}

// Server serves the JSON API.
type Server struct {
	address     string
	logger      logging.Logger
	auth        Authenticator
	users       UserDirectory
	campaigns   CampaignManager
	attachments AttachmentPresigner
	httpServer  *http.Server
}

func NewServer(address string, l logging.Logger, auth Authenticator, users UserDirectory, campaigns CampaignManager, attachments AttachmentPresigner) *Server {
	return &Server{
		address:     address,
		logger:      l.With("module", "httpapi"),
		auth:        auth,
		users:       users,
		campaigns:   campaigns,
		attachments: attachments,
	}
}

// Handler builds the route table. Role requirements live here, next to the
// routes they guard, so the whole access policy is readable in one screen.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/logout", s.handleLogout)

	mux.HandleFunc("GET /api/users",
		s.requireRoles([]string{roles.ShowUsers}, s.handleListUsers))
	mux.HandleFunc("POST /api/users",
		s.requireRoles([]string{roles.CreateUser}, s.handleCreateUser))

	mux.HandleFunc("GET /api/my-campaigns",
		s.requireRoles([]string{roles.ShowOwnedCampaigns}, s.handleListOwnedCampaigns))
	mux.HandleFunc("POST /api/campaigns",
		s.requireRoles([]string{roles.CreateCampaign}, s.handleCreateCampaign))
	mux.HandleFunc("GET /api/campaigns/{id}/timeline",
		s.requireRoles([]string{roles.ShowOwnedCampaigns}, s.handleListTimeline))
	mux.HandleFunc("POST /api/campaigns/{id}/timeline",
		s.requireRoles([]string{roles.CreateSessionSummary}, s.handleAppendTimelineEntry))

	mux.HandleFunc("POST /api/attachments/upload-url",
		s.requireRoles([]string{roles.CreateSessionSummary}, s.handleAttachmentUploadURL))
	mux.HandleFunc("GET /api/attachments/download-url",
		s.requireRoles([]string{roles.ShowOwnedCampaigns}, s.handleAttachmentDownloadURL))

	return s.withRequestID(mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server starting", "addr", s.address)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info(ctx, "http server shutting down")
	return s.httpServer.Shutdown(shutdownCtx)
}
