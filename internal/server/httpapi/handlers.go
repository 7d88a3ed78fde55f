package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/campkeeper/campkeeper/internal/common"
	"github.com/campkeeper/campkeeper/internal/server/models"
)

const dateLayout = "2006-01-02"

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body", common.ErrInvalidArgument)
	}
	return nil
}

type loginRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := s.auth.LogIn(r.Context(), req.UserName, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, envelope{
		"current_user": envelope{"user_name": result.UserName, "roles": result.Roles},
		"token":        result.Token,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if err := s.auth.LogOut(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

type userView struct {
	UserName string   `json:"user_name"`
	Roles    []string `json:"roles"`
}

func toUserView(u *models.User) userView {
	return userView{UserName: u.UserName, Roles: u.Roles}
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, toUserView(u))
	}
	writeSuccess(w, envelope{"users": views})
}

type createUserRequest struct {
	UserName string   `json:"user_name"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	editor := currentUser(r)
	user, err := s.users.Create(r.Context(), editor.UserName, req.UserName, req.Password, req.Roles)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, envelope{"user": toUserView(user)})
}

type campaignView struct {
	ID           int64  `json:"id"`
	CampaignName string `json:"campaign_name"`
	BeginDate    string `json:"begin_date"`
	PassedDays   int    `json:"passed_days"`
}

func toCampaignView(c *models.Campaign) campaignView {
	return campaignView{
		ID:           c.ID,
		CampaignName: c.CampaignName,
		BeginDate:    c.BeginDate.Format(dateLayout),
		PassedDays:   c.PassedDays,
	}
}

func (s *Server) handleListOwnedCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := s.campaigns.ListOwned(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]campaignView, 0, len(campaigns))
	for _, c := range campaigns {
		views = append(views, toCampaignView(c))
	}
	writeSuccess(w, envelope{"campaigns": views})
}

type createCampaignRequest struct {
	CampaignName string `json:"campaign_name"`
	BeginDate    string `json:"begin_date"`
}

func (s *Server) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	beginDate, err := time.Parse(dateLayout, req.BeginDate)
	if err != nil {
		writeError(w, fmt.Errorf("%w: begin_date must be YYYY-MM-DD", common.ErrInvalidArgument))
		return
	}

	campaign, err := s.campaigns.Create(r.Context(), currentUser(r), req.CampaignName, beginDate)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, envelope{"campaign": toCampaignView(campaign)})
}

func campaignIDFromPath(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: campaign id must be numeric", common.ErrInvalidArgument)
	}
	return id, nil
}

type timelineEntryView struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	SessionDate   string `json:"session_date"`
	SummaryText   string `json:"summary_text,omitempty"`
	AttachmentKey string `json:"attachment_key,omitempty"`
}

func toTimelineEntryView(e *models.TimelineEntry) timelineEntryView {
	return timelineEntryView{
		ID:            e.ID,
		Title:         e.Title,
		SessionDate:   e.SessionDate.Format(dateLayout),
		SummaryText:   e.SummaryText,
		AttachmentKey: e.AttachmentKey,
	}
}

func (s *Server) handleListTimeline(w http.ResponseWriter, r *http.Request) {
	id, err := campaignIDFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}

	entries, err := s.campaigns.ListTimeline(r.Context(), currentUser(r), id)
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]timelineEntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, toTimelineEntryView(e))
	}
	writeSuccess(w, envelope{"timeline": views})
}

type appendTimelineEntryRequest struct {
	Title         string `json:"title"`
	SessionDate   string `json:"session_date"`
	SummaryText   string `json:"summary_text"`
	AttachmentKey string `json:"attachment_key"`
}

func (s *Server) handleAppendTimelineEntry(w http.ResponseWriter, r *http.Request) {
	id, err := campaignIDFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req appendTimelineEntryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	sessionDate, err := time.Parse(dateLayout, req.SessionDate)
	if err != nil {
		writeError(w, fmt.Errorf("%w: session_date must be YYYY-MM-DD", common.ErrInvalidArgument))
		return
	}

	entry := &models.TimelineEntry{
		Title:         req.Title,
		SessionDate:   sessionDate,
		SummaryText:   req.SummaryText,
		AttachmentKey: req.AttachmentKey,
	}

	entry, err = s.campaigns.AppendTimelineEntry(r.Context(), currentUser(r), id, entry)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, envelope{"entry": toTimelineEntryView(entry)})
}

func (s *Server) handleAttachmentUploadURL(w http.ResponseWriter, r *http.Request) {
	key, url, err := s.attachments.GetPresignedPutURL(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "presign upload failed", "error", err.Error())
		writeError(w, err)
		return
	}
	writeSuccess(w, envelope{"key": key, "url": url})
}

func (s *Server) handleAttachmentDownloadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeError(w, fmt.Errorf("%w: key is required", common.ErrInvalidArgument))
		return
	}

	url, err := s.attachments.GetPresignedGetURL(r.Context(), key)
	if err != nil {
		s.logger.Error(r.Context(), "presign download failed", "error", err.Error())
		writeError(w, err)
		return
	}
	writeSuccess(w, envelope{"url": url})
}
