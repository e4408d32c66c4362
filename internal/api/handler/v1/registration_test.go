package v1

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubdesk/portal-api/internal/api/middleware"
	"github.com/clubdesk/portal-api/internal/domain"
	"github.com/clubdesk/portal-api/internal/service"
)

type stubUserService struct {
	user domain.User
}

func (s *stubUserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	return s.user, nil
}

func (s *stubUserService) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return s.user, nil
}

func (s *stubUserService) UpdateProfile(ctx context.Context, user domain.User) (domain.User, error) {
	return user, nil
}

type stubRegistrationService struct {
	registerErr    error
	addMemberErr   error
	removeErr      error
	cancelErr      error
	participant    domain.Participant
	removalOutcome service.RemovalOutcome

	gotTeamName string
	gotMembers  []string
}

func (s *stubRegistrationService) Register(ctx context.Context, eventID uint, callerEmail, teamName string, memberEmails []string) (domain.Participant, error) {
	s.gotTeamName = teamName
	s.gotMembers = memberEmails
	return s.participant, s.registerErr
}

func (s *stubRegistrationService) AddMember(ctx context.Context, eventID uint, callerEmail, newMemberEmail string) (domain.Participant, error) {
	return s.participant, s.addMemberErr
}

func (s *stubRegistrationService) RemoveMember(ctx context.Context, eventID uint, callerEmail, memberEmail string) (service.RemovalOutcome, error) {
	return s.removalOutcome, s.removeErr
}

func (s *stubRegistrationService) Cancel(ctx context.Context, participantID uint, callerEmail string) error {
	return s.cancelErr
}

func (s *stubRegistrationService) GetRegistration(ctx context.Context, eventID uint, callerEmail string) (domain.Participant, error) {
	return s.participant, nil
}

func (s *stubRegistrationService) GetUserRegistrations(ctx context.Context, callerEmail string) ([]domain.Participant, error) {
	return []domain.Participant{s.participant}, nil
}

func setupRegistrationRouter(svc *stubRegistrationService, authenticated bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	uSvc := &stubUserService{user: domain.User{ID: 1, Email: "alice@example.com", Name: "Alice"}}
	handler := NewRegistrationHandler(svc, uSvc)

	engine.Use(func(ctx *gin.Context) {
		if authenticated {
			ctx.Set(middleware.ContextKeyUserID, uint(1))
		}
		ctx.Next()
	})

	engine.POST("/api/v1/events/:eventID/register", handler.HandleRegister)
	engine.POST("/api/v1/events/:eventID/team/members", handler.HandleAddMember)
	engine.DELETE("/api/v1/events/:eventID/team/members/:email", handler.HandleRemoveMember)
	engine.DELETE("/api/v1/participants/:participantID", handler.HandleCancel)

	return engine
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	router.ServeHTTP(w, req)
	return w
}

func TestHandleRegister_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{"success", nil, http.StatusCreated},
		{"event not found", service.ErrEventNotFound, http.StatusNotFound},
		{"registration closed", service.ErrRegistrationClosed, http.StatusConflict},
		{"event full", service.ErrEventFull, http.StatusConflict},
		{"already registered", service.ErrAlreadyRegistered, http.StatusConflict},
		{"member already registered", service.ErrMemberAlreadyRegistered, http.StatusConflict},
		{"team name required", service.ErrTeamNameRequired, http.StatusBadRequest},
		{"team size out of range", service.ErrTeamSizeOutOfRange, http.StatusBadRequest},
		{"member not found", service.ErrMemberNotFound, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubRegistrationService{registerErr: tt.svcErr}
			router := setupRegistrationRouter(svc, true)

			w := doRequest(router, http.MethodPost, "/api/v1/events/1/register", `{}`)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandleRegister_EmptyBody(t *testing.T) {
	svc := &stubRegistrationService{}
	router := setupRegistrationRouter(svc, true)

	w := doRequest(router, http.MethodPost, "/api/v1/events/1/register", "")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, svc.gotTeamName)
	assert.Empty(t, svc.gotMembers)
}

func TestHandleRegister_ChunkedBody(t *testing.T) {
	svc := &stubRegistrationService{}
	router := setupRegistrationRouter(svc, true)

	// Wrapping the reader hides its length, so the request goes out with
	// ContentLength -1 the way a chunked upload arrives. The team fields
	// must still reach the service.
	body := io.MultiReader(strings.NewReader(`{"team_name":"The Gophers","team_members":["bob@example.com"]}`))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/1/register", body)
	req.Header.Set("Content-Type", "application/json")
	require.Equal(t, int64(-1), req.ContentLength)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "The Gophers", svc.gotTeamName)
	assert.Equal(t, []string{"bob@example.com"}, svc.gotMembers)
}

func TestHandleRegister_RequiresAuthentication(t *testing.T) {
	router := setupRegistrationRouter(&stubRegistrationService{}, false)

	w := doRequest(router, http.MethodPost, "/api/v1/events/1/register", `{}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleRegister_InvalidEventID(t *testing.T) {
	router := setupRegistrationRouter(&stubRegistrationService{}, true)

	w := doRequest(router, http.MethodPost, "/api/v1/events/not-a-number/register", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleAddMember_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{"success", nil, http.StatusCreated},
		{"not team leader", service.ErrNotTeamLeader, http.StatusForbidden},
		{"not registered", service.ErrNotRegistered, http.StatusNotFound},
		{"team at capacity", service.ErrTeamAtCapacity, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubRegistrationService{addMemberErr: tt.svcErr}
			router := setupRegistrationRouter(svc, true)

			w := doRequest(router, http.MethodPost, "/api/v1/events/1/team/members",
				`{"email":"bob@example.com"}`)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandleAddMember_InvalidBody(t *testing.T) {
	router := setupRegistrationRouter(&stubRegistrationService{}, true)

	w := doRequest(router, http.MethodPost, "/api/v1/events/1/team/members",
		`{"email":"not-an-email"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleRemoveMember_CascadeResponse(t *testing.T) {
	svc := &stubRegistrationService{
		removalOutcome: service.RemovalOutcome{
			TeamUnregistered: true,
			RemovedCount:     3,
			TeamName:         "The Gophers",
		},
	}
	router := setupRegistrationRouter(svc, true)

	w := doRequest(router, http.MethodDelete, "/api/v1/events/1/team/members/bob@example.com", "")

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message          string `json:"message"`
		TeamUnregistered bool   `json:"team_unregistered"`
		RemovedCount     int    `json:"removed_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.TeamUnregistered)
	assert.Equal(t, 3, resp.RemovedCount)
	assert.Contains(t, resp.Message, "unregistered")
}

func TestHandleCancel_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{"success", nil, http.StatusNoContent},
		{"participant not found", service.ErrParticipantNotFound, http.StatusNotFound},
		{"permission denied", service.ErrPermissionDenied, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubRegistrationService{cancelErr: tt.svcErr}
			router := setupRegistrationRouter(svc, true)

			w := doRequest(router, http.MethodDelete, "/api/v1/participants/42", "")

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
