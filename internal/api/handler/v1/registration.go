package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clubdesk/portal-api/internal/api/handler/v1/request"
	"github.com/clubdesk/portal-api/internal/api/handler/v1/response"
	"github.com/clubdesk/portal-api/internal/domain"
	"github.com/clubdesk/portal-api/internal/service"
)

type RegistrationService interface {
	Register(ctx context.Context, eventID uint, callerEmail, teamName string, memberEmails []string) (domain.Participant, error)
	AddMember(ctx context.Context, eventID uint, callerEmail, newMemberEmail string) (domain.Participant, error)
	RemoveMember(ctx context.Context, eventID uint, callerEmail, memberEmail string) (service.RemovalOutcome, error)
	Cancel(ctx context.Context, participantID uint, callerEmail string) error
	GetRegistration(ctx context.Context, eventID uint, callerEmail string) (domain.Participant, error)
	GetUserRegistrations(ctx context.Context, callerEmail string) ([]domain.Participant, error)
}

type RegistrationHandler struct {
	svc  RegistrationService
	uSvc UserService
}

func NewRegistrationHandler(svc RegistrationService, uSvc UserService) *RegistrationHandler {
	return &RegistrationHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// renderRegistrationErr maps the registration sentinels onto HTTP statuses.
// Input mistakes are 400, missing things are 404, authorization failures are
// 403 and state conflicts are 409.
func renderRegistrationErr(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.RenderErr(ctx, response.ErrNotFound("event", "ID", ctx.Param("eventID")))
	case errors.Is(err, service.ErrUserNotFound):
		response.RenderErr(ctx, response.ErrUnauthorized("user not found"))
	case errors.Is(err, service.ErrMemberNotFound):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	case errors.Is(err, service.ErrParticipantNotFound):
		response.RenderErr(ctx, response.ErrNotFound("participant", "ID", ctx.Param("participantID")))
	case errors.Is(err, service.ErrNotRegistered):
		response.RenderErr(ctx, response.ErrNotFound("registration", "event ID", ctx.Param("eventID")))
	case errors.Is(err, service.ErrTeamNameRequired),
		errors.Is(err, service.ErrTeamMembersRequired),
		errors.Is(err, service.ErrTeamSizeOutOfRange),
		errors.Is(err, service.ErrLeaderListedAsMember):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	case errors.Is(err, service.ErrNotTeamLeader),
		errors.Is(err, service.ErrPermissionDenied),
		errors.Is(err, service.ErrCannotRemoveLeader):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	case errors.Is(err, service.ErrRegistrationClosed),
		errors.Is(err, service.ErrEventFull),
		errors.Is(err, service.ErrAlreadyRegistered),
		errors.Is(err, service.ErrMemberAlreadyRegistered),
		errors.Is(err, service.ErrTeamAtCapacity):
		response.RenderErr(ctx, response.ErrConflict(err))
	case errors.Is(err, service.ErrTeamRegistrationFailed),
		errors.Is(err, service.ErrTeamMembersRegistrationFailed):
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%v -> %w", op, err)))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%v -> %w", op, err)))
	}
}

// HandleRegister godoc
// @Summary      Register for an event
// @Description  Registers the caller for an event, alone or as the leader of a new team.
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                      true  "Event ID"
// @Param        request  body      request.RegisterRequest  true  "Team details, required for team events"
// @Success      201      {object}  response.RegistrationResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/register [post]
// @Security BearerAuth
func (h *RegistrationHandler) HandleRegister(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := parseEventID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	// The body is optional for individual registrations, so an empty one
	// decodes to the zero request rather than a 400. ContentLength is not a
	// reliable emptiness signal with chunked encoding.
	var req request.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	participant, err := h.svc.Register(ctx.Request.Context(), eventID, user.Email, req.TeamName, req.TeamMembers)
	if err != nil {
		renderRegistrationErr(ctx, "v1.HandleRegister -> h.svc.Register", err)
		return
	}

	message := "registered successfully"
	if participant.TeamName != "" {
		message = fmt.Sprintf("team %q registered successfully", participant.TeamName)
	}

	ctx.JSON(http.StatusCreated, response.RegistrationResponse{
		Message:     message,
		Participant: participant,
	})
}

// HandleAddMember godoc
// @Summary      Add a team member
// @Description  Adds a member to the caller's team. Team leaders only.
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                       true  "Event ID"
// @Param        request  body      request.AddMemberRequest  true  "Member to add"
// @Success      201      {object}  response.RegistrationResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/team/members [post]
// @Security BearerAuth
func (h *RegistrationHandler) HandleAddMember(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := parseEventID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.AddMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	participant, err := h.svc.AddMember(ctx.Request.Context(), eventID, user.Email, req.Email)
	if err != nil {
		renderRegistrationErr(ctx, "v1.HandleAddMember -> h.svc.AddMember", err)
		return
	}

	ctx.JSON(http.StatusCreated, response.RegistrationResponse{
		Message:     fmt.Sprintf("%v added to team %q", req.Email, participant.TeamName),
		Participant: participant,
	})
}

// HandleRemoveMember godoc
// @Summary      Remove a team member
// @Description  Removes a member from the caller's team. If the team would drop below its minimum size, the whole team is unregistered.
// @Tags         registrations
// @Produce      json
// @Param        eventID  path      int     true  "Event ID"
// @Param        email    path      string  true  "Member email"
// @Success      200      {object}  response.RemoveMemberResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/team/members/{email} [delete]
// @Security BearerAuth
func (h *RegistrationHandler) HandleRemoveMember(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := parseEventID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	memberEmail := ctx.Param("email")
	if memberEmail == "" {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("member email is required")))
		return
	}

	outcome, err := h.svc.RemoveMember(ctx.Request.Context(), eventID, user.Email, memberEmail)
	if err != nil {
		renderRegistrationErr(ctx, "v1.HandleRemoveMember -> h.svc.RemoveMember", err)
		return
	}

	message := fmt.Sprintf("%v removed from team %q", memberEmail, outcome.TeamName)
	if outcome.TeamUnregistered {
		message = fmt.Sprintf("team %q dropped below its minimum size and was unregistered", outcome.TeamName)
	}

	ctx.JSON(http.StatusOK, response.RemoveMemberResponse{
		Message:          message,
		TeamUnregistered: outcome.TeamUnregistered,
		RemovedCount:     outcome.RemovedCount,
		TeamName:         outcome.TeamName,
		Roster:           outcome.Roster,
	})
}

// HandleCancel godoc
// @Summary      Cancel a registration
// @Description  Deletes one participant row. The owner or an admin may cancel.
// @Tags         registrations
// @Produce      json
// @Param        participantID  path  int  true  "Participant ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /participants/{participantID} [delete]
// @Security BearerAuth
func (h *RegistrationHandler) HandleCancel(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	participantID, err := strconv.ParseUint(ctx.Param("participantID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid participant ID: %w", err)))
		return
	}

	if err := h.svc.Cancel(ctx.Request.Context(), uint(participantID), user.Email); err != nil {
		renderRegistrationErr(ctx, "v1.HandleCancel -> h.svc.Cancel", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleGetMyRegistration godoc
// @Summary      Get the caller's registration for one event
// @Tags         registrations
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200      {object}  domain.Participant
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/registration [get]
// @Security BearerAuth
func (h *RegistrationHandler) HandleGetMyRegistration(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := parseEventID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	participant, err := h.svc.GetRegistration(ctx.Request.Context(), eventID, user.Email)
	if err != nil {
		renderRegistrationErr(ctx, "v1.HandleGetMyRegistration -> h.svc.GetRegistration", err)
		return
	}

	ctx.JSON(http.StatusOK, participant)
}

// HandleGetMyRegistrations godoc
// @Summary      List all of the caller's registrations
// @Tags         registrations
// @Produce      json
// @Success      200  {array}   domain.Participant
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /users/me/registrations [get]
// @Security BearerAuth
func (h *RegistrationHandler) HandleGetMyRegistrations(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	participants, err := h.svc.GetUserRegistrations(ctx.Request.Context(), user.Email)
	if err != nil {
		renderRegistrationErr(ctx, "v1.HandleGetMyRegistrations -> h.svc.GetUserRegistrations", err)
		return
	}

	ctx.JSON(http.StatusOK, participants)
}
