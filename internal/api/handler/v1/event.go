package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/motohub-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/motohub-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/motohub-api/internal/domain"
	"github.com/vietanh2810/motohub-api/internal/service"
)

type EventService interface {
	CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	GetEvent(ctx context.Context, id uint) (domain.Event, error)
	ListPublished(ctx context.Context) ([]domain.Event, error)
	UpdateEvent(ctx context.Context, requesterID uint, event domain.Event) (domain.Event, error)
	CanManage(ctx context.Context, event domain.Event, userID uint) (bool, error)
	Enter(ctx context.Context, eventID, vehicleID, requesterID uint) (domain.EventEntry, error)
	ToggleVote(ctx context.Context, eventID, entryID, voterID uint) (bool, error)
	RankedEntries(ctx context.Context, eventID uint) ([]domain.EventEntry, error)
	TopN(ctx context.Context, eventID uint, n int) ([]domain.EventEntry, error)
	WinnersVisible(ctx context.Context, event domain.Event, requesterID uint) (bool, error)
	VotedEntryIDs(ctx context.Context, eventID, userID uint) ([]uint, error)
	OrganizerTeam(ctx context.Context, event domain.Event) (*domain.Team, error)
	CreateAward(ctx context.Context, requesterID uint, award domain.Award) (domain.Award, error)
	GetAwards(ctx context.Context, eventID uint) ([]domain.Award, error)
	UpdateAward(ctx context.Context, requesterID uint, award domain.Award) (domain.Award, error)
	DeleteAward(ctx context.Context, requesterID uint, eventID, awardID uint) error
}

type EventHandler struct {
	svc  EventService
	uSvc UserService
}

func NewEventHandler(svc EventService, uSvc UserService) *EventHandler {
	return &EventHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateEvent godoc
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request   body      request.CreateEventRequest true "request body"
// @Success      201  {object}  domain.Event
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events [post]
// @Security BearerAuth
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.CreateEvent(ctx.Request.Context(), domain.Event{
		OrganizerID:     user.ID,
		OrganizerTeamID: req.OrganizerTeamID,
		Title:           req.Title,
		Description:     req.Description,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
		IsPublished:     req.IsPublished,
		WinnersPublic:   req.WinnersPublic,
		SponsorName:     req.SponsorName,
		SponsorURL:      req.SponsorURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotAuthorized) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// HandleListEvents godoc
// @Summary      List published events
// @Tags         events
// @Produce      json
// @Success      200  {array}   response.EventListItem
// @Failure      500  {object}  response.Err
// @Router       /events [get]
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	events, err := h.svc.ListPublished(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListEvents -> h.svc.ListPublished -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	now := time.Now()
	items := make([]response.EventListItem, len(events))
	for i, e := range events {
		items[i] = response.EventListItem{
			Event: e,
			State: e.StateAt(now),
		}
	}

	ctx.JSON(http.StatusOK, items)
}

// HandleGetEvent godoc
// @Summary      Get an event with its leaderboard
// @Description  Entries ranked by votes; includes the requester's voted
// @Description  entries. Unpublished events are visible to managers only.
// @Tags         events
// @Produce      json
// @Param        eventID   path      int  true  "event ID"
// @Success      200  {object}  response.EventDetail
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID} [get]
// @Security BearerAuth
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.GetEvent(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "eventID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	canManage, err := h.svc.CanManage(ctx.Request.Context(), event, user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.CanManage -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}
	if !event.IsPublished && !canManage {
		response.RenderErr(ctx, response.ErrNotFound("event", "eventID", eventID))
		return
	}

	entries, err := h.svc.RankedEntries(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.RankedEntries -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	votedIDs, err := h.svc.VotedEntryIDs(ctx.Request.Context(), eventID, user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.VotedEntryIDs -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	winnersVisible, err := h.svc.WinnersVisible(ctx.Request.Context(), event, user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.WinnersVisible -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	team, err := h.svc.OrganizerTeam(ctx.Request.Context(), event)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.OrganizerTeam -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.EventDetail{
		Event:          event,
		State:          event.StateAt(time.Now()),
		OrganizerTeam:  team,
		Entries:        entries,
		VotedEntryIDs:  votedIDs,
		WinnersVisible: winnersVisible,
	})
}

// HandleUpdateEvent godoc
// @Summary      Update an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID   path      int  true  "event ID"
// @Param        request   body      request.UpdateEventRequest true "request body"
// @Success      200  {object}  domain.Event
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID} [put]
// @Security BearerAuth
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.UpdateEvent(ctx.Request.Context(), user.ID, domain.Event{
		ID:            eventID,
		Title:         req.Title,
		Description:   req.Description,
		StartsAt:      req.StartsAt,
		EndsAt:        req.EndsAt,
		IsPublished:   req.IsPublished,
		WinnersPublic: req.WinnersPublic,
		SponsorName:   req.SponsorName,
		SponsorURL:    req.SponsorURL,
	})
	if err != nil {
		h.renderEventErr(ctx, "HandleUpdateEvent", eventID, err)
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleEnterEvent godoc
// @Summary      Enter a vehicle into an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID   path      int  true  "event ID"
// @Param        request   body      request.EnterEventRequest true "request body"
// @Success      201  {object}  domain.EventEntry
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/entries [post]
// @Security BearerAuth
func (h *EventHandler) HandleEnterEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.EnterEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	entry, err := h.svc.Enter(ctx.Request.Context(), eventID, req.VehicleID, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "eventID", eventID))
		case errors.Is(err, service.ErrEventNotActive):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrEventNotActive))
		case errors.Is(err, service.ErrInvalidTarget):
			response.RenderErr(ctx, response.ErrNotFound("vehicle", "vehicleID", req.VehicleID))
		case errors.Is(err, service.ErrNotAuthorized):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		case errors.Is(err, service.ErrDuplicateEntry):
			response.RenderErr(ctx, response.ErrConflict(service.ErrDuplicateEntry))
		default:
			err = fmt.Errorf("v1.HandleEnterEvent -> h.svc.Enter -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, entry)
}

// HandleToggleVote godoc
// @Summary      Toggle a vote on an event entry
// @Tags         events
// @Produce      json
// @Param        eventID   path      int  true  "event ID"
// @Param        entryID   path      int  true  "entry ID"
// @Success      200  {object}  response.ReactionResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/entries/{entryID}/vote [post]
// @Security BearerAuth
func (h *EventHandler) HandleToggleVote(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	entryID, err := parseIDParam(ctx, "entryID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	active, err := h.svc.ToggleVote(ctx.Request.Context(), eventID, entryID, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "eventID", eventID))
		case errors.Is(err, service.ErrEntryNotFound):
			response.RenderErr(ctx, response.ErrNotFound("entry", "entryID", entryID))
		case errors.Is(err, service.ErrEventNotActive):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrEventNotActive))
		case errors.Is(err, service.ErrSelfVoteForbidden):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleToggleVote -> h.svc.ToggleVote -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"active": active})
}

// HandleGetWinners godoc
// @Summary      Get an event's winners
// @Description  Top three ranked entries plus the manually assigned awards.
// @Tags         events
// @Produce      json
// @Param        eventID   path      int  true  "event ID"
// @Success      200  {object}  response.EventWinners
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/winners [get]
// @Security BearerAuth
func (h *EventHandler) HandleGetWinners(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.GetEvent(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "eventID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleGetWinners -> h.svc.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	visible, err := h.svc.WinnersVisible(ctx.Request.Context(), event, user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetWinners -> h.svc.WinnersVisible -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}
	if !visible {
		response.RenderErr(ctx, response.ErrPermissionDenied(errors.New("winners not public")))
		return
	}

	top, err := h.svc.TopN(ctx.Request.Context(), eventID, 3)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetWinners -> h.svc.TopN -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	awards, err := h.svc.GetAwards(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetWinners -> h.svc.GetAwards -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.EventWinners{
		Top:    top,
		Awards: awards,
	})
}

// HandleCreateAward godoc
// @Summary      Create an award for an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID   path      int  true  "event ID"
// @Param        request   body      request.AwardRequest true "request body"
// @Success      201  {object}  domain.Award
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/awards [post]
// @Security BearerAuth
func (h *EventHandler) HandleCreateAward(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.AwardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	award, err := h.svc.CreateAward(ctx.Request.Context(), user.ID, domain.Award{
		EventID:       eventID,
		Title:         req.Title,
		Description:   req.Description,
		WinnerEntryID: req.WinnerEntryID,
		SortOrder:     req.SortOrder,
	})
	if err != nil {
		h.renderAwardErr(ctx, "HandleCreateAward", eventID, err)
		return
	}

	ctx.JSON(http.StatusCreated, award)
}

// HandleUpdateAward godoc
// @Summary      Update an award, including its manually chosen winner
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID   path      int  true  "event ID"
// @Param        awardID   path      int  true  "award ID"
// @Param        request   body      request.AwardRequest true "request body"
// @Success      200  {object}  domain.Award
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/awards/{awardID} [put]
// @Security BearerAuth
func (h *EventHandler) HandleUpdateAward(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	awardID, err := parseIDParam(ctx, "awardID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.AwardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	award, err := h.svc.UpdateAward(ctx.Request.Context(), user.ID, domain.Award{
		ID:            awardID,
		EventID:       eventID,
		Title:         req.Title,
		Description:   req.Description,
		WinnerEntryID: req.WinnerEntryID,
		SortOrder:     req.SortOrder,
	})
	if err != nil {
		h.renderAwardErr(ctx, "HandleUpdateAward", eventID, err)
		return
	}

	ctx.JSON(http.StatusOK, award)
}

// HandleDeleteAward godoc
// @Summary      Delete an award
// @Tags         events
// @Produce      json
// @Param        eventID   path      int  true  "event ID"
// @Param        awardID   path      int  true  "award ID"
// @Success      204  {string}  string ""
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/awards/{awardID} [delete]
// @Security BearerAuth
func (h *EventHandler) HandleDeleteAward(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	awardID, err := parseIDParam(ctx, "awardID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.DeleteAward(ctx.Request.Context(), user.ID, eventID, awardID); err != nil {
		h.renderAwardErr(ctx, "HandleDeleteAward", eventID, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *EventHandler) renderEventErr(ctx *gin.Context, op string, eventID uint, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.RenderErr(ctx, response.ErrNotFound("event", "eventID", eventID))
	case errors.Is(err, service.ErrNotAuthorized):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	default:
		err = fmt.Errorf("v1.%v -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

func (h *EventHandler) renderAwardErr(ctx *gin.Context, op string, eventID uint, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.RenderErr(ctx, response.ErrNotFound("event", "eventID", eventID))
	case errors.Is(err, service.ErrAwardNotFound):
		response.RenderErr(ctx, response.ErrNotFound("award", "eventID", eventID))
	case errors.Is(err, service.ErrEntryNotFound):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrEntryNotFound))
	case errors.Is(err, service.ErrNotAuthorized):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	default:
		err = fmt.Errorf("v1.%v -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
