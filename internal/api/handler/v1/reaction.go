package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/motohub-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/motohub-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/motohub-api/internal/domain"
	"github.com/vietanh2810/motohub-api/internal/service"
)

type ReactionService interface {
	Toggle(ctx context.Context, userID uint, kind domain.ReactionKind, target domain.Target) (bool, int64, error)
	FavoritesOf(ctx context.Context, userID uint) ([]domain.Favorite, error)
}

type ReactionHandler struct {
	svc  ReactionService
	uSvc UserService
}

func NewReactionHandler(svc ReactionService, uSvc UserService) *ReactionHandler {
	return &ReactionHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleToggleReaction godoc
// @Summary      Toggle a like or favorite on a vehicle or post
// @Tags         reactions
// @Accept       json
// @Produce      json
// @Param        request   body      request.ToggleReactionRequest true "request body"
// @Success      200  {object}  response.ReactionResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /reactions/toggle [post]
// @Security BearerAuth
func (h *ReactionHandler) HandleToggleReaction(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ToggleReactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	target := domain.Target{
		Type: domain.TargetType(req.TargetType),
		ID:   req.TargetID,
	}
	active, count, err := h.svc.Toggle(ctx.Request.Context(), user.ID, domain.ReactionKind(req.Kind), target)
	if err != nil {
		if errors.Is(err, service.ErrInvalidReactionKind) || errors.Is(err, service.ErrInvalidTarget) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleToggleReaction -> h.svc.Toggle -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.ReactionResponse{
		Active: active,
		Count:  count,
	})
}

// HandleGetMyFavorites godoc
// @Summary      List the authenticated user's favorites
// @Description  Most recently favorited first, resolved to vehicles and posts.
// @Tags         reactions
// @Produce      json
// @Success      200  {object}  response.FavoritesResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /me/favorites [get]
// @Security BearerAuth
func (h *ReactionHandler) HandleGetMyFavorites(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	favorites, err := h.svc.FavoritesOf(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetMyFavorites -> h.svc.FavoritesOf -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.FavoritesResponse{
		Favorites: favorites,
	})
}
