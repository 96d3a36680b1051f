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

type VehicleService interface {
	CreateVehicle(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error)
	GetVehicle(ctx context.Context, id uint) (domain.Vehicle, error)
	ListVehicles(ctx context.Context) ([]domain.Vehicle, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, requesterID uint, vehicle domain.Vehicle) (domain.Vehicle, error)
	DeleteVehicle(ctx context.Context, requesterID, id uint) error
}

type GalleryService interface {
	AddImages(ctx context.Context, parent domain.ParentRef, files [][]byte) ([]domain.Image, error)
	DeleteImages(ctx context.Context, parent domain.ParentRef, imageIDs []uint) error
	Reorder(ctx context.Context, parent domain.ParentRef, orderedIDs []uint) error
	PinMain(ctx context.Context, parent domain.ParentRef, imageID uint) error
}

type ReactionCounter interface {
	CountFor(ctx context.Context, kind domain.ReactionKind, target domain.Target) (int64, error)
	BulkCountFor(ctx context.Context, kind domain.ReactionKind, targetType domain.TargetType, targetIDs []uint) (map[uint]int64, error)
}

type VehicleHandler struct {
	svc     VehicleService
	gallery GalleryService
	rSvc    ReactionCounter
	uSvc    UserService
}

func NewVehicleHandler(svc VehicleService, gallery GalleryService, rSvc ReactionCounter, uSvc UserService) *VehicleHandler {
	return &VehicleHandler{
		svc:     svc,
		gallery: gallery,
		rSvc:    rSvc,
		uSvc:    uSvc,
	}
}

// HandleCreateVehicle godoc
// @Summary      Register a vehicle with its gallery
// @Description  Multipart form: vehicle fields plus up to 10 "images" files.
// @Tags         vehicles
// @Accept       multipart/form-data
// @Produce      json
// @Success      201  {object}  domain.Vehicle
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /vehicles [post]
// @Security BearerAuth
func (h *VehicleHandler) HandleCreateVehicle(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateVehicleRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	files, err := readUploads(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	vehicle, err := h.svc.CreateVehicle(ctx.Request.Context(), domain.Vehicle{
		OwnerID:       user.ID,
		Maker:         req.Maker,
		Model:         req.Model,
		Title:         req.Title,
		Year:          req.Year,
		Description:   req.Description,
		CustomSummary: req.CustomSummary,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateVehicle -> h.svc.CreateVehicle -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	if len(files) > 0 {
		parent := domain.ParentRef{Type: domain.ParentVehicle, ID: vehicle.ID}
		images, err := h.gallery.AddImages(ctx.Request.Context(), parent, files)
		if err != nil {
			if errors.Is(err, service.ErrInvalidImage) {
				response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidImage))
				return
			}

			err = fmt.Errorf("v1.HandleCreateVehicle -> h.gallery.AddImages -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return
		}
		vehicle.Images = images
		if len(images) > 0 {
			vehicle.MainImageID = &images[0].ID
		}
	}

	ctx.JSON(http.StatusCreated, vehicle)
}

// HandleListVehicles godoc
// @Summary      List vehicles with reaction counts
// @Tags         vehicles
// @Produce      json
// @Success      200  {array}   response.VehicleListItem
// @Failure      500  {object}  response.Err
// @Router       /vehicles [get]
func (h *VehicleHandler) HandleListVehicles(ctx *gin.Context) {
	vehicles, err := h.svc.ListVehicles(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListVehicles -> h.svc.ListVehicles -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	items, err := h.withCounts(ctx.Request.Context(), vehicles)
	if err != nil {
		err = fmt.Errorf("v1.HandleListVehicles -> h.withCounts -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, items)
}

// HandleGetMyVehicles godoc
// @Summary      List the authenticated user's vehicles
// @Tags         vehicles
// @Produce      json
// @Success      200  {array}   response.VehicleListItem
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /me/vehicles [get]
// @Security BearerAuth
func (h *VehicleHandler) HandleGetMyVehicles(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	vehicles, err := h.svc.ListByOwner(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetMyVehicles -> h.svc.ListByOwner -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	items, err := h.withCounts(ctx.Request.Context(), vehicles)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetMyVehicles -> h.withCounts -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, items)
}

// withCounts decorates vehicles with like/favorite tallies, one aggregate
// query per kind regardless of list size.
func (h *VehicleHandler) withCounts(ctx context.Context, vehicles []domain.Vehicle) ([]response.VehicleListItem, error) {
	ids := make([]uint, len(vehicles))
	for i, v := range vehicles {
		ids[i] = v.ID
	}

	likes, err := h.rSvc.BulkCountFor(ctx, domain.ReactionLike, domain.TargetVehicle, ids)
	if err != nil {
		return nil, err
	}
	favorites, err := h.rSvc.BulkCountFor(ctx, domain.ReactionFavorite, domain.TargetVehicle, ids)
	if err != nil {
		return nil, err
	}

	items := make([]response.VehicleListItem, len(vehicles))
	for i, v := range vehicles {
		items[i] = response.VehicleListItem{
			Vehicle:       v,
			LikeCount:     likes[v.ID],
			FavoriteCount: favorites[v.ID],
		}
	}

	return items, nil
}

// HandleGetVehicle godoc
// @Summary      Get a vehicle with its gallery
// @Tags         vehicles
// @Produce      json
// @Param        vehicleID   path      int  true  "vehicle ID"
// @Success      200  {object}  response.VehicleDetail
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /vehicles/{vehicleID} [get]
func (h *VehicleHandler) HandleGetVehicle(ctx *gin.Context) {
	vehicleID, err := parseIDParam(ctx, "vehicleID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	vehicle, err := h.svc.GetVehicle(ctx.Request.Context(), vehicleID)
	if err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("vehicle", "vehicleID", vehicleID))
			return
		}

		err = fmt.Errorf("v1.HandleGetVehicle -> h.svc.GetVehicle -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	target := domain.Target{Type: domain.TargetVehicle, ID: vehicle.ID}
	likes, err := h.rSvc.CountFor(ctx.Request.Context(), domain.ReactionLike, target)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetVehicle -> h.rSvc.CountFor -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}
	favorites, err := h.rSvc.CountFor(ctx.Request.Context(), domain.ReactionFavorite, target)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetVehicle -> h.rSvc.CountFor -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.VehicleDetail{
		Vehicle:       vehicle,
		LikeCount:     likes,
		FavoriteCount: favorites,
	})
}

// HandleUpdateVehicle godoc
// @Summary      Update a vehicle and its gallery
// @Description  Multipart form: vehicle fields, delete_image_ids, new "images"
// @Description  files, image_order and an optional pin_image_id. Deletions run
// @Description  first, then additions, then the reorder, then the pin.
// @Tags         vehicles
// @Accept       multipart/form-data
// @Produce      json
// @Param        vehicleID   path      int  true  "vehicle ID"
// @Success      200  {object}  domain.Vehicle
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /vehicles/{vehicleID} [put]
// @Security BearerAuth
func (h *VehicleHandler) HandleUpdateVehicle(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	vehicleID, err := parseIDParam(ctx, "vehicleID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.UpdateVehicleRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	files, err := readUploads(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	_, err = h.svc.UpdateVehicle(ctx.Request.Context(), user.ID, domain.Vehicle{
		ID:            vehicleID,
		Maker:         req.Maker,
		Model:         req.Model,
		Title:         req.Title,
		Year:          req.Year,
		Description:   req.Description,
		CustomSummary: req.CustomSummary,
	})
	if err != nil {
		h.renderVehicleErr(ctx, "h.svc.UpdateVehicle", vehicleID, err)
		return
	}

	parent := domain.ParentRef{Type: domain.ParentVehicle, ID: vehicleID}

	if len(req.DeleteImageIDs) > 0 {
		if err := h.gallery.DeleteImages(ctx.Request.Context(), parent, req.DeleteImageIDs); err != nil {
			err = fmt.Errorf("v1.HandleUpdateVehicle -> h.gallery.DeleteImages -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return
		}
	}

	if len(files) > 0 {
		if _, err := h.gallery.AddImages(ctx.Request.Context(), parent, files); err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidImage):
				response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidImage))
			case errors.Is(err, service.ErrTooManyImages):
				response.RenderErr(ctx, response.ErrBadRequest(service.ErrTooManyImages))
			default:
				err = fmt.Errorf("v1.HandleUpdateVehicle -> h.gallery.AddImages -> %w", err)
				response.RenderErr(ctx, response.ErrInternalServerError(err))
			}
			return
		}
	}

	if len(req.ImageOrder) > 0 {
		if err := h.gallery.Reorder(ctx.Request.Context(), parent, req.ImageOrder); err != nil {
			err = fmt.Errorf("v1.HandleUpdateVehicle -> h.gallery.Reorder -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return
		}
	}

	if req.PinImageID != nil {
		if err := h.gallery.PinMain(ctx.Request.Context(), parent, *req.PinImageID); err != nil {
			if errors.Is(err, service.ErrImageNotFound) {
				response.RenderErr(ctx, response.ErrNotFound("image", "imageID", *req.PinImageID))
				return
			}

			err = fmt.Errorf("v1.HandleUpdateVehicle -> h.gallery.PinMain -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return
		}
	}

	vehicle, err := h.svc.GetVehicle(ctx.Request.Context(), vehicleID)
	if err != nil {
		h.renderVehicleErr(ctx, "h.svc.GetVehicle", vehicleID, err)
		return
	}

	ctx.JSON(http.StatusOK, vehicle)
}

// HandleDeleteVehicle godoc
// @Summary      Delete a vehicle and its gallery
// @Tags         vehicles
// @Produce      json
// @Param        vehicleID   path      int  true  "vehicle ID"
// @Success      204  {string}  string ""
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /vehicles/{vehicleID} [delete]
// @Security BearerAuth
func (h *VehicleHandler) HandleDeleteVehicle(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	vehicleID, err := parseIDParam(ctx, "vehicleID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.DeleteVehicle(ctx.Request.Context(), user.ID, vehicleID); err != nil {
		h.renderVehicleErr(ctx, "h.svc.DeleteVehicle", vehicleID, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *VehicleHandler) renderVehicleErr(ctx *gin.Context, op string, vehicleID uint, err error) {
	switch {
	case errors.Is(err, service.ErrVehicleNotFound):
		response.RenderErr(ctx, response.ErrNotFound("vehicle", "vehicleID", vehicleID))
	case errors.Is(err, service.ErrNotAuthorized):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	default:
		err = fmt.Errorf("v1.%v -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
