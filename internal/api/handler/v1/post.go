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

type PostService interface {
	CreatePost(ctx context.Context, post domain.Post) (domain.Post, error)
	GetPost(ctx context.Context, id uint) (domain.Post, error)
	ListPosts(ctx context.Context) ([]domain.Post, error)
	ListByAuthor(ctx context.Context, authorID uint) ([]domain.Post, error)
	DeletePost(ctx context.Context, requesterID, id uint) error
}

type PostHandler struct {
	svc     PostService
	gallery GalleryService
	rSvc    ReactionCounter
	uSvc    UserService
}

func NewPostHandler(svc PostService, gallery GalleryService, rSvc ReactionCounter, uSvc UserService) *PostHandler {
	return &PostHandler{
		svc:     svc,
		gallery: gallery,
		rSvc:    rSvc,
		uSvc:    uSvc,
	}
}

// HandleCreatePost godoc
// @Summary      Publish a post with optional images
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Success      201  {object}  domain.Post
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /posts [post]
// @Security BearerAuth
func (h *PostHandler) HandleCreatePost(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreatePostRequest
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

	post, err := h.svc.CreatePost(ctx.Request.Context(), domain.Post{
		AuthorID:  user.ID,
		VehicleID: req.VehicleID,
		Title:     req.Title,
		Body:      req.Body,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreatePost -> h.svc.CreatePost -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	if len(files) > 0 {
		parent := domain.ParentRef{Type: domain.ParentPost, ID: post.ID}
		images, err := h.gallery.AddImages(ctx.Request.Context(), parent, files)
		if err != nil {
			if errors.Is(err, service.ErrInvalidImage) {
				response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidImage))
				return
			}

			err = fmt.Errorf("v1.HandleCreatePost -> h.gallery.AddImages -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return
		}
		post.Images = images
		if len(images) > 0 {
			post.MainImageID = &images[0].ID
		}
	}

	ctx.JSON(http.StatusCreated, post)
}

// HandleListPosts godoc
// @Summary      List posts with like counts
// @Tags         posts
// @Produce      json
// @Success      200  {array}   response.PostListItem
// @Failure      500  {object}  response.Err
// @Router       /posts [get]
func (h *PostHandler) HandleListPosts(ctx *gin.Context) {
	posts, err := h.svc.ListPosts(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListPosts -> h.svc.ListPosts -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	likes, err := h.rSvc.BulkCountFor(ctx.Request.Context(), domain.ReactionLike, domain.TargetPost, ids)
	if err != nil {
		err = fmt.Errorf("v1.HandleListPosts -> h.rSvc.BulkCountFor -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	items := make([]response.PostListItem, len(posts))
	for i, p := range posts {
		items[i] = response.PostListItem{
			Post:      p,
			LikeCount: likes[p.ID],
		}
	}

	ctx.JSON(http.StatusOK, items)
}

// HandleGetMyPosts godoc
// @Summary      List the authenticated user's posts
// @Tags         posts
// @Produce      json
// @Success      200  {array}   domain.Post
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /me/posts [get]
// @Security BearerAuth
func (h *PostHandler) HandleGetMyPosts(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	posts, err := h.svc.ListByAuthor(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetMyPosts -> h.svc.ListByAuthor -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, posts)
}

// HandleGetPost godoc
// @Summary      Get a post with its images
// @Tags         posts
// @Produce      json
// @Param        postID   path      int  true  "post ID"
// @Success      200  {object}  domain.Post
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /posts/{postID} [get]
func (h *PostHandler) HandleGetPost(ctx *gin.Context) {
	postID, err := parseIDParam(ctx, "postID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	post, err := h.svc.GetPost(ctx.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("post", "postID", postID))
			return
		}

		err = fmt.Errorf("v1.HandleGetPost -> h.svc.GetPost -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, post)
}

// HandleDeletePost godoc
// @Summary      Delete a post and its images
// @Tags         posts
// @Produce      json
// @Param        postID   path      int  true  "post ID"
// @Success      204  {string}  string ""
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /posts/{postID} [delete]
// @Security BearerAuth
func (h *PostHandler) HandleDeletePost(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	postID, err := parseIDParam(ctx, "postID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.DeletePost(ctx.Request.Context(), user.ID, postID); err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			response.RenderErr(ctx, response.ErrNotFound("post", "postID", postID))
		case errors.Is(err, service.ErrNotAuthorized):
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
		default:
			err = fmt.Errorf("v1.HandleDeletePost -> h.svc.DeletePost -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}
