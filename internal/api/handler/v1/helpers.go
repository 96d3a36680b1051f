package v1

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/motohub-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/motohub-api/internal/api/middleware"
	"github.com/vietanh2810/motohub-api/internal/domain"
)

// getUserFromContext resolves the authenticated user set by the JWT
// middleware.
func getUserFromContext(ctx *gin.Context, uSvc UserService) (domain.User, *response.Err) {
	raw, ok := ctx.Get(middleware.ContextKeyUserID)
	if !ok {
		return domain.User{}, response.ErrUnauthorized("missing credentials")
	}

	userID, ok := raw.(uint)
	if !ok {
		return domain.User{}, response.ErrUnauthorized("invalid credentials")
	}

	user, err := uSvc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		return domain.User{}, response.ErrUnauthorized("unknown user")
	}

	return user, nil
}

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %v", name)
	}

	return uint(id), nil
}

const maxUploadSize = 20 << 20 // per file

var errTooLargeUpload = errors.New("uploaded file too large")

// readUploads reads the "images" multipart files into memory.
func readUploads(ctx *gin.Context) ([][]byte, error) {
	form, err := ctx.MultipartForm()
	if err != nil {
		return nil, nil
	}

	headers := form.File["images"]
	files := make([][]byte, 0, len(headers))
	for _, header := range headers {
		if header.Size > maxUploadSize {
			return nil, errTooLargeUpload
		}

		f, err := header.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}

		files = append(files, data)
	}

	return files, nil
}
