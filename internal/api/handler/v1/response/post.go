package response

import "github.com/vietanh2810/motohub-api/internal/domain"

type PostListItem struct {
	domain.Post

	LikeCount int64 `json:"like_count"`
}
