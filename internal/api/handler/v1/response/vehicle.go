package response

import "github.com/vietanh2810/motohub-api/internal/domain"

type VehicleListItem struct {
	domain.Vehicle

	LikeCount     int64 `json:"like_count"`
	FavoriteCount int64 `json:"favorite_count"`
}

type VehicleDetail struct {
	domain.Vehicle

	LikeCount     int64 `json:"like_count"`
	FavoriteCount int64 `json:"favorite_count"`
}
