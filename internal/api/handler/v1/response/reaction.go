package response

import "github.com/vietanh2810/motohub-api/internal/domain"

type ReactionResponse struct {
	Active bool  `json:"active"`
	Count  int64 `json:"count"`
}

type FavoritesResponse struct {
	Favorites []domain.Favorite `json:"favorites"`
}
