package domain

import "time"

type ReactionKind string

const (
	ReactionLike     ReactionKind = "like"
	ReactionFavorite ReactionKind = "favorite"
)

func (k ReactionKind) Valid() bool {
	return k == ReactionLike || k == ReactionFavorite
}

type TargetType string

const (
	TargetVehicle TargetType = "vehicle"
	TargetPost    TargetType = "post"
)

func (t TargetType) Valid() bool {
	return t == TargetVehicle || t == TargetPost
}

// Target is the polymorphic reaction subject, resolved through an explicit
// dispatch per type rather than reflection.
type Target struct {
	Type TargetType `json:"target_type"`
	ID   uint       `json:"target_id"`
}

type Reaction struct {
	ID        uint         `json:"id"`
	UserID    uint         `json:"user_id"`
	Kind      ReactionKind `json:"kind"`
	Target    Target       `json:"target"`
	CreatedAt time.Time    `json:"created_at"`
}

// Favorite is one entry of a user's favorites feed, ordered by FavoritedAt,
// with the target resolved to its concrete entity.
type Favorite struct {
	Target      Target    `json:"target"`
	FavoritedAt time.Time `json:"favorited_at"`
	Vehicle     *Vehicle  `json:"vehicle,omitempty"`
	Post        *Post     `json:"post,omitempty"`
}
