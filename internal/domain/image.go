package domain

import "time"

// MaxImagesPerParent caps a parent's gallery; uploads beyond the remaining
// capacity are silently dropped.
const MaxImagesPerParent = 10

type ParentType string

const (
	ParentVehicle ParentType = "vehicle"
	ParentPost    ParentType = "post"
)

func (t ParentType) Valid() bool {
	return t == ParentVehicle || t == ParentPost
}

// ParentRef identifies the entity a gallery hangs off.
type ParentRef struct {
	Type ParentType `json:"type"`
	ID   uint       `json:"id"`
}

type Image struct {
	ID        uint      `json:"id"`
	Parent    ParentRef `json:"-"`
	FilePath  string    `json:"file_path"`
	ThumbPath string    `json:"thumb_path,omitempty"`
	SortOrder int       `json:"sort_order"`
	IsMain    bool      `json:"is_main"`
	CreatedAt time.Time `json:"created_at"`
}
