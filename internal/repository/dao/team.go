package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrTeamNotFound = errors.New("team not found")

type Team struct {
	ID          uint   `gorm:"primaryKey"`
	OwnerID     uint   `gorm:"not null;index"`
	Name        string `gorm:"unique;not null"`
	Description string
	Status      string `gorm:"not null;default:active"` // "active" or "disbanded"

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type TeamMembership struct {
	ID     uint   `gorm:"primaryKey"`
	TeamID uint   `gorm:"not null;uniqueIndex:idx_memberships_team_user,priority:1"`
	UserID uint   `gorm:"not null;uniqueIndex:idx_memberships_team_user,priority:2"`
	Role   string `gorm:"not null;default:member"` // "admin" or "member"
	Status string `gorm:"not null;default:pending"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type TeamDAO struct {
	db *gorm.DB
}

func NewTeamDAO(db *gorm.DB) *TeamDAO {
	return &TeamDAO{
		db: db,
	}
}

func (d *TeamDAO) FindByID(ctx context.Context, id uint) (Team, error) {
	var team Team

	result := d.db.WithContext(ctx).First(&team, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Team{}, ErrTeamNotFound
		}

		return Team{}, result.Error
	}

	return team, nil
}

// IsTeamAdmin reports whether the user is an approved admin of the team.
// Team owners count as admins even without a membership row.
func (d *TeamDAO) IsTeamAdmin(ctx context.Context, teamID, userID uint) (bool, error) {
	var team Team
	result := d.db.WithContext(ctx).First(&team, teamID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, ErrTeamNotFound
		}

		return false, result.Error
	}

	if team.OwnerID == userID {
		return true, nil
	}

	var count int64
	result = d.db.WithContext(ctx).Model(&TeamMembership{}).
		Where("team_id = ? AND user_id = ? AND role = ? AND status = ?",
			teamID, userID, "admin", "approved").
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}
