package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Vehicle{},
		&Post{},
		&Image{},
		&Reaction{},
		&Event{},
		&EventEntry{},
		&EventVote{},
		&Award{},
		&Team{},
		&TeamMembership{},
	)
}
