package models

import "time"

// User identifies a player. Authentication is handled outside this service;
// the row exists so games have an owner.
type User struct {
	ID        uint      `gorm:"column:user_id;primaryKey"`
	Username  string    `gorm:"column:username;type:varchar(50);not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`

	// Relationships
	Games []Game `gorm:"foreignKey:UserID"`
}
