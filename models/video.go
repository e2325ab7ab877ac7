package models

import "github.com/google/uuid"

type Video struct {
	Base
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	VideoURL     string    `gorm:"not null" json:"videoURL"`
	ThumbnailURL string    `gorm:"not null" json:"thumbnailURL"`
	TeacherID    uuid.UUID `gorm:"type:uuid;not null;index" json:"teacher"`
	Category     string    `gorm:"not null;default:'General'" json:"category"`
	Likes        int       `gorm:"not null;default:0" json:"likes"`
}

func (Video) TableName() string {
	return "videos"
}
