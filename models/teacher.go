package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Teacher struct {
	Base
	Username  string                         `gorm:"uniqueIndex;not null" json:"username"`
	Password  string                         `gorm:"not null" json:"-"`
	Email     string                         `gorm:"uniqueIndex;not null" json:"email"`
	Subjects  datatypes.JSONSlice[string]    `json:"subjects"`
	ImageURL  string                         `json:"imageURL"`
	Followers datatypes.JSONSlice[uuid.UUID] `json:"followers"`
	Videos    datatypes.JSONSlice[uuid.UUID] `json:"videos"`
}

func (Teacher) TableName() string {
	return "teachers"
}
