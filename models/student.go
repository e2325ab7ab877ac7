package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Student struct {
	Base
	Username          string                         `gorm:"uniqueIndex;not null" json:"username"`
	Password          string                         `gorm:"not null" json:"-"`
	Email             string                         `gorm:"uniqueIndex;not null" json:"email"`
	FollowingTeachers datatypes.JSONSlice[uuid.UUID] `json:"followingTeachers"`
	ImageURL          string                         `json:"imageURL"`
}

func (Student) TableName() string {
	return "students"
}
