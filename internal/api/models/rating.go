package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxReviewLength bounds the optional review text on a rating.
const MaxReviewLength = 500

type Rating struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"_id"`
	UserID  string `gorm:"type:uuid;not null;uniqueIndex:idx_user_store" json:"userId"`
	StoreID string `gorm:"type:uuid;not null;uniqueIndex:idx_user_store;index" json:"storeId"`
	Score   int    `gorm:"column:rating;not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Review  string `gorm:"type:varchar(500);default:''" json:"review"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Associations
	User  User  `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Store Store `json:"store,omitempty" gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE;"`
}

// BeforeCreate hook to set UUID before creating a Rating
func (rating *Rating) BeforeCreate(tx *gorm.DB) (err error) {
	if rating.ID == "" {
		rating.ID = uuid.New().String()
	}
	return
}

func (Rating) TableName() string {
	return "ratings"
}
