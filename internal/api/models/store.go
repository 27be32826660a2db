package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Store struct {
	ID      string  `gorm:"primaryKey;type:uuid" json:"_id"`
	Name    string  `gorm:"not null" json:"name"`
	Email   string  `gorm:"uniqueIndex;not null" json:"email"`
	Address string  `gorm:"default:''" json:"address"`
	OwnerID *string `gorm:"type:uuid;index" json:"ownerId,omitempty"`

	// Aggregate cache, written only by the rating recalculator.
	AverageRating float64 `gorm:"type:decimal(2,1);default:0" json:"averageRating"`
	TotalRatings  int64   `gorm:"default:0" json:"totalRatings"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Associations
	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL;"`
}

// BeforeCreate hook to set UUID before creating a Store
func (store *Store) BeforeCreate(tx *gorm.DB) (err error) {
	if store.ID == "" {
		store.ID = uuid.New().String()
	}
	return
}

func (Store) TableName() string {
	return "stores"
}
