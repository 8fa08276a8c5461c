package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Eintrag is a single beverage-intake line item. It belongs to one Protokoll
// and one creating Pfleger; both references are immutable after creation.
type Eintrag struct {
	ID          string  `gorm:"type:char(36);primaryKey"`
	ErstellerID string  `gorm:"type:char(36);index;not null"`
	ProtokollID string  `gorm:"type:char(36);index;not null"`
	Getraenk    string  `gorm:"type:varchar(100);not null"`
	Menge       float64 `gorm:"not null"`
	Kommentar   string  `gorm:"type:varchar(1000)"`
	// Set once at creation; entries are listed in creation order.
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (e *Eintrag) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
