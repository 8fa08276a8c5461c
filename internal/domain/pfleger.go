// Package domain defines the persisted entities of the Trinkprotokoll
// application and the value helpers shared across layers.
package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role values carried in session tokens and on request contexts.
const (
	RoleAdmin = "a"
	RoleUser  = "u"
)

// Pfleger is a caregiver account. Password always holds the bcrypt hash,
// never the plaintext; the service layer guarantees hashing on every write.
type Pfleger struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex:idx_pfleger_name;not null"`
	Password  string    `gorm:"type:text;not null"`
	Admin     bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// BeforeCreate assigns a UUID primary key when none is set.
func (p *Pfleger) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Role derives the token role flag from the admin bit.
func (p *Pfleger) Role() string {
	if p.Admin {
		return RoleAdmin
	}
	return RoleUser
}
