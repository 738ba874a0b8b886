package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tags is an ordered list of tag strings stored as a JSON column.
type Tags []string

// Value implements driver.Valuer.
func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		t = Tags{}
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner.
func (t *Tags) Scan(value interface{}) error {
	if value == nil {
		*t = Tags{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("unsupported tags column type %T", value)
	}
}

// ImageAnalysis is one persisted analysis result. Records are created once
// and never updated; the only later operation is deletion by the owner.
type ImageAnalysis struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
	ImageURL    string    `json:"image_url" gorm:"size:2048;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Emotions    string    `json:"emotions" gorm:"type:text"`
	Tags        Tags      `json:"tags" gorm:"type:json"`
	RawResponse string    `json:"-" gorm:"type:text"` // original model reply, kept for diagnostics
	CreatedAt   time.Time `json:"created_at" gorm:"index"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (a *ImageAnalysis) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
