package model

import "time"

// Profile is owned by the identity provider; this service only reads it.
type Profile struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	DisplayName string    `json:"displayName"`
	Verified    bool      `gorm:"not null;default:false" json:"verified"`
	CreatedAt   time.Time `json:"createdAt"`
}
