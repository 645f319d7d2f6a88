package music

import "time"

type Artist struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ExternalID string    `gorm:"uniqueIndex;size:64;not null" json:"external_id"`
	Name       string    `gorm:"not null" json:"name"`
	Slug       string    `json:"slug"`
	ImageURL   string    `json:"image_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	Albums     []Album   `gorm:"constraint:OnDelete:CASCADE" json:"albums,omitempty"`
}

type Album struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ExternalID  string     `gorm:"uniqueIndex;size:64;not null" json:"external_id"`
	Title       string     `gorm:"not null" json:"title"`
	Slug        string     `json:"slug"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	CoverURL    string     `json:"cover_url,omitempty"`
	ArtistID    uint       `gorm:"not null;index" json:"artist_id"`
	CreatedAt   time.Time  `json:"created_at"`
}
