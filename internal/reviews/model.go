package reviews

import (
	"time"

	"github.com/EnzoDelpy/tunerate-api/internal/music"
	"github.com/EnzoDelpy/tunerate-api/internal/users"
)

// Review is one user's rating of one album. The composite unique index
// is the invariant of record: at most one review per (user, album).
type Review struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserID    uint        `gorm:"not null;uniqueIndex:idx_reviews_user_album" json:"user_id"`
	AlbumID   uint        `gorm:"not null;uniqueIndex:idx_reviews_user_album" json:"album_id"`
	Rating    int         `gorm:"not null;check:chk_reviews_rating,rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string      `json:"comment,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	User      users.User  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Album     music.Album `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
