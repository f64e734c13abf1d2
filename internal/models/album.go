package models

import (
	"time"
)

// PhotoAlbum groups photos of an event
type PhotoAlbum struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID     uint      `gorm:"not null;index" json:"event_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Photos      []Photo   `gorm:"foreignKey:AlbumID;constraint:OnDelete:CASCADE" json:"-"`
}

// Photo is an uploaded image reference.
// Metadata carries free-form client data such as EXIF fields.
type Photo struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	AlbumID    uint           `gorm:"not null;index" json:"album_id"`
	UploaderID uint           `gorm:"not null;index" json:"uploader_id"`
	URL        string         `gorm:"size:2048;not null" json:"url"`
	Caption    *string        `gorm:"type:text" json:"caption"`
	Metadata   JSON           `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	Comments   []PhotoComment `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// PhotoComment is a comment on a photo
type PhotoComment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PhotoID   uint      `gorm:"not null;index" json:"photo_id"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name for PhotoAlbum
func (PhotoAlbum) TableName() string {
	return "photo_albums"
}

// TableName overrides the table name for Photo
func (Photo) TableName() string {
	return "photos"
}

// TableName overrides the table name for PhotoComment
func (PhotoComment) TableName() string {
	return "photo_comments"
}
