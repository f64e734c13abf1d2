package services

import (
	"strings"

	"github.com/localnerve/socialdb/internal/models"
	"github.com/localnerve/socialdb/internal/types"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// AlbumInput is the body of POST /albums
type AlbumInput struct {
	EventID     types.FlexID `json:"event_id"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
}

// PhotoInput is the body of POST /albums/:id/photos
type PhotoInput struct {
	URL      string      `json:"url"`
	Caption  *string     `json:"caption"`
	Metadata models.JSON `json:"metadata"`
}

// CommentInput is the body of POST /albums/photos/:photoId/comments
type CommentInput struct {
	Content string `json:"content"`
}

// CreateAlbum creates a photo album for an event; participants and organizers only
func CreateAlbum(db *gorm.DB, actor *models.User, in AlbumInput) (*models.PhotoAlbum, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, types.BadRequest("Album title is required")
	}

	album := &models.PhotoAlbum{
		EventID:     in.EventID.Uint(),
		Title:       title,
		Description: in.Description,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := loadEvent(tx, album.EventID); err != nil {
			return err
		}
		if err := requireEventMember(tx, album.EventID, actor, "create an album"); err != nil {
			return err
		}
		return errors.Wrap(tx.Create(album).Error, "failed to create album")
	})
	if err != nil {
		return nil, err
	}
	return album, nil
}

// viewableAlbum loads an album and applies the event visibility rule
func viewableAlbum(db *gorm.DB, actor *models.User, albumID uint) (*models.PhotoAlbum, error) {
	var album models.PhotoAlbum
	if err := findByID(db, &album, albumID, "Album"); err != nil {
		return nil, err
	}
	if _, err := viewableEvent(db, album.EventID, actor, "this album"); err != nil {
		return nil, err
	}
	return &album, nil
}

// viewablePhoto loads a photo and applies the event visibility rule
func viewablePhoto(db *gorm.DB, actor *models.User, photoID uint) (*models.Photo, *models.PhotoAlbum, error) {
	var photo models.Photo
	if err := findByID(db, &photo, photoID, "Photo"); err != nil {
		return nil, nil, err
	}
	album, err := viewableAlbum(db, actor, photo.AlbumID)
	if err != nil {
		return nil, nil, err
	}
	return &photo, album, nil
}

// GetAlbum returns an album of an event the actor may view
func GetAlbum(db *gorm.DB, actor *models.User, albumID uint) (*models.PhotoAlbum, error) {
	return viewableAlbum(db, actor, albumID)
}

// ListAlbums returns the albums of an event, newest first
func ListAlbums(db *gorm.DB, actor *models.User, eventID uint, page Page) ([]models.PhotoAlbum, error) {
	if err := page.Check(MaxDetailPage); err != nil {
		return nil, err
	}
	if _, err := viewableEvent(db, eventID, actor, "albums for this event"); err != nil {
		return nil, err
	}

	albums := []models.PhotoAlbum{}
	err := tagged(db, "list_albums").
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&albums).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list albums")
	}
	return albums, nil
}

// AddPhoto posts a photo to an album; participants and organizers only
func AddPhoto(db *gorm.DB, actor *models.User, albumID uint, in PhotoInput) (*models.Photo, error) {
	url := strings.TrimSpace(in.URL)
	if url == "" {
		return nil, types.BadRequest("Photo url is required")
	}

	var photo *models.Photo
	err := db.Transaction(func(tx *gorm.DB) error {
		var album models.PhotoAlbum
		if err := findByID(tx, &album, albumID, "Album"); err != nil {
			return err
		}
		if _, err := loadEvent(tx, album.EventID); err != nil {
			return err
		}
		if err := requireEventMember(tx, album.EventID, actor, "post photos"); err != nil {
			return err
		}

		photo = &models.Photo{
			AlbumID:    album.ID,
			UploaderID: actor.ID,
			URL:        url,
			Caption:    in.Caption,
			Metadata:   in.Metadata,
		}
		return errors.Wrap(tx.Create(photo).Error, "failed to add photo")
	})
	if err != nil {
		return nil, err
	}
	return photo, nil
}

// ListPhotos returns the photos of an album, oldest first
func ListPhotos(db *gorm.DB, actor *models.User, albumID uint, page Page) ([]models.Photo, error) {
	if err := page.Check(MaxDetailPage); err != nil {
		return nil, err
	}
	if _, err := viewableAlbum(db, actor, albumID); err != nil {
		return nil, err
	}

	photos := []models.Photo{}
	err := tagged(db, "list_photos").
		Where("album_id = ?", albumID).
		Order("created_at ASC").
		Order("id ASC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&photos).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list photos")
	}
	return photos, nil
}

// AddComment comments on a photo; participants and organizers only
func AddComment(db *gorm.DB, actor *models.User, photoID uint, in CommentInput) (*models.PhotoComment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, types.BadRequest("Comment content is required")
	}

	var comment *models.PhotoComment
	err := db.Transaction(func(tx *gorm.DB) error {
		var photo models.Photo
		if err := findByID(tx, &photo, photoID, "Photo"); err != nil {
			return err
		}
		var album models.PhotoAlbum
		if err := findByID(tx, &album, photo.AlbumID, "Album"); err != nil {
			return err
		}
		if err := requireEventMember(tx, album.EventID, actor, "comment photos"); err != nil {
			return err
		}

		comment = &models.PhotoComment{
			PhotoID:  photo.ID,
			AuthorID: actor.ID,
			Content:  content,
		}
		return errors.Wrap(tx.Create(comment).Error, "failed to add comment")
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns the comments on a photo, oldest first
func ListComments(db *gorm.DB, actor *models.User, photoID uint, page Page) ([]models.PhotoComment, error) {
	if err := page.Check(MaxDetailPage); err != nil {
		return nil, err
	}
	if _, _, err := viewablePhoto(db, actor, photoID); err != nil {
		return nil, err
	}

	comments := []models.PhotoComment{}
	err := tagged(db, "list_comments").
		Where("photo_id = ?", photoID).
		Order("created_at ASC").
		Order("id ASC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&comments).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list comments")
	}
	return comments, nil
}

// deleteAlbumsWhere removes matching albums with their photos and comments
func deleteAlbumsWhere(tx *gorm.DB, query string, args ...interface{}) error {
	albums := tx.Model(&models.PhotoAlbum{}).Select("id").Where(query, args...)
	photos := tx.Model(&models.Photo{}).Select("id").Where("album_id IN (?)", albums)

	if err := tx.Where("photo_id IN (?)", photos).Delete(&models.PhotoComment{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete photo comments")
	}
	if err := tx.Where("album_id IN (?)", albums).Delete(&models.Photo{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete photos")
	}
	return errors.Wrap(tx.Where(query, args...).Delete(&models.PhotoAlbum{}).Error, "failed to delete albums")
}
