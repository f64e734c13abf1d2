package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/socialdb/internal/services"
	"github.com/localnerve/socialdb/internal/utils"
	"gorm.io/gorm"
)

// AlbumHandler handles photo album, photo and comment routes
type AlbumHandler struct {
	DB *gorm.DB
}

// CreateAlbum handles POST /albums
// @Summary Create a photo album for an event
// @Tags Albums
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AlbumInput true "Album"
// @Success 201 {object} models.PhotoAlbum
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /albums [post]
func (h *AlbumHandler) CreateAlbum(c *fiber.Ctx) error {
	var in services.AlbumInput
	if err := parseBody(c, &in); err != nil {
		return utils.HandleError(c, err)
	}

	album, err := services.CreateAlbum(h.DB, actor(c), in)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.CreatedResponse(c, album)
}

// GetAlbum handles GET /albums/:id
// @Summary Get an album
// @Tags Albums
// @Produce json
// @Param id path int true "Album ID"
// @Success 200 {object} models.PhotoAlbum
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /albums/{id} [get]
func (h *AlbumHandler) GetAlbum(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	album, err := services.GetAlbum(h.DB, actor(c), id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, album, fiber.StatusOK)
}

// ListByEvent handles GET /albums/by-event/:eventId
// @Summary List the albums of an event, newest first
// @Tags Albums
// @Produce json
// @Param eventId path int true "Event ID"
// @Param limit query int false "Page size (1..200)" default(50)
// @Param offset query int false "Rows to skip" default(0)
// @Success 200 {array} models.PhotoAlbum
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /albums/by-event/{eventId} [get]
func (h *AlbumHandler) ListByEvent(c *fiber.Ctx) error {
	id, err := paramID(c, "eventId")
	if err != nil {
		return utils.HandleError(c, err)
	}
	page, err := queryPage(c, services.DefaultLongPage)
	if err != nil {
		return utils.HandleError(c, err)
	}

	albums, err := services.ListAlbums(h.DB, actor(c), id, page)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, albums, fiber.StatusOK)
}

// AddPhoto handles POST /albums/:id/photos
// @Summary Add a photo to an album
// @Tags Albums
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Album ID"
// @Param body body services.PhotoInput true "Photo"
// @Success 201 {object} models.Photo
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /albums/{id}/photos [post]
func (h *AlbumHandler) AddPhoto(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	var in services.PhotoInput
	if err := parseBody(c, &in); err != nil {
		return utils.HandleError(c, err)
	}

	photo, err := services.AddPhoto(h.DB, actor(c), id, in)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.CreatedResponse(c, photo)
}

// ListPhotos handles GET /albums/:id/photos
// @Summary List the photos of an album, oldest first
// @Tags Albums
// @Produce json
// @Param id path int true "Album ID"
// @Param limit query int false "Page size (1..200)" default(50)
// @Param offset query int false "Rows to skip" default(0)
// @Success 200 {array} models.Photo
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /albums/{id}/photos [get]
func (h *AlbumHandler) ListPhotos(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	page, err := queryPage(c, services.DefaultLongPage)
	if err != nil {
		return utils.HandleError(c, err)
	}

	photos, err := services.ListPhotos(h.DB, actor(c), id, page)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, photos, fiber.StatusOK)
}

// AddComment handles POST /albums/photos/:photoId/comments
// @Summary Comment on a photo
// @Tags Albums
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param photoId path int true "Photo ID"
// @Param body body services.CommentInput true "Comment"
// @Success 201 {object} models.PhotoComment
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /albums/photos/{photoId}/comments [post]
func (h *AlbumHandler) AddComment(c *fiber.Ctx) error {
	id, err := paramID(c, "photoId")
	if err != nil {
		return utils.HandleError(c, err)
	}
	var in services.CommentInput
	if err := parseBody(c, &in); err != nil {
		return utils.HandleError(c, err)
	}

	comment, err := services.AddComment(h.DB, actor(c), id, in)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.CreatedResponse(c, comment)
}

// ListComments handles GET /albums/photos/:photoId/comments
// @Summary List the comments on a photo, oldest first
// @Tags Albums
// @Produce json
// @Param photoId path int true "Photo ID"
// @Param limit query int false "Page size (1..200)" default(50)
// @Param offset query int false "Rows to skip" default(0)
// @Success 200 {array} models.PhotoComment
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /albums/photos/{photoId}/comments [get]
func (h *AlbumHandler) ListComments(c *fiber.Ctx) error {
	id, err := paramID(c, "photoId")
	if err != nil {
		return utils.HandleError(c, err)
	}
	page, err := queryPage(c, services.DefaultLongPage)
	if err != nil {
		return utils.HandleError(c, err)
	}

	comments, err := services.ListComments(h.DB, actor(c), id, page)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, comments, fiber.StatusOK)
}
