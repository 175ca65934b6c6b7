package controller

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tmoreau/boutique-backend/internal/errors"
	"github.com/tmoreau/boutique-backend/internal/middleware"
	"github.com/tmoreau/boutique-backend/internal/storage"
)

type UploadController struct {
	storage *storage.R2Storage
}

func NewUploadController(r2 *storage.R2Storage) *UploadController {
	return &UploadController{
		storage: r2,
	}
}

// Upload relays a multipart file to object storage and returns its public
// URL. Images and videos carry separate allow-lists and size caps.
// POST /api/v1/upload
func (ctrl *UploadController) Upload(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		errors.BadRequest(c, errors.ValidationRequired, "Aucun fichier fourni")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	kind := storage.Kind(fileHeader.Filename, contentType)

	if err := storage.ValidateUpload(fileHeader.Filename, contentType, fileHeader.Size, kind); err != nil {
		log.Warn("Upload rejected", map[string]interface{}{
			"filename":     fileHeader.Filename,
			"content_type": contentType,
			"size":         fileHeader.Size,
			"error":        err.Error(),
		})
		switch err {
		case storage.ErrFileTooLarge:
			errors.BadRequest(c, errors.UploadFileTooLarge, "Le fichier est trop volumineux")
		default:
			errors.BadRequest(c, errors.UploadInvalidFileType, "Type de fichier non autorisé")
		}
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Failed to open uploaded file", err, nil)
		errors.InternalError(c, "")
		return
	}
	defer file.Close()

	folder := c.PostForm("folder")
	if folder == "" {
		folder = "images"
	}
	if kind == storage.MediaVideo {
		folder = "videos"
	}

	fileURL, err := ctrl.storage.Upload(c.Request.Context(), folder, fileHeader.Filename, contentType, file)
	if err != nil {
		log.Error("Upload to object storage failed", err, map[string]interface{}{
			"filename": fileHeader.Filename,
		})
		errors.RespondWithError(c, http.StatusInternalServerError, errors.UploadFailed, "Le téléversement a échoué")
		return
	}

	key, _ := storage.KeyFromURL(fileURL)

	log.Info("File uploaded", map[string]interface{}{
		"url":  fileURL,
		"kind": string(kind),
	})
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"url":           fileURL,
		"secure_url":    fileURL,
		"public_id":     key,
		"resource_type": string(kind),
		"format":        strings.TrimPrefix(filepath.Ext(fileHeader.Filename), "."),
	})
}

// Delete removes a previously uploaded file, identified by its public URL
// DELETE /api/v1/upload?url=...
func (ctrl *UploadController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	fileURL := c.Query("url")
	if fileURL == "" {
		errors.BadRequest(c, errors.ValidationRequired, "URL du fichier requise")
		return
	}

	if err := ctrl.storage.Delete(c.Request.Context(), fileURL); err != nil {
		if err == storage.ErrInvalidFileURL {
			errors.BadRequest(c, errors.ValidationInvalidInput, "URL de fichier invalide")
			return
		}
		log.Error("Failed to delete file from object storage", err, map[string]interface{}{
			"url": fileURL,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
