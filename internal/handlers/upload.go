package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thereayou/chatlite/internal/config"
	"github.com/thereayou/chatlite/internal/models"
	"github.com/thereayou/chatlite/internal/store"
)

// Разрешённые расширения и соответствующие им content-type.
// Проверяются оба: совпадения только одного недостаточно.
var allowedUploadTypes = map[string]string{
	"jpeg": "image/jpeg",
	"jpg":  "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"pdf":  "application/pdf",
}

type UploadHandler struct {
	store store.Store
	cfg   *config.Config
}

func NewUploadHandler(st store.Store, cfg *config.Config) *UploadHandler {
	return &UploadHandler{store: st, cfg: cfg}
}

// Upload принимает один файл из multipart-поля file. Все проверки
// (размер, расширение, content-type) выполняются до записи на диск.
func (h *UploadHandler) Upload(c *gin.Context) {
	uploaderID, ok := currentUserID(c)
	if !ok {
		var err error
		uploaderID, err = uuid.Parse(c.PostForm("uploadedBy"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing uploader"})
			return
		}
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}

	if fileHeader.Size > h.cfg.UploadMaxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileHeader.Filename), "."))
	wantMime, ok := allowedUploadTypes[ext]
	if !ok {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "file type not allowed"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != wantMime {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "file type not allowed"})
		return
	}

	filename := uuid.New().String() + "_" + filepath.Base(fileHeader.Filename)
	dst := filepath.Join(h.cfg.UploadDir, filename)

	if err := c.SaveUploadedFile(fileHeader, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	upload := &models.Upload{
		Filename:     filename,
		OriginalName: fileHeader.Filename,
		Path:         "/uploads/" + filename,
		Size:         fileHeader.Size,
		Mimetype:     contentType,
		UploadedBy:   uploaderID,
		UploadedAt:   time.Now(),
	}

	if err := h.store.SaveUpload(upload); err != nil {
		os.Remove(dst)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":           upload.ID,
		"filename":     upload.Filename,
		"originalName": upload.OriginalName,
		"path":         upload.Path,
		"size":         upload.Size,
		"mimetype":     upload.Mimetype,
		"uploadedBy":   upload.UploadedBy,
		"uploadedAt":   upload.UploadedAt,
	})
}
