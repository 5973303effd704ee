package endpoint

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/adiwidyanto/clinic-ehr/config"
	"github.com/adiwidyanto/clinic-ehr/util"
	"github.com/gin-gonic/gin"
)

// saveImageIfPresent stores the optional "image" form file under its
// sanitized name in the upload directory and returns that name, or "" when
// no usable file was sent. A collision with an existing stored name silently
// overwrites; there is no uniqueness suffixing.
func saveImageIfPresent(c *gin.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", err
	}
	if file.Filename == "" {
		return "", nil
	}

	name := util.SanitizeFilename(file.Filename)
	if name == "" {
		return "", nil
	}

	cfg := config.LoadConfig()
	if err := c.SaveUploadedFile(file, filepath.Join(cfg.UploadDir, name)); err != nil {
		return "", err
	}
	return name, nil
}

// ServeUpload serves a stored file by exact filename. Any requested name the
// sanitizer would not have produced, traversal attempts included, is a 404
// before the filesystem is touched.
func ServeUpload(c *gin.Context) {
	name := c.Param("filename")
	if !util.IsSafeStoredFilename(name) {
		c.String(http.StatusNotFound, "404 page not found")
		return
	}

	path := filepath.Join(config.LoadConfig().UploadDir, name)
	if _, err := os.Stat(path); err != nil {
		c.String(http.StatusNotFound, "404 page not found")
		return
	}
	c.File(path)
}
