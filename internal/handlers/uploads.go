package handlers

import (
	"net/http"
	"path/filepath"
	"regexp"

	"risk-assessor/internal/database"

	"github.com/gin-gonic/gin"
)

// stored attachment names are a uuid plus an allowed extension
var attachmentName = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.[a-z]{3,4}$`)

// DownloadAttachment serves a stored attachment referenced by some risk.
func DownloadAttachment(uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		if !attachmentName.MatchString(name) {
			c.String(http.StatusNotFound, "not found")
			return
		}

		ok, err := database.AttachmentExists(c.Request.Context(), name)
		if err != nil {
			serverError(c, "failed to look up attachment", err)
			return
		}
		if !ok {
			c.String(http.StatusNotFound, "not found")
			return
		}

		c.FileAttachment(filepath.Join(uploadDir, name), name)
	}
}
