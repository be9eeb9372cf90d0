package http

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vidtube/domain/apperror"
	"vidtube/domain/dto"
	"vidtube/infrastructure/logger"
	"vidtube/interfaces/middleware"
)

const (
	ErrorUnmarshal = "Error while unmarshal"
)

func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, dto.Res{Status: status, Data: data, Message: message})
}

// respondError renders err with the status of its kind. Causes of internal
// and upstream failures are logged, never returned.
func respondError(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	status := kind.HTTPStatus()
	entry := logger.GetLogger().WithFields(map[string]interface{}{
		"error":  err,
		"kind":   kind.String(),
		"path":   c.FullPath(),
		"method": c.Request.Method,
	})
	if status >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Debug("Request rejected")
	}
	c.JSON(status, dto.Res{Status: status, Data: nil, Message: apperror.PublicMessage(err)})
}

func listQuery(c *gin.Context) dto.ListQuery {
	q := dto.NewListQuery(c.Query("page"), c.Query("limit"))
	q.Query = strings.TrimSpace(c.Query("query"))
	q.SortBy = c.Query("sortBy")
	q.SortType = c.Query("sortType")
	q.UserID = c.Query("userId")
	return q
}

type uploads struct {
	dir   string
	paths []string
}

func newUploads(dir string) *uploads {
	return &uploads{dir: dir}
}

// save stores the multipart file under field in the upload directory and
// returns its local path. A missing file yields an empty path.
func (u *uploads) save(c *gin.Context, field string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", apperror.Wrap(apperror.InvalidInput, fmt.Sprintf("Invalid %s upload", field), err)
	}
	path := filepath.Join(u.dir, uuid.NewString()+strings.ToLower(filepath.Ext(file.Filename)))
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", apperror.NewInternal("Failed to receive upload", err)
	}
	u.paths = append(u.paths, path)
	return path, nil
}

// cleanup removes every temporary file saved for the request.
func (u *uploads) cleanup() {
	for _, p := range u.paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			logger.GetLogger().WithFields(map[string]interface{}{"error": err, "path": p}).Warn("Failed to remove temporary upload")
		}
	}
}

func actor(c *gin.Context) string {
	return middleware.UserID(c)
}
