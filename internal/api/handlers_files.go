// handlers_files.go - Stored path document handlers
package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pedro-visualizer/backend/internal/models"
	"github.com/pedro-visualizer/backend/internal/storage"
)

// FileHandlerImpl implements the FileHandler interface
type FileHandlerImpl struct {
	store storage.Store
}

// NewFileHandler creates a new file handler instance
func NewFileHandler(store storage.Store) FileHandler {
	return &FileHandlerImpl{store: store}
}

// HandleListFiles lists stored documents. Query: sort=recent|name|date, limit=N.
func (h *FileHandlerImpl) HandleListFiles(c echo.Context) error {
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return NewValidationError("limit")
		}
		limit = n
	}

	files, err := h.store.List(storage.ParseSortOrder(c.QueryParam("sort")), limit)
	if err != nil {
		return NewInternalError("failed to list files", err)
	}
	if files == nil {
		files = []*models.FileInfo{}
	}
	return c.JSON(http.StatusOK, files)
}

// HandleCreateFile stores a new document
func (h *FileHandlerImpl) HandleCreateFile(c echo.Context) error {
	var req saveFileRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if err := req.validate(); err != nil {
		return err
	}

	info, err := h.store.Save(strings.TrimSpace(req.Name), *req.Data)
	if err != nil {
		return NewInternalError("failed to save file", err)
	}
	return c.JSON(http.StatusCreated, info)
}

// HandleGetFile returns a document together with its metadata
func (h *FileHandlerImpl) HandleGetFile(c echo.Context) error {
	id := c.Param("id")
	info, err := h.store.Get(id)
	if err != nil {
		return NewNotFoundError("file", id)
	}

	data, err := h.store.Load(id)
	if err != nil {
		return fromDomainError("failed to load file", err)
	}

	return c.JSON(http.StatusOK, fileResponse{File: info, Data: data})
}

// HandleUpdateFile renames a document and/or replaces its contents
func (h *FileHandlerImpl) HandleUpdateFile(c echo.Context) error {
	id := c.Param("id")
	var req updateFileRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if req.Name == nil && req.Data == nil {
		return NewValidationError("name or data")
	}

	info, err := h.store.Get(id)
	if err != nil {
		return NewNotFoundError("file", id)
	}

	if req.Data != nil {
		if info, err = h.store.Update(id, *req.Data); err != nil {
			return fromDomainError("failed to update file", err)
		}
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return NewValidationError("name")
		}
		if info, err = h.store.Rename(id, name); err != nil {
			return fromDomainError("failed to rename file", err)
		}
	}

	return c.JSON(http.StatusOK, info)
}

// HandleDeleteFile removes a document
func (h *FileHandlerImpl) HandleDeleteFile(c echo.Context) error {
	id := c.Param("id")
	if err := h.store.Delete(id); err != nil {
		return fromDomainError("failed to delete file", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Request/Response types

type saveFileRequest struct {
	Name string           `json:"name"`
	Data *models.PathData `json:"data"`
}

func (r *saveFileRequest) validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return NewValidationError("name")
	}
	if r.Data == nil {
		return NewValidationError("data")
	}
	return nil
}

type updateFileRequest struct {
	Name *string          `json:"name,omitempty"`
	Data *models.PathData `json:"data,omitempty"`
}

type fileResponse struct {
	File *models.FileInfo `json:"file"`
	Data *models.PathData `json:"data"`
}
