// handlers_macro.go - Macro import handlers
package api

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pedro-visualizer/backend/internal/macro"
	"github.com/pedro-visualizer/backend/internal/models"
	"github.com/pedro-visualizer/backend/internal/parser"
	"github.com/pedro-visualizer/backend/internal/storage"
)

// MacroHandlerImpl implements the MacroHandler interface
type MacroHandlerImpl struct {
	store     storage.Store
	importer  *macro.Importer
	macrosDir string
}

// NewMacroHandler creates a new macro handler. Macros are read either from
// the document store by id or from files under macrosDir.
func NewMacroHandler(store storage.Store, importer *macro.Importer, macrosDir string) MacroHandler {
	if importer == nil {
		importer = macro.NewImporter(nil)
	}
	return &MacroHandlerImpl{store: store, importer: importer, macrosDir: macrosDir}
}

// HandleImportMacro namespaces a macro document. With an insertion point the
// imported geometry is moved so its anchor lands there; with a host document
// the merged result is returned as well.
func (h *MacroHandlerImpl) HandleImportMacro(c echo.Context) error {
	var req importMacroRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if err := req.validate(); err != nil {
		return err
	}

	data, filePath, name, err := h.loadMacro(req)
	if err != nil {
		return err
	}

	result := h.importer.Import(*data, filePath, name)
	if req.Insertion != nil {
		result = result.AlignTo(*req.Insertion)
	}

	resp := importMacroResponse{Result: result}
	if req.Host != nil {
		merged := macro.Merge(*req.Host, result)
		resp.Merged = &merged
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *MacroHandlerImpl) loadMacro(req importMacroRequest) (*models.PathData, string, string, error) {
	if req.FileID != "" {
		info, err := h.store.Get(req.FileID)
		if err != nil {
			return nil, "", "", NewNotFoundError("macro", req.FileID)
		}
		data, err := h.store.Load(req.FileID)
		if err != nil {
			return nil, "", "", fromDomainError("failed to load macro", err)
		}
		return data, info.Path, firstNonEmpty(req.Name, info.Name), nil
	}

	full := confinePath(h.macrosDir, req.Path)
	data, err := parser.ParsePathFile(full)
	if err != nil {
		return nil, "", "", NewBadRequestError("failed to read macro file", err)
	}
	base := strings.TrimSuffix(filepath.Base(full), filepath.Ext(full))
	return data, req.Path, firstNonEmpty(req.Name, base), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Request/Response types

type importMacroRequest struct {
	FileID    string           `json:"fileId,omitempty"`
	Path      string           `json:"path,omitempty"` // relative to the macros directory
	Name      string           `json:"name,omitempty"`
	Insertion *models.Point    `json:"insertion,omitempty"`
	Host      *models.PathData `json:"host,omitempty"`
}

func (r *importMacroRequest) validate() error {
	if r.FileID == "" && r.Path == "" {
		return NewValidationError("fileId or path")
	}
	return nil
}

type importMacroResponse struct {
	macro.Result
	Merged *models.PathData `json:"merged,omitempty"`
}
