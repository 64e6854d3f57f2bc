// Package macro merges reusable sub-paths into a host document. Every
// imported entity is namespaced under a fresh instance id so repeated imports
// of the same file never collide.
package macro

import (
	"github.com/pedro-visualizer/backend/internal/models"
	"github.com/pedro-visualizer/backend/internal/transform"
)

// Result is the outcome of importing one macro.
type Result struct {
	MacroItem models.MacroItem `json:"macroItem"`
	NewLines  []models.Line    `json:"newLines"`
	NewShapes []models.Shape   `json:"newShapes"`
}

// Importer namespaces macro documents using its id source.
type Importer struct {
	ids IDGenerator
}

// NewImporter creates an importer. A nil generator falls back to UUIDGenerator.
func NewImporter(ids IDGenerator) *Importer {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return &Importer{ids: ids}
}

// Namespace builds the prefixed id for an imported entity.
func Namespace(instanceID, originalID string) string {
	return models.NamespaceID(instanceID, originalID)
}

// Import converts macroData into namespaced lines, shapes and a macro
// sequence item. The macro's start point is carried as the anchor.
//
// When the macro has no sequence, one path item per line is generated in
// line order. Nested macro items only get their own id prefixed; their
// internal sequences are kept as authored.
func (imp *Importer) Import(macroData models.PathData, filePath, macroName string) Result {
	instanceID := imp.ids.NewID()

	lines := make([]models.Line, 0, len(macroData.Lines))
	for _, l := range macroData.Lines {
		nl := l.Clone()
		nl.OriginalID = l.ID
		nl.FromMacroID = instanceID
		nl.ID = Namespace(instanceID, l.ID)
		namespaceMarkers(instanceID, nl.EventMarkers)
		lines = append(lines, nl)
	}

	shapes := make([]models.Shape, 0, len(macroData.Shapes))
	for _, s := range macroData.Shapes {
		ns := s.Clone()
		ns.OriginalID = s.ID
		ns.FromMacroID = instanceID
		ns.ID = Namespace(instanceID, s.ID)
		shapes = append(shapes, ns)
	}

	var seq models.Sequence
	if len(macroData.Sequence) > 0 {
		seq = make(models.Sequence, 0, len(macroData.Sequence))
		for _, item := range macroData.Sequence {
			seq = append(seq, namespaceItem(instanceID, item))
		}
	} else {
		seq = make(models.Sequence, 0, len(lines))
		for _, l := range lines {
			seq = append(seq, models.PathItem{LineID: l.ID})
		}
	}

	return Result{
		MacroItem: models.MacroItem{
			ID:               instanceID,
			FilePath:         filePath,
			Name:             macroName,
			InternalSequence: seq,
			AnchorPoint:      macroData.StartPoint,
		},
		NewLines:  lines,
		NewShapes: shapes,
	}
}

func namespaceItem(instanceID string, item models.SequenceItem) models.SequenceItem {
	switch it := models.CloneItem(item).(type) {
	case models.PathItem:
		it.LineID = Namespace(instanceID, it.LineID)
		return it
	case models.WaitItem:
		it.ID = Namespace(instanceID, it.ID)
		namespaceMarkers(instanceID, it.EventMarkers)
		return it
	case models.RotateItem:
		it.ID = Namespace(instanceID, it.ID)
		namespaceMarkers(instanceID, it.EventMarkers)
		return it
	case models.MacroItem:
		it.ID = Namespace(instanceID, it.ID)
		return it
	default:
		return item
	}
}

// namespaceMarkers prefixes marker ids in place. Callers pass cloned slices.
func namespaceMarkers(instanceID string, markers []models.EventMarker) {
	for i := range markers {
		markers[i].ID = Namespace(instanceID, markers[i].ID)
	}
}

// AlignTo moves the imported geometry so the macro's anchor lands on
// insertion. The anchor point itself is updated to match.
func (r Result) AlignTo(insertion models.Point) Result {
	dx := insertion.X - r.MacroItem.AnchorPoint.X
	dy := insertion.Y - r.MacroItem.AnchorPoint.Y

	moved := transform.Translate(models.PathData{
		StartPoint: r.MacroItem.AnchorPoint,
		Lines:      r.NewLines,
		Shapes:     r.NewShapes,
	}, dx, dy)

	out := r
	out.MacroItem = models.CloneItem(r.MacroItem).(models.MacroItem)
	out.MacroItem.AnchorPoint = moved.StartPoint
	out.NewLines = moved.Lines
	out.NewShapes = moved.Shapes
	return out
}

// Merge appends an import result to a copy of host: lines and shapes are
// added and the macro item is placed at the end of the sequence. A host
// without a sequence first gets one path item per existing line so its own
// lines keep playing.
func Merge(host models.PathData, r Result) models.PathData {
	out := host.Clone()
	if len(out.Sequence) == 0 {
		out.Sequence = make(models.Sequence, 0, len(out.Lines)+1)
		for _, l := range out.Lines {
			out.Sequence = append(out.Sequence, models.PathItem{LineID: l.ID})
		}
	}
	for _, l := range r.NewLines {
		out.Lines = append(out.Lines, l.Clone())
	}
	for _, s := range r.NewShapes {
		out.Shapes = append(out.Shapes, s.Clone())
	}
	out.Sequence = append(out.Sequence, models.CloneItem(r.MacroItem))
	return out
}
