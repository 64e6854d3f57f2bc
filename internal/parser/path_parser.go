package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pedro-visualizer/backend/internal/models"
)

// PathFileExt is the extension of persisted path documents.
const PathFileExt = ".pp"

// ParsePathFile reads a .pp document from disk.
func ParsePathFile(filePath string) (*models.PathData, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := ParsePathData(file)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filePath, err)
	}
	return data, nil
}

// ParsePathData decodes a path document. Missing lines, shapes and sequence
// arrays decode as empty.
func ParsePathData(r io.Reader) (*models.PathData, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var data models.PathData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}

	if data.Lines == nil {
		data.Lines = make([]models.Line, 0)
	}
	if data.Shapes == nil {
		data.Shapes = make([]models.Shape, 0)
	}
	if data.Sequence == nil {
		data.Sequence = make(models.Sequence, 0)
	}
	for i := range data.Lines {
		if data.Lines[i].ControlPoints == nil {
			data.Lines[i].ControlPoints = make([]models.Point, 0)
		}
	}
	return &data, nil
}

// EncodePathData writes data as indented JSON.
func EncodePathData(w io.Writer, data models.PathData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// EventNames returns every event marker name referenced by data, in
// document order and possibly repeated.
func EventNames(data models.PathData) []string {
	var names []string
	for _, l := range data.Lines {
		for _, m := range l.EventMarkers {
			names = append(names, m.Name)
		}
	}
	names = appendSequenceEvents(names, data.Sequence)
	return names
}

func appendSequenceEvents(names []string, seq models.Sequence) []string {
	for _, item := range seq {
		switch it := item.(type) {
		case models.WaitItem:
			for _, m := range it.EventMarkers {
				names = append(names, m.Name)
			}
		case models.RotateItem:
			for _, m := range it.EventMarkers {
				names = append(names, m.Name)
			}
		case models.MacroItem:
			names = appendSequenceEvents(names, it.InternalSequence)
		}
	}
	return names
}
