package models

// EventMarker names a point of interest along a line or rotate command.
// Position is the 0..1 fraction of the owning item's traversal.
type EventMarker struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Position float64 `json:"position"`
}

// Line is one traversable segment ending at EndPoint. Its start is the
// previous line's end, or the document start point for the first line.
type Line struct {
	ID             string        `json:"id"`
	EndPoint       Point         `json:"endPoint"`
	ControlPoints  []Point       `json:"controlPoints"`
	Color          string        `json:"color,omitempty"`
	Locked         bool          `json:"locked,omitempty"`
	WaitBefore     bool          `json:"waitBefore,omitempty"`
	WaitBeforeMs   float64       `json:"waitBeforeMs,omitempty"`
	WaitBeforeName string        `json:"waitBeforeName,omitempty"`
	WaitAfter      bool          `json:"waitAfter,omitempty"`
	WaitAfterMs    float64       `json:"waitAfterMs,omitempty"`
	WaitAfterName  string        `json:"waitAfterName,omitempty"`
	EventMarkers   []EventMarker `json:"eventMarkers,omitempty"`
	FromMacroID    string        `json:"fromMacroId,omitempty"`
	OriginalID     string        `json:"originalId,omitempty"`
}

// Clone returns a deep copy of the line.
func (l Line) Clone() Line {
	out := l
	out.ControlPoints = ClonePoints(l.ControlPoints)
	out.EventMarkers = cloneMarkers(l.EventMarkers)
	return out
}

// SwapWaits exchanges the wait-before and wait-after settings.
func (l *Line) SwapWaits() {
	l.WaitBefore, l.WaitAfter = l.WaitAfter, l.WaitBefore
	l.WaitBeforeMs, l.WaitAfterMs = l.WaitAfterMs, l.WaitBeforeMs
	l.WaitBeforeName, l.WaitAfterName = l.WaitAfterName, l.WaitBeforeName
}

// Shape is static field geometry such as an obstacle. It is never traversed.
type Shape struct {
	ID          string  `json:"id"`
	Name        string  `json:"name,omitempty"`
	Color       string  `json:"color,omitempty"`
	Vertices    []Point `json:"vertices"`
	FromMacroID string  `json:"fromMacroId,omitempty"`
	OriginalID  string  `json:"originalId,omitempty"`
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	out := s
	out.Vertices = ClonePoints(s.Vertices)
	return out
}

// PathData is the unit of interchange for whole paths and macros alike.
type PathData struct {
	StartPoint Point    `json:"startPoint"`
	Lines      []Line   `json:"lines"`
	Shapes     []Shape  `json:"shapes"`
	Sequence   Sequence `json:"sequence"`
}

// Clone returns a deep copy of the document.
func (d PathData) Clone() PathData {
	out := PathData{StartPoint: d.StartPoint}
	if d.Lines != nil {
		out.Lines = make([]Line, len(d.Lines))
		for i, l := range d.Lines {
			out.Lines[i] = l.Clone()
		}
	}
	if d.Shapes != nil {
		out.Shapes = make([]Shape, len(d.Shapes))
		for i, s := range d.Shapes {
			out.Shapes[i] = s.Clone()
		}
	}
	out.Sequence = d.Sequence.Clone()
	return out
}

// IDSeparator joins a macro instance id and the id it namespaces.
const IDSeparator = "__"

// NamespaceID returns the id an entity gets when imported under instanceID.
func NamespaceID(instanceID, id string) string {
	return instanceID + IDSeparator + id
}

// ResolveScopedID looks id up as written and then under each enclosing macro
// instance id, innermost first. Sequences of nested macro items keep the ids
// they were authored with, so lines imported more than one level deep are
// only found through their scopes.
func ResolveScopedID(id string, scopes []string, exists func(string) bool) (string, bool) {
	if exists(id) {
		return id, true
	}
	for i := len(scopes) - 1; i >= 0; i-- {
		if scoped := NamespaceID(scopes[i], id); exists(scoped) {
			return scoped, true
		}
	}
	return "", false
}

// SegmentStart returns the start point of line i.
func (d PathData) SegmentStart(i int) Point {
	if i == 0 {
		return d.StartPoint
	}
	return d.Lines[i-1].EndPoint
}

func cloneMarkers(m []EventMarker) []EventMarker {
	if m == nil {
		return nil
	}
	out := make([]EventMarker, len(m))
	copy(out, m)
	return out
}
