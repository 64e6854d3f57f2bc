package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownSequenceKind is returned when decoding a sequence item with an unrecognised kind.
var ErrUnknownSequenceKind = errors.New("unknown sequence item kind")

// SequenceKind discriminates sequence items.
type SequenceKind string

const (
	KindPath   SequenceKind = "path"
	KindWait   SequenceKind = "wait"
	KindRotate SequenceKind = "rotate"
	KindMacro  SequenceKind = "macro"
)

// SequenceItem is one playable entry of a document's sequence.
// The concrete types are PathItem, WaitItem, RotateItem and MacroItem.
type SequenceItem interface {
	Kind() SequenceKind
	// ItemID is the id that identifies the item; for path items it is the line id.
	ItemID() string
}

// PathItem traverses the named line.
type PathItem struct {
	LineID string `json:"lineId"`
}

// WaitItem pauses for DurationMs regardless of geometry.
type WaitItem struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	DurationMs   float64       `json:"durationMs"`
	EventMarkers []EventMarker `json:"eventMarkers,omitempty"`
}

// RotateItem turns the robot in place to the absolute heading Degrees.
type RotateItem struct {
	ID           string        `json:"id"`
	Name         string        `json:"name,omitempty"`
	Degrees      float64       `json:"degrees"`
	EventMarkers []EventMarker `json:"eventMarkers,omitempty"`
}

// MacroItem is an imported sub-path whose sequence is inlined where it appears.
type MacroItem struct {
	ID               string   `json:"id"`
	FilePath         string   `json:"filePath"`
	Name             string   `json:"name"`
	InternalSequence Sequence `json:"internalSequence"`
	AnchorPoint      Point    `json:"anchorPoint"`
}

func (PathItem) Kind() SequenceKind   { return KindPath }
func (WaitItem) Kind() SequenceKind   { return KindWait }
func (RotateItem) Kind() SequenceKind { return KindRotate }
func (MacroItem) Kind() SequenceKind  { return KindMacro }

func (i PathItem) ItemID() string   { return i.LineID }
func (i WaitItem) ItemID() string   { return i.ID }
func (i RotateItem) ItemID() string { return i.ID }
func (i MacroItem) ItemID() string  { return i.ID }

// Sequence is an ordered list of sequence items with kind-tagged JSON.
type Sequence []SequenceItem

// Clone returns a deep copy of the sequence, including nested macro sequences.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	for i, item := range s {
		out[i] = CloneItem(item)
	}
	return out
}

// CloneItem returns a deep copy of a single sequence item.
func CloneItem(item SequenceItem) SequenceItem {
	switch it := item.(type) {
	case PathItem:
		return it
	case WaitItem:
		it.EventMarkers = cloneMarkers(it.EventMarkers)
		return it
	case RotateItem:
		it.EventMarkers = cloneMarkers(it.EventMarkers)
		return it
	case MacroItem:
		it.InternalSequence = it.InternalSequence.Clone()
		return it
	default:
		return item
	}
}

// MarshalJSON writes each item with its kind tag.
func (s Sequence) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	out := make([]json.RawMessage, 0, len(s))
	for _, item := range s {
		raw, err := marshalItem(item)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes kind-tagged items.
func (s *Sequence) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	if raws == nil {
		*s = nil
		return nil
	}

	out := make(Sequence, 0, len(raws))
	for i, raw := range raws {
		item, err := unmarshalItem(raw)
		if err != nil {
			return fmt.Errorf("sequence item %d: %w", i, err)
		}
		out = append(out, item)
	}
	*s = out
	return nil
}

func marshalItem(item SequenceItem) (json.RawMessage, error) {
	switch it := item.(type) {
	case PathItem:
		return json.Marshal(struct {
			Kind SequenceKind `json:"kind"`
			PathItem
		}{KindPath, it})
	case WaitItem:
		return json.Marshal(struct {
			Kind SequenceKind `json:"kind"`
			WaitItem
		}{KindWait, it})
	case RotateItem:
		return json.Marshal(struct {
			Kind SequenceKind `json:"kind"`
			RotateItem
		}{KindRotate, it})
	case MacroItem:
		return json.Marshal(struct {
			Kind SequenceKind `json:"kind"`
			MacroItem
		}{KindMacro, it})
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownSequenceKind, item)
	}
}

func unmarshalItem(raw json.RawMessage) (SequenceItem, error) {
	var head struct {
		Kind SequenceKind `json:"kind"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}

	switch head.Kind {
	case KindPath:
		var it PathItem
		err := json.Unmarshal(raw, &it)
		return it, err
	case KindWait:
		var it WaitItem
		err := json.Unmarshal(raw, &it)
		return it, err
	case KindRotate:
		var it RotateItem
		err := json.Unmarshal(raw, &it)
		return it, err
	case KindMacro:
		var it MacroItem
		err := json.Unmarshal(raw, &it)
		return it, err
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSequenceKind, head.Kind)
	}
}
