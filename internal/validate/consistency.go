package validate

import (
	"errors"
	"fmt"

	"github.com/pedro-visualizer/backend/internal/models"
)

var (
	ErrDanglingLine = errors.New("sequence references unknown line")
	ErrDuplicateID  = errors.New("duplicate id")
)

// CheckConsistency verifies that ids are unique and that every path item,
// including those inside macro items, points at an existing line. Inside a
// macro item, line ids also resolve under the enclosing macro ids and wait,
// rotate and macro ids only need to be unique within that macro. All problems
// are reported together.
func CheckConsistency(data models.PathData) error {
	var errs []error

	lines := make(map[string]struct{}, len(data.Lines))
	for _, l := range data.Lines {
		if _, dup := lines[l.ID]; dup {
			errs = append(errs, fmt.Errorf("line %q: %w", l.ID, ErrDuplicateID))
		}
		lines[l.ID] = struct{}{}
	}

	shapes := make(map[string]struct{}, len(data.Shapes))
	for _, s := range data.Shapes {
		if _, dup := shapes[s.ID]; dup {
			errs = append(errs, fmt.Errorf("shape %q: %w", s.ID, ErrDuplicateID))
		}
		shapes[s.ID] = struct{}{}
	}

	checkSequence(data.Sequence, nil, lines, make(map[string]struct{}), &errs)

	return errors.Join(errs...)
}

func checkSequence(seq models.Sequence, scopes []string, lines, items map[string]struct{}, errs *[]error) {
	hasLine := func(id string) bool {
		_, ok := lines[id]
		return ok
	}
	for _, item := range seq {
		switch it := item.(type) {
		case models.PathItem:
			if _, ok := models.ResolveScopedID(it.LineID, scopes, hasLine); !ok {
				*errs = append(*errs, fmt.Errorf("line %q: %w", it.LineID, ErrDanglingLine))
			}
		case models.WaitItem, models.RotateItem:
			noteItem(string(it.Kind()), it.ItemID(), items, errs)
		case models.MacroItem:
			noteItem(string(it.Kind()), it.ID, items, errs)
			inner := append(scopes[:len(scopes):len(scopes)], it.ID)
			checkSequence(it.InternalSequence, inner, lines, make(map[string]struct{}), errs)
		}
	}
}

func noteItem(kind, id string, items map[string]struct{}, errs *[]error) {
	if _, dup := items[id]; dup {
		*errs = append(*errs, fmt.Errorf("%s item %q: %w", kind, id, ErrDuplicateID))
	}
	items[id] = struct{}{}
}
