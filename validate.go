package a1c

import (
	"runtime"

	"go.uber.org/multierr"
)

// Validate walks item's subtree and reports every ItemInvalid it finds, as
// a combined error, instead of stopping at the first one the way Encode
// itself must (spec.md §7: "the first failure aborts the whole
// operation"). Validate is a diagnostic helper for catching a
// half-built tree before handing it to Encode, not part of the hot path.
func Validate(item *Item) error {
	var errs error
	validateInto(item, &errs)
	return errs
}

func validateInto(item *Item, errs *error) {
	if item == nil {
		return
	}
	switch item.Type {
	case ItemInvalid:
		_, file, line, _ := runtime.Caller(0)
		*errs = multierr.Append(*errs, &Error{Type: ErrInvalidItemType, Item: item, File: file, Line: line})
		return
	case ItemArray:
		for i := range item.Array.Items {
			validateInto(&item.Array.Items[i], errs)
		}
	case ItemMap:
		for i := range item.Map.Keys {
			validateInto(&item.Map.Keys[i], errs)
			validateInto(&item.Map.Values[i], errs)
		}
	case ItemTag:
		validateInto(item.Tag.Item, errs)
	}
}
