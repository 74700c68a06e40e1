package restorer

import (
	"fmt"

	"restorebot/internal/constants"
)

// TypeTagResolver picks one value-generation tag for a field that was
// observed with one or more type tags across the sampled documents.
type TypeTagResolver struct{}

func NewTypeTagResolver() *TypeTagResolver {
	return &TypeTagResolver{}
}

// Resolve returns the tag to synthesize a value for. The tie-break for
// polymorphic fields is deterministic: the first non-null tag in the order
// the extractor recorded them wins, so repeated runs on the same bundle
// always synthesize the same shape. A set holding only null resolves to
// null. A resolved unknown tag is a per-field failure, never a
// whole-document abort.
func (r *TypeTagResolver) Resolve(tags []constants.TypeTag) (constants.TypeTag, error) {
	if len(tags) == 0 {
		return constants.TypeUnknown, fmt.Errorf("%w: empty tag set", ErrUnsupportedType)
	}

	resolved := constants.TypeNull
	for _, tag := range tags {
		if tag != constants.TypeNull {
			resolved = tag
			break
		}
	}

	if resolved == constants.TypeUnknown {
		return constants.TypeUnknown, fmt.Errorf("%w: %v", ErrUnsupportedType, tags)
	}
	return resolved, nil
}
