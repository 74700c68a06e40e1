package restorer

import (
	"crypto/rand"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"restorebot/internal/constants"
)

// ValueCoercer converts generated or sampled scalars into the driver-native
// representations required for lossless insertion. BSON scalar types such as
// ObjectId, Decimal128 and Timestamp have no plain JSON equivalent, so they
// must be built through the driver's primitive types.
type ValueCoercer struct {
	tsOrdinal uint32
}

func NewValueCoercer() *ValueCoercer {
	return &ValueCoercer{}
}

// Coerce converts rawValue into the native value for tag. A nil rawValue
// asks the coercer to mint a fresh value for tags that own their identity
// (objectId, timestamp, binary, regex). Failures are field-local: the caller
// substitutes null and downgrades the document to partial.
func (c *ValueCoercer) Coerce(tag constants.TypeTag, rawValue interface{}) (interface{}, error) {
	switch tag {
	case constants.TypeNull:
		return nil, nil

	case constants.TypeObjectID:
		// Always minted fresh. Reusing an identifier observed in metadata
		// would collide with any prior restoration of the same collection.
		return primitive.NewObjectID(), nil

	case constants.TypeDecimal128:
		// Decimal values are carried as decimal strings end-to-end. Going
		// through float64 would lose the precision the type exists for.
		s, ok := rawValue.(string)
		if !ok {
			return nil, fmt.Errorf("%w: decimal128 requires a decimal string, got %T", ErrCoercionFailure, rawValue)
		}
		dec, err := primitive.ParseDecimal128(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a valid decimal128: %v", ErrCoercionFailure, s, err)
		}
		return dec, nil

	case constants.TypeDate:
		switch v := rawValue.(type) {
		case nil:
			return primitive.NewDateTimeFromTime(recentTime()), nil
		case time.Time:
			return primitive.NewDateTimeFromTime(v), nil
		case string:
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not an RFC3339 date: %v", ErrCoercionFailure, v, err)
			}
			return primitive.NewDateTimeFromTime(t), nil
		default:
			return nil, fmt.Errorf("%w: cannot coerce %T to a date", ErrCoercionFailure, rawValue)
		}

	case constants.TypeTimestamp:
		// The ordinal component is monotonically non-decreasing across the
		// coercer's lifetime, paired with a current time value.
		return primitive.Timestamp{
			T: uint32(time.Now().Unix()),
			I: atomic.AddUint32(&c.tsOrdinal, 1),
		}, nil

	case constants.TypeBinary:
		data := make([]byte, gofakeit.Number(8, 24))
		if _, err := rand.Read(data); err != nil {
			return nil, fmt.Errorf("%w: failed to generate binary payload: %v", ErrCoercionFailure, err)
		}
		return primitive.Binary{Subtype: 0x00, Data: data}, nil

	case constants.TypeRegex:
		return primitive.Regex{Pattern: fmt.Sprintf("^%s-[0-9]{2,4}$", gofakeit.Word())}, nil

	case constants.TypeInt:
		switch v := rawValue.(type) {
		case int32:
			return v, nil
		case int:
			if v < math.MinInt32 || v > math.MaxInt32 {
				return nil, fmt.Errorf("%w: %d overflows int32", ErrCoercionFailure, v)
			}
			return int32(v), nil
		case int64:
			if v < math.MinInt32 || v > math.MaxInt32 {
				return nil, fmt.Errorf("%w: %d overflows int32", ErrCoercionFailure, v)
			}
			return int32(v), nil
		default:
			return nil, fmt.Errorf("%w: cannot coerce %T to int32", ErrCoercionFailure, rawValue)
		}

	case constants.TypeLong:
		switch v := rawValue.(type) {
		case int64:
			return v, nil
		case int:
			return int64(v), nil
		case int32:
			return int64(v), nil
		default:
			return nil, fmt.Errorf("%w: cannot coerce %T to int64", ErrCoercionFailure, rawValue)
		}

	case constants.TypeDouble:
		if v, ok := rawValue.(float64); ok {
			return v, nil
		}
		return nil, fmt.Errorf("%w: cannot coerce %T to float64", ErrCoercionFailure, rawValue)

	case constants.TypeBoolean:
		if v, ok := rawValue.(bool); ok {
			return v, nil
		}
		return nil, fmt.Errorf("%w: cannot coerce %T to bool", ErrCoercionFailure, rawValue)

	case constants.TypeString:
		if v, ok := rawValue.(string); ok {
			return v, nil
		}
		return nil, fmt.Errorf("%w: cannot coerce %T to string", ErrCoercionFailure, rawValue)

	default:
		return nil, fmt.Errorf("%w: no coercion rule for tag %q", ErrCoercionFailure, tag)
	}
}

// recentTime returns a time within a plausible recent range (the last year).
func recentTime() time.Time {
	now := time.Now()
	return gofakeit.DateRange(now.AddDate(-1, 0, 0), now)
}
