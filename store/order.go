package store

import (
	"bytes"
	"reflect"
	"strings"
	"time"

	"staysphere/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// typeRank follows MongoDB's cross-type sort order for the types JSON clients
// and seeded documents can produce.
func typeRank(v any) int {
	switch v.(type) {
	case nil, primitive.Null, primitive.Undefined:
		return 1
	case int, int32, int64, float32, float64:
		return 2
	case string, primitive.Symbol:
		return 3
	case map[string]any, bson.M, bson.D, models.Booking, models.Room:
		return 4
	case []any, primitive.A, []models.Booking:
		return 5
	case primitive.Binary:
		return 6
	case primitive.ObjectID:
		return 7
	case bool:
		return 8
	case time.Time, primitive.DateTime:
		return 9
	case primitive.Timestamp:
		return 10
	default:
		return 11
	}
}

func sameKind(a, b any) bool {
	return typeRank(a) == typeRank(b)
}

// equalValues is query equality: numbers compare by value across widths,
// everything else must be deeply equal.
func equalValues(a, b any) bool {
	if !sameKind(a, b) {
		return false
	}
	if typeRank(a) == 2 {
		return toFloat(a) == toFloat(b)
	}
	return reflect.DeepEqual(a, b)
}

// compareValues returns -1, 0 or 1. Values of the same rank that have no
// natural order (documents, arrays) compare equal.
func compareValues(a, b any) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		return cmpInt(ra, rb)
	}

	switch ra {
	case 2:
		return cmpFloat(toFloat(a), toFloat(b))
	case 3:
		return strings.Compare(toString(a), toString(b))
	case 7:
		x, y := a.(primitive.ObjectID), b.(primitive.ObjectID)
		return bytes.Compare(x[:], y[:])
	case 8:
		x, y := a.(bool), b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	case 9:
		x, y := toTime(a), toTime(b)
		switch {
		case x.Before(y):
			return -1
		case x.After(y):
			return 1
		}
	}
	return 0
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case primitive.Symbol:
		return string(s)
	}
	return ""
}

func toTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case primitive.DateTime:
		return t.Time()
	}
	return time.Time{}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
