// Package rating maintains a recipe's per-user rating collection and derives
// its summary statistics.
package rating

import (
	"errors"
	"math"
)

const (
	// MinValue and MaxValue bound an acceptable rating.
	MinValue = 1
	MaxValue = 5
)

// ErrInvalidValue reports a rating outside the integer range [MinValue, MaxValue].
var ErrInvalidValue = errors.New("rating must be an integer between 1 and 5")

// Entry is one user's rating of a recipe. A collection holds at most one
// entry per user.
type Entry struct {
	UserID string
	Value  int32
}

// Summary is the derived view of a rating collection for a given caller.
// User is 0 when the caller has not rated the recipe or is unknown.
type Summary struct {
	Average float64 `json:"averageRating"`
	Total   int     `json:"totalRatings"`
	User    int32   `json:"userRating"`
}

// ValidateValue checks that v is an acceptable rating value.
func ValidateValue(v int32) error {
	if v < MinValue || v > MaxValue {
		return ErrInvalidValue
	}
	return nil
}

// Apply upserts userID's rating into the collection and returns the result.
// If the user has rated before, the existing entry is replaced in place;
// otherwise a new entry is appended. Applying the same (user, value) twice is
// a no-op after the first call. The input slice is not modified.
func Apply(entries []Entry, userID string, value int32) ([]Entry, error) {
	if err := ValidateValue(value); err != nil {
		return nil, err
	}

	out := make([]Entry, len(entries))
	copy(out, entries)

	for i := range out {
		if out[i].UserID == userID {
			out[i].Value = value
			return out, nil
		}
	}

	return append(out, Entry{UserID: userID, Value: value}), nil
}

// Summarize recomputes the summary from the full collection. Recomputation
// over incremental bookkeeping keeps the average drift-free; collections are
// bounded by the number of distinct raters, so this is cheap.
func Summarize(entries []Entry, userID string) Summary {
	s := Summary{Total: len(entries)}
	if len(entries) == 0 {
		return s
	}

	var sum int64
	for _, e := range entries {
		sum += int64(e.Value)
		if e.UserID == userID {
			s.User = e.Value
		}
	}

	// Rounded to one decimal place for display stability.
	s.Average = math.Round(float64(sum)/float64(len(entries))*10) / 10
	return s
}
