package index

import "time"

// DegenIndex is a Fear & Greed style composite reading of how degenerate
// the crowd currently is, on a 0-100 scale
type DegenIndex struct {
	Timestamp  time.Time `db:"timestamp" json:"timestamp"`
	Value      int       `db:"value" json:"value"` // 0-100
	Rating     Rating    `db:"rating" json:"rating"`
	SampleSize int       `db:"sample_size" json:"sample_size"` // comments behind the reading
}

// Rating is the banded label for an index value
type Rating string

const (
	RatingCalm     Rating = "calm"      // 0-24
	RatingElevated Rating = "elevated"  // 25-49
	RatingDegen    Rating = "degen"     // 50-74
	RatingMaxDegen Rating = "max_degen" // 75-100
)

// RatingFor maps an index value to its band
func RatingFor(value int) Rating {
	switch {
	case value < 25:
		return RatingCalm
	case value < 50:
		return RatingElevated
	case value < 75:
		return RatingDegen
	default:
		return RatingMaxDegen
	}
}

// Valid checks if the rating is a known value
func (r Rating) Valid() bool {
	switch r {
	case RatingCalm, RatingElevated, RatingDegen, RatingMaxDegen:
		return true
	}
	return false
}

// String returns string representation
func (r Rating) String() string {
	return string(r)
}
