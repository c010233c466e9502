package budget

import (
	"fmt"
	"time"
)

// TimeFrame scopes queries to a year and month. Month may be All.
type TimeFrame struct {
	Year  int
	Month Month
}

// CurrentTimeFrame returns the frame for the wall-clock month.
func CurrentTimeFrame() TimeFrame {
	now := time.Now()
	return TimeFrame{Year: now.Year(), Month: Month(now.Month())}
}

// Contains reports whether a date falls inside the frame.
func (tf TimeFrame) Contains(date time.Time) bool {
	if date.Year() != tf.Year {
		return false
	}
	return tf.Month == All || Month(date.Month()) == tf.Month
}

// LikePattern renders the frame as a SQL LIKE pattern over ISO dates.
func (tf TimeFrame) LikePattern() string {
	if tf.Month == All {
		return fmt.Sprintf("%04d-%%", tf.Year)
	}
	return fmt.Sprintf("%04d-%02d-%%", tf.Year, int(tf.Month))
}

func (tf TimeFrame) String() string {
	return fmt.Sprintf("%s of %d", tf.Month, tf.Year)
}
