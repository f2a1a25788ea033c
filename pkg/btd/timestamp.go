package btd

import "time"

// TimestampFormat is the naive local timestamp format used by the ZTM feed.
// Values carry no timezone and are compared literally.
const TimestampFormat = "2006-01-02 15:04:05"

func ParseTimestamp(value string) (time.Time, error) {
	return time.Parse(TimestampFormat, value)
}

// HoursBetween returns the fraction of an hour that passed from the first to
// the second timestamp. Negative when the second is earlier.
func HoursBetween(from string, to string) (float64, error) {
	fromTime, err := ParseTimestamp(from)
	if err != nil {
		return 0, err
	}

	toTime, err := ParseTimestamp(to)
	if err != nil {
		return 0, err
	}

	return toTime.Sub(fromTime).Hours(), nil
}
