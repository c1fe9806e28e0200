package legacy

import "time"

// DateLayout renders dates the way the legacy application displayed them.
const DateLayout = "02/01/2006"

// UnpackDate decodes a YYYYMMDD packed integer into a UTC calendar date.
// Components that do not form a real date fail with an invalid-date error.
func UnpackDate(packed int32) (time.Time, error) {
	p := int(packed)
	year := p / 10000
	month := (p - 10000*year) / 100
	day := p - 10000*year - 100*month

	if year < 1 || year > 9999 || month < 1 || month > 12 || day < 1 || day > daysInMonth(year, month) {
		return time.Time{}, newInvalidDateError(packed, year, month, day)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

func daysInMonth(year, month int) int {
	switch month {
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
