// Package normalize turns loosely formatted form values (currency, percentages,
// durations and dates) into canonical numbers and dates. Unparseable input
// degrades to a default and is logged; only ExpiryDate reports an error, when
// the computed date leaves the supported calendar.
package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const (
	// ISODateLayout is the calendar date layout used in API responses.
	ISODateLayout = "2006-01-02"
	// DisplayDateLayout renders dates for announcement feeds, e.g. "May 01, 2024".
	DisplayDateLayout = "Jan 02, 2006"

	// inputDateLayout accepts one or two digit months and days.
	inputDateLayout = "2006-1-2"
)

// strippedTokens are removed in order before a number is extracted. The
// removal is substring based, so "m" also disappears from unrelated words.
var strippedTokens = []string{",", "usd", "$", "tons/day", "m", "%", "years", "year"}

var (
	numberPattern  = regexp.MustCompile(`[\d.]+`)
	integerPattern = regexp.MustCompile(`\d+`)
)

// ErrExpiryOutOfRange reports a validity period that pushes the expiry past
// the last supported calendar day.
var ErrExpiryOutOfRange = errors.New("expiry date out of range")

var maxCalendarDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

const secondsPerDay = 24 * 60 * 60

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// SetLogger replaces the logger used to report degraded values.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

func log() *zap.Logger {
	return logger.Load()
}

// CleanNumericValue converts numbers and numeric-looking strings such as
// "$1,200 USD", "35%" or "100 tons/day" into a float64. Booleans count as 1
// and 0. The boolean result is false when the value holds no number.
func CleanNumericValue(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			log().Warn("could not convert json number", zap.String("value", v.String()), zap.Error(err))
			return 0, false
		}
		return f, true
	case string:
		return cleanNumericString(v)
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	default:
		log().Debug("unsupported numeric value type", zap.Any("value", value))
		return 0, false
	}
}

func cleanNumericString(raw string) (float64, bool) {
	cleaned := strings.TrimSpace(strings.ToLower(raw))
	for _, token := range strippedTokens {
		cleaned = strings.ReplaceAll(cleaned, token, "")
	}
	cleaned = strings.TrimSpace(cleaned)

	match := numberPattern.FindString(cleaned)
	if match == "" {
		log().Debug("no number found", zap.String("value", raw))
		return 0, false
	}
	result, err := strconv.ParseFloat(match, 64)
	if err != nil {
		log().Warn("could not convert number", zap.String("value", raw), zap.String("match", match), zap.Error(err))
		return 0, false
	}
	return result, true
}

// ParsePeriod converts a free-text validity period ("2 years", "18 months",
// "5") into a number of years. Input without any digits counts as one year; a
// number too large for an int yields +Inf.
func ParsePeriod(period string) float64 {
	lower := strings.ToLower(period)
	match := integerPattern.FindString(lower)
	if match == "" {
		return 1
	}
	n, err := strconv.Atoi(match)
	if errors.Is(err, strconv.ErrRange) {
		log().Warn("period out of range", zap.String("period", period))
		return math.Inf(1)
	}
	if err != nil {
		log().Warn("could not parse period", zap.String("period", period), zap.Error(err))
		return 1
	}
	if strings.Contains(lower, "month") {
		return float64(n) / 12
	}
	// "year", "yr", "y" and bare numbers are all read as years.
	return float64(n)
}

// ParseDate extracts a calendar date from a time value, an ISO-8601 timestamp
// ("2024-05-01T10:00:00Z") or a plain "2024-05-01" string. The result is
// midnight UTC of that date.
func ParseDate(value interface{}) (time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return dateOf(v), true
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, false
		}
		return dateOf(*v), true
	case *string:
		if v == nil {
			return time.Time{}, false
		}
		return parseDateString(*v)
	case []byte:
		return parseDateString(string(v))
	case string:
		return parseDateString(v)
	default:
		log().Error("unsupported date value", zap.Any("value", value))
		return time.Time{}, false
	}
}

func parseDateString(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	datePart := raw
	if idx := strings.Index(raw, "T"); idx >= 0 {
		datePart = raw[:idx]
	}
	parsed, err := time.Parse(inputDateLayout, datePart)
	if err != nil {
		log().Error("failed to parse date", zap.String("value", raw), zap.Error(err))
		return time.Time{}, false
	}
	return parsed, true
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ExpiryDate adds the validity period to the activation date. The day count
// is round(365 * years) with halves rounded to even, so leap days are not
// accounted for. Expiries after 9999-12-31 return ErrExpiryOutOfRange.
func ExpiryDate(active time.Time, period string) (time.Time, error) {
	days := math.RoundToEven(365 * ParsePeriod(period))
	remaining := float64((maxCalendarDate.Unix() - dateOf(active).Unix()) / secondsPerDay)
	if math.IsNaN(days) || days > remaining {
		return time.Time{}, fmt.Errorf("%w: %q from %s", ErrExpiryOutOfRange, period, active.Format(ISODateLayout))
	}
	return active.AddDate(0, 0, int(days)), nil
}

// FormatDisplayDate renders a date for announcement feeds.
func FormatDisplayDate(t time.Time) string {
	return t.Format(DisplayDateLayout)
}
