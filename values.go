package ofxtree

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/rockstardevs/decimal"
)

// ErrInvalidDate is returned for strings that are not OFX datetimes.
var ErrInvalidDate = errors.New("error - date string can not be parsed")

// datePattern matches YYYYMMDD[HHMM[SS][.XXX]][[+-]h[.mm][:TZ]].
var datePattern = regexp.MustCompile(
	`^(\d{4})(\d{2})(\d{2})(?:(\d{2})(\d{2})(\d{2})?(?:\.(\d{3}))?)?(?:\[([+-]?)(\d{1,2})(?:\.(\d{2}))?(?::([^\]]*))?\])?$`)

// String returns the leaf text.
func (l Leaf) String() string {
	return string(l)
}

// Decimal parses the leaf as a decimal amount such as TRNAMT or BALAMT.
func (l Leaf) Decimal() (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(string(l)))
}

// Time parses the leaf as an OFX datetime. See ParseDate.
func (l Leaf) Time(loc *time.Location) (time.Time, error) {
	return ParseDate(string(l), loc)
}

// ParseDate parses an OFX datetime. Values without a bracketed offset are read in loc,
// or UTC when loc is nil. The offset is in hours with optional minutes after a dot.
func ParseDate(d string, loc *time.Location) (time.Time, error) {
	parts := datePattern.FindStringSubmatch(strings.TrimSpace(d))
	if parts == nil {
		return time.Time{}, ErrInvalidDate
	}
	glog.V(3).Infof("date parts: %q", parts)
	n := func(i int) int {
		if parts[i] == "" {
			return 0
		}
		v, _ := strconv.Atoi(parts[i])
		return v
	}
	if loc == nil {
		loc = time.UTC
	}
	if parts[9] != "" {
		offset := n(9)*60*60 + n(10)*60
		if parts[8] == "-" {
			offset = -offset
		}
		loc = time.FixedZone(parts[11], offset)
	}
	month, day := n(2), n(3)
	if month < 1 || month > 12 || day < 1 || day > 31 || n(4) > 23 || n(5) > 59 || n(6) > 60 {
		return time.Time{}, ErrInvalidDate
	}
	return time.Date(n(1), time.Month(month), day, n(4), n(5), n(6), n(7)*int(time.Millisecond), loc), nil
}
