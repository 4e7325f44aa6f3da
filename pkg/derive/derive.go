// Package derive holds the pure computation shared by the write path, the
// notification text and the spreadsheet export: field normalization,
// submission validation, timestamp/duration parsing, restaurant code
// splitting and request-identity derivation. Everything here is stateless
// and safe for concurrent use.
package derive

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Submission is the normalized, validated outcome of a report submission.
type Submission struct {
	Manager    string
	Restaurant string
	Reason     string
	Amount     int64
	Start      string
	End        string
	Comment    string
}

// ValidationError marks caller mistakes (missing fields, bad amount) so the
// request layer can answer 400 instead of 500.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

var (
	errFieldsMissing = &ValidationError{Reason: "required fields missing"}
	errAmount        = &ValidationError{Reason: "amount must be positive"}
)

// Normalize trims the string and collapses internal whitespace runs to a
// single space. Empty input stays an empty string.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ValidateSubmission normalizes all submittable fields and validates the
// required ones. The amount is parsed as a decimal and rounded half away
// from zero to whole currency units ("1500.7" stores as 1501).
func ValidateSubmission(manager, restaurant, reason, amount, start, end, comment string) (Submission, error) {
	sub := Submission{
		Manager:    Normalize(manager),
		Restaurant: Normalize(restaurant),
		Reason:     Normalize(reason),
		Start:      Normalize(start),
		End:        Normalize(end),
		Comment:    Normalize(comment),
	}
	if sub.Manager == "" || sub.Restaurant == "" || sub.Reason == "" {
		return Submission{}, errFieldsMissing
	}
	d, err := decimal.NewFromString(Normalize(amount))
	if err != nil || !d.IsPositive() {
		return Submission{}, errAmount
	}
	r := d.Round(0)
	if !r.BigInt().IsInt64() { // IntPart would silently wrap
		return Submission{}, errAmount
	}
	sub.Amount = r.IntPart()
	if sub.Amount <= 0 { // e.g. "0.4" rounds down to zero
		return Submission{}, errAmount
	}
	return sub, nil
}

// timestampLayout is the only accepted submission format, e.g. "07.01.2026 10:00".
const timestampLayout = "02.01.2006 15:04"

// time.Parse alone would accept unpadded day/month, so the shape is checked
// first; time.Parse then rejects calendar-invalid values such as day 32.
var timestampRE = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4} \d{2}:\d{2}$`)

// ParseTimestamp parses the exact DD.MM.YYYY HH:MM pattern into a
// calendar-naive instant. ok is false for any other input, including the
// empty string and calendar-invalid dates.
func ParseTimestamp(text string) (time.Time, bool) {
	if !timestampRE.MatchString(text) {
		return time.Time{}, false
	}
	t, err := time.Parse(timestampLayout, text)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DurationHours returns end minus start in hours, rounded to 2 decimal
// places. ok is false when either side does not parse. Negative results are
// returned as-is: they flag a data-entry mistake worth surfacing, not an
// engine error.
func DurationHours(start, end string) (float64, bool) {
	s, okStart := ParseTimestamp(start)
	e, okEnd := ParseTimestamp(end)
	if !okStart || !okEnd {
		return 0, false
	}
	h := e.Sub(s).Hours()
	return math.Round(h*100) / 100, true
}

// restaurantDelim separates an optional numeric code from the restaurant
// name, e.g. "01 — Astana".
const restaurantDelim = " — "

// SplitRestaurant splits the restaurant field on the first occurrence of the
// delimiter. Without a delimiter the whole trimmed text is the name; later
// occurrences stay inside the name verbatim.
func SplitRestaurant(text string) (code, name string) {
	before, after, found := strings.Cut(text, restaurantDelim)
	if !found {
		return "", strings.TrimSpace(text)
	}
	return strings.TrimSpace(before), strings.TrimSpace(after)
}

// identitySep joins the fields fed into the identity digest. Stable forever:
// changing it would change every derived identity.
const identitySep = "|"

// RequestIdentity derives the idempotency key for a submission: a sha256 hex
// digest over the normalized field values. Identical normalized submissions
// always map to the same identity, which is what makes blind client retries
// and double-taps safe without the client tracking any state.
func RequestIdentity(s Submission) string {
	joined := strings.Join([]string{
		s.Manager,
		s.Restaurant,
		s.Reason,
		strconv.FormatInt(s.Amount, 10),
		s.Start,
		s.End,
		s.Comment,
	}, identitySep)
	sum := sha256.Sum256([]byte(joined))
	return hex.EncodeToString(sum[:])
}
