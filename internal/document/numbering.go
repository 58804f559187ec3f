package document

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var seqPadRe = regexp.MustCompile(`\{SEQ(\d+)\}`)

const (
	DefaultInvoiceNumberTemplate   = "INV-{YYYY}-{SEQ3}"
	DefaultQuotationNumberTemplate = "QTN-{YYYY}-{SEQ3}"
)

// FormatNumber renders a document number from template, issue time and a
// per-year sequence. Supported tokens: {YYYY} {YY} {MM} {DD} {SEQ} {SEQn}.
func FormatNumber(template string, issuedAt time.Time, seq int64) (string, error) {
	if template == "" {
		return "", fmt.Errorf("document number template is empty")
	}
	if seq <= 0 {
		return "", fmt.Errorf("invalid document sequence: %d", seq)
	}

	out := template
	out = strings.ReplaceAll(out, "{YYYY}", issuedAt.Format("2006"))
	out = strings.ReplaceAll(out, "{YY}", issuedAt.Format("06"))
	out = strings.ReplaceAll(out, "{MM}", issuedAt.Format("01"))
	out = strings.ReplaceAll(out, "{DD}", issuedAt.Format("02"))
	out = strings.ReplaceAll(out, "{SEQ}", strconv.FormatInt(seq, 10))
	out = seqPadRe.ReplaceAllStringFunc(out, func(m string) string {
		match := seqPadRe.FindStringSubmatch(m)
		width, err := strconv.Atoi(match[1])
		if err != nil || width <= 0 {
			return m
		}
		return fmt.Sprintf("%0*d", width, seq)
	})

	if strings.ContainsAny(out, "{}") {
		return "", fmt.Errorf("unresolved token in document number format: %s", out)
	}
	return out, nil
}

// YearBounds returns the [start, end) range of the calendar year of t in UTC.
func YearBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.UTC().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

// ParseIssueDate accepts "2006-01-02" or RFC3339 and returns the zero time
// for anything else.
func ParseIssueDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC()
	}
	return time.Time{}
}

const IssueDateLayout = "2006-01-02"

var numberTokenRe = regexp.MustCompile(`\{(YYYY|YY|MM|DD|SEQ\d*)\}`)

// sequencePattern matches numbers rendered from template in the year of
// issuedAt and captures the first sequence token. Month and day match any
// value since the sequence runs for the whole year.
func sequencePattern(template string, issuedAt time.Time) (*regexp.Regexp, error) {
	tokens := numberTokenRe.FindAllStringSubmatchIndex(template, -1)

	var b strings.Builder
	b.WriteString("^")
	last := 0
	captured := false
	for _, loc := range tokens {
		b.WriteString(regexp.QuoteMeta(template[last:loc[0]]))
		switch name := template[loc[2]:loc[3]]; {
		case name == "YYYY":
			b.WriteString(issuedAt.Format("2006"))
		case name == "YY":
			b.WriteString(issuedAt.Format("06"))
		case name == "MM", name == "DD":
			b.WriteString(`\d{2}`)
		case !captured:
			b.WriteString(`(\d+)`)
			captured = true
		default:
			b.WriteString(`\d+`)
		}
		last = loc[1]
	}
	if !captured {
		return nil, fmt.Errorf("document number template has no sequence token: %s", template)
	}
	b.WriteString(regexp.QuoteMeta(template[last:]))
	b.WriteString("$")
	return regexp.Compile(b.String())
}

func sequenceIn(re *regexp.Regexp, number string) (int64, bool) {
	match := re.FindStringSubmatch(strings.TrimSpace(number))
	if match == nil {
		return 0, false
	}
	seq, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return seq, true
}

// NextNumber renders the number following the highest sequence already
// issued in the year of issuedAt. issued receives the year as an issue date
// range and returns the numbers stored in it.
func NextNumber(template string, issuedAt time.Time, issued func(from, to string) ([]string, error)) (string, error) {
	re, err := sequencePattern(template, issuedAt)
	if err != nil {
		return "", err
	}

	start, end := YearBounds(issuedAt)
	numbers, err := issued(start.Format(IssueDateLayout), end.Format(IssueDateLayout))
	if err != nil {
		return "", err
	}

	var highest int64
	for _, number := range numbers {
		if seq, ok := sequenceIn(re, number); ok && seq > highest {
			highest = seq
		}
	}
	return FormatNumber(template, issuedAt, highest+1)
}
