package srs

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
)

const (
	commentPrefix = "<!--SR:"
	commentSuffix = "-->"
)

var (
	commentPattern = regexp.MustCompile(`<!--SR:(.*?)-->`)
	entryPattern   = regexp.MustCompile(`!(\d{4}-\d{2}-\d{2}),(\d+(?:\.\d+)?),(\d+(?:\.\d+)?)`)
)

// ParseCardSchedules reads the schedules of a question's cards from an inline
// comment such as <!--SR:!2023-09-02,4,270!2023-09-05,3,250-->. The bare
// entry run without the comment markers is accepted too.
//
// Entries carrying the 2000-01-01 sentinel date belong to cards that were
// never reviewed and come back as nil. Anything malformed yields nil: such a
// question is treated as new rather than rejected.
func ParseCardSchedules(comment string) []*domain.ScheduleRecord {
	payload := strings.TrimSpace(comment)
	if m := commentPattern.FindStringSubmatch(payload); m != nil {
		payload = strings.TrimSpace(m[1])
	}
	if payload == "" {
		return nil
	}

	matches := entryPattern.FindAllStringSubmatchIndex(payload, -1)
	if len(matches) == 0 {
		return nil
	}

	records := make([]*domain.ScheduleRecord, 0, len(matches))
	pos := 0
	for _, m := range matches {
		// Entries must be contiguous.
		if m[0] != pos {
			return nil
		}
		pos = m[1]

		date := payload[m[2]:m[3]]
		if date == domain.DummyDueDate {
			records = append(records, nil)
			continue
		}

		rec, ok := parseEntry(date, payload[m[4]:m[5]], payload[m[6]:m[7]])
		if !ok {
			return nil
		}
		records = append(records, rec)
	}
	if pos != len(payload) {
		return nil
	}

	return records
}

func parseEntry(date, interval, ease string) (*domain.ScheduleRecord, bool) {
	due, err := domain.ParseDate(date, time.Local)
	if err != nil {
		return nil, false
	}
	ivl, err := strconv.ParseFloat(interval, 64)
	if err != nil {
		return nil, false
	}
	e, err := strconv.ParseFloat(ease, 64)
	if err != nil {
		return nil, false
	}
	rec, err := domain.NewScheduleRecord(due, ivl, e, 0)
	if err != nil {
		return nil, false
	}
	return &rec, true
}

// FormatCardSchedules renders schedules as an inline comment. Nil entries are
// written with the sentinel date, interval 1 and baseEase so sibling
// positions are preserved. An empty slice renders as the empty string.
func FormatCardSchedules(records []*domain.ScheduleRecord, baseEase float64) string {
	if len(records) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(commentPrefix)
	for _, rec := range records {
		b.WriteByte('!')
		if rec == nil {
			b.WriteString(domain.DummyDueDate)
			b.WriteString(",1,")
			b.WriteString(FormatNumber(baseEase))
			continue
		}
		b.WriteString(rec.FormatDueDate())
		b.WriteByte(',')
		b.WriteString(FormatNumber(rec.Interval))
		b.WriteByte(',')
		b.WriteString(FormatNumber(rec.Ease))
	}
	b.WriteString(commentSuffix)
	return b.String()
}

// FormatNumber renders an interval or ease in its shortest decimal form.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
