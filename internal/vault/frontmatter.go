package vault

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain/srs"
)

const (
	frontMatterDelimiter = "---"

	keyDue      = "sr-due"
	keyInterval = "sr-interval"
	keyEase     = "sr-ease"
)

// splitFrontMatter separates a leading YAML block from the body. bodyLine is
// the zero-based line number where the body starts.
func splitFrontMatter(content string) (fm, body string, bodyLine int, ok bool) {
	if !strings.HasPrefix(content, frontMatterDelimiter+"\n") {
		return "", content, 0, false
	}
	rest := content[len(frontMatterDelimiter)+1:]
	offset := 0
	line := 1
	for offset <= len(rest) {
		end := strings.IndexByte(rest[offset:], '\n')
		var current string
		if end < 0 {
			current = rest[offset:]
		} else {
			current = rest[offset : offset+end]
		}
		if t := strings.TrimRight(current, " \t"); t == frontMatterDelimiter || t == "..." {
			fm = rest[:offset]
			if end < 0 {
				return fm, "", line + 1, true
			}
			return fm, rest[offset+end+1:], line + 1, true
		}
		if end < 0 {
			break
		}
		offset += end + 1
		line++
	}
	return "", content, 0, false
}

// parseFrontMatterNode decodes front-matter into its top-level mapping node.
// Empty front-matter yields an empty mapping.
func parseFrontMatterNode(fm string) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(fm), &doc); err != nil {
		return nil, fmt.Errorf("%w: front-matter: %v", domain.ErrInvalidFormat, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: front-matter is not a mapping", domain.ErrInvalidFormat)
	}
	return root, nil
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func setMappingScalar(m *yaml.Node, key, value string) {
	if v := mappingValue(m, key); v != nil {
		v.Kind = yaml.ScalarNode
		v.Tag = ""
		v.Style = 0
		v.Value = value
		v.Content = nil
		return
	}
	m.Content = append(m.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value},
	)
}

// frontMatterTags reads the tags or tag key, given as a list or as a comma
// or space separated string. Tags are returned with a leading '#'.
func frontMatterTags(m *yaml.Node) []string {
	var raw []string
	for _, key := range []string{"tags", "tag"} {
		v := mappingValue(m, key)
		if v == nil {
			continue
		}
		switch v.Kind {
		case yaml.SequenceNode:
			for _, item := range v.Content {
				raw = append(raw, item.Value)
			}
		case yaml.ScalarNode:
			raw = append(raw, strings.FieldsFunc(v.Value, func(r rune) bool {
				return r == ',' || r == ' '
			})...)
		}
	}

	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if !strings.HasPrefix(t, "#") {
			t = "#" + t
		}
		tags = append(tags, t)
	}
	return tags
}

// frontMatterSchedule reads a note schedule. All three keys must be present
// and valid; otherwise the note is unscheduled.
func frontMatterSchedule(m *yaml.Node) *domain.ScheduleRecord {
	due, ivl, ease := mappingValue(m, keyDue), mappingValue(m, keyInterval), mappingValue(m, keyEase)
	if due == nil || ivl == nil || ease == nil {
		return nil
	}
	dueDate, err := domain.ParseDate(strings.TrimSpace(due.Value), time.Local)
	if err != nil {
		return nil
	}
	interval, err := strconv.ParseFloat(strings.TrimSpace(ivl.Value), 64)
	if err != nil {
		return nil
	}
	e, err := strconv.ParseFloat(strings.TrimSpace(ease.Value), 64)
	if err != nil {
		return nil
	}
	rec, err := domain.NewScheduleRecord(dueDate, interval, e, 0)
	if err != nil {
		return nil
	}
	return &rec
}

// withNoteSchedule returns content with the schedule written into its
// front-matter, creating the block if the note has none.
func withNoteSchedule(content string, rec domain.ScheduleRecord) (string, error) {
	fm, body, _, ok := splitFrontMatter(content)
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if ok {
		parsed, err := parseFrontMatterNode(fm)
		if err != nil {
			return "", err
		}
		m = parsed
	}

	setMappingScalar(m, keyDue, rec.FormatDueDate())
	setMappingScalar(m, keyInterval, srs.FormatNumber(rec.Interval))
	setMappingScalar(m, keyEase, srs.FormatNumber(rec.Ease))

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{m}}
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("failed to encode front-matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode front-matter: %w", err)
	}

	return frontMatterDelimiter + "\n" + buf.String() + frontMatterDelimiter + "\n" + body, nil
}
