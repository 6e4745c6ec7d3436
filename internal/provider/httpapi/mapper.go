package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/lu-zhengda/mailpane/internal/domain"
)

// wireMessage is the tolerant JSON shape of one message. Older payloads use
// name/text/date where newer ones use from/body/createdAt; both are accepted.
// Every field stays raw so a single mistyped value cannot fail the record.
type wireMessage struct {
	ID        json.RawMessage `json:"id"`
	From      json.RawMessage `json:"from"`
	Name      json.RawMessage `json:"name"`
	Email     json.RawMessage `json:"email"`
	Subject   json.RawMessage `json:"subject"`
	Body      json.RawMessage `json:"body"`
	Text      json.RawMessage `json:"text"`
	Folder    json.RawMessage `json:"folder"`
	Category  json.RawMessage `json:"category"`
	Read      json.RawMessage `json:"read"`
	CreatedAt json.RawMessage `json:"createdAt"`
	Date      json.RawMessage `json:"date"`
	Labels    json.RawMessage `json:"labels"`
}

// decodeMessage maps one array element to a Message. A record that is not
// an object keeps only its positional ID.
func decodeMessage(raw json.RawMessage, idx int) domain.Message {
	var w wireMessage
	if err := json.Unmarshal(raw, &w); err != nil {
		log.Printf("[fetch] message at index %d is not an object, using defaults: %v", idx, err)
		w = wireMessage{}
	}
	return w.toDomain(idx)
}

// toDomain maps the wire record to a Message, substituting documented
// defaults for missing or malformed fields. idx is the record's position and
// stands in for a missing ID.
func (w *wireMessage) toDomain(idx int) domain.Message {
	m := domain.Message{ID: parseID(w.ID)}
	if m.ID == "" {
		m.ID = "idx-" + strconv.Itoa(idx)
		log.Printf("[fetch] message at index %d has no id, using %s", idx, m.ID)
	}

	str := func(field string, raw json.RawMessage) string {
		s, ok := rawString(raw)
		if !ok {
			log.Printf("[fetch] message %s has unreadable %s %s, using default", m.ID, field, string(raw))
		}
		return s
	}

	m.From = firstNonEmpty(str("from", w.From), str("name", w.Name))
	if m.From == "" {
		m.From = domain.UnknownSender
	}
	m.Email = strings.TrimSpace(str("email", w.Email))
	m.Subject = str("subject", w.Subject)
	m.Body = firstNonEmpty(str("body", w.Body), str("text", w.Text))
	m.Category = str("category", w.Category)

	read, ok := rawBool(w.Read)
	if !ok {
		log.Printf("[fetch] message %s has unreadable read %s, using default", m.ID, string(w.Read))
	}
	m.Read = read

	labels, ok := rawStrings(w.Labels)
	if !ok {
		log.Printf("[fetch] message %s has unreadable labels %s, using default", m.ID, string(w.Labels))
	}
	m.Labels = labels

	folderName := str("folder", w.Folder)
	folder, ok := domain.ParseFolder(folderName)
	if !ok {
		log.Printf("[fetch] message %s has unknown folder %q, treating as unfiled", m.ID, folderName)
	}
	m.Folder = folder

	ts := w.CreatedAt
	if isNull(ts) {
		ts = w.Date
	}
	created, err := parseTimestamp(ts)
	if err != nil {
		log.Printf("[fetch] message %s has unreadable timestamp %s: %v", m.ID, string(ts), err)
	}
	m.CreatedAt = created

	return m
}

// rawString decodes a JSON string. Absent and null are valid and yield "".
func rawString(raw json.RawMessage) (string, bool) {
	if isNull(raw) {
		return "", true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// rawBool decodes a JSON boolean. Absent and null are valid and yield false.
func rawBool(raw json.RawMessage) (bool, bool) {
	if isNull(raw) {
		return false, true
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, false
	}
	return b, true
}

// rawStrings decodes a JSON array of strings. Absent and null are valid and
// yield nil.
func rawStrings(raw json.RawMessage) ([]string, bool) {
	if isNull(raw) {
		return nil, true
	}
	var ss []string
	if err := json.Unmarshal(raw, &ss); err != nil {
		return nil, false
	}
	return ss, true
}

// parseID accepts a JSON string or number.
func parseID(raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// epochMillisThreshold separates epoch seconds from epoch milliseconds:
// second counts this large are thousands of years away.
const epochMillisThreshold = 100_000_000_000

// parseTimestamp accepts RFC 3339 / ISO-8601 text or an epoch number in
// seconds or milliseconds. Absent values return the zero time.
func parseTimestamp(raw json.RawMessage) (time.Time, error) {
	if isNull(raw) {
		return time.Time{}, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return time.Time{}, nil
		}
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", time.DateOnly} {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return fromEpoch(n), nil
		}
		return time.Time{}, fmt.Errorf("not an ISO-8601 timestamp: %q", s)
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return time.Time{}, err
	}
	i, err := n.Int64()
	if err != nil {
		f, ferr := n.Float64()
		if ferr != nil {
			return time.Time{}, ferr
		}
		i = int64(f)
	}
	return fromEpoch(i), nil
}

func fromEpoch(n int64) time.Time {
	if n >= epochMillisThreshold || n <= -epochMillisThreshold {
		return time.UnixMilli(n).UTC()
	}
	return time.Unix(n, 0).UTC()
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
