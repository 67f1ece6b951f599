package journal

import (
	"bufio"
	"bytes"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/murkotick/product-catalog-manager/internal/app/product/domain"
)

const maxEntryLine = 1 << 20

// Entry is the persisted form of a domain event.
type Entry struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	AggregateID string    `json:"aggregate_id"`
	PayloadJSON string    `json:"payload"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// Journal is an append-only record of catalog changes. A journal opened on a
// file appends each entry as one JSON line, so the history outlives the process.
type Journal struct {
	path    string
	entries []Entry
}

// New returns a journal that keeps entries in memory only.
func New() *Journal {
	return &Journal{}
}

// Open returns a journal backed by the JSON-lines file at path. The file is
// created on the first Record.
func Open(path string) *Journal {
	return &Journal{path: path}
}

// Path is the backing file, or "" for an in-memory journal.
func (j *Journal) Path() string {
	return j.path
}

// Record appends one entry per event, in order, and returns the new entries.
// Nothing is appended when any payload fails to marshal or the file write fails.
func (j *Journal) Record(events []domain.DomainEvent, now time.Time) ([]Entry, error) {
	added := make([]Entry, 0, len(events))
	for _, ev := range events {
		payload, err := MarshalEventPayload(ev)
		if err != nil {
			return nil, err
		}
		added = append(added, Entry{
			EventID:     uuid.New().String(),
			EventType:   ev.EventType(),
			AggregateID: ev.AggregateID(),
			PayloadJSON: payload,
			RecordedAt:  now,
		})
	}
	if err := j.appendLines(added); err != nil {
		return nil, err
	}
	j.entries = append(j.entries, added...)
	return added, nil
}

// Entries returns a copy of the entries recorded by this process.
func (j *Journal) Entries() []Entry {
	return append([]Entry(nil), j.entries...)
}

// History returns every entry, oldest first. A file-backed journal reads the
// file, so entries of earlier processes are included; a missing file means an
// empty history.
func (j *Journal) History() ([]Entry, error) {
	if j.path == "" {
		return j.Entries(), nil
	}

	f, err := os.Open(j.path)
	if errors.Is(err, os.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, domain.NewIOError("open", j.path, err)
	}
	defer f.Close()

	out := make([]Entry, 0)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 4096), maxEntryLine)
	line := 0
	for sc.Scan() {
		line++
		if len(bytes.TrimSpace(sc.Bytes())) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return nil, errors.Wrapf(domain.ErrFormat, "journal line %d: %v", line, err)
		}
		out = append(out, e)
	}
	if err := sc.Err(); err != nil {
		return nil, domain.NewIOError("read", j.path, err)
	}
	return out, nil
}

// Len returns the number of entries recorded by this process.
func (j *Journal) Len() int {
	return len(j.entries)
}

func (j *Journal) appendLines(entries []Entry) (err error) {
	if j.path == "" || len(entries) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, e := range entries {
		b, err := json.Marshal(e)
		if err != nil {
			return errors.Wrapf(err, "marshal journal entry %s", e.EventType)
		}
		buf.Write(b)
		buf.WriteByte('\n')
	}

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return domain.NewIOError("open", j.path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = domain.NewIOError("close", j.path, cerr)
		}
	}()
	if _, err := f.Write(buf.Bytes()); err != nil {
		return domain.NewIOError("write", j.path, err)
	}
	return nil
}
