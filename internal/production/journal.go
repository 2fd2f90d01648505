package production

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/comalice/coffeemachine"
)

// JournalFormat selects the journal encoding.
type JournalFormat string

const (
	JournalJSON JournalFormat = "json" // one JSON object per line
	JournalYAML JournalFormat = "yaml" // one YAML document per record
)

// journalEntry is the on-disk shape of one record.
type journalEntry struct {
	PublishedEvent `yaml:",inline"`
	From           coffeemachine.StateID `json:"from" yaml:"from"`
	To             coffeemachine.StateID `json:"to" yaml:"to"`
	Error          string                `json:"error,omitempty" yaml:"error,omitempty"`
}

// encoder is satisfied by both json.Encoder and yaml.Encoder.
type encoder interface {
	Encode(v any) error
}

// Journal is a write-only transcript of a session. It is never read back;
// the machine always starts from its configured stock.
type Journal struct {
	mu      sync.Mutex
	stamper *stamper
	enc     encoder
	closer  func() error
	err     error
}

// NewJournal writes records to w in the given format.
func NewJournal(w io.Writer, format JournalFormat, meta Metadata) (*Journal, error) {
	j := &Journal{stamper: newStamper(meta)}
	switch format {
	case JournalJSON, "":
		j.enc = json.NewEncoder(w)
		j.closer = func() error { return nil }
	case JournalYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		j.enc = enc
		j.closer = enc.Close
	default:
		return nil, fmt.Errorf("unknown journal format %q", format)
	}
	return j, nil
}

func (j *Journal) Observe(rec coffeemachine.Record) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.err != nil {
		return
	}

	entry := journalEntry{
		PublishedEvent: j.stamper.stamp(rec),
		From:           rec.Output.From,
		To:             rec.Output.To,
	}
	if rec.Output.Err != nil {
		entry.Error = rec.Output.Err.Error()
	}
	if err := j.enc.Encode(entry); err != nil {
		j.err = fmt.Errorf("journal encode: %w", err)
	}
}

// Err returns the first write error; later records are skipped after one.
func (j *Journal) Err() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.err
}

// Close flushes the encoder. It does not close the underlying writer.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.closer(); err != nil {
		return fmt.Errorf("journal close: %w", err)
	}
	return j.err
}
