package restic

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"math"

	"github.com/goccy/go-json"

	"github.com/bnema/snapdb/internal/domain"
)

// MessageTypeSummary marks the final statistics record of `restic backup --json`.
const MessageTypeSummary = "summary"

// maxRecordSize bounds a decoded JSON line; status lines listing current files can be longer.
const maxRecordSize = 1 << 20

// Record is one line of restic's JSON output. Only the fields snapdb reads are decoded.
type Record struct {
	MessageType         string  `json:"message_type"`
	SnapshotID          string  `json:"snapshot_id"`
	DataAdded           int64   `json:"data_added"`
	TotalBytesProcessed int64   `json:"total_bytes_processed"`
	TotalDuration       float64 `json:"total_duration"`
	FilesNew            int64   `json:"files_new"`
	FilesChanged        int64   `json:"files_changed"`
	FilesUnmodified     int64   `json:"files_unmodified"`
}

// Summary converts the record into a domain summary.
func (r Record) Summary() domain.SnapshotSummary {
	return domain.SnapshotSummary{
		SnapshotID:           r.SnapshotID,
		DataAdded:            r.DataAdded,
		TotalBytesProcessed:  r.TotalBytesProcessed,
		TotalDurationSeconds: int64(math.Round(r.TotalDuration)),
		FilesNew:             r.FilesNew,
		FilesChanged:         r.FilesChanged,
		FilesUnmodified:      r.FilesUnmodified,
	}
}

// Decoder reads restic's line-delimited JSON output. Lines that are not JSON objects
// are skipped, and so are lines longer than maxRecordSize so a huge status line cannot
// hide the summary that follows it.
type Decoder struct {
	r       *bufio.Reader
	skipped int
	err     error
}

// NewDecoder creates a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReaderSize(r, maxRecordSize)}
}

// Records lazily decodes the stream. It reads as it is iterated and can only be consumed once.
func (d *Decoder) Records() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		oversized := false
		for {
			line, err := d.r.ReadSlice('\n')
			switch {
			case errors.Is(err, bufio.ErrBufferFull):
				oversized = true
				continue
			case oversized:
				// tail of a line that did not fit the buffer
				oversized = false
				d.skipped++
			default:
				if rec, ok := decodeRecord(line); ok && !yield(rec) {
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					d.err = err
				}
				return
			}
		}
	}
}

// Err returns the first read error, if any.
func (d *Decoder) Err() error { return d.err }

// Skipped returns how many over-long lines were dropped.
func (d *Decoder) Skipped() int { return d.skipped }

func decodeRecord(line []byte) (Record, bool) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 || line[0] != '{' {
		return Record{}, false
	}
	var rec Record
	if err := json.Unmarshal(line, &rec); err != nil {
		return Record{}, false
	}
	return rec, true
}

// Records decodes r, ignoring read errors. Use a Decoder to observe them.
func Records(r io.Reader) iter.Seq[Record] {
	return NewDecoder(r).Records()
}

// LastOfType returns the last record with the given message type.
func LastOfType(records iter.Seq[Record], messageType string) (Record, bool) {
	var (
		last  Record
		found bool
	)
	for rec := range records {
		if rec.MessageType == messageType {
			last, found = rec, true
		}
	}
	return last, found
}

// ParseSummary extracts the backup summary from a restic JSON stream.
// A stream without a summary record yields the zero summary. The summary found before a
// read error is returned along with the error.
func ParseSummary(r io.Reader) (domain.SnapshotSummary, error) {
	dec := NewDecoder(r)
	rec, ok := LastOfType(dec.Records(), MessageTypeSummary)
	if err := dec.Err(); err != nil {
		return rec.Summary(), fmt.Errorf("read restic output: %w", err)
	}
	if !ok {
		return domain.SnapshotSummary{}, nil
	}
	return rec.Summary(), nil
}
