// Package runlog keeps an append-only CSV history of pipeline runs.
package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is one row in the run log.
type Entry struct {
	Timestamp time.Time
	RunID     string
	InputFile string
	Read      int
	Accepted  int
	Rejected  int
	Filtered  int
	Matched   int
}

// Header is the CSV header for run-log.csv.
const Header = "timestamp,run_id,input_file,read,accepted,rejected,filtered,matched"

const (
	numFields    = 8
	logDir       = "logs"
	logFile      = "logs/run-log.csv"
	colTimestamp = 0
	colRunID     = 1
	colInput     = 2
	colRead      = 3
	colAccepted  = 4
	colRejected  = 5
	colFiltered  = 6
	colMatched   = 7
)

// NewRunID returns a fresh unique run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colRunID] = e.RunID
	row[colInput] = e.InputFile
	row[colRead] = strconv.Itoa(e.Read)
	row[colAccepted] = strconv.Itoa(e.Accepted)
	row[colRejected] = strconv.Itoa(e.Rejected)
	row[colFiltered] = strconv.Itoa(e.Filtered)
	row[colMatched] = strconv.Itoa(e.Matched)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	counts := make([]int, 0, 5)
	for _, col := range []int{colRead, colAccepted, colRejected, colFiltered, colMatched} {
		n, err := strconv.Atoi(record[col])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing count %q: %w", record[col], err)
		}
		counts = append(counts, n)
	}

	return Entry{
		Timestamp: ts,
		RunID:     record[colRunID],
		InputFile: record[colInput],
		Read:      counts[0],
		Accepted:  counts[1],
		Rejected:  counts[2],
		Filtered:  counts[3],
		Matched:   counts[4],
	}, nil
}

// Append writes entries to <outDir>/logs/run-log.csv, creating the file
// and header if needed.
func Append(outDir string, entries []Entry) error {
	dir := filepath.Join(outDir, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(outDir, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <outDir>/logs/run-log.csv.
// Returns an empty slice if the file does not exist.
func Read(outDir string) ([]Entry, error) {
	path := filepath.Join(outDir, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
