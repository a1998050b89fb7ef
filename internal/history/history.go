// Package history keeps an append-only CSV audit of ledger mutations.
package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paisabot-dev/paisabot/internal/model"
)

// Entry is one row in the history log: a mutating intent and the ledger
// totals after it was applied.
type Entry struct {
	Timestamp time.Time
	ChatID    int64
	Intent    model.Intent
	Amount    decimal.Decimal
	Record    model.Record
}

// Header is the CSV header for the history log.
const Header = "timestamp,chat_id,intent,amount,budget,spent,saved,invested,income"

const (
	numFields   = 9
	colTime     = 0
	colChatID   = 1
	colIntent   = 2
	colAmount   = 3
	colBudget   = 4
	colSpent    = 5
	colSaved    = 6
	colInvested = 7
	colIncome   = 8
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTime] = e.Timestamp.Format(time.RFC3339)
	row[colChatID] = strconv.FormatInt(e.ChatID, 10)
	row[colIntent] = string(e.Intent)
	row[colAmount] = e.Amount.String()
	row[colBudget] = e.Record.Budget.String()
	row[colSpent] = e.Record.Spent.String()
	row[colSaved] = e.Record.Saved.String()
	row[colInvested] = e.Record.Invested.String()
	row[colIncome] = e.Record.Income.String()
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTime])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTime], err)
	}
	chatID, err := strconv.ParseInt(record[colChatID], 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("parsing chat_id %q: %w", record[colChatID], err)
	}

	e := Entry{
		Timestamp: ts,
		ChatID:    chatID,
		Intent:    model.Intent(record[colIntent]),
	}
	for _, f := range []struct {
		col int
		dst *decimal.Decimal
	}{
		{colAmount, &e.Amount},
		{colBudget, &e.Record.Budget},
		{colSpent, &e.Record.Spent},
		{colSaved, &e.Record.Saved},
		{colInvested, &e.Record.Invested},
		{colIncome, &e.Record.Income},
	} {
		d, err := decimal.NewFromString(record[f.col])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing column %d %q: %w", f.col, record[f.col], err)
		}
		*f.dst = d
	}
	return e, nil
}

// Log appends entries to a CSV file, creating it with a header on first use.
type Log struct {
	path string
	mu   sync.Mutex
}

// NewLog creates a Log writing to path.
func NewLog(path string) *Log {
	return &Log{path: path}
}

// Append writes one entry to the log.
func (l *Log) Append(e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	needsHeader := false
	if _, err := os.Stat(l.path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening history log: %w", err)
	}
	defer f.Close()

	if needsHeader {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(MarshalEntry(e)); err != nil {
		return fmt.Errorf("writing entry: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// Read parses all entries from a history log reader.
func Read(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading history CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records {
		if i == 0 && strings.Join(rec, ",") == Header {
			continue
		}
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
