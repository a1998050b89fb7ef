package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"sync"

	"github.com/paisabot-dev/paisabot/internal/model"
)

// Compile-time check.
var _ Store = (*FileStore)(nil)

// FileStore keeps the full chat-to-record mapping in memory, mirrored to a
// single pretty-printed JSON document. Every mutating update rewrites the
// whole file synchronously. One mutex serializes all updates; the file is
// rewritten wholesale anyway, so per-chat locking would buy nothing here.
type FileStore struct {
	path    string
	mu      sync.Mutex
	records map[string]model.Record
}

// NewFileStore loads the mapping from path. A missing file yields an empty
// mapping; a malformed file is a startup error rather than a silent reset of
// real data.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, records: make(map[string]model.Record)}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading ledger file: %w", err)
	}
	if err := json.Unmarshal(data, &s.records); err != nil {
		return nil, fmt.Errorf("parsing ledger file %s: %w", path, err)
	}
	return s, nil
}

// GetOrCreate returns the chat's record, inserting a zeroed one in memory if
// the chat has not been seen before.
func (s *FileStore) GetOrCreate(_ context.Context, chatID int64) (model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := chatKey(chatID)
	rec, ok := s.records[key]
	if !ok {
		rec = model.NewRecord()
		s.records[key] = rec
	}
	return rec, nil
}

// Update mutates the chat's record and rewrites the backing file.
func (s *FileStore) Update(_ context.Context, chatID int64, mutate func(*model.Record)) (model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := chatKey(chatID)
	rec, ok := s.records[key]
	if !ok {
		rec = model.NewRecord()
	}
	mutate(&rec)
	s.records[key] = rec

	if err := s.save(); err != nil {
		return rec, err
	}
	return rec, nil
}

// save rewrites the JSON document unconditionally. Caller holds s.mu.
func (s *FileStore) save() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling ledger: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing ledger file: %w", err)
	}
	return nil
}

func chatKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}
