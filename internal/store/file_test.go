package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paisabot-dev/paisabot/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestFileStore_GetOrCreate_Zeroed(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "finance.json"))
	require.NoError(t, err)

	rec, err := s.GetOrCreate(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, rec.Budget.IsZero())
	assert.True(t, rec.Spent.IsZero())
	assert.True(t, rec.Saved.IsZero())
	assert.True(t, rec.Invested.IsZero())
	assert.True(t, rec.Income.IsZero())
}

func TestFileStore_Update_Cumulative(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "finance.json"))
	require.NoError(t, err)
	ctx := context.Background()

	for _, amt := range []string{"100", "250.50", "49.50"} {
		_, err := s.Update(ctx, 7, func(r *model.Record) {
			r.Spent = r.Spent.Add(dec(amt))
		})
		require.NoError(t, err)
	}

	rec, err := s.GetOrCreate(ctx, 7)
	require.NoError(t, err)
	assert.True(t, rec.Spent.Equal(dec("400")), "spent = sum of all amounts, got %s", rec.Spent)
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finance.json")
	ctx := context.Background()

	s, err := NewFileStore(path)
	require.NoError(t, err)
	want, err := s.Update(ctx, 99, func(r *model.Record) {
		r.Budget = dec("5000")
		r.Spent = dec("1200")
		r.Saved = dec("300")
		r.Invested = dec("700")
		r.Income = dec("9000")
	})
	require.NoError(t, err)

	reloaded, err := NewFileStore(path)
	require.NoError(t, err)
	got, err := reloaded.GetOrCreate(ctx, 99)
	require.NoError(t, err)

	assert.True(t, got.Budget.Equal(want.Budget))
	assert.True(t, got.Spent.Equal(want.Spent))
	assert.True(t, got.Saved.Equal(want.Saved))
	assert.True(t, got.Invested.Equal(want.Invested))
	assert.True(t, got.Income.Equal(want.Income))
}

func TestFileStore_CreateNotPersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finance.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	_, err = s.GetOrCreate(context.Background(), 1)
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "read-only access must not create the file")
}

func TestFileStore_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finance.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileStore(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing ledger file")
}

func TestFileStore_DistinctChats(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "finance.json"))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Update(ctx, 1, func(r *model.Record) { r.Spent = dec("10") })
	require.NoError(t, err)
	_, err = s.Update(ctx, 2, func(r *model.Record) { r.Spent = dec("20") })
	require.NoError(t, err)

	a, _ := s.GetOrCreate(ctx, 1)
	b, _ := s.GetOrCreate(ctx, 2)
	assert.True(t, a.Spent.Equal(dec("10")))
	assert.True(t, b.Spent.Equal(dec("20")))
}
