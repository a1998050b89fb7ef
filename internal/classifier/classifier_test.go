package classifier

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paisabot-dev/paisabot/internal/model"
)

func TestClassify_CoreIntents(t *testing.T) {
	c := New()

	cases := []struct {
		text string
		want model.Intent
	}{
		{"set my monthly budget 5000", model.IntentBudgetSet},
		{"i spent 200 on groceries", model.IntentExpenseAdd},
		{"add expense 150", model.IntentExpenseAdd},
		{"i received 1000", model.IntentIncomeAdd},
		{"my friend gave me 500", model.IntentIncomeAdd},
		{"i saved 300", model.IntentSavingsAdd},
		{"i invested 2000", model.IntentInvestmentAdd},
		{"show my summary", model.IntentSummaryShow},
		{"show my weekly summary", model.IntentSummaryWeek},
		{"show my monthly summary", model.IntentSummaryMonth},
		{"check aapl price", model.IntentStockCheck},
		{"how much money left", model.IntentBalanceCheck},
		{"give me spending tips", model.IntentTipsGive},
		{"what can you do", model.IntentHelpShow},
	}
	for _, tc := range cases {
		got := c.Classify(tc.text)
		assert.Equal(t, tc.want, got.Intent, "Classify(%q)", tc.text)
	}
}

func TestClassify_UnknownVocabulary(t *testing.T) {
	c := New()

	assert.Equal(t, model.IntentNone, c.Classify("xyzzy plugh").Intent)
	assert.Equal(t, model.IntentNone, c.Classify("").Intent)
	assert.Equal(t, model.IntentNone, c.Classify("!!! ???").Intent)
}

func TestSnapshot_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.gob")

	c := New()
	require.NoError(t, c.Snapshot(path))

	loaded, err := NewFromSnapshot(path)
	require.NoError(t, err)

	assert.Equal(t, model.IntentSavingsAdd, loaded.Classify("i saved 300").Intent)
	assert.Equal(t, model.IntentNone, loaded.Classify("xyzzy plugh").Intent)
}

func TestNewFromSnapshot_Missing(t *testing.T) {
	_, err := NewFromSnapshot(filepath.Join(t.TempDir(), "absent.gob"))
	assert.Error(t, err)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"i", "spent", "200", "50"}, Tokenize("I spent 200.50!"))
	assert.Empty(t, Tokenize("  ...  "))
}
