package model

// Intent labels the user's requested action, as produced by the classifier.
type Intent string

const (
	IntentBudgetSet     Intent = "budget.set"
	IntentExpenseAdd    Intent = "expense.add"
	IntentIncomeAdd     Intent = "income.add"
	IntentSavingsAdd    Intent = "savings.add"
	IntentInvestmentAdd Intent = "investment.add"
	IntentBalanceCheck  Intent = "balance.check"
	IntentSummaryShow   Intent = "summary.show"
	IntentSummaryWeek   Intent = "summary.week"
	IntentSummaryMonth  Intent = "summary.month"
	IntentStockCheck    Intent = "stock.check"
	IntentTipsGive      Intent = "tips.give"
	IntentHelpShow      Intent = "help.show"

	// IntentNone marks an utterance the classifier could not place.
	IntentNone Intent = "none"
)

// Mutating reports whether handling the intent writes the ledger.
func (i Intent) Mutating() bool {
	switch i {
	case IntentBudgetSet, IntentExpenseAdd, IntentIncomeAdd, IntentSavingsAdd, IntentInvestmentAdd:
		return true
	}
	return false
}
