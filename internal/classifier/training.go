package classifier

import (
	"github.com/paisabot-dev/paisabot/internal/model"
)

// trainingDoc pairs an example utterance with the intent it teaches. The
// corpus is fixed: it mirrors the phrasing users actually send, with the
// numeric and ticker slots dropped (amounts are re-extracted by regex, ticker
// resolution has its own strategy chain).
type trainingDoc struct {
	intent model.Intent
	text   string
}

var trainingDocs = []trainingDoc{
	{model.IntentBudgetSet, "set my monthly budget"},
	{model.IntentBudgetSet, "my monthly budget is"},

	{model.IntentExpenseAdd, "i spent on"},
	{model.IntentExpenseAdd, "i bought for"},
	{model.IntentExpenseAdd, "i purchased for"},
	{model.IntentExpenseAdd, "i paid for"},
	{model.IntentExpenseAdd, "i gave for"},
	{model.IntentExpenseAdd, "add expense"},

	{model.IntentIncomeAdd, "i received"},
	{model.IntentIncomeAdd, "i got"},
	{model.IntentIncomeAdd, "my friend gave me"},
	{model.IntentIncomeAdd, "i earned"},
	{model.IntentIncomeAdd, "i made"},

	{model.IntentSavingsAdd, "i saved"},
	{model.IntentSavingsAdd, "i put into savings"},

	{model.IntentInvestmentAdd, "i invested"},
	{model.IntentInvestmentAdd, "i put into stocks"},

	{model.IntentSummaryShow, "show my summary"},
	{model.IntentSummaryShow, "show my finance summary"},
	{model.IntentSummaryWeek, "show my weekly summary"},
	{model.IntentSummaryMonth, "show my monthly summary"},

	{model.IntentStockCheck, "show stock"},
	{model.IntentStockCheck, "show me stock price"},
	{model.IntentStockCheck, "get price"},
	{model.IntentStockCheck, "check price"},

	{model.IntentBalanceCheck, "how much money left"},
	{model.IntentBalanceCheck, "how much is remaining"},

	{model.IntentTipsGive, "give me spending tips"},
	{model.IntentTipsGive, "give me a money saving tip"},

	{model.IntentHelpShow, "help me"},
	{model.IntentHelpShow, "guide me"},
	{model.IntentHelpShow, "what can you do"},
}
