// Package bot dispatches inbound chat messages: classify, mutate the
// ledger, reply.
package bot

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/paisabot-dev/paisabot/internal/classifier"
	"github.com/paisabot-dev/paisabot/internal/extract"
	"github.com/paisabot-dev/paisabot/internal/history"
	"github.com/paisabot-dev/paisabot/internal/market"
	"github.com/paisabot-dev/paisabot/internal/model"
	"github.com/paisabot-dev/paisabot/internal/store"
)

// IntentClassifier produces the best-scoring intent for an utterance.
type IntentClassifier interface {
	Classify(text string) classifier.Result
}

// Quoter fetches a live quote for a resolved stock reference.
type Quoter interface {
	Lookup(ctx context.Context, res market.Resolution) (*market.Quote, error)
}

// Reply is one outbound message. Markdown requests rich-text rendering.
type Reply struct {
	Text     string
	Markdown bool
}

// incomeWords in an expense-classified message mean the money came in, not
// out; the expense handler must not record it.
var incomeWords = []string{"received", "friend", "gave me", "got"}

// Handler processes one inbound message at a time. It keeps no state across
// messages beyond what the store persists.
type Handler struct {
	store      store.Store
	classifier IntentClassifier
	market     Quoter
	history    *history.Log // nil disables the mutation log
	logger     *zap.Logger
	pickTip    func(n int) int
}

// NewHandler wires a Handler. history may be nil.
func NewHandler(s store.Store, c IntentClassifier, q Quoter, h *history.Log, logger *zap.Logger) *Handler {
	return &Handler{
		store:      s,
		classifier: c,
		market:     q,
		history:    h,
		logger:     logger,
		pickTip:    rand.Intn,
	}
}

// HandleMessage runs one message through the intent table and returns the
// replies to send. Messages without text are ignored.
func (h *Handler) HandleMessage(ctx context.Context, chatID int64, text string) []Reply {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	lower := strings.ToLower(text)

	rec, err := h.store.GetOrCreate(ctx, chatID)
	if err != nil {
		return h.storeFailure(chatID, err)
	}

	result := h.classifier.Classify(lower)
	amount := extract.Amount(lower)

	h.logger.Debug("message classified",
		zap.Int64("chat_id", chatID),
		zap.String("intent", string(result.Intent)),
		zap.String("amount", amount.String()))

	switch result.Intent {
	case model.IntentBudgetSet:
		rec, err = h.mutate(ctx, chatID, result.Intent, amount, func(r *model.Record) {
			r.Budget = amount
		})
		if err != nil {
			return h.storeFailure(chatID, err)
		}
		return []Reply{{Text: fmt.Sprintf("✅ Monthly budget set to ₹%s.", amount)}}

	case model.IntentExpenseAdd:
		if containsAny(lower, incomeWords) {
			return []Reply{{Text: "✅ Not counted as expense — it looks like income."}}
		}
		rec, err = h.mutate(ctx, chatID, result.Intent, amount, func(r *model.Record) {
			r.Spent = r.Spent.Add(amount)
		})
		if err != nil {
			return h.storeFailure(chatID, err)
		}
		replies := []Reply{{Text: fmt.Sprintf("💸 You spent ₹%s. Remaining budget: ₹%s", amount, rec.Remaining())}}
		if rec.Overspent() {
			replies = append(replies, Reply{Text: "⚠️ You're overspending! Try to control expenses."})
		}
		return replies

	case model.IntentIncomeAdd:
		rec, err = h.mutate(ctx, chatID, result.Intent, amount, func(r *model.Record) {
			r.Income = r.Income.Add(amount)
		})
		if err != nil {
			return h.storeFailure(chatID, err)
		}
		return []Reply{{Text: fmt.Sprintf("💵 Added income: ₹%s. Total income: ₹%s", amount, rec.Income)}}

	case model.IntentSavingsAdd:
		rec, err = h.mutate(ctx, chatID, result.Intent, amount, func(r *model.Record) {
			r.Saved = r.Saved.Add(amount)
		})
		if err != nil {
			return h.storeFailure(chatID, err)
		}
		return []Reply{{Text: fmt.Sprintf("💰 Saved ₹%s. Total savings: ₹%s", amount, rec.Saved)}}

	case model.IntentInvestmentAdd:
		rec, err = h.mutate(ctx, chatID, result.Intent, amount, func(r *model.Record) {
			r.Invested = r.Invested.Add(amount)
		})
		if err != nil {
			return h.storeFailure(chatID, err)
		}
		return []Reply{{Text: fmt.Sprintf("📈 Invested ₹%s. Total investment: ₹%s", amount, rec.Invested)}}

	case model.IntentBalanceCheck:
		return []Reply{{Text: fmt.Sprintf("💼 Remaining from your monthly budget: ₹%s", rec.Remaining())}}

	case model.IntentSummaryShow, model.IntentSummaryWeek, model.IntentSummaryMonth:
		// All three produce the same all-time summary; the ledger stores no
		// timestamps to window on.
		return []Reply{{Text: summaryText(rec), Markdown: true}}

	case model.IntentStockCheck:
		return h.handleStock(ctx, text)

	case model.IntentTipsGive:
		return []Reply{{Text: tips[h.pickTip(len(tips))]}}

	case model.IntentHelpShow:
		return []Reply{{Text: helpText, Markdown: true}}

	default:
		return []Reply{{Text: "🤖 Sorry, I didn't understand that. Type \"help\" to see what I can do!"}}
	}
}

// mutate applies a ledger change, persists it, and logs it to history.
func (h *Handler) mutate(ctx context.Context, chatID int64, intent model.Intent, amount decimal.Decimal, fn func(*model.Record)) (model.Record, error) {
	rec, err := h.store.Update(ctx, chatID, fn)
	if err != nil {
		return rec, err
	}
	if h.history != nil {
		entry := history.Entry{
			Timestamp: time.Now().UTC(),
			ChatID:    chatID,
			Intent:    intent,
			Amount:    amount,
			Record:    rec,
		}
		if err := h.history.Append(entry); err != nil {
			h.logger.Warn("history append failed", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}
	return rec, nil
}

func (h *Handler) handleStock(ctx context.Context, text string) []Reply {
	res, ok := market.ResolveSymbol(text)
	if !ok {
		return []Reply{{Text: `📈 Please mention a company or stock symbol (e.g. "Show AAPL", "Show Reliance").`}}
	}

	quote, err := h.market.Lookup(ctx, res)
	if errors.Is(err, market.ErrQuoteUnavailable) {
		return []Reply{{Text: fmt.Sprintf("❌ Could not fetch stock info for %s. Try again later or use a valid symbol.", res.Keyword)}}
	}
	if err != nil {
		h.logger.Error("stock fetch failed", zap.String("symbol", res.Symbol), zap.Error(err))
		return []Reply{{Text: "⚠️ Error fetching stock info. Try again later."}}
	}

	prefix := market.CurrencyPrefix(quote.Symbol)
	return []Reply{{
		Text: fmt.Sprintf("📊 *%s Stock Update*\n%s%s\n📈 Change: %s (%s)\n🕒 Last: %s",
			quote.Symbol, prefix, quote.Price, quote.Change, quote.ChangePercent, quote.LatestTradingDay),
		Markdown: true,
	}}
}

func (h *Handler) storeFailure(chatID int64, err error) []Reply {
	h.logger.Error("ledger store failure", zap.Int64("chat_id", chatID), zap.Error(err))
	return []Reply{{Text: "⚠️ Something went wrong saving your data. Please try again."}}
}

func summaryText(rec model.Record) string {
	return fmt.Sprintf(`📊 Your Finance Summary:
💸 Spent: ₹%s
💰 Saved: ₹%s
📈 Invested: ₹%s
🏦 Income: ₹%s
💼 Remaining: ₹%s`,
		rec.Spent, rec.Saved, rec.Invested, rec.Income, rec.Remaining())
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
