package market

import (
	"regexp"
	"strings"
)

// indianStocks maps spoken company names to their NSE tickers.
var indianStocks = map[string]string{
	"reliance": "RELIANCE.NS",
	"infosys":  "INFY.NS",
	"tcs":      "TCS.NS",
	"hdfc":     "HDFCBANK.NS",
	"icici":    "ICICIBANK.NS",
	"sbi":      "SBIN.NS",
	"wipro":    "WIPRO.NS",
	"airtel":   "BHARTIARTL.NS",
	"tata":     "TATAMOTORS.NS",
	"techm":    "TECHM.NS",
}

// tickerPattern matches an explicit uppercase ticker in the raw text, like
// AAPL or RELIANCE.NS. It is deliberately case-sensitive: lower-cased words
// such as "show" must not be mistaken for tickers.
var tickerPattern = regexp.MustCompile(`\b[A-Z]{1,6}(?:\.[A-Z]{2,3})?\b`)

// Resolution is a resolved stock reference. Keyword is the token the user
// actually typed; the search fallback uses it rather than the mapped symbol.
type Resolution struct {
	Symbol  string
	Keyword string
}

// strategy is one step in the resolution chain: a pure function from the raw
// message text and its lower-cased tokens to an optional resolution.
type strategy func(raw string, words []string) (Resolution, bool)

// Strategies run in strict order; the first match wins.
var strategies = []strategy{
	companyTableScan,
	explicitTicker,
	lastWordCompany,
}

// ResolveSymbol resolves a stock reference from message text. The second
// return is false when no strategy matched and the user should be prompted
// for a symbol.
func ResolveSymbol(text string) (Resolution, bool) {
	words := strings.Fields(strings.ToLower(text))
	for _, s := range strategies {
		if res, ok := s(text, words); ok {
			return res, true
		}
	}
	return Resolution{}, false
}

// companyTableScan checks each token left to right against the company table.
func companyTableScan(_ string, words []string) (Resolution, bool) {
	for _, w := range words {
		if sym, ok := indianStocks[w]; ok {
			return Resolution{Symbol: sym, Keyword: w}, true
		}
	}
	return Resolution{}, false
}

// explicitTicker treats an uppercase token in the raw text as a literal
// ticker, optional exchange suffix included.
func explicitTicker(raw string, _ []string) (Resolution, bool) {
	if m := tickerPattern.FindString(raw); m != "" {
		return Resolution{Symbol: m, Keyword: m}, true
	}
	return Resolution{}, false
}

// lastWordCompany re-checks only the trailing token against the company
// table. Kept as the final fallback for trailing-position company names.
func lastWordCompany(_ string, words []string) (Resolution, bool) {
	if len(words) == 0 {
		return Resolution{}, false
	}
	last := words[len(words)-1]
	if sym, ok := indianStocks[last]; ok {
		return Resolution{Symbol: sym, Keyword: last}, true
	}
	return Resolution{}, false
}

// CurrencyPrefix picks the display currency for a symbol: rupees for Indian
// exchange suffixes, dollars otherwise.
func CurrencyPrefix(symbol string) string {
	if strings.Contains(symbol, ".NS") || strings.Contains(symbol, ".BSE") {
		return "₹"
	}
	return "$"
}
