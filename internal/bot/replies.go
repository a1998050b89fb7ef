package bot

// tips is the fixed pool the tips.give intent draws from, uniformly at
// random.
var tips = []string{
	"💡 Use the 50/30/20 rule — 50% needs, 30% wants, 20% savings.",
	"💡 Track daily spending — small leaks sink big ships.",
	"💡 Automate your savings like a fixed expense.",
	"💡 Review subscriptions monthly — cancel unused ones.",
	"💡 Cook at home more often — food delivery adds up quickly.",
}

const helpText = `🤖 AI Finance Bot — Your Smart Money Assistant 💰

Here's what I can do:
✅ Track expenses, savings, and investments
✅ Warn when you overspend
✅ Fetch live stock prices
✅ Give money-saving tips
✅ Show daily/weekly/monthly summaries
✅ Tell how much is left in your budget

Try saying:
💬 "Set my monthly budget 5000"
💬 "I bought pizza for 200"
💬 "I received 1000 from my friend"
💬 "Show my summary"
💬 "Show me AAPL stock price"
💬 "Give me a spending tip"`
