// Package classifier maps free-text utterances onto the closed intent set
// using a naive Bayes text model trained from a fixed corpus at startup.
package classifier

import (
	"strings"
	"unicode"

	"github.com/jbrukh/bayesian"

	"github.com/paisabot-dev/paisabot/internal/model"
)

// Result is the best-scoring intent for an utterance. Score is the raw log
// score of the winning class; callers dispatch on the label alone, there is
// no minimum-confidence threshold.
type Result struct {
	Intent model.Intent
	Score  float64
}

// Classifier wraps a trained bayesian model over the intent classes.
type Classifier struct {
	cl    *bayesian.Classifier
	vocab map[string]struct{}
}

// New trains a classifier from the fixed corpus. Training is synchronous and
// happens before the transport starts accepting messages.
func New() *Classifier {
	cl := bayesian.NewClassifierTfIdf(classes()...)
	for _, doc := range trainingDocs {
		cl.Learn(Tokenize(doc.text), bayesian.Class(doc.intent))
	}
	cl.ConvertTermsFreqToTfIdf()
	return &Classifier{cl: cl, vocab: vocabulary()}
}

// NewFromSnapshot loads a previously saved model. The vocabulary is rebuilt
// from the corpus, which is the same corpus the snapshot was trained on.
func NewFromSnapshot(path string) (*Classifier, error) {
	cl, err := bayesian.NewClassifierFromFile(path)
	if err != nil {
		return nil, err
	}
	return &Classifier{cl: cl, vocab: vocabulary()}, nil
}

// Snapshot persists the trained model so a later start can skip retraining.
// Purely an optimization; correctness never depends on it.
func (c *Classifier) Snapshot(path string) error {
	return c.cl.WriteToFile(path)
}

// Classify returns the top-ranked intent for text. Utterances sharing no
// token with the training vocabulary return IntentNone: with every word
// unseen the Bayes scores are uniform and the argmax would be arbitrary.
func (c *Classifier) Classify(text string) Result {
	tokens := Tokenize(text)
	if len(tokens) == 0 || !c.anyKnown(tokens) {
		return Result{Intent: model.IntentNone}
	}
	scores, inx, _ := c.cl.LogScores(tokens)
	return Result{
		Intent: model.Intent(c.cl.Classes[inx]),
		Score:  scores[inx],
	}
}

func (c *Classifier) anyKnown(tokens []string) bool {
	for _, t := range tokens {
		if _, ok := c.vocab[t]; ok {
			return true
		}
	}
	return false
}

// Tokenize lower-cases text and splits it into alphanumeric words.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func classes() []bayesian.Class {
	seen := make(map[model.Intent]bool)
	var out []bayesian.Class
	for _, doc := range trainingDocs {
		if !seen[doc.intent] {
			seen[doc.intent] = true
			out = append(out, bayesian.Class(doc.intent))
		}
	}
	return out
}

func vocabulary() map[string]struct{} {
	vocab := make(map[string]struct{})
	for _, doc := range trainingDocs {
		for _, tok := range Tokenize(doc.text) {
			vocab[tok] = struct{}{}
		}
	}
	return vocab
}
