// Package sector predicts the sector an organization is active in from
// the text of its annual report.
package sector

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// DefaultAlpha is small because most words are rare
const DefaultAlpha = 0.0001

// ErrNoTrainingData is returned when no usable examples remain
var ErrNoTrainingData = errors.New("no training data")

// Model bundles the vectorizer, the classifier and the label names
type Model struct {
	Labels     []string   `msgpack:"labels"`
	Vectorizer Vectorizer `msgpack:"vectorizer"`
	Bayes      NaiveBayes `msgpack:"bayes"`
}

// TrainOptions controls Train
type TrainOptions struct {
	// TrainSize is the fraction of examples used for training
	TrainSize float64
	Alpha     float64
	Seed      uint64
}

// DefaultTrainOptions returns an 80/20 split with the default alpha
func DefaultTrainOptions() TrainOptions {
	return TrainOptions{TrainSize: 0.8, Alpha: DefaultAlpha, Seed: 1}
}

// Example is one labeled training text
type Example struct {
	Text   string
	Sector string
}

// Train fits a model on a seeded split of examples and evaluates it on
// the held-out part. Labels are numbered in order of first appearance.
func Train(examples []Example, opts TrainOptions) (*Model, *Evaluation, error) {
	if len(examples) == 0 {
		return nil, nil, ErrNoTrainingData
	}
	if opts.TrainSize <= 0 || opts.TrainSize > 1 {
		return nil, nil, fmt.Errorf("train size %.2f out of range (0,1]", opts.TrainSize)
	}

	m := &Model{}
	index := make(map[string]int)
	y := make([]int, len(examples))
	for i, ex := range examples {
		c, ok := index[ex.Sector]
		if !ok {
			c = len(m.Labels)
			index[ex.Sector] = c
			m.Labels = append(m.Labels, ex.Sector)
		}
		y[i] = c
	}

	order := rand.New(rand.NewPCG(opts.Seed, opts.Seed)).Perm(len(examples))
	nTrain := int(opts.TrainSize * float64(len(examples)))
	if nTrain == 0 {
		nTrain = 1
	}
	trainIdx, testIdx := order[:nTrain], order[nTrain:]

	texts := make([]string, len(trainIdx))
	for i, j := range trainIdx {
		texts[i] = examples[j].Text
	}
	m.Vectorizer.Fit(texts)

	x := make([][]feature, len(trainIdx))
	yTrain := make([]int, len(trainIdx))
	for i, j := range trainIdx {
		x[i] = m.Vectorizer.Transform(examples[j].Text)
		yTrain[i] = y[j]
	}
	m.Bayes.Alpha = opts.Alpha
	m.Bayes.Fit(x, yTrain, len(m.Labels), m.Vectorizer.Size())

	eval := newEvaluation(m.Labels, len(trainIdx))
	for _, j := range testIdx {
		eval.add(y[j], m.Bayes.Predict(m.Vectorizer.Transform(examples[j].Text)))
	}
	return m, eval, nil
}

// Predict returns the sector of text
func (m *Model) Predict(text string) string {
	if m == nil || len(m.Labels) == 0 {
		return ""
	}
	return m.Labels[m.Bayes.Predict(m.Vectorizer.Transform(text))]
}

// Save writes the model as msgpack
func (m *Model) Save(path string) error {
	data, err := msgpack.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create model dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	return nil
}

// Load reads a model written by Save
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	var m Model
	if err := msgpack.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode model %s: %w", path, err)
	}
	if len(m.Labels) != len(m.Bayes.ClassLogPrior) {
		return nil, fmt.Errorf("decode model %s: %d labels for %d classes", path, len(m.Labels), len(m.Bayes.ClassLogPrior))
	}
	return &m, nil
}

// Evaluation reports the held-out accuracy of a trained model
type Evaluation struct {
	Labels    []string
	TrainSize int
	TestSize  int
	Correct   int
	// Confusion is indexed by true class, then predicted class
	Confusion [][]int
}

func newEvaluation(labels []string, trainSize int) *Evaluation {
	e := &Evaluation{Labels: labels, TrainSize: trainSize, Confusion: make([][]int, len(labels))}
	for i := range e.Confusion {
		e.Confusion[i] = make([]int, len(labels))
	}
	return e
}

func (e *Evaluation) add(truth, predicted int) {
	e.TestSize++
	e.Confusion[truth][predicted]++
	if truth == predicted {
		e.Correct++
	}
}

// Accuracy is the share of correct test predictions; zero without a test set
func (e *Evaluation) Accuracy() float64 {
	if e.TestSize == 0 {
		return 0
	}
	return float64(e.Correct) / float64(e.TestSize)
}

func (e *Evaluation) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total accuracy classification score: %.4f (%d/%d, trained on %d)\n",
		e.Accuracy(), e.Correct, e.TestSize, e.TrainSize)
	b.WriteString("Confusion matrix for the following labels:\n")
	fmt.Fprintf(&b, "%v\n", e.Labels)
	for _, row := range e.Confusion {
		fmt.Fprintf(&b, "%v\n", row)
	}
	return b.String()
}
