package worker

import (
	"context"
	"io"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/ppiankov/nedextract/internal/model"
	"github.com/ppiankov/nedextract/internal/pipeline"
)

// Processor extracts a report from one input document
type Processor interface {
	Process(ctx context.Context, in pipeline.Input) (*model.Report, error)
}

// DocumentJob processes one document
type DocumentJob struct {
	Index     int
	Input     pipeline.Input
	Processor Processor
}

// Execute runs the processor. A failure is recorded on the report so that
// the document still shows up in the output.
func (j *DocumentJob) Execute(ctx context.Context) Result {
	report, err := j.Processor.Process(ctx, j.Input)
	if report == nil {
		report = &model.Report{File: j.Input.Name(), Source: j.Input.URL}
	}
	report.AddError(err)

	return &DocumentResult{
		Index:  j.Index,
		Input:  j.Input,
		Report: report,
		Error:  err,
	}
}

// DocumentResult is the outcome of a DocumentJob
type DocumentResult struct {
	Index  int
	Input  pipeline.Input
	Report *model.Report
	Error  error
}

// GetError returns the processing error, if any
func (r *DocumentResult) GetError() error {
	return r.Error
}

// BatchProcessor processes many documents concurrently
type BatchProcessor struct {
	processor   Processor
	concurrency int
	logger      logrus.FieldLogger

	// OnResult, if set, is called for every finished document
	OnResult func(done, total int, r *DocumentResult)
}

// NewBatchProcessor creates a batch processor running concurrency documents
// at a time
func NewBatchProcessor(processor Processor, concurrency int, logger logrus.FieldLogger) *BatchProcessor {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Process runs every input and returns the results in input order. Inputs
// that were not run because ctx was cancelled are missing from the result.
func (b *BatchProcessor) Process(ctx context.Context, inputs []pipeline.Input) []*DocumentResult {
	if len(inputs) == 0 {
		return []*DocumentResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	go func() {
		defer pool.Close()
		for i, in := range inputs {
			if !pool.Submit(&DocumentJob{Index: i, Input: in, Processor: b.processor}) {
				return
			}
		}
	}()

	results := make([]*DocumentResult, 0, len(inputs))
	for r := range pool.Results() {
		res := r.(*DocumentResult)
		if res.Error != nil {
			b.logger.WithField("action", "process_document").
				WithField("file", res.Report.File).
				WithError(res.Error).
				Error("document failed")
		}
		results = append(results, res)
		if b.OnResult != nil {
			b.OnResult(len(results), len(inputs), res)
		}
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	return results
}

// Reports returns the reports of results in order
func Reports(results []*DocumentResult) []model.Report {
	reports := make([]model.Report, 0, len(results))
	for _, r := range results {
		reports = append(reports, *r.Report)
	}
	return reports
}
