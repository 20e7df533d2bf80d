// Package pipeline runs the extraction of one annual report: loading,
// preprocessing, tagging, and the people, organization and sector tasks.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ppiankov/nedextract/internal/anbi"
	"github.com/ppiankov/nedextract/internal/fetch"
	"github.com/ppiankov/nedextract/internal/model"
	"github.com/ppiankov/nedextract/internal/ner"
	"github.com/ppiankov/nedextract/internal/orgs"
	"github.com/ppiankov/nedextract/internal/persons"
	"github.com/ppiankov/nedextract/internal/preprocess"
	"github.com/ppiankov/nedextract/internal/sector"
)

// Downloader stores a remote report locally
type Downloader interface {
	Download(ctx context.Context, rawURL, dir string) (*fetch.Result, error)
}

// Options configures a Pipeline. Registry, Sector and Downloader are
// optional.
type Options struct {
	Tasks  model.Tasks
	Tagger ner.Tagger

	// Registry enriches related organizations with ANBI records
	Registry *anbi.Registry

	// Sector predicts the main sector; without it the sector stays empty
	Sector *sector.Model

	Downloader  Downloader
	DownloadDir string

	Logger logrus.FieldLogger
}

// Pipeline processes documents. It is safe for concurrent use when its
// tagger is.
type Pipeline struct {
	tasks       model.Tasks
	tagger      ner.Tagger
	aggregator  *persons.Aggregator
	judge       *orgs.Judge
	registry    *anbi.Registry
	sector      *sector.Model
	downloader  Downloader
	downloadDir string
	logger      logrus.FieldLogger
	now         func() time.Time
}

// New creates a pipeline. A tagger is required unless only sectors are
// requested.
func New(opts Options) (*Pipeline, error) {
	logger := opts.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}

	tasks := opts.Tasks
	if len(tasks) == 0 {
		tasks = model.Tasks{model.TaskAll}
	}
	if opts.Tagger == nil && !tasks.SectorsOnly() {
		return nil, errors.New("pipeline: a tagger is required for people and orgs")
	}
	if tasks.Has(model.TaskSectors) && opts.Sector == nil {
		logger.WithField("action", "pipeline_init").
			Warn("no sector model loaded, sectors stay empty")
	}

	p := &Pipeline{
		tasks:       tasks,
		tagger:      opts.Tagger,
		aggregator:  persons.NewAggregator(logger),
		registry:    opts.Registry,
		sector:      opts.Sector,
		downloader:  opts.Downloader,
		downloadDir: opts.DownloadDir,
		logger:      logger,
		now:         time.Now,
	}
	if p.downloadDir == "" {
		p.downloadDir = os.TempDir()
	}
	if opts.Tagger != nil {
		p.judge = orgs.NewJudge(ner.NewStandalone(opts.Tagger), logger)
	}
	return p, nil
}

// Process extracts everything requested from one input. The report is
// returned even on error, carrying what was found so far.
func (p *Pipeline) Process(ctx context.Context, in Input) (*model.Report, error) {
	report := &model.Report{
		File:        in.Name(),
		Source:      in.URL,
		ProcessedAt: p.now().UTC(),
	}
	logger := p.logger.WithField("file", report.File)
	logger.WithField("action", "process_start").Info("working on file")

	path := in.Path
	if path == "" {
		if p.downloader == nil {
			return report, fmt.Errorf("download %s: no downloader configured", in.URL)
		}
		res, err := p.downloader.Download(ctx, in.URL, p.downloadDir)
		if err != nil {
			return report, fmt.Errorf("download: %w", err)
		}
		path = res.Path
	}

	raw, err := preprocess.Load(path)
	if err != nil {
		return report, err
	}

	if p.tasks.SectorsOnly() {
		report.Sector = p.predictSector(raw)
		logger.WithField("action", "process_done").Info("finished file")
		return report, nil
	}

	texts := preprocess.Build(raw, preprocess.VariantDefault)
	doc, err := p.tag(ctx, logger, preprocess.VariantDefault, texts[preprocess.VariantDefault])
	if err != nil {
		return report, err
	}

	report.Organization = doc.MainOrganization()
	if report.Organization == "" {
		logger.WithField("action", "main_org").Warn("no organization found, leaving report empty")
		return report, nil
	}

	if p.tasks.Has(model.TaskPeople) {
		if err := p.people(ctx, logger, report, doc, raw); err != nil {
			report.AddError(err)
			logger.WithField("task", model.TaskPeople).WithError(err).Error("people extraction failed")
		}
	}
	if p.tasks.Has(model.TaskOrgs) {
		if err := p.relatedOrgs(ctx, logger, report, doc, raw); err != nil {
			report.AddError(err)
			logger.WithField("task", model.TaskOrgs).WithError(err).Error("organization extraction failed")
		}
	}
	if p.tasks.Has(model.TaskSectors) {
		report.Sector = p.predictSector(raw)
	}

	logger.WithField("action", "process_done").Info("finished file")
	return report, nil
}

func (p *Pipeline) tag(ctx context.Context, logger logrus.FieldLogger, v preprocess.Variant, text string) (*model.Document, error) {
	doc, err := p.tagger.Tag(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("tag %s variant: %w", v, err)
	}
	logger.WithField("variant", string(v)).
		WithField("sentences", len(doc.Sentences)).
		Debug("text tagged")
	return doc, nil
}

// people fills the persons and role columns. Implausible results are
// retried once on the text with blank lines read as sentence ends.
func (p *Pipeline) people(ctx context.Context, logger logrus.FieldLogger, report *model.Report, doc *model.Document, raw string) error {
	found := doc.Persons()
	res := p.aggregator.Extract(doc, found)

	if res.Implausible() {
		logger.WithField("task", model.TaskPeople).
			WithField("supervisory", len(res.SupervisoryBoard)).
			WithField("executive", len(res.ExecutiveBoard)).
			WithField("positions", len(res.Positions)).
			Info("unlikely board, retrying with sentence breaks at blank lines")

		text := preprocess.Clean(raw, preprocess.VariantRetry.Options())
		retryDoc, err := p.tag(ctx, logger, preprocess.VariantRetry, text)
		if err != nil {
			return err
		}
		found = retryDoc.Persons()
		res = p.aggregator.Extract(retryDoc, found)
		report.Retried = true
	}

	report.Persons = found
	report.People = res
	return nil
}

// relatedOrgs collects the confirmed organizations over three variants and
// counts their mentions in the default text
func (p *Pipeline) relatedOrgs(ctx context.Context, logger logrus.FieldLogger, report *model.Report, doc *model.Document, raw string) error {
	texts := preprocess.Build(raw, preprocess.VariantC, preprocess.VariantP, preprocess.VariantPP)

	var v orgs.Variants
	for _, x := range []struct {
		variant preprocess.Variant
		dst     **model.Document
	}{
		{preprocess.VariantC, &v.C},
		{preprocess.VariantP, &v.P},
		{preprocess.VariantPP, &v.PP},
	} {
		d, err := p.tag(ctx, logger, x.variant, texts[x.variant])
		if err != nil {
			return err
		}
		*x.dst = d
	}

	var mentions []model.OrgMention
	for _, org := range p.judge.Collect(ctx, v) {
		if n := orgs.CountMentions(doc.Text, org); n > 0 {
			mentions = append(mentions, model.OrgMention{Name: org, Mentions: n})
		}
	}
	if p.registry != nil {
		mentions = p.registry.Enrich(mentions)
	}

	logger.WithField("task", model.TaskOrgs).
		WithField("related", len(mentions)).
		Debug("related organizations collected")
	report.RelatedOrgs = mentions
	return nil
}

func (p *Pipeline) predictSector(raw string) string {
	if p.sector == nil {
		return ""
	}
	return p.sector.Predict(preprocess.Clean(raw, preprocess.VariantDefault.Options()))
}
