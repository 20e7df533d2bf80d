package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/nedextract/internal/anbi"
	"github.com/ppiankov/nedextract/internal/fetch"
	"github.com/ppiankov/nedextract/internal/model"
	"github.com/ppiankov/nedextract/internal/ner"
	"github.com/ppiankov/nedextract/internal/output"
	"github.com/ppiankov/nedextract/internal/pipeline"
	"github.com/ppiankov/nedextract/internal/sector"
	"github.com/ppiankov/nedextract/internal/worker"
)

var sources pipeline.Sources

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract people, organizations and sectors from annual reports",
	Long: `Extract processes one or more annual reports:
- a single file (-f), every pdf/html/txt file in a directory (-d),
  a URL (-u) or a file with one URL per line (--url-file)
- tags person and organization names with the selected tagger
- classifies the role of every person with a position
- collects related organizations and matches them with the ANBI register
- predicts the main sector with a trained model

Example:
  nedextract extract -d ./reports
  nedextract extract -f jaarverslag.pdf -t people,orgs --format json
  nedextract extract --url-file urls.txt --tagger llm --provider openai
  nedextract extract -d ./reports -t sectors --sector-model model.msgpack`,
	Args: cobra.NoArgs,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	f := extractCmd.Flags()
	f.StringVarP(&sources.Directory, "directory", "d", "", "directory with reports")
	f.StringVarP(&sources.File, "file", "f", "", "single report file")
	f.StringVarP(&sources.URL, "url", "u", "", "URL of a report to download")
	f.StringVar(&sources.URLFile, "url-file", "", "file with report URLs, one per line")

	f.StringSliceP("tasks", "t", []string{"all"}, "tasks to run (all, people, orgs, sectors)")
	f.String("anbis-file", "", "ANBI register CSV")
	f.String("sector-model", "", "trained sector model")
	f.String("tagger", "", "NER tagger (prose, llm, gazetteer)")
	f.String("gazetteer", "", "entity list for the gazetteer tagger")
	f.String("provider", "", "LLM provider for the llm tagger (openai, anthropic, ollama)")
	f.String("model", "", "LLM model name")
	f.String("output-dir", "", "directory for output files")
	f.String("format", "", "output format (xlsx, json)")
	f.Int("concurrency", 0, "documents processed in parallel")

	for flag, key := range map[string]string{
		"tasks":        "tasks",
		"anbis-file":   "anbis_file",
		"sector-model": "sector_model",
		"tagger":       "tagger.kind",
		"gazetteer":    "tagger.gazetteer",
		"provider":     "tagger.llm.provider",
		"model":        "tagger.llm.model",
		"output-dir":   "output_dir",
		"format":       "format",
		"concurrency":  "worker.concurrency",
	} {
		_ = viper.BindPFlag(key, f.Lookup(flag))
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	tasks, err := model.ParseTasks(cfg.Tasks)
	if err != nil {
		return err
	}
	inputs, err := pipeline.Resolve(sources)
	if err != nil {
		return err
	}

	logger, closer, err := stderrLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts, cleanup, err := pipelineOptions(cfg, tasks, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	p, err := pipeline.New(opts)
	if err != nil {
		return err
	}
	writer, err := output.New(cfg.Format, cfg.OutputDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Documents:    %d\n", len(inputs))
	fmt.Fprintf(os.Stderr, "  Tasks:        %s\n", joinTasks(tasks))
	if opts.Tagger != nil {
		fmt.Fprintf(os.Stderr, "  Tagger:       %s\n", opts.Tagger.Name())
	}
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Worker.Concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", cfg.OutputDir)
	fmt.Fprintf(os.Stderr, "\n")

	batch := worker.NewBatchProcessor(p, cfg.Worker.Concurrency, logger)
	batch.OnResult = func(done, total int, r *worker.DocumentResult) {
		if r.Error != nil {
			fmt.Fprintf(os.Stderr, "✗ [%d/%d] %s: %v\n", done, total, r.Report.File, r.Error)
			return
		}
		fmt.Fprintf(os.Stderr, "✓ [%d/%d] %s (%s)\n", done, total, r.Report.File, orNone(r.Report.Organization))
	}
	results := batch.Process(ctx, inputs)

	failures := 0
	for _, r := range results {
		if r.Error != nil {
			failures++
		}
	}

	paths, err := writer.Write(tasks, worker.Reports(results))
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Processed: %d documents\n", len(results))
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failures)
	for _, path := range paths {
		fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", path)
	}
	fmt.Fprintf(os.Stderr, "\n")

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("interrupted: %w", err)
	}
	if len(results) > 0 && failures == len(results) {
		return errors.New("all documents failed")
	}
	return nil
}

// pipelineOptions loads the components requested by tasks. The cleanup
// function removes downloaded reports.
func pipelineOptions(cfg model.Config, tasks model.Tasks, logger *logrus.Logger) (pipeline.Options, func(), error) {
	opts := pipeline.Options{Tasks: tasks, Logger: logger}
	cleanup := func() {}

	if !tasks.SectorsOnly() {
		if strings.EqualFold(cfg.Tagger.Kind, "llm") {
			llmFromEnv(&cfg.Tagger.LLM)
		}
		tagger, err := ner.New(cfg.Tagger, cfg.Fetch, logger)
		if err != nil {
			return opts, cleanup, fmt.Errorf("tagger: %w", err)
		}
		opts.Tagger = tagger
	}

	if tasks.Has(model.TaskOrgs) && cfg.ANBIFile != "" {
		registry, err := anbi.Load(cfg.ANBIFile)
		if err != nil {
			logger.WithField("action", "load_anbi").WithError(err).
				Warn("ANBI register unavailable, related organizations are not matched")
		} else {
			opts.Registry = registry
		}
	}

	if tasks.Has(model.TaskSectors) {
		m, err := sector.Load(cfg.SectorModel)
		switch {
		case err == nil:
			opts.Sector = m
		case tasks.SectorsOnly():
			return opts, cleanup, fmt.Errorf("sector model: %w", err)
		default:
			logger.WithField("action", "load_sector_model").WithError(err).
				Warn("sector model unavailable, sectors stay empty")
		}
	}

	dir, err := os.MkdirTemp("", "nedextract-")
	if err != nil {
		return opts, cleanup, fmt.Errorf("download dir: %w", err)
	}
	cleanup = func() { _ = os.RemoveAll(dir) }

	limiter := worker.NewDomainLimiter(cfg.Fetch.RatePerSecond, cfg.Fetch.Burst)
	opts.Downloader = fetch.NewDownloader(cfg.Fetch, limiter, logger)
	opts.DownloadDir = dir
	return opts, cleanup, nil
}

// llmFromEnv fills the credentials the provider SDKs conventionally read
// from the environment
func llmFromEnv(c *model.LLMConfig) {
	switch strings.ToLower(c.Provider) {
	case "openai":
		if c.APIKey == "" {
			c.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	case "anthropic", "claude":
		if c.APIKey == "" {
			c.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	case "ollama":
		if c.BaseURL == "" {
			c.BaseURL = os.Getenv("OLLAMA_BASE_URL")
		}
	}
}

func joinTasks(tasks model.Tasks) string {
	names := make([]string, len(tasks))
	for i, t := range tasks {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func orNone(s string) string {
	if s == "" {
		return "no organization found"
	}
	return s
}
