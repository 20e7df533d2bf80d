package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/nedextract/internal/preprocess"
	"github.com/ppiankov/nedextract/internal/sector"
)

var (
	manifestFile string
	modelOut     string
	trainOpts    = sector.DefaultTrainOptions()
)

// trainCmd represents the train command
var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the sector classifier",
	Long: `Train reads a manifest (.xlsx or .csv) with the columns Bestand, Sector
and Problem, loads every listed report and fits a TF-IDF + naive Bayes
sector classifier. Part of the reports is held out to report accuracy and
a confusion matrix.

Example:
  nedextract train -f Data/trainingset.xlsx --out Pretrained/sector_classifier.msgpack
  nedextract train -f labels.csv --out model.msgpack --train-size 1`,
	Args: cobra.NoArgs,
	RunE: runTrain,
}

func init() {
	rootCmd.AddCommand(trainCmd)

	trainCmd.Flags().StringVarP(&manifestFile, "file", "f", "", "training manifest (.xlsx or .csv)")
	trainCmd.Flags().StringVar(&modelOut, "out", "Pretrained/sector_classifier.msgpack", "where to write the model")
	trainCmd.Flags().Float64Var(&trainOpts.Alpha, "alpha", trainOpts.Alpha, "naive Bayes smoothing")
	trainCmd.Flags().Float64Var(&trainOpts.TrainSize, "train-size", trainOpts.TrainSize, "share of reports used for training")
	trainCmd.Flags().Uint64Var(&trainOpts.Seed, "seed", trainOpts.Seed, "seed of the train/test split")
	_ = trainCmd.MarkFlagRequired("file")
}

func runTrain(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closer, err := stderrLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	rows, err := sector.ReadManifest(manifestFile)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "✓ Loaded manifest with %d reports\n", len(rows))

	examples := make([]sector.Example, 0, len(rows))
	for _, row := range rows {
		raw, err := preprocess.Load(row.File)
		if err != nil {
			logger.WithField("action", "train_load").
				WithField("file", row.File).
				WithError(err).
				Warn("skipping report")
			continue
		}
		examples = append(examples, sector.Example{
			Text:   preprocess.Clean(raw, preprocess.VariantDefault.Options()),
			Sector: row.Sector,
		})
	}
	if len(examples) == 0 {
		return errors.New("no readable reports in manifest")
	}

	m, eval, err := sector.Train(examples, trainOpts)
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}
	if err := m.Save(modelOut); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n%s\n", eval)
	fmt.Fprintf(os.Stderr, "✓ Wrote model: %s\n", modelOut)
	return nil
}
