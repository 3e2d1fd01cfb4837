package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SolBenven/proyecto-final/internal/application/training"
	"github.com/SolBenven/proyecto-final/internal/infrastructure/database/postgres"
	miniostore "github.com/SolBenven/proyecto-final/internal/infrastructure/storage/minio"
	"github.com/SolBenven/proyecto-final/internal/intelligence/deptclass"
	"github.com/SolBenven/proyecto-final/pkg/errors"
)

func newTrainCommand(opts *rootOptions) *cobra.Command {
	var corpusPath string

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the department classifier and persist its artifacts",
		Long:  "train fits the TF-IDF vectorizer and the naive bayes classifier from a\nlabeled corpus and stores both artifacts in the object store.  Corpus labels\nmust match existing department names; unknown labels abort the run.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			log := newLogger(cfg)
			defer log.Sync()

			samples := training.DefaultCorpus
			if corpusPath != "" {
				samples, err = loadCorpus(corpusPath)
				if err != nil {
					return err
				}
			}

			db, err := postgres.Connect(cmd.Context(), cfg.Database, log)
			if err != nil {
				return err
			}
			defer db.Close()

			artifacts, err := miniostore.NewArtifactStore(cmd.Context(), cfg.MinIO, log)
			if err != nil {
				return err
			}

			deptRepo := postgres.NewDepartmentRepository(db)
			classifier := deptclass.NewService(deptclass.Config{
				ConfidenceThreshold: cfg.Classifier.ConfidenceThreshold,
				VectorizerKey:       cfg.Classifier.VectorizerKey,
				ModelKey:            cfg.Classifier.ModelKey,
				MaxFeatures:         cfg.Classifier.MaxFeatures,
			}, artifacts, log)

			trainer := training.NewService(classifier, deptRepo, log)
			if err := trainer.Train(cmd.Context(), samples); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "trained classifier on %d samples\n", len(samples))
			return nil
		},
	}

	cmd.Flags().StringVar(&corpusPath, "corpus", "", "JSON corpus file ([{\"text\":…,\"label\":…}]); omit to use the built-in corpus")
	return cmd
}

// loadCorpus reads a JSON array of samples from path.
func loadCorpus(path string) ([]training.Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTrainingInput, "failed to read corpus file")
	}

	var samples []training.Sample
	if err := json.Unmarshal(data, &samples); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTrainingInput, "corpus file is not a valid JSON sample array")
	}
	return samples, nil
}
