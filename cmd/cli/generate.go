package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"motiflab/internal/testkit"

	"github.com/klauspost/pgzip"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	config := testkit.DefaultTrackConfig()
	var output string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a deterministic synthetic bundle",
		Long: fmt.Sprintf(`Write a synthetic bundle with a prediction track (%q), an answer track jittered
from it (%q), a per-sequence numeric map (%q) and the collection of region
types (%q). Output ending in .gz is compressed.

Example:
  motiflab generate --sequences 500 --length 100000 -o tracks.json.gz
  motiflab run region-agreement -b tracks.json.gz -p '{"prediction": "prediction", "answer": "answer"}'`,
			testkit.BundlePrediction, testkit.BundleAnswer, testkit.BundleExpression, testkit.BundleTypes),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.Sequences < 1 || config.Length < 1 || config.RegionsPerSequence < 0 || config.MaxRegionLength < 1 {
				return fmt.Errorf("sequences, length and max-region-length must be positive")
			}
			bundle := testkit.SyntheticBundle(config)

			out, closeFn, err := createOutput(cmd.OutOrStdout(), output)
			if err != nil {
				return err
			}
			if err := json.NewEncoder(out).Encode(bundle); err != nil {
				closeFn()
				return err
			}
			return closeFn()
		},
	}

	cmd.Flags().IntVar(&config.Sequences, "sequences", config.Sequences, "Number of sequences")
	cmd.Flags().IntVar(&config.Length, "length", config.Length, "Length of every sequence")
	cmd.Flags().IntVar(&config.RegionsPerSequence, "regions", config.RegionsPerSequence, "Regions drawn per sequence")
	cmd.Flags().IntVar(&config.MaxRegionLength, "max-region-length", config.MaxRegionLength, "Longest region drawn")
	cmd.Flags().StringSliceVar(&config.Types, "types", config.Types, "Region type labels")
	cmd.Flags().Int64Var(&config.Seed, "seed", config.Seed, "Random seed")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")

	return cmd
}

// createOutput opens path for writing, compressing when it ends in .gz. The returned
// close function flushes the compressor before closing the file.
func createOutput(stdout io.Writer, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, f.Close, nil
	}
	zw := pgzip.NewWriter(f)
	return zw, func() error {
		if err := zw.Close(); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}, nil
}
