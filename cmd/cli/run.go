package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"motiflab/app"
	"motiflab/domain/analysis"
	"motiflab/internal/monitor"
	"motiflab/ports"

	"github.com/klauspost/pgzip"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var input, bundlePath, params, output string
	var workers int
	var progress, compact bool

	cmd := &cobra.Command{
		Use:   "run [kind]",
		Short: "Run one analysis and print its result envelope as JSON",
		Long: `Run one analysis over a dataset bundle.

The request is either a single document holding {"bundle": ..., "params": ...}
(--input) or a bare bundle plus a params object (--bundle and --params).
Files ending in .gz are decompressed; "-" reads standard input.

Examples:
  motiflab run set-overlap --input request.json
  motiflab run region-agreement --bundle tracks.json.gz --params '{"prediction": "pred", "answer": "answer"}' --workers 8`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := analysis.Kind(args[0])
			capability, err := analysis.Lookup(kind)
			if err != nil {
				return err
			}

			req, err := readRequest(cmd.InOrStdin(), input, bundlePath, params)
			if err != nil {
				return err
			}
			if workers > 0 {
				req.Params.Workers = workers
			}

			appContainer, err := newContainer()
			if err != nil {
				return err
			}
			defer appContainer.Shutdown(context.Background())

			ctx := cmd.Context()
			var tm ports.TaskMonitor = monitor.NewContext(ctx, appContainer.Logger)
			if progress && capability.Concurrent {
				bar := monitor.NewBar(cmd.ErrOrStderr())
				defer bar.Finish()
				tm = monitor.Tee(tm, bar)
			}

			env, err := appContainer.AnalysisService.Run(ctx, kind, req, tm)
			if err != nil {
				return err
			}
			return writeEnvelope(cmd.OutOrStdout(), output, env, !compact)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Request document with bundle and params")
	cmd.Flags().StringVarP(&bundlePath, "bundle", "b", "", "Bundle document; combine with --params")
	cmd.Flags().StringVarP(&params, "params", "p", "", "Params object as inline JSON")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the envelope here instead of stdout; .gz compresses")
	cmd.Flags().IntVar(&workers, "workers", 0, "Region agreement workers (default from AGREEMENT_WORKERS)")
	cmd.Flags().BoolVar(&progress, "progress", true, "Draw a progress bar for long-running analyses")
	cmd.Flags().BoolVar(&compact, "compact", false, "Emit JSON without indentation")
	cmd.MarkFlagsMutuallyExclusive("input", "bundle")
	cmd.MarkFlagsMutuallyExclusive("input", "params")
	cmd.MarkFlagsOneRequired("input", "bundle")

	return cmd
}

func readRequest(stdin io.Reader, input, bundlePath, params string) (app.Request, error) {
	if input != "" {
		r, closeFn, err := openInput(stdin, input)
		if err != nil {
			return app.Request{}, err
		}
		defer closeFn()
		return app.DecodeRequest(r)
	}

	p, err := app.DecodeParams([]byte(params))
	if err != nil {
		return app.Request{}, err
	}
	r, closeFn, err := openInput(stdin, bundlePath)
	if err != nil {
		return app.Request{}, err
	}
	defer closeFn()
	return app.NewRequest(r, p)
}

// openInput opens path ("-" for stdin), decompressing .gz files
func openInput(stdin io.Reader, path string) (io.Reader, func(), error) {
	var r io.Reader = stdin
	closers := []io.Closer{}
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open %s: %w", path, err)
		}
		r = f
		closers = append(closers, f)
	}
	if strings.HasSuffix(path, ".gz") {
		zr, err := pgzip.NewReader(r)
		if err != nil {
			for _, c := range closers {
				c.Close()
			}
			return nil, nil, fmt.Errorf("read %s: %w", path, err)
		}
		r = zr
		closers = append(closers, zr)
	}
	return r, func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i].Close()
		}
	}, nil
}

func writeEnvelope(stdout io.Writer, path string, env *analysis.Envelope, indent bool) error {
	out, closeFn, err := createOutput(stdout, path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(env); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}
