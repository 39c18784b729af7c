package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/epimonos/statement-backend/internal/domain"
	"github.com/epimonos/statement-backend/internal/render"
	"github.com/epimonos/statement-backend/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type renderOptions struct {
	input   string
	format  string
	outDir  string
	today   string
	company string
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a statement from a YAML or JSON request file",
		Long: `Render reads a statement request (the same document the HTTP API accepts),
renders it and writes the result to <out>/<suggested filename>.

JSON is a subset of YAML, so either encoding is accepted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := runRender(opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Path to the request file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Override the request's statement_format (pdf, spreadsheet, text)")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", ".", "Directory the statement is written to")
	cmd.Flags().StringVar(&opts.today, "today", "", "Statement date as YYYY-MM-DD (default: now)")
	cmd.Flags().StringVar(&opts.company, "company", "Epimonos LLC", "Company name printed on PDF statements")
	cmd.MarkFlagRequired("input")

	return cmd
}

// runRender renders one request file and returns the written path
func runRender(opts *renderOptions) (string, error) {
	raw, err := os.ReadFile(opts.input)
	if err != nil {
		return "", fmt.Errorf("read request: %w", err)
	}

	var payload service.StatementPayload
	if err := yaml.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("decode request %s: %w", opts.input, err)
	}
	if opts.format != "" {
		payload.StatementFormat = opts.format
	}

	var clock render.Clock = render.SystemClock{}
	if opts.today != "" {
		today, err := time.Parse(domain.DateLayout, opts.today)
		if err != nil {
			return "", fmt.Errorf("invalid --today %q: %w", opts.today, err)
		}
		clock = render.FixedClock(today)
	}

	req, err := payload.ToRequest()
	if err != nil {
		return "", err
	}
	data, err := service.BuildStatement(req)
	if err != nil {
		return "", err
	}

	log.Debug().
		Str("format", string(data.Format)).
		Int("customers", len(data.Customers)).
		Int("loans", len(data.Loans)).
		Msg("Rendering statement")

	doc, err := render.NewDispatcher(opts.company, clock).Dispatch(data)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(opts.outDir, doc.Filename)
	if err := os.WriteFile(path, doc.Bytes, 0o644); err != nil {
		return "", fmt.Errorf("write statement: %w", err)
	}

	log.Info().Str("path", path).Int("bytes", len(doc.Bytes)).Msg("Statement written")
	return path, nil
}
