package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"japanesevariants/describe"
	"japanesevariants/ingest"
	"japanesevariants/logger"
	"japanesevariants/model"
	"japanesevariants/rewriter"
	"japanesevariants/tokenize"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type rewriteFlags struct {
	request  string
	mode     string
	phrases  bool
	json     bool
	selected int
}

// rewriteResult is one rewritten input line.
type rewriteResult struct {
	Sentence ingest.Sentence `json:"sentence"`
	Tokens   []model.Token   `json:"tokens"`
	Segments *model.Segments `json:"segments"`
	Modified bool            `json:"modified"`
}

func newRewriteCmd(a *app) *cobra.Command {
	var flags rewriteFlags
	cmd := &cobra.Command{
		Use:   "rewrite [text...]",
		Short: "Tokenize text and add width variants to every segment",
		Long: "rewrite tokenizes each argument (or each stdin line when no argument is\n" +
			"given), builds one candidate segment per token and runs the variants\n" +
			"rewriter over the result.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRewrite(cmd, args, flags)
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.request, "request", "conversion", "Request type: conversion, prediction, suggestion, transliteration")
	f.StringVar(&flags.mode, "mode", "normal", "kagome split mode: normal, search, extended")
	f.BoolVar(&flags.phrases, "phrases", false, "Merge verbs with their auxiliaries into one segment")
	f.BoolVar(&flags.json, "json", false, "Print results as JSON")
	f.IntVar(&flags.selected, "select", -1, "Commit candidate N of every segment and learn its width (saved when history_db is set)")
	return cmd
}

func (a *app) runRewrite(cmd *cobra.Command, args []string, flags rewriteFlags) error {
	ctx := cmd.Context()
	log := logger.New("cli")

	rt, err := model.ParseRequestType(flags.request)
	if err != nil {
		return err
	}
	mode, err := tokenize.ParseMode(flags.mode)
	if err != nil {
		return err
	}
	sentences, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	if len(sentences) == 0 {
		return errors.New("no input text")
	}

	tk, err := tokenize.New(a.cfg.Dictionary, tokenize.WithMode(mode))
	if err != nil {
		return err
	}
	tokens := make([][]model.Token, len(sentences))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Workers)
	for i, s := range sentences {
		g.Go(func() error {
			toks, err := tk.Tokenize(gctx, s.Text)
			if err != nil {
				return fmt.Errorf("tokenize %s: %w", s.ID, err)
			}
			if flags.phrases {
				toks = tokenize.MergePhrases(toks)
			}
			tokens[i] = toks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	m, st, err := a.openManager(ctx)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}
	alts, err := a.cfg.AlternativeCategories()
	if err != nil {
		return err
	}
	rw := rewriter.New(m,
		rewriter.WithDescriber(describe.New(a.cfg.Language)),
		rewriter.WithAlternatives(alts...),
		rewriter.WithSuggestionInPlace(a.cfg.SuggestionInPlace),
		rewriter.WithLogger(logger.New("rewriter")),
	)

	if a.cfg.LogsDir != "" {
		if err := logger.InitLogs(a.cfg.LogsDir); err != nil {
			return fmt.Errorf("init logs: %w", err)
		}
	}
	learned := 0
	results := make([]rewriteResult, 0, len(sentences))
	for i, s := range sentences {
		segs := tokenize.BuildSegments(tokens[i], rt)
		a.dump(s.ID+"_segments_in", segs)
		modified := rw.Rewrite(segs)
		a.dump(s.ID+"_segments_out", segs)
		if flags.selected >= 0 {
			for _, seg := range segs.Segments {
				if flags.selected < seg.Len() && rw.Learn(seg.Candidate(flags.selected)) {
					learned++
				}
			}
		}
		log.Debug("rewrote sentence", "id", s.ID, "segments", segs.Len(), "modified", modified)
		results = append(results, rewriteResult{Sentence: s, Tokens: tokens[i], Segments: segs, Modified: modified})
	}

	if learned > 0 && st != nil {
		if err := st.Save(ctx, m); err != nil {
			return fmt.Errorf("save history: %w", err)
		}
	}
	log.Debug("learned from selection", "rules", learned)

	out := cmd.OutOrStdout()
	if flags.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	for _, r := range results {
		printSegments(out, r.Segments)
	}
	return nil
}

// dump writes a JSON stage dump when logs_dir is configured. Failures are
// logged and otherwise ignored.
func (a *app) dump(name string, v any) {
	if a.cfg.LogsDir == "" {
		return
	}
	if err := logger.LogJSON(a.cfg.LogsDir, name, v); err != nil {
		logger.New("cli").Warn("stage dump failed", "name", name, "error", err)
	}
}

func readInput(stdin io.Reader, args []string) ([]ingest.Sentence, error) {
	if len(args) == 0 {
		return ingest.ReadSentences(stdin)
	}
	var out []ingest.Sentence
	for _, arg := range args {
		s, err := ingest.IngestSentence(arg)
		if errors.Is(err, ingest.ErrEmpty) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// printSegments writes one line per segment: the key, then every candidate
// with its description in parentheses.
func printSegments(w io.Writer, segs *model.Segments) {
	for _, seg := range segs.Segments {
		parts := make([]string, 0, seg.Len())
		for _, c := range seg.Candidates {
			if c.Description != "" {
				parts = append(parts, fmt.Sprintf("%s (%s)", c.Value, c.Description))
			} else {
				parts = append(parts, c.Value)
			}
		}
		fmt.Fprintf(w, "%s: %s\n", seg.Key, strings.Join(parts, " | "))
	}
}
