package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"larknotify/internal/card"
)

// cardFlags holds the shared card-composition flags used by the render and
// send commands.
type cardFlags struct {
	title        string
	status       string
	color        string
	subtitle     string
	metadata     []string
	markdown     []string
	collapsibles []string
	divider      bool
}

func (f *cardFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Card header title (required)")
	cmd.Flags().StringVar(&f.status, "status", "", "Semantic status used to pick the header color (running, success, failed, ...)")
	cmd.Flags().StringVar(&f.color, "color", "", "Explicit header color, overrides --status")
	cmd.Flags().StringVar(&f.subtitle, "subtitle", "", "Card header subtitle")
	cmd.Flags().StringArrayVar(&f.metadata, "metadata", nil, "Metadata line as key=value (repeatable)")
	cmd.Flags().StringArrayVar(&f.markdown, "markdown", nil, "Markdown body block (repeatable)")
	cmd.Flags().StringArrayVar(&f.collapsibles, "collapsible", nil, "Collapsible panel as title=content (repeatable)")
	cmd.Flags().BoolVar(&f.divider, "divider", false, "Insert a divider between metadata and markdown blocks")
}

func (f *cardFlags) buildCard(language string) (*card.Card, error) {
	if strings.TrimSpace(f.title) == "" {
		return nil, errors.New("--title is required")
	}

	b := card.NewBuilder(card.WithLanguage(language))

	var headerOpts []card.HeaderOption
	if f.status != "" {
		headerOpts = append(headerOpts, card.WithStatus(f.status))
	}
	if f.color != "" {
		headerOpts = append(headerOpts, card.WithColor(f.color))
	}
	if f.subtitle != "" {
		headerOpts = append(headerOpts, card.WithSubtitle(f.subtitle))
	}
	b.Header(f.title, headerOpts...)

	for _, pair := range f.metadata {
		key, value, err := splitPair(pair)
		if err != nil {
			return nil, fmt.Errorf("--metadata: %w", err)
		}
		b.Metadata(key, value)
	}
	if f.divider && len(f.metadata) > 0 && len(f.markdown) > 0 {
		b.Divider()
	}
	for _, text := range f.markdown {
		b.Markdown(text)
	}
	for _, pair := range f.collapsibles {
		title, content, err := splitPair(pair)
		if err != nil {
			return nil, fmt.Errorf("--collapsible: %w", err)
		}
		b.Collapsible(title, content, false)
	}

	return b.Build()
}

func splitPair(pair string) (string, string, error) {
	key, value, ok := strings.Cut(pair, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", fmt.Errorf("expected key=value, got %q", pair)
	}
	return key, value, nil
}
