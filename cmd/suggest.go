package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/access-console/internal/catalog"
	"github.com/frahmantamala/access-console/internal/suggestion"
	"github.com/frahmantamala/access-console/pkg/logger"
)

var (
	suggestTitle string
	suggestJSON  bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest systems for a job title",
	Long:  `Ask the configured suggestion provider which catalog systems fit a job title`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		lg := logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
		c, err := catalog.FromConfig(cfg.Catalog)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		model, err := suggestion.NewModel(ctx, cfg.Suggestion)
		if err != nil {
			return err
		}

		client := suggestion.NewClient(model, cfg.Suggestion.Timeout, lg)
		ids, err := client.Suggest(ctx, suggestTitle, c.List())
		if err != nil {
			return err
		}
		if suggestJSON {
			return printSuggestionsJSON(cmd.OutOrStdout(), ids)
		}
		return printSuggestions(cmd.OutOrStdout(), c, ids)
	},
}

func printSuggestions(out io.Writer, c *catalog.Catalog, ids []string) error {
	if len(ids) == 0 {
		_, err := fmt.Fprintln(out, "no suggestions")
		return err
	}

	names := make([]string, len(ids))
	for i, id := range ids {
		s, _ := c.Get(id)
		names[i] = fmt.Sprintf("%s (%s)", id, s.Name)
	}
	_, err := fmt.Fprintln(out, strings.Join(names, ", "))
	return err
}

func printSuggestionsJSON(out io.Writer, ids []string) error {
	return json.NewEncoder(out).Encode(map[string][]string{"suggested_permissions": ids})
}

func init() {
	suggestCmd.Flags().StringVar(&suggestTitle, "title", "", "Job title to suggest systems for")
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "Print the suggestions as JSON")
	_ = suggestCmd.MarkFlagRequired("title")
}
