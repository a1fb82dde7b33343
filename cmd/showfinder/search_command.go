package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/render"
	"github.com/Belphemur/ShowFinder/internal/widget"
)

const summaryWidth = 60

func newSearchCommand(cfg *config.Config) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search shows by title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := widget.NormalizeQuery(strings.Join(args, " "))
			if query == "" {
				return errors.New("query must not be empty")
			}

			search, _ := pipelines(cfg)
			shows := search.Fetch(cmd.Context(), query)

			if asJSON {
				return writeJSON(cmd, shows)
			}
			if len(shows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No shows found.")
				return nil
			}

			rows := make([][]string, 0, len(shows))
			for _, show := range shows {
				rows = append(rows, []string{
					strconv.Itoa(show.ID),
					show.Name,
					render.PlainSummary(show.Summary),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]column{
				{header: "ID", align: alignRight},
				{header: "Name"},
				{header: "Summary", maxWidth: summaryWidth},
			}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the shows as JSON")
	return cmd
}
