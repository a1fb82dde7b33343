package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Belphemur/ShowFinder/internal/config"
)

func newEpisodesCommand(cfg *config.Config) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "episodes <show-id>",
		Short: "List the episodes of a show",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			showID, err := strconv.Atoi(args[0])
			if err != nil || showID < 1 {
				return fmt.Errorf("invalid show id %q: must be a positive integer", args[0])
			}

			_, episodeList := pipelines(cfg)
			episodes := episodeList.Fetch(cmd.Context(), showID)

			if asJSON {
				return writeJSON(cmd, episodes)
			}
			if len(episodes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No episodes found.")
				return nil
			}

			rows := make([][]string, 0, len(episodes))
			for _, ep := range episodes {
				rows = append(rows, []string{
					strconv.Itoa(ep.Season),
					strconv.Itoa(ep.Number),
					ep.Name,
					strconv.Itoa(ep.ID),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]column{
				{header: "Season", align: alignRight},
				{header: "Episode", align: alignRight},
				{header: "Name"},
				{header: "ID", align: alignRight},
			}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the episodes as JSON")
	return cmd
}
