package main

import (
	"github.com/spf13/cobra"

	"github.com/Belphemur/ShowFinder/internal/client"
	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/services"
)

// pipelines builds the two display pipelines on top of one TVmaze client.
func pipelines(cfg *config.Config) (services.ShowSearch, services.EpisodeList) {
	c := client.NewClient(cfg)
	return services.NewShowSearch(c), services.NewEpisodeList(c)
}

func newRootCommand(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "showfinder",
		Short:         "Search TV shows and browse their episodes",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newServeCommand(cfg))
	rootCmd.AddCommand(newSearchCommand(cfg))
	rootCmd.AddCommand(newEpisodesCommand(cfg))

	return rootCmd
}
