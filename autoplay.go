package main

import (
	"github.com/spf13/cobra"

	"github.com/ZibingZhang/Minesweeper/experiments"
)

func newAutoplayCommand() *cobra.Command {
	var (
		games      int
		seed       uint64
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "autoplay",
		Short: "Play unattended solver games and record win rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := experiments.Config{Games: games, Seed: seed}
			if configPath != "" {
				loaded, err := experiments.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
				if games > 0 {
					cfg.Games = games
				}
				if seed != 0 {
					cfg.Seed = seed
				}
			}
			return experiments.Run(cfg)
		},
	}

	cmd.Flags().IntVarP(&games, "games", "n", 0, "games per preset (default 30)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (default: current time)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML preset configuration file")
	return cmd
}
