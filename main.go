package main

import (
	"log"
	"os"

	"PixelReel/internal/state"
	"PixelReel/internal/ui"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := state.DefaultConfig()

	root := &cobra.Command{
		Use:          "pixelreel",
		Short:        "Paint pixel-grid frames and play them back as a reel",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("cell-size") {
				cfg.CellSize = 0 // use the last size picked in the editor
			}
			log.Println("Starting editor")
			return ui.RunApp(cfg)
		},
	}
	root.Flags().IntVar(&cfg.Width, "width", cfg.Width, "surface width in pixels")
	root.Flags().IntVar(&cfg.Height, "height", cfg.Height, "surface height in pixels")
	root.Flags().IntVar(&cfg.CellSize, "cell-size", cfg.CellSize, "side of one paint cell in pixels")

	root.AddCommand(newExportCmd())
	return root
}
