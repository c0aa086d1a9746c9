package main

import (
	"os"

	"sticker-viewer/internal/scene"

	"github.com/spf13/cobra"
)

var (
	thumbOut     string
	thumbDataURI bool
)

var thumbCmd = &cobra.Command{
	Use:   "thumb <file.json>",
	Short: "Generate the compact thumbnail of a scene file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		project, err := scene.Normalize(data)
		if err != nil {
			return err
		}
		if thumbDataURI {
			return writeOut(thumbOut, scene.Thumbnail(project))
		}
		return writeOut(thumbOut, scene.ThumbnailSVG(project))
	},
}

func init() {
	thumbCmd.Flags().StringVarP(&thumbOut, "out", "o", "", "output file (default stdout)")
	thumbCmd.Flags().BoolVar(&thumbDataURI, "data-uri", false, "emit an inlineable data reference instead of raw SVG")
}
