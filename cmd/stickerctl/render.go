package main

import (
	"os"

	"sticker-viewer/internal/scene"

	"github.com/spf13/cobra"
)

var renderOut string

var renderCmd = &cobra.Command{
	Use:   "render <file.json>",
	Short: "Render a scene file to its SVG view",
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
		svg := scene.NewRenderer().RenderDocument(project, scene.NewViewTransform())
		return writeOut(renderOut, svg)
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file (default stdout)")
}
