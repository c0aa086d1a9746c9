package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"sticker-viewer/internal/catalog"
	"sticker-viewer/internal/scene"

	"github.com/spf13/cobra"
)

var (
	publishKind   string
	publishName   string
	publishFolder string
	publishKey    string
)

var publishCmd = &cobra.Command{
	Use:   "publish <file.json>",
	Short: "Upload a scene file to the remote store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		if _, err := scene.Normalize(data); err != nil {
			return err
		}

		// Name and folder override the payload's own fields; the store
		// requires a name.
		if publishName != "" || publishFolder != "" {
			var obj map[string]any
			if err := json.Unmarshal(data, &obj); err != nil {
				return err
			}
			if publishName != "" {
				obj["name"] = publishName
			}
			if publishFolder != "" {
				obj["folder"] = publishFolder
			}
			if data, err = json.Marshal(obj); err != nil {
				return err
			}
		}

		kind := catalog.KindVector
		if publishKind == "project" {
			kind = catalog.KindProject
		}

		client := catalog.NewStoreClient(storeURL)
		id, err := client.Publish(context.Background(), kind, data, publishKey)
		if err != nil {
			var pubErr *catalog.PublishError
			if errors.As(err, &pubErr) {
				for _, detail := range pubErr.Details {
					fmt.Fprintln(os.Stderr, "  -", detail)
				}
			}
			return err
		}

		fmt.Println(id)
		return nil
	},
}

func init() {
	publishCmd.Flags().StringVar(&publishKind, "kind", "vector", "asset kind: vector or project")
	publishCmd.Flags().StringVar(&publishName, "name", "", "display name stored with the asset")
	publishCmd.Flags().StringVar(&publishFolder, "folder", "", "store folder")
	publishCmd.Flags().StringVar(&publishKey, "key", os.Getenv("PUBLISH_KEY"), "publish key header")
}
