package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var storeURL string

var rootCmd = &cobra.Command{
	Use:          "stickerctl",
	Short:        "Offline tooling for sticker scenes and the remote store",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeURL,
		"store", envOr("STORE_URL", "http://localhost:3004"), "store service base URL")
	rootCmd.AddCommand(renderCmd, thumbCmd, publishCmd, listCmd)
}

func envOr(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

// writeOut writes to the given file, or stdout when the path is empty.
func writeOut(path, content string) error {
	if path == "" {
		fmt.Println(content)
		return nil
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
