package main

import (
	"context"
	"fmt"

	"sticker-viewer/internal/catalog"

	"github.com/spf13/cobra"
)

var (
	listScope  string
	listSearch string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the remote catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := catalog.NewStoreClient(storeURL)
		svc := catalog.NewService(client)

		items, err := svc.ListAll(context.Background())
		if err != nil {
			return err
		}

		var kind catalog.Kind
		switch listScope {
		case "projects":
			kind = catalog.KindProject
		case "library":
			kind = catalog.KindVector
		}

		for _, item := range catalog.Filter(items, listSearch, kind, nil) {
			uploaded := "-"
			if !item.UploadedAt.IsZero() {
				uploaded = item.UploadedAt.Format("2006-01-02 15:04")
			}
			fmt.Printf("%-8s %10d  %-16s  %s\n", item.Kind, item.Size, uploaded, item.ID)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listScope, "scope", "", "filter by scope: projects or library")
	listCmd.Flags().StringVar(&listSearch, "search", "", "case-insensitive id search")
}
