package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boxworks/gobox/internal/box"
)

func newSearchCmd() *cobra.Command {
	var limit, offset int
	var itemType string
	var ancestors []string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search for files and folders",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := connectAccount(cmd)
			if err != nil {
				return err
			}

			results, err := conn.Search(cmd.Context(), strings.Join(args, " "), box.SearchOptions{
				Type:              itemType,
				AncestorFolderIDs: ancestors,
				Limit:             limit,
				Offset:            offset,
			})
			if err != nil {
				return err
			}

			for _, item := range results.Entries {
				fmt.Printf("%-8s %-14s %s\n", item.Type, item.ID, item.Name)
			}
			fmt.Printf("%d of %d results\n", len(results.Entries), results.TotalCount)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 30, "maximum number of results to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "result offset to start at")
	cmd.Flags().StringVar(&itemType, "type", "", "restrict results to a type: file or folder")
	cmd.Flags().StringSliceVar(&ancestors, "ancestor", nil, "restrict results to descendants of these folder ids")
	return cmd
}
