package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boxworks/gobox/internal/box"
)

func newFoldersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folders",
		Short: "Work with Box folders",
	}

	cmd.AddCommand(newFoldersListCmd())
	cmd.AddCommand(newFoldersInfoCmd())
	cmd.AddCommand(newFoldersCreateCmd())
	cmd.AddCommand(newFoldersDeleteCmd())
	return cmd
}

func newFoldersListCmd() *cobra.Command {
	var limit, offset int
	var fields []string

	cmd := &cobra.Command{
		Use:   "list [folder-id]",
		Short: "List the items in a folder",
		Long:  `Lists the items in a folder. Without an argument the root folder (id 0) is listed.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folderID := "0"
			if len(args) > 0 {
				folderID = args[0]
			}

			conn, err := connectAccount(cmd)
			if err != nil {
				return err
			}

			items, err := conn.FolderItems(cmd.Context(), folderID, box.ItemOptions{
				Fields: fields,
				Limit:  limit,
				Offset: offset,
			})
			if err != nil {
				return err
			}

			for _, item := range items.Entries {
				fmt.Printf("%-8s %-14s %s\n", item.Type, item.ID, item.Name)
			}
			fmt.Printf("%d of %d items\n", len(items.Entries), items.TotalCount)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "maximum number of items to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "item offset to start at")
	cmd.Flags().StringSliceVar(&fields, "fields", nil, "item fields to request")
	return cmd
}

func newFoldersInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <folder-id>",
		Short: "Show information about a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := connectAccount(cmd)
			if err != nil {
				return err
			}

			folder, err := conn.FolderInfo(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(folder)
		},
	}
}

func newFoldersCreateCmd() *cobra.Command {
	var parentID string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := connectAccount(cmd)
			if err != nil {
				return err
			}

			folder, err := conn.CreateFolder(cmd.Context(), args[0], parentID)
			if err != nil {
				return err
			}
			fmt.Printf("Created folder %q with id %s\n", folder.Name, folder.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&parentID, "parent", "0", "id of the parent folder")
	return cmd
}

func newFoldersDeleteCmd() *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "delete <folder-id>",
		Short: "Move a folder to the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := connectAccount(cmd)
			if err != nil {
				return err
			}

			if err := conn.DeleteFolder(cmd.Context(), args[0], box.DeleteOptions{Recursive: recursive}); err != nil {
				return err
			}
			fmt.Printf("Deleted folder %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&recursive, "recursive", false, "delete the folder even when it is not empty")
	return cmd
}
