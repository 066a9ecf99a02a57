package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boxworks/gobox/internal/box"
)

func newTrashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trash",
		Short: "Work with the Box trash",
	}

	cmd.AddCommand(newTrashListCmd())
	cmd.AddCommand(newTrashRestoreCmd())
	cmd.AddCommand(newTrashPurgeCmd())
	return cmd
}

func newTrashListCmd() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the items in the trash",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := connectAccount(cmd)
			if err != nil {
				return err
			}

			items, err := conn.TrashedItems(cmd.Context(), box.ItemOptions{Limit: limit, Offset: offset})
			if err != nil {
				return err
			}

			for _, item := range items.Entries {
				fmt.Printf("%-8s %-14s %s\n", item.Type, item.ID, item.Name)
			}
			fmt.Printf("%d of %d trashed items\n", len(items.Entries), items.TotalCount)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "maximum number of items to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "item offset to start at")
	return cmd
}

func newTrashRestoreCmd() *cobra.Command {
	var name, parentID string
	var isFile bool

	cmd := &cobra.Command{
		Use:   "restore <item-id>",
		Short: "Restore a trashed item",
		Long: `Restores a trashed folder (default) or file back to its original
location, or to a new parent when the original location is gone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := connectAccount(cmd)
			if err != nil {
				return err
			}

			if isFile {
				file, err := conn.RestoreTrashedFile(cmd.Context(), args[0], name, parentID)
				if err != nil {
					return err
				}
				fmt.Printf("Restored file %q with id %s\n", file.Name, file.ID)
				return nil
			}

			folder, err := conn.RestoreTrashedFolder(cmd.Context(), args[0], name, parentID)
			if err != nil {
				return err
			}
			fmt.Printf("Restored folder %q with id %s\n", folder.Name, folder.ID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&isFile, "file", false, "the item is a file, not a folder")
	cmd.Flags().StringVar(&name, "name", "", "rename the item on restore")
	cmd.Flags().StringVar(&parentID, "parent", "", "restore into this folder instead of the original location")
	return cmd
}

func newTrashPurgeCmd() *cobra.Command {
	var isFile bool

	cmd := &cobra.Command{
		Use:   "purge <item-id>",
		Short: "Permanently delete a trashed item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := connectAccount(cmd)
			if err != nil {
				return err
			}

			if isFile {
				if err := conn.DeleteTrashedFile(cmd.Context(), args[0]); err != nil {
					return err
				}
			} else {
				if err := conn.DeleteTrashedFolder(cmd.Context(), args[0]); err != nil {
					return err
				}
			}
			fmt.Printf("Permanently deleted %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&isFile, "file", false, "the item is a file, not a folder")
	return cmd
}
