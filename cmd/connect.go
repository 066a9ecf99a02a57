package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/boxworks/gobox/internal/box"
)

// connectAccount builds a client and returns a connection for the selected
// account. It relies on a stored or configured refresh token; commands that
// need the interactive browser flow use the auth command first.
func connectAccount(cmd *cobra.Command) (*box.Connection, error) {
	client, err := newBoxClient(nil)
	if err != nil {
		return nil, err
	}

	conn := client.GetConnection(flagAccount)

	sess := conn.Session()
	if sess.State() == box.StateUnset && sess.RefreshToken() == "" {
		return nil, fmt.Errorf("account %q has no stored credentials, run 'gobox auth' first", flagAccount)
	}

	if err := conn.Ready(cmd.Context()); err != nil {
		return nil, fmt.Errorf("account %q is not authorized (run 'gobox auth'): %w", flagAccount, err)
	}
	return conn, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
