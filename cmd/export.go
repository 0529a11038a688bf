package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/anvu/studyglass/internal/store"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the saved study data as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		raw, found, err := st.StateRepo().Load(cmd.Context())
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no saved data at %s", dbPath)
		}

		var pretty bytes.Buffer
		if err := json.Indent(&pretty, raw, "", "  "); err != nil {
			// Blob is not valid JSON; dump it as-is so nothing is lost.
			fmt.Println(string(raw))
			return nil
		}
		fmt.Println(pretty.String())
		return nil
	},
}
