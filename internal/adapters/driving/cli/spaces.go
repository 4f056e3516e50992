package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var spacesJSON bool

var spacesCmd = &cobra.Command{
	Use:   "spaces",
	Short: "List wiki spaces",
	Long:  `Lists every wiki space visible to the configured identity.`,
	Args:  cobra.NoArgs,
	RunE:  runSpaces,
}

func init() {
	spacesCmd.Flags().BoolVar(&spacesJSON, "json", false, "output spaces as JSON")
	rootCmd.AddCommand(spacesCmd)
}

func runSpaces(cmd *cobra.Command, _ []string) error {
	if directoryService == nil {
		return errors.New("directory service not configured")
	}

	spaces, err := directoryService.Spaces(context.Background())
	if err != nil {
		return fmt.Errorf("listing spaces failed: %w", err)
	}

	if spacesJSON {
		data, err := json.MarshalIndent(spaces, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal spaces: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(spaces) == 0 {
		cmd.Println("No spaces found.")
		return nil
	}

	cmd.Printf("%d space(s):\n", len(spaces))
	for _, s := range spaces {
		cmd.Printf("  %-12s %s (%s)\n", s.Key, s.Name, s.Type)
	}
	return nil
}
