package cmd

import (
	"fmt"
	"os"

	"newsie/internal/model"
	"newsie/internal/newsletter"

	"github.com/spf13/cobra"
)

// parseCmd parses a raw generation response into labeled fields, for
// inspecting what the parser would extract from a saved model output.
var parseCmd = &cobra.Command{
	Use:   "parse <response.txt>",
	Short: "Debug: parse a raw model response and print its fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		fields := newsletter.Parse(string(raw))
		for _, label := range model.AllLabels {
			v, ok := fields[label]
			if !ok {
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", label, v)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "parsed %d of %d labels\n", len(fields), len(model.AllLabels))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
