package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"newsie/internal/markdown"
	"newsie/internal/newsletter"

	"github.com/spf13/cobra"
)

// renderCmd rebuilds the HTML and text artifacts from a saved draft, so an
// edited draft can be re-rendered without another generation call.
var renderCmd = &cobra.Command{
	Use:   "render <draft.md>",
	Short: "Re-render newsletter artifacts from a saved draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		draft, err := markdown.ParseFile(args[0])
		if err != nil {
			return err
		}
		d := newsletter.Data{
			Fields:  draft.Fields,
			Brand:   draft.Brand,
			CTALink: draft.CTALink,
		}
		html, err := newsletter.RenderHTML(d)
		if err != nil {
			return err
		}
		text, err := newsletter.RenderText(d)
		if err != nil {
			return err
		}

		base := strings.TrimSuffix(args[0], filepath.Ext(args[0]))
		if base == "" {
			base = "newsletter_" + time.Now().UTC().Format("20060102")
		}
		htmlPath := base + ".html"
		textPath := base + ".txt"
		if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
			return err
		}
		if err := os.WriteFile(textPath, []byte(text), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Rendered: %s\n", htmlPath)
		fmt.Fprintf(cmd.OutOrStdout(), "Rendered: %s\n", textPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
}
