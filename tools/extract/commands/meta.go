package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/enrich/enrichimpl"
)

var metaLink string

func init() {
	metaCmd.Flags().StringVar(&metaLink, "link", "", "Post permalink, when the saved page has no og:url.")
	rootCmd.AddCommand(metaCmd)
}

var metaCmd = &cobra.Command{
	Use:   "meta <post.html>",
	Short: "Prints the enrichment read from a saved post page.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		enrichment, err := enrichimpl.Parse(page, metaLink)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), enrichment)
	},
}
