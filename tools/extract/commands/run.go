package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/enrich/enrichimpl"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/extractor"
)

var (
	runNetwork string
	runHTML    string
	runOut     string
	runEnrich  bool
)

func init() {
	runCmd.Flags().StringVar(&runNetwork, "network", "debug_network.json", "Saved network log (JSON array).")
	runCmd.Flags().StringVar(&runHTML, "html", "debug.html", "Saved page markup. Empty to skip DOM strategies.")
	runCmd.Flags().StringVarP(&runOut, "out", "o", "", "Write the result here instead of stdout.")
	runCmd.Flags().BoolVar(&runEnrich, "enrich", false, "Fetch post pages for DOM-only posts (network access).")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [--network debug_network.json] [--html debug.html] [-o result.json]",
	Short: "Runs the extraction cascade over a saved capture and prints posts or a diagnostic report.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger()

		src, err := loadFileSources(runNetwork, runHTML)
		if err != nil {
			return err
		}

		var enricher extractor.Enricher
		if runEnrich {
			enricher = enrichimpl.New(enrichimpl.Opts{Config: cfg, Logger: log})
		}
		cascade := extractor.NewCascade(extractor.Options{
			Host:             cfg.Extractor.Host,
			Markers:          cfg.Extractor.Markers,
			MaxDepth:         cfg.Extractor.MaxDepth,
			AggressiveLimit:  cfg.Extractor.AggressiveLimit,
			EnrichTimeout:    cfg.Extractor.EnrichTimeout,
			SnippetLength:    cfg.Extractor.SnippetLength,
			ReadTimeout:      cfg.Browser.ReadTimeout,
			HasSessionCookie: cfg.Browser.SessionID != "",
			Delay:            extractor.RandomDelay{Min: cfg.Extractor.DelayMin, Max: cfg.Extractor.DelayMax},
		}, enricher, log)

		result := cascade.Run(cmd.Context(), src)
		log.Info("Extraction finished", "strategy", result.Strategy, "count", len(result.Posts))

		var out io.Writer = cmd.OutOrStdout()
		if runOut != "" {
			f, err := os.Create(runOut)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		return writeJSON(out, result)
	},
}
