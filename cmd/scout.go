package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/apes-labs/scout-cli/internal/model"
	"github.com/apes-labs/scout-cli/internal/pipeline"
	"github.com/apes-labs/scout-cli/internal/report"
)

var scoutCmd = &cobra.Command{
	Use:   "scout <query>",
	Short: "Run a scouting query end to end",
	Long:  "Analyzes the query, fans out searches, consolidates candidate profiles, and prints the scouting dossier.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		query := strings.Join(args, " ")

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		maxResults, _ := cmd.Flags().GetInt("max-results")
		deep, _ := cmd.Flags().GetBool("deep")
		mode, _ := cmd.Flags().GetString("mode")
		noCache, _ := cmd.Flags().GetBool("no-cache")

		result, err := env.Pipeline.Run(ctx, query, pipeline.Options{
			MaxResults: maxResults,
			Deep:       deep,
			Mode:       mode,
			NoCache:    noCache,
		})
		if err != nil {
			return eris.Wrap(err, "scout")
		}

		if csvPath, _ := cmd.Flags().GetString("csv"); csvPath != "" {
			if err := writeExport(csvPath, result, report.WriteCSV); err != nil {
				return eris.Wrap(err, "write csv")
			}
		}
		if xlsxPath, _ := cmd.Flags().GetString("xlsx"); xlsxPath != "" {
			if err := writeExport(xlsxPath, result, report.WriteXLSX); err != nil {
				return eris.Wrap(err, "write xlsx")
			}
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		fmt.Println(result.Report)
		return nil
	},
}

func writeExport(path string, result *model.ScoutResult, write func(w io.Writer, res *model.ScoutResult) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, result); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func init() {
	scoutCmd.Flags().Int("max-results", 0, "results per search query (default from config)")
	scoutCmd.Flags().Bool("deep", false, "fetch and parse top result pages")
	scoutCmd.Flags().String("mode", "", "force a site category for query expansion (transfermarkt, whoscored, fotmob, espn)")
	scoutCmd.Flags().Bool("no-cache", false, "skip the report cache and run fresh")
	scoutCmd.Flags().Bool("json", false, "print the full result as JSON instead of the dossier")
	scoutCmd.Flags().String("csv", "", "also write a CSV export to this path")
	scoutCmd.Flags().String("xlsx", "", "also write an XLSX export to this path")
	rootCmd.AddCommand(scoutCmd)
}
