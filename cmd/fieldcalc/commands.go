package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"Billios/internal/calc/fieldtest"
	"Billios/internal/calc/importer"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the fieldcalc command tree.
func NewRootCommand(log *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "fieldcalc",
		Short:         "Sand-cone field density calculations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("json", false, "print JSON instead of a table")
	root.AddCommand(newCalcCommand(), newImportCommand(log), newVersionCommand())
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "fieldcalc %s\n", version)
		},
	}
}

func newCalcCommand() *cobra.Command {
	var in fieldtest.Input
	var sandInCone, sandDensity, specificGravity float64

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate a single field density test",
		Example: `  fieldcalc calc --cone-pre 14.65 --cone-post 8.75 --soil 4.65 \
    --wet 1600 --dry 1575 --tare 1400 --lab-max 135.6 --left-on-sieve 100 --pre-sieve 500`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("sand-in-cone") {
				in.SandInCone = fieldtest.Float(sandInCone)
			}
			if flags.Changed("sand-density") {
				in.SandDensity = fieldtest.Float(sandDensity)
			}
			if flags.Changed("specific-gravity") {
				in.SpecificGravity = fieldtest.Float(specificGravity)
			}

			res, err := fieldtest.Calculate(in)
			if err != nil {
				return err
			}
			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			renderResult(cmd.OutOrStdout(), res)
			return nil
		},
	}

	f := cmd.Flags()
	f.Float64Var(&in.ConePreTest, "cone-pre", 0, "cone weight before the test")
	f.Float64Var(&in.ConePostTest, "cone-post", 0, "cone weight after the test")
	f.Float64Var(&in.Soil, "soil", 0, "weight of soil removed from the hole")
	f.Float64Var(&in.WetWeight, "wet", 0, "moisture sample wet weight")
	f.Float64Var(&in.DryWeight, "dry", 0, "moisture sample dry weight")
	f.Float64Var(&in.TarePan, "tare", 0, "pan tare weight")
	f.Float64Var(&in.LabMax, "lab-max", 0, "lab maximum dry density")
	f.Float64Var(&in.LeftOnSieveWeight, "left-on-sieve", 0, "oversize weight left on the sieve")
	f.Float64Var(&in.PreSieveRockCorrection, "pre-sieve", 0, "sample weight before sieving (0 skips rock correction)")
	f.Float64Var(&sandInCone, "sand-in-cone", fieldtest.SandInCone, "sand in cone override")
	f.Float64Var(&sandDensity, "sand-density", fieldtest.SandDensity, "sand density override")
	f.Float64Var(&specificGravity, "specific-gravity", fieldtest.SpecificGravity, "specific gravity override")
	for _, name := range []string{"cone-pre", "cone-post", "soil", "wet", "dry", "tare", "lab-max"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newImportCommand(log *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Calculate every field test in a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			res, err := importer.Import(f, fieldtest.DefaultCalibration())
			if err != nil {
				return err
			}
			for _, s := range res.Skipped {
				log.Warn("row skipped", "row", s.Row, "error", s.Error)
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			renderRows(cmd.OutOrStdout(), res.Results)
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderResult(w io.Writer, res fieldtest.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Value", "Result"})
	t.AppendRows([]table.Row{
		{"Sand used", res.SandUsed},
		{"Wet density", res.WetDensity},
		{"Moisture content", res.MoistureContent},
		{"Dry density", res.DryDensity},
		{"Compaction %", res.Compaction},
	})
	if res.RockCorrected {
		t.AppendRows([]table.Row{
			{"Rock correction", res.RockCorrection},
			{"Corrected lab max", res.LabMaxCorrection},
			{"Corrected compaction %", res.CorrectedCompaction},
		})
	}
	t.Render()
}

func renderRows(w io.Writer, rows []importer.RowResult) {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Row", "Dry density", "Moisture", "Compaction %", "Corrected lab max", "Corrected %"})
	for _, r := range rows {
		row := table.Row{r.Row, r.DryDensity, r.MoistureContent, r.Compaction, "-", "-"}
		if r.RockCorrected {
			row[4] = r.LabMaxCorrection
			row[5] = r.CorrectedCompaction
		}
		t.AppendRow(row)
	}
	t.Render()
}
