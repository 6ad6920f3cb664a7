// Package main provides the CLI entry point for sheetsplice.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice"
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/formula"
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/models"
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/output"
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/parser"
	"github.com/ukaji3/sheetsplice-go/pkg/sheetsplice/writer"
)

var (
	outputPath string
	pretty     bool
	verbose    bool
	sheetName  string
	scriptPath string
	refErrors  bool
	edit       models.Edit
	op, axis   string
)

var log = logrus.New()

func main() {
	rootCmd := &cobra.Command{
		Use:   "sheetsplice",
		Short: "Insert, delete and move rows or columns in Excel files",
		Long: `sheetsplice applies structural edits to a worksheet and keeps merged
regions, conditional formatting, data validations, print areas and
formulas pointing at the same cells.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(os.Stderr)
			log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every edit phase")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().StringVar(&sheetName, "sheet", "", "Worksheet name (default: first sheet)")

	applyCmd := &cobra.Command{
		Use:   "apply [input.xlsx]",
		Short: "Apply edits and save the workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runApply,
	}
	applyCmd.Flags().StringVar(&op, "op", "", "Edit operation: delete, insert, move")
	applyCmd.Flags().StringVar(&axis, "axis", "columns", "Edit axis: columns, rows")
	applyCmd.Flags().IntVar(&edit.At, "at", 0, "First position to delete, or the position to insert before")
	applyCmd.Flags().IntVar(&edit.Count, "count", 1, "Number of rows or columns to delete or insert")
	applyCmd.Flags().IntVar(&edit.From, "from", 0, "Position to move")
	applyCmd.Flags().IntVar(&edit.To, "to", 0, "Destination of the move")
	applyCmd.Flags().StringVar(&scriptPath, "script", "", "YAML file listing the edits to apply")
	applyCmd.Flags().BoolVar(&refErrors, "ref-errors", false, "Write #REF! for formula references whose target was deleted")
	applyCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output workbook path (default: overwrite input)")
	applyCmd.MarkFlagsMutuallyExclusive("script", "op")

	inspectCmd := &cobra.Command{
		Use:   "inspect [input.xlsx]",
		Short: "Print the decoded worksheets as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	inspectCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")

	rootCmd.AddCommand(applyCmd, inspectCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runApply(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	s, err := buildScript()
	if err != nil {
		return err
	}

	f, err := parser.Open(inputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	sheet := s.Sheet
	if sheetName != "" {
		sheet = sheetName
	}
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	ws, err := parser.LoadWorksheet(f, sheet)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	opts := sheetsplice.DefaultOptions()
	opts.CollapsedFormulas = s.CollapsedFormulas
	opts.Logger = log
	reports, err := sheetsplice.ApplyAll(ws, s.Edits, opts)
	logDiagnostics(reports)
	if err != nil {
		return err
	}

	if err := writer.SaveWorksheet(f, ws, log); err != nil {
		return err
	}
	if outputPath != "" {
		err = f.SaveAs(outputPath)
	} else {
		err = f.Save()
	}
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	jsonData, err := output.ReportToJSON(sheet, reports, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Println(string(jsonData))
	return nil
}

// buildScript returns the edits to run, from --script or from the edit flags.
func buildScript() (*script, error) {
	var (
		s   *script
		err error
	)
	if scriptPath != "" {
		if s, err = loadScript(scriptPath); err != nil {
			return nil, err
		}
	} else {
		if op == "" {
			return nil, fmt.Errorf("either --op or --script is required")
		}
		e := edit
		e.Op, e.Axis = models.Op(op), models.Axis(axis)
		s = &script{Edits: []models.Edit{e}}
	}
	if refErrors {
		s.CollapsedFormulas = formula.RefError
	}
	return s, nil
}

func logDiagnostics(reports []*sheetsplice.Report) {
	for _, r := range reports {
		for _, d := range r.Diagnostics {
			entry := log.WithFields(logrus.Fields{"edit": r.Edit.String(), "kind": string(d.Kind), "target": d.Target})
			if d.Kind == sheetsplice.CollapsedReference {
				entry.Warn(d.Message)
			} else {
				entry.Info(d.Message)
			}
		}
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	wb, err := parser.LoadWorkbook(args[0])
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	if sheetName != "" {
		ws, ok := wb.Sheets[sheetName]
		if !ok {
			return fmt.Errorf("%w: %q", parser.ErrSheetNotFound, sheetName)
		}
		wb.Sheets = map[string]*models.Worksheet{sheetName: ws}
	}

	jsonData, err := output.WorkbookToJSON(wb, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Println(string(jsonData))
	return nil
}
