package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/colonysim-go/internal/application/colony/commands"
	"github.com/andrescamacho/colonysim-go/internal/application/colony/dtos"
	"github.com/andrescamacho/colonysim-go/internal/application/colony/queries"
	"github.com/andrescamacho/colonysim-go/internal/domain/shared"
)

// NewColonyCommand creates the colony command with subcommands
func NewColonyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "colony",
		Short: "Inspect and simulate planetary colonies",
		Long: `Inspect stored colony snapshots and run what-if simulations.

Examples:
  colonysim colony import colony.json
  colonysim colony list
  colonysim colony status 1021
  colonysim colony simulate 1021 --for 24h
  colonysim colony export 1021 > colony.json`,
	}

	cmd.AddCommand(newColonyStatusCommand())
	cmd.AddCommand(newColonyListCommand())
	cmd.AddCommand(newColonySimulateCommand())
	cmd.AddCommand(newColonyImportCommand())
	cmd.AddCommand(newColonyExportCommand())
	cmd.AddCommand(newColonyDeleteCommand())

	return cmd
}

func newColonyStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <colony-id>",
		Short: "Show a colony's derived status at its current sim time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			colonyID, err := parseColonyID(args[0])
			if err != nil {
				return err
			}

			app, err := newApplication()
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := send[*queries.GetColonyStatusResponse](commandContext(cmd), app,
				&queries.GetColonyStatusQuery{ColonyID: colonyID})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outputJSON {
				summary := dtos.NewColonySummary(result.Colony, result.Status)
				return printJSON(out, struct {
					dtos.ColonySummary
					Pins []dtos.PinStatusView `json:"pins"`
				}{summary, dtos.NewPinStatusViews(result.Pins)})
			}

			formatter := NewTreeFormatter(isTerminal(out), false)
			fmt.Fprint(out, formatter.FormatColony(result.Colony, result.Status, result.Pins))
			return nil
		},
	}
}

func newColonyListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List a character's colonies, most urgent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			character, err := resolveCharacterID()
			if err != nil {
				return err
			}

			app, err := newApplication()
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := send[*queries.ListColoniesResponse](commandContext(cmd), app,
				&queries.ListColoniesQuery{CharacterID: character})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outputJSON {
				return printJSON(out, result.Colonies)
			}
			if len(result.Colonies) == 0 {
				fmt.Fprintf(out, "No colonies stored for character %d\n", character)
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "COLONY\tPLANET\tTYPE\tSTATUS\tPINS\tSIM TIME\tPROBLEM PINS")
			for _, c := range result.Colonies {
				problems := "-"
				if len(c.ProblemPinIDs) > 0 {
					problems = fmt.Sprint(c.ProblemPinIDs)
				}
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%d\t%s\t%s\n",
					c.ColonyID, c.PlanetID, c.PlanetType, c.Status, c.PinCount,
					c.CurrentSimTime.Format(time.RFC3339), problems)
			}
			return w.Flush()
		},
	}
}

func newColonySimulateCommand() *cobra.Command {
	var (
		until      string
		horizon    time.Duration
		activate   []int64
		deactivate []int64
		dropRoutes []int64
		commit     bool
	)

	cmd := &cobra.Command{
		Use:   "simulate <colony-id>",
		Short: "Run a what-if simulation of a colony",
		Long: `Advance a copy of the stored colony through extraction and production
events and show how its status changes. Pin and route edits apply to the
copy only. Use --commit to store the simulated state.

Examples:
  colonysim colony simulate 1021 --for 48h
  colonysim colony simulate 1021 --until 2025-01-16T00:00:00Z --deactivate 7
  colonysim colony simulate 1021 --drop-route 3 --drop-route 4
  colonysim colony simulate 1021 --until now --commit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			colonyID, err := parseColonyID(args[0])
			if err != nil {
				return err
			}

			request := &commands.SimulateColonyCommand{
				ColonyID:   colonyID,
				Horizon:    horizon,
				Activate:   activate,
				Deactivate: deactivate,
				DropRoutes: dropRoutes,
				Commit:     commit,
			}
			if until != "" {
				target, err := parseUntil(until)
				if err != nil {
					return err
				}
				request.Until = &target
			}

			app, err := newApplication()
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := send[*commands.SimulateColonyResponse](commandContext(cmd), app, request)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outputJSON {
				return printJSON(out, struct {
					RunID     string               `json:"run_id"`
					Before    string               `json:"before"`
					After     dtos.ColonySummary   `json:"after"`
					Pins      []dtos.PinStatusView `json:"pins"`
					Events    int                  `json:"events_processed"`
					Extracted map[int32]int        `json:"extracted"`
					Produced  map[int32]int        `json:"produced"`
					Consumed  map[int32]int        `json:"consumed"`
					Committed bool                 `json:"committed"`
				}{
					RunID:     result.RunID,
					Before:    result.Before.Kind.String(),
					After:     dtos.NewColonySummary(result.Colony, result.After),
					Pins:      dtos.NewPinStatusViews(result.Pins),
					Events:    result.Report.EventsProcessed,
					Extracted: result.Report.Extracted,
					Produced:  result.Report.Produced,
					Consumed:  result.Report.Consumed,
					Committed: result.Committed,
				})
			}

			formatter := NewTreeFormatter(isTerminal(out), false)
			fmt.Fprintf(out, "Run %s: %s → %s\n\n", result.RunID, result.Before.Kind, result.After.Kind)
			fmt.Fprint(out, formatter.FormatReport(result.Report))
			fmt.Fprintln(out)
			fmt.Fprint(out, formatter.FormatColony(result.Colony, result.After, result.Pins))
			if result.Committed {
				fmt.Fprintln(out, "\n✓ Simulated state committed")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&until, "until", "", "Absolute target time (RFC3339 or 'now')")
	cmd.Flags().DurationVar(&horizon, "for", 0, "Simulate this long past the current sim time (default from config)")
	cmd.Flags().Int64SliceVar(&activate, "activate", nil, "Pin IDs to activate before simulating")
	cmd.Flags().Int64SliceVar(&deactivate, "deactivate", nil, "Pin IDs to deactivate before simulating")
	cmd.Flags().Int64SliceVar(&dropRoutes, "drop-route", nil, "Route IDs to remove before simulating")
	cmd.Flags().BoolVar(&commit, "commit", false, "Store the simulated colony")
	cmd.MarkFlagsMutuallyExclusive("until", "for")

	return cmd
}

func parseUntil(value string) (time.Time, error) {
	if value == "now" {
		return shared.NewWallClock().Now(), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --until %q: expected RFC3339 or 'now'", value)
	}
	return t.UTC(), nil
}

func newColonyImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Store a colony snapshot from JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := readSnapshot(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			app, err := newApplication()
			if err != nil {
				return err
			}
			defer app.Close()

			result, err := send[*commands.ImportColonyResponse](commandContext(cmd), app,
				&commands.ImportColonyCommand{Snapshot: snapshot})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Colony %d imported (%s)\n", result.ColonyID, result.Status.Kind)
			return nil
		},
	}
}

func readSnapshot(stdin io.Reader, path string) (*dtos.ColonySnapshot, error) {
	var reader io.Reader = stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open snapshot: %w", err)
		}
		defer file.Close()
		reader = file
	}

	var snapshot dtos.ColonySnapshot
	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return &snapshot, nil
}

func newColonyExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <colony-id>",
		Short: "Print a stored colony as a JSON snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			colonyID, err := parseColonyID(args[0])
			if err != nil {
				return err
			}

			app, err := newApplication()
			if err != nil {
				return err
			}
			defer app.Close()

			snapshot, err := send[*dtos.ColonySnapshot](commandContext(cmd), app,
				&queries.GetColonySnapshotQuery{ColonyID: colonyID})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), snapshot)
		},
	}
}

func newColonyDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <colony-id>",
		Short: "Remove a stored colony",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			colonyID, err := parseColonyID(args[0])
			if err != nil {
				return err
			}

			app, err := newApplication()
			if err != nil {
				return err
			}
			defer app.Close()

			if _, err := app.mediator.Send(app.context(commandContext(cmd)), &commands.DeleteColonyCommand{ColonyID: colonyID}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Colony %d deleted\n", colonyID)
			return nil
		},
	}
}

// commandContext returns the command's context, or Background when run
// outside ExecuteContext
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// isTerminal reports whether out is an interactive terminal
func isTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
