package cli

import (
	"fmt"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/colonysim-go/internal/application/colony/commands"
)

// NewCatalogCommand creates the catalog command with subcommands
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage pin capacities and commodity volumes",
		Long: `Manage the type catalog used to derive storage fullness and to convert
commodity quantities into volume during simulation.

Examples:
  colonysim catalog show
  colonysim catalog set-capacity 2541 12000
  colonysim catalog set-volume 3645 0.38`,
	}

	cmd.AddCommand(newCatalogShowCommand())
	cmd.AddCommand(newCatalogSetCapacityCommand())
	cmd.AddCommand(newCatalogSetVolumeCommand())

	return cmd
}

func newCatalogShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List every known capacity and volume",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApplication()
			if err != nil {
				return err
			}
			defer app.Close()

			catalog, err := app.catalog.Snapshot(commandContext(cmd))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outputJSON {
				return printJSON(out, catalog)
			}

			typeIDs := make(map[int32]struct{})
			for typeID := range catalog.Capacities {
				typeIDs[typeID] = struct{}{}
			}
			for typeID := range catalog.Volumes {
				typeIDs[typeID] = struct{}{}
			}
			ordered := make([]int32, 0, len(typeIDs))
			for typeID := range typeIDs {
				ordered = append(ordered, typeID)
			}
			sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TYPE\tCAPACITY (m3)\tVOLUME (m3)")
			for _, typeID := range ordered {
				capacity, volume := "-", "-"
				if c, ok := catalog.CapacityFor(typeID); ok {
					capacity = strconv.Itoa(c)
				}
				if v, ok := catalog.VolumeFor(typeID); ok {
					volume = strconv.FormatFloat(v, 'g', -1, 64)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\n", typeID, capacity, volume)
			}
			return w.Flush()
		},
	}
}

func newCatalogSetCapacityCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-capacity <type-id> <capacity>",
		Short: "Set the storage capacity of a pin type",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			typeID, err := parseTypeID(args[0])
			if err != nil {
				return err
			}
			capacity, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid capacity %q", args[1])
			}

			app, err := newApplication()
			if err != nil {
				return err
			}
			defer app.Close()

			if _, err := app.mediator.Send(app.context(commandContext(cmd)),
				&commands.SetTypeCapacityCommand{TypeID: typeID, Capacity: capacity}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Type %d capacity set to %d m3\n", typeID, capacity)
			return nil
		},
	}
}

func newCatalogSetVolumeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-volume <type-id> <volume>",
		Short: "Set the unit volume of a commodity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			typeID, err := parseTypeID(args[0])
			if err != nil {
				return err
			}
			volume, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid volume %q", args[1])
			}

			app, err := newApplication()
			if err != nil {
				return err
			}
			defer app.Close()

			if _, err := app.mediator.Send(app.context(commandContext(cmd)),
				&commands.SetTypeVolumeCommand{TypeID: typeID, Volume: volume}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Type %d volume set to %g m3\n", typeID, volume)
			return nil
		},
	}
}
