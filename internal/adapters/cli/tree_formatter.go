package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/andrescamacho/colonysim-go/internal/domain/planetary"
)

// TreeFormatter renders a colony as a tree of pins, each with its outgoing routes
type TreeFormatter struct {
	useColors bool
	useEmojis bool
}

// NewTreeFormatter creates a new tree formatter
func NewTreeFormatter(useColors, useEmojis bool) *TreeFormatter {
	return &TreeFormatter{
		useColors: useColors,
		useEmojis: useEmojis,
	}
}

// FormatColony renders the colony header followed by one branch per pin
func (f *TreeFormatter) FormatColony(colony *planetary.Colony, status planetary.ColonyStatus, pins []planetary.PinWithStatus) string {
	if colony == nil {
		return "(no colony)"
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Colony %d (%s planet %d, level %d) %s @ %s\n",
		colony.ID(),
		colony.PlanetType(),
		colony.PlanetID(),
		colony.UpgradeLevel(),
		f.colonyStatusText(status.Kind),
		colony.CurrentSimTime().Format(time.RFC3339),
	))

	routes := colony.Routes()
	for i, ps := range pins {
		isLast := i == len(pins)-1
		f.formatPin(&builder, ps, planetary.OutgoingRoutes(ps.Pin.Base().ID, routes), isLast)
	}

	return builder.String()
}

// formatPin writes one pin line and its outgoing routes beneath it
func (f *TreeFormatter) formatPin(builder *strings.Builder, ps planetary.PinWithStatus, routes []planetary.Route, isLast bool) {
	linePrefix, childPrefix := "├── ", "│   "
	if isLast {
		linePrefix, childPrefix = "└── ", "    "
	}

	base := ps.Pin.Base()
	label := string(ps.Pin.Kind())
	if base.Designator != "" {
		label += " " + base.Designator
	}

	builder.WriteString(fmt.Sprintf("%s%s #%d %s [%s%s%s]%s\n",
		linePrefix,
		f.kindIcon(ps.Pin.Kind()),
		base.ID,
		label,
		f.pinStatusColor(ps.Status),
		ps.Status,
		f.colorReset(),
		f.detailText(ps.Pin),
	))

	for i, route := range routes {
		routePrefix := childPrefix + "├── "
		if i == len(routes)-1 {
			routePrefix = childPrefix + "└── "
		}
		via := ""
		if len(route.Waypoints) > 0 {
			hops := make([]string, len(route.Waypoints))
			for j, wp := range route.Waypoints {
				hops[j] = fmt.Sprintf("#%d", wp)
			}
			via = " via " + strings.Join(hops, ", ")
		}
		builder.WriteString(fmt.Sprintf("%sroute %d → #%d: %d × %d%s\n",
			routePrefix, route.ID, route.DestinationPinID, route.Quantity, route.ContentTypeID, via))
	}
}

// detailText summarizes variant-specific state
func (f *TreeFormatter) detailText(pin planetary.Pin) string {
	parts := planetary.MatchPin[[]string](pin, pinDetails{})

	if contents := formatContents(pin.Base().Contents); contents != "" {
		parts = append(parts, contents)
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, ", ")
}

type pinDetails struct{}

func (pinDetails) Extractor(p *planetary.ExtractorPin) []string {
	if !p.IsSetup() {
		return []string{"no program"}
	}
	return []string{
		fmt.Sprintf("product %d", *p.ProductTypeID),
		fmt.Sprintf("expires %s", p.ExpiryTime.Format(time.RFC3339)),
	}
}

func (pinDetails) Factory(p *planetary.FactoryPin) []string {
	if p.Schematic == nil {
		return []string{"no schematic"}
	}
	return []string{fmt.Sprintf("schematic %s", p.Schematic.Name)}
}

func (pinDetails) Storage(p *planetary.StoragePin) []string {
	return []string{fmt.Sprintf("%.1f m3 used", p.CapacityUsed)}
}

func (pinDetails) Launchpad(p *planetary.LaunchpadPin) []string {
	return []string{fmt.Sprintf("%.1f m3 used", p.CapacityUsed)}
}

func (pinDetails) CommandCenter(p *planetary.CommandCenterPin) []string {
	return []string{fmt.Sprintf("level %d", p.Level)}
}

// formatContents renders "qty × type" pairs ordered by type id
func formatContents(contents map[int32]int) string {
	if len(contents) == 0 {
		return ""
	}
	typeIDs := make([]int32, 0, len(contents))
	for typeID := range contents {
		typeIDs = append(typeIDs, typeID)
	}
	sort.Slice(typeIDs, func(i, j int) bool { return typeIDs[i] < typeIDs[j] })

	parts := make([]string, len(typeIDs))
	for i, typeID := range typeIDs {
		parts[i] = fmt.Sprintf("%d × %d", contents[typeID], typeID)
	}
	return "holds " + strings.Join(parts, ", ")
}

// kindIcon returns a visual indicator for the pin kind
func (f *TreeFormatter) kindIcon(kind planetary.PinKind) string {
	if !f.useEmojis {
		return "-"
	}

	switch kind {
	case planetary.PinKindExtractor:
		return "⛏️"
	case planetary.PinKindFactory:
		return "🏭"
	case planetary.PinKindStorage:
		return "📦"
	case planetary.PinKindLaunchpad:
		return "🚀"
	case planetary.PinKindCommandCenter:
		return "🏛️"
	default:
		return "-"
	}
}

func (f *TreeFormatter) colonyStatusText(kind planetary.ColonyStatusKind) string {
	color := ""
	if f.useColors {
		switch {
		case kind.IsWorking():
			color = "\033[32m" // Green
		case kind == planetary.ColonyStatusIdle:
			color = "\033[33m" // Yellow
		default:
			color = "\033[31m" // Red
		}
	}
	return fmt.Sprintf("[%s%s%s]", color, kind, f.colorReset())
}

// pinStatusColor returns ANSI color code for a pin status
func (f *TreeFormatter) pinStatusColor(status planetary.PinStatus) string {
	if !f.useColors {
		return ""
	}

	switch status {
	case planetary.PinStatusExtracting, planetary.PinStatusProducing:
		return "\033[32m" // Green
	case planetary.PinStatusFactoryIdle, planetary.PinStatusStatic:
		return ""
	default:
		return "\033[31m" // Red
	}
}

// colorReset returns ANSI reset code
func (f *TreeFormatter) colorReset() string {
	if !f.useColors {
		return ""
	}
	return "\033[0m"
}

// FormatReport summarizes a simulation run
func (f *TreeFormatter) FormatReport(report *planetary.SimulationReport) string {
	if report == nil {
		return "No simulation report"
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Simulated:         %s → %s (%s)\n",
		report.From.Format(time.RFC3339), report.Until.Format(time.RFC3339), report.Until.Sub(report.From)))
	builder.WriteString(fmt.Sprintf("Events:            %d\n", report.EventsProcessed))

	for _, section := range []struct {
		label string
		units map[int32]int
	}{
		{"Extracted", report.Extracted},
		{"Produced", report.Produced},
		{"Consumed", report.Consumed},
	} {
		if text := formatContents(section.units); text != "" {
			builder.WriteString(fmt.Sprintf("%-19s%s\n", section.label+":", strings.TrimPrefix(text, "holds ")))
		}
	}

	return builder.String()
}
