package steps

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"

	"github.com/andrescamacho/colonysim-go/internal/domain/planetary"
)

// Type ids shared by the colony scenarios
const (
	extractorTypeID     int32 = 2848
	factoryTypeID       int32 = 2474
	storageTypeID       int32 = 2541
	launchpadTypeID     int32 = 2544
	commandCenterTypeID int32 = 2524

	aqueousLiquidsTypeID int32 = 2268
	waterTypeID          int32 = 3645
)

func bddCatalog() *planetary.StaticCatalog {
	return planetary.NewStaticCatalog().
		WithCapacity(storageTypeID, 12000).
		WithCapacity(launchpadTypeID, 10000).
		WithCapacity(commandCenterTypeID, 500).
		WithVolume(aqueousLiquidsTypeID, 0.01).
		WithVolume(waterTypeID, 0.38)
}

func bddWaterSchematic() *planetary.Schematic {
	return &planetary.Schematic{
		ID:             126,
		Name:           "Water",
		CycleTime:      30 * time.Minute,
		Inputs:         map[int32]int{aqueousLiquidsTypeID: 3000},
		OutputTypeID:   waterTypeID,
		OutputQuantity: 20,
	}
}

// getCellValue gets a cell value from a table row by column name,
// using the first row as the header
func getCellValue(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	if len(table.Rows) == 0 {
		return ""
	}

	for i, headerCell := range table.Rows[0].Cells {
		if headerCell.Value == columnName {
			if i < len(row.Cells) {
				return strings.TrimSpace(row.Cells[i].Value)
			}
			return ""
		}
	}
	return ""
}

func pinFromRow(table *godog.Table, row *messages.PickleTableRow, now time.Time) (planetary.Pin, error) {
	id, err := strconv.ParseInt(getCellValue(table, row, "id"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid pin id: %w", err)
	}
	used, err := parseFloatCell(getCellValue(table, row, "capacity_used"))
	if err != nil {
		return nil, err
	}

	base := planetary.PinBase{
		ID:           id,
		IsActive:     getCellValue(table, row, "active") == "true",
		CapacityUsed: used,
	}
	setup := getCellValue(table, row, "setup") != "false"

	switch planetary.PinKind(getCellValue(table, row, "kind")) {
	case planetary.PinKindExtractor:
		base.TypeID = extractorTypeID
		pin := &planetary.ExtractorPin{PinBase: base}
		if setup {
			expiresIn, err := time.ParseDuration(getCellValue(table, row, "expires_in"))
			if err != nil {
				return nil, fmt.Errorf("invalid expires_in for pin %d: %w", id, err)
			}
			install := now.Add(-2 * time.Hour)
			expiry := now.Add(expiresIn)
			cycle := 30 * time.Minute
			product := aqueousLiquidsTypeID
			baseValue := 6000
			pin.InstallTime = &install
			pin.ExpiryTime = &expiry
			pin.CycleTime = &cycle
			pin.ProductTypeID = &product
			pin.BaseValue = &baseValue
		}
		return pin, nil
	case planetary.PinKindFactory:
		base.TypeID = factoryTypeID
		var schematic *planetary.Schematic
		if setup {
			schematic = bddWaterSchematic()
		}
		return planetary.NewFactoryPin(base, schematic, false, false, nil), nil
	case planetary.PinKindStorage:
		base.TypeID = storageTypeID
		return &planetary.StoragePin{PinBase: base}, nil
	case planetary.PinKindLaunchpad:
		base.TypeID = launchpadTypeID
		return &planetary.LaunchpadPin{PinBase: base}, nil
	case planetary.PinKindCommandCenter:
		base.TypeID = commandCenterTypeID
		return &planetary.CommandCenterPin{PinBase: base}, nil
	default:
		return nil, fmt.Errorf("unknown pin kind %q", getCellValue(table, row, "kind"))
	}
}

func routeFromRow(table *godog.Table, row *messages.PickleTableRow) (planetary.Route, error) {
	var values [5]int64
	for i, column := range []string{"id", "from", "to", "type", "quantity"} {
		v, err := strconv.ParseInt(getCellValue(table, row, column), 10, 64)
		if err != nil {
			return planetary.Route{}, fmt.Errorf("invalid route %s: %w", column, err)
		}
		values[i] = v
	}

	return planetary.Route{
		ID:               values[0],
		SourcePinID:      values[1],
		DestinationPinID: values[2],
		ContentTypeID:    int32(values[3]),
		Quantity:         int(values[4]),
	}, nil
}

func parseFloatCell(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return v, nil
}
