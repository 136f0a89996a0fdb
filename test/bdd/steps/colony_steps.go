package steps

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/colonysim-go/internal/domain/planetary"
	"github.com/andrescamacho/colonysim-go/internal/domain/shared"
)

// colonyContext holds state for colony status and simulation scenarios
type colonyContext struct {
	clock     *shared.FixedClock
	pins      []planetary.Pin
	routes    []planetary.Route
	colony    *planetary.Colony
	status    planetary.ColonyStatus
	maxEvents int

	simulated *planetary.Colony
	report    *planetary.SimulationReport
	simErr    error
}

func (c *colonyContext) reset() {
	*c = colonyContext{}
}

func InitializeColonyScenario(ctx *godog.ScenarioContext) {
	c := &colonyContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		c.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the simulation clock reads "([^"]*)"$`, c.theSimulationClockReads)
	ctx.Step(`^a colony with pins:$`, c.aColonyWithPins)
	ctx.Step(`^the colony has routes:$`, c.theColonyHasRoutes)
	ctx.Step(`^the simulator allows at most (\d+) events?$`, c.theSimulatorAllowsAtMostEvents)

	// When steps
	ctx.Step(`^I derive the colony status$`, c.iDeriveTheColonyStatus)
	ctx.Step(`^I delete route (\d+)$`, c.iDeleteRoute)
	ctx.Step(`^I simulate a clone of the colony for "([^"]*)"$`, c.iSimulateACloneOfTheColonyFor)

	// Then steps
	ctx.Step(`^pin (\d+) should have status "([^"]*)"$`, c.pinShouldHaveStatus)
	ctx.Step(`^the colony status should be "([^"]*)" with pins "([^"]*)"$`, c.theColonyStatusShouldBeWithPins)
	ctx.Step(`^the colony status should be "([^"]*)" with no pins$`, c.theColonyStatusShouldBeWithNoPins)
	ctx.Step(`^the colony should be working$`, c.theColonyShouldBeWorking)
	ctx.Step(`^the colony should not be working$`, c.theColonyShouldNotBeWorking)
	ctx.Step(`^the colony status should still be "([^"]*)"$`, c.theColonyStatusShouldStillBe)
	ctx.Step(`^the simulation should succeed$`, c.theSimulationShouldSucceed)
	ctx.Step(`^the simulated colony status should be "([^"]*)"$`, c.theSimulatedColonyStatusShouldBe)
	ctx.Step(`^simulated pin (\d+) should hold (\d+) units of type (\d+)$`, c.simulatedPinShouldHoldUnitsOfType)
	ctx.Step(`^the simulation should have produced (\d+) units of type (\d+)$`, c.theSimulationShouldHaveProducedUnitsOfType)
	ctx.Step(`^the simulation should fail with a sim time regression$`, c.theSimulationShouldFailWithASimTimeRegression)
	ctx.Step(`^the simulation should fail with an exhausted event budget$`, c.theSimulationShouldFailWithAnExhaustedEventBudget)
}

// ============================================================================
// Given
// ============================================================================

func (c *colonyContext) theSimulationClockReads(value string) error {
	now, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid clock value %q: %w", value, err)
	}
	c.clock = shared.NewFixedClock(now)
	return nil
}

func (c *colonyContext) aColonyWithPins(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		pin, err := pinFromRow(table, row, c.now())
		if err != nil {
			return err
		}
		c.pins = append(c.pins, pin)
	}
	return c.rebuild()
}

func (c *colonyContext) theColonyHasRoutes(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		r, err := routeFromRow(table, row)
		if err != nil {
			return err
		}
		c.routes = append(c.routes, r)
	}
	return c.rebuild()
}

func (c *colonyContext) theSimulatorAllowsAtMostEvents(count int) error {
	c.maxEvents = count
	return nil
}

// ============================================================================
// When
// ============================================================================

func (c *colonyContext) iDeriveTheColonyStatus() error {
	c.status = c.colony.Status(bddCatalog())
	return nil
}

func (c *colonyContext) iDeleteRoute(id int) error {
	return c.colony.RemoveRoute(int64(id))
}

func (c *colonyContext) iSimulateACloneOfTheColonyFor(value string) error {
	horizon, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid horizon %q: %w", value, err)
	}

	c.simulated = c.colony.Clone()
	simulator := planetary.NewSimulator(bddCatalog(), c.maxEvents)
	c.report, c.simErr = simulator.Advance(c.simulated, c.colony.CurrentSimTime().Add(horizon))
	return nil
}

// ============================================================================
// Then
// ============================================================================

func (c *colonyContext) pinShouldHaveStatus(id int, expected string) error {
	pin, err := c.colony.FindPin(int64(id))
	if err != nil {
		return err
	}
	actual := c.colony.PinStatus(pin, bddCatalog())
	if string(actual) != expected {
		return fmt.Errorf("expected pin %d status %s, got %s", id, expected, actual)
	}
	return nil
}

func (c *colonyContext) theColonyStatusShouldBeWithPins(expected, ids string) error {
	if err := c.expectKind(c.status, expected); err != nil {
		return err
	}

	var want []string
	for _, id := range strings.Split(ids, ",") {
		want = append(want, strings.TrimSpace(id))
	}
	got := make([]string, 0, len(c.status.Pins))
	for _, pin := range c.status.Pins {
		got = append(got, strconv.FormatInt(pin.Base().ID, 10))
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		return fmt.Errorf("expected status pins [%s], got [%s]", strings.Join(want, ","), strings.Join(got, ","))
	}
	return nil
}

func (c *colonyContext) theColonyStatusShouldBeWithNoPins(expected string) error {
	if err := c.expectKind(c.status, expected); err != nil {
		return err
	}
	if c.status.Pins == nil || len(c.status.Pins) != 0 {
		return fmt.Errorf("expected an empty pin list, got %v", c.status.Pins)
	}
	return nil
}

func (c *colonyContext) theColonyShouldBeWorking() error {
	if !c.status.IsWorking() {
		return fmt.Errorf("expected a working colony, got %s", c.status.Kind)
	}
	return nil
}

func (c *colonyContext) theColonyShouldNotBeWorking() error {
	if c.status.IsWorking() {
		return fmt.Errorf("expected a colony that is not working, got %s", c.status.Kind)
	}
	return nil
}

func (c *colonyContext) theColonyStatusShouldStillBe(expected string) error {
	return c.expectKind(c.colony.Status(bddCatalog()), expected)
}

func (c *colonyContext) theSimulationShouldSucceed() error {
	if c.simErr != nil {
		return fmt.Errorf("expected simulation to succeed, got %w", c.simErr)
	}
	return nil
}

func (c *colonyContext) theSimulatedColonyStatusShouldBe(expected string) error {
	return c.expectKind(c.simulated.Status(bddCatalog()), expected)
}

func (c *colonyContext) simulatedPinShouldHoldUnitsOfType(id, units, typeID int) error {
	pin, err := c.simulated.FindPin(int64(id))
	if err != nil {
		return err
	}
	if got := pin.Base().Quantity(int32(typeID)); got != units {
		return fmt.Errorf("expected pin %d to hold %d of type %d, got %d", id, units, typeID, got)
	}
	return nil
}

func (c *colonyContext) theSimulationShouldHaveProducedUnitsOfType(units, typeID int) error {
	if got := c.report.Produced[int32(typeID)]; got != units {
		return fmt.Errorf("expected %d units of type %d produced, got %d", units, typeID, got)
	}
	return nil
}

func (c *colonyContext) theSimulationShouldFailWithASimTimeRegression() error {
	var regression *planetary.SimTimeRegressionError
	if !errors.As(c.simErr, &regression) {
		return fmt.Errorf("expected a sim time regression, got %v", c.simErr)
	}
	return nil
}

func (c *colonyContext) theSimulationShouldFailWithAnExhaustedEventBudget() error {
	var budget *planetary.SimulationBudgetError
	if !errors.As(c.simErr, &budget) {
		return fmt.Errorf("expected an exhausted event budget, got %v", c.simErr)
	}
	if c.report.EventsProcessed != c.maxEvents {
		return fmt.Errorf("expected %d events processed, got %d", c.maxEvents, c.report.EventsProcessed)
	}
	return nil
}

// ============================================================================
// Helpers
// ============================================================================

func (c *colonyContext) now() time.Time {
	if c.clock == nil {
		c.clock = shared.NewFixedClock(time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC))
	}
	return c.clock.Now()
}

func (c *colonyContext) rebuild() error {
	now := c.now()
	colony, err := planetary.NewColony(1, 90000001, 40000001, "temperate", 0, now, now, c.pins, nil, c.routes)
	if err != nil {
		return err
	}
	c.colony = colony
	return nil
}

func (c *colonyContext) expectKind(status planetary.ColonyStatus, expected string) error {
	want, err := planetary.ParseColonyStatusKind(expected)
	if err != nil {
		return err
	}
	if status.Kind != want {
		return fmt.Errorf("expected colony status %s, got %s", want, status.Kind)
	}
	return nil
}
