package steps

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/colonysim-go/internal/adapters/persistence"
	"github.com/andrescamacho/colonysim-go/internal/domain/planetary"
	"github.com/andrescamacho/colonysim-go/test/helpers"
)

type colonyRepositoryContext struct {
	repo    *persistence.GormColonyRepository
	catalog *persistence.GormTypeCatalog

	colony    *planetary.Colony
	found     *planetary.Colony
	listed    []*planetary.Colony
	lastError error
}

func InitializeColonyRepositoryScenario(ctx *godog.ScenarioContext) {
	c := &colonyRepositoryContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		*c = colonyRepositoryContext{}
		return ctx, nil
	})

	// Background steps
	ctx.Step(`^a clean colony database$`, c.aCleanColonyDatabase)

	// Given steps
	ctx.Step(`^a stored production chain colony (\d+) for character (\d+)$`, c.aStoredProductionChainColonyForCharacter)
	ctx.Step(`^the stored catalog knows the fixture types$`, c.theStoredCatalogKnowsTheFixtureTypes)

	// When steps
	ctx.Step(`^I load colony (\d+)$`, c.iLoadColony)
	ctx.Step(`^I list the colonies of character (\d+)$`, c.iListTheColoniesOfCharacter)
	ctx.Step(`^I advance the loaded colony by "([^"]*)" and save it$`, c.iAdvanceTheLoadedColonyByAndSaveIt)
	ctx.Step(`^I delete colony (\d+)$`, c.iDeleteColony)

	// Then steps
	ctx.Step(`^the loaded colony should have (\d+) pins and (\d+) routes$`, c.theLoadedColonyShouldHavePinsAndRoutes)
	ctx.Step(`^the loaded colony status should be "([^"]*)"$`, c.theLoadedColonyStatusShouldBe)
	ctx.Step(`^loaded pin (\d+) should hold (\d+) units of type (\d+)$`, c.loadedPinShouldHoldUnitsOfType)
	ctx.Step(`^the listed colony ids should be "([^"]*)"$`, c.theListedColonyIDsShouldBe)
	ctx.Step(`^the repository should report colony (\d+) as not found$`, c.theRepositoryShouldReportColonyAsNotFound)
}

func (c *colonyRepositoryContext) aCleanColonyDatabase() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	c.repo = persistence.NewGormColonyRepository(helpers.SharedTestDB)
	c.catalog = persistence.NewGormTypeCatalog(helpers.SharedTestDB)
	return nil
}

func (c *colonyRepositoryContext) aStoredProductionChainColonyForCharacter(colonyID, characterID int) error {
	colony, err := helpers.NewProductionChainColony(int64(colonyID), int32(characterID))
	if err != nil {
		return err
	}
	c.colony = colony
	return c.repo.Save(context.Background(), colony)
}

func (c *colonyRepositoryContext) theStoredCatalogKnowsTheFixtureTypes() error {
	ctx := context.Background()
	fixture := helpers.FixtureCatalog()
	for typeID, capacity := range fixture.Capacities {
		if err := c.catalog.SetCapacity(ctx, typeID, capacity); err != nil {
			return err
		}
	}
	for typeID, volume := range fixture.Volumes {
		if err := c.catalog.SetVolume(ctx, typeID, volume); err != nil {
			return err
		}
	}
	return nil
}

func (c *colonyRepositoryContext) iLoadColony(colonyID int) error {
	c.found, c.lastError = c.repo.FindByID(context.Background(), int64(colonyID))
	return nil
}

func (c *colonyRepositoryContext) iListTheColoniesOfCharacter(characterID int) error {
	c.listed, c.lastError = c.repo.FindByCharacter(context.Background(), int32(characterID))
	return c.lastError
}

func (c *colonyRepositoryContext) iAdvanceTheLoadedColonyByAndSaveIt(value string) error {
	if c.found == nil {
		return fmt.Errorf("no colony loaded: %v", c.lastError)
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value, err)
	}

	ctx := context.Background()
	catalog, err := c.catalog.Snapshot(ctx)
	if err != nil {
		return err
	}
	if _, err := planetary.NewSimulator(catalog, 0).Advance(c.found, c.found.CurrentSimTime().Add(d)); err != nil {
		return err
	}
	return c.repo.Save(ctx, c.found)
}

func (c *colonyRepositoryContext) iDeleteColony(colonyID int) error {
	c.lastError = c.repo.Delete(context.Background(), int64(colonyID))
	return nil
}

func (c *colonyRepositoryContext) theLoadedColonyShouldHavePinsAndRoutes(pins, routes int) error {
	if c.found == nil {
		return fmt.Errorf("no colony loaded: %v", c.lastError)
	}
	if got := len(c.found.Pins()); got != pins {
		return fmt.Errorf("expected %d pins, got %d", pins, got)
	}
	if got := len(c.found.Routes()); got != routes {
		return fmt.Errorf("expected %d routes, got %d", routes, got)
	}
	return nil
}

func (c *colonyRepositoryContext) theLoadedColonyStatusShouldBe(expected string) error {
	if c.found == nil {
		return fmt.Errorf("no colony loaded: %v", c.lastError)
	}
	catalog, err := c.catalog.Snapshot(context.Background())
	if err != nil {
		return err
	}
	if got := c.found.Status(catalog).Kind.String(); got != expected {
		return fmt.Errorf("expected colony status %s, got %s", expected, got)
	}
	return nil
}

func (c *colonyRepositoryContext) loadedPinShouldHoldUnitsOfType(pinID, units, typeID int) error {
	if c.found == nil {
		return fmt.Errorf("no colony loaded: %v", c.lastError)
	}
	pin, err := c.found.FindPin(int64(pinID))
	if err != nil {
		return err
	}
	if got := pin.Base().Quantity(int32(typeID)); got != units {
		return fmt.Errorf("expected pin %d to hold %d units of %d, got %d", pinID, units, typeID, got)
	}
	return nil
}

func (c *colonyRepositoryContext) theListedColonyIDsShouldBe(expected string) error {
	got := make([]string, len(c.listed))
	for i, colony := range c.listed {
		got[i] = strconv.FormatInt(colony.ID(), 10)
	}
	want := strings.ReplaceAll(expected, " ", "")
	if strings.Join(got, ",") != want {
		return fmt.Errorf("expected colonies [%s], got [%s]", want, strings.Join(got, ","))
	}
	return nil
}

func (c *colonyRepositoryContext) theRepositoryShouldReportColonyAsNotFound(colonyID int) error {
	var notFound *planetary.ColonyNotFoundError
	if !errors.As(c.lastError, &notFound) {
		return fmt.Errorf("expected ColonyNotFoundError, got %v", c.lastError)
	}
	if notFound.ColonyID != int64(colonyID) {
		return fmt.Errorf("expected not-found colony %d, got %d", colonyID, notFound.ColonyID)
	}
	return nil
}
