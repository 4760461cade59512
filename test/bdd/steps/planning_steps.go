package steps

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/oceanline/lubeplan-go/internal/domain/planning"
	"github.com/oceanline/lubeplan-go/internal/domain/schedule"
	"github.com/oceanline/lubeplan-go/internal/domain/shared"
	"github.com/oceanline/lubeplan-go/internal/domain/vessel"
)

type planningContext struct {
	vessel  *vessel.Vessel
	voyage  schedule.Voyage
	rob     map[shared.Grade]float64
	reorder planning.ReorderConfig

	output  *planning.Output
	verdict planning.SafetyVerdict
	result  *planning.OrchestratorResult
	err     error
}

func (pc *planningContext) reset() {
	pc.vessel = nil
	pc.voyage = nil
	pc.rob = make(map[shared.Grade]float64)
	pc.reorder = planning.DefaultReorderConfig()
	pc.output = nil
	pc.verdict = planning.SafetyVerdict{}
	pc.result = nil
	pc.err = nil
}

// Fixture setup steps

func (pc *planningContext) aVesselWithGradeConfiguration(name string, table *godog.Table) error {
	grades := make(map[shared.Grade]vessel.GradeConfig)
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header
		}
		capacity, err := strconv.ParseFloat(row.Cells[1].Value, 64)
		if err != nil {
			return err
		}
		minROB, err := strconv.ParseFloat(row.Cells[2].Value, 64)
		if err != nil {
			return err
		}
		consumption, err := strconv.ParseFloat(row.Cells[3].Value, 64)
		if err != nil {
			return err
		}
		g := shared.Grade(row.Cells[0].Value)
		grades[g] = vessel.GradeConfig{
			Grade: g,
			Tank: vessel.TankConfig{
				CapacityLiters:   capacity,
				MinimumROBLiters: minROB,
			},
			AvgDailyConsumption: consumption,
		}
	}

	v, err := vessel.NewVessel("9391001", name, grades)
	if err != nil {
		return err
	}
	pc.vessel = v
	return nil
}

func (pc *planningContext) theReplenishmentPolicy(table *godog.Table) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header
		}
		fill, err := strconv.ParseFloat(row.Cells[0].Value, 64)
		if err != nil {
			return err
		}
		trigger, err := strconv.ParseFloat(row.Cells[1].Value, 64)
		if err != nil {
			return err
		}
		discount, err := strconv.ParseFloat(row.Cells[2].Value, 64)
		if err != nil {
			return err
		}
		window, err := strconv.Atoi(row.Cells[3].Value)
		if err != nil {
			return err
		}
		pc.reorder.TargetFillPct = fill
		pc.reorder.ROBTriggerMultiplier = trigger
		pc.reorder.OpportunityDiscountPct = discount
		pc.reorder.WindowSize = window
	}
	pc.reorder.SafetyBufferPct = 0
	return nil
}

func (pc *planningContext) theUpcomingRotation(table *godog.Table) error {
	pc.voyage = nil
	priceGrades := []shared.Grade{shared.GradeCylinder, shared.GradeMainEngine, shared.GradeAuxEngine}
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header
		}
		seaDays, err := strconv.ParseFloat(row.Cells[3].Value, 64)
		if err != nil {
			return err
		}
		stop := schedule.PortStop{
			Name:          row.Cells[0].Value,
			Code:          row.Cells[1].Value,
			Arrival:       row.Cells[2].Value,
			SeaDaysToNext: seaDays,
			Prices:        make(map[shared.Grade]float64),
		}
		for j, g := range priceGrades {
			raw := row.Cells[4+j].Value
			if raw == "-" || raw == "" {
				continue
			}
			price, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return err
			}
			stop.Prices[g] = price
		}
		pc.voyage = append(pc.voyage, stop)
	}
	return nil
}

func (pc *planningContext) portPricesDeliveryPer100Liters(port string, differential float64) error {
	for i := range pc.voyage {
		if pc.voyage[i].Name == port {
			pc.voyage[i].DeliveryCharge = &schedule.DeliveryChargeConfig{
				DifferentialPer100L: differential,
			}
			return nil
		}
	}
	return fmt.Errorf("port %s not in rotation", port)
}

func (pc *planningContext) currentLevelsOnBoard(table *godog.Table) error {
	grades := []shared.Grade{shared.GradeCylinder, shared.GradeMainEngine, shared.GradeAuxEngine}
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header
		}
		for j, g := range grades {
			liters, err := strconv.ParseFloat(row.Cells[j].Value, 64)
			if err != nil {
				return err
			}
			pc.rob[g] = liters
		}
	}
	return nil
}

func (pc *planningContext) levelOnBoardIsUnknown(grade string) error {
	delete(pc.rob, shared.Grade(grade))
	return nil
}

func (pc *planningContext) buildInput() *planning.Input {
	return &planning.Input{
		Vessel:     pc.vessel,
		Voyage:     pc.voyage,
		CurrentROB: pc.rob,
		Reorder:    pc.reorder,
		Now:        time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Execution steps

func (pc *planningContext) theForwardSimulationRuns() error {
	in := pc.buildInput()
	if err := in.Validate(); err != nil {
		return err
	}
	result := planning.NewSimulator(in, planning.ParamsFromConfig(pc.reorder)).Run()
	pc.output = result.Output
	pc.verdict = planning.ValidateOutput(pc.output, in)
	return nil
}

func (pc *planningContext) theDeliveryAwareStrategyRuns() error {
	in := pc.buildInput()
	if err := in.Validate(); err != nil {
		return err
	}
	pc.output = planning.NewDeliveryAwareStrategy().Plan(in)
	pc.verdict = planning.ValidateOutput(pc.output, in)
	return nil
}

func (pc *planningContext) theOptimizerRunsWith(fills, discounts, triggers, windows string) error {
	opts := planning.DefaultOrchestratorOptions()
	var err error
	if opts.TargetFillPcts, err = parseFloats(fills); err != nil {
		return err
	}
	if opts.OpportunityDiscountPcts, err = parseFloats(discounts); err != nil {
		return err
	}
	if opts.ROBTriggerMultipliers, err = parseFloats(triggers); err != nil {
		return err
	}
	if opts.WindowSizes, err = parseInts(windows); err != nil {
		return err
	}
	opts.Workers = 2

	pc.result, pc.err = planning.NewOrchestrator(opts).Run(context.Background(), pc.buildInput())
	return nil
}

// Assertion steps

func (pc *planningContext) portPlan(port string) (*planning.PortPlan, error) {
	if pc.output == nil {
		return nil, fmt.Errorf("no plan produced")
	}
	for i := range pc.output.Ports {
		if pc.output.Ports[i].PortName == port {
			return &pc.output.Ports[i], nil
		}
	}
	return nil, fmt.Errorf("port %s not in plan", port)
}

func (pc *planningContext) planShouldMarkWithQuantity(port, grade, action string, quantity float64) error {
	plan, err := pc.portPlan(port)
	if err != nil {
		return err
	}
	gp := plan.Grades[shared.Grade(grade)]
	if gp == nil {
		return fmt.Errorf("no plan row for %s at %s", grade, port)
	}
	if string(gp.Action) != action {
		return fmt.Errorf("expected %s for %s at %s, got %s", action, grade, port, gp.Action)
	}
	if diff := gp.Quantity - quantity; diff > 0.01 || diff < -0.01 {
		return fmt.Errorf("expected quantity %.0f for %s at %s, got %.0f", quantity, grade, port, gp.Quantity)
	}
	return nil
}

func (pc *planningContext) planShouldMark(port, grade, action string) error {
	plan, err := pc.portPlan(port)
	if err != nil {
		return err
	}
	gp := plan.Grades[shared.Grade(grade)]
	if gp == nil {
		return fmt.Errorf("no plan row for %s at %s", grade, port)
	}
	if string(gp.Action) != action {
		return fmt.Errorf("expected %s for %s at %s, got %s", action, grade, port, gp.Action)
	}
	return nil
}

func (pc *planningContext) noOtherPurchases(exceptGrade, exceptPort string) error {
	for i := range pc.output.Ports {
		plan := &pc.output.Ports[i]
		for g, gp := range plan.Grades {
			if gp.Quantity == 0 {
				continue
			}
			if plan.PortName == exceptPort && string(g) == exceptGrade {
				continue
			}
			return fmt.Errorf("unexpected purchase of %.0f L %s at %s", gp.Quantity, g, plan.PortName)
		}
	}
	return nil
}

func (pc *planningContext) planShouldHaveDeliveryEvents(events int) error {
	if pc.output == nil {
		return fmt.Errorf("no plan produced")
	}
	if pc.output.PurchaseEvents != events {
		return fmt.Errorf("expected %d delivery events, got %d", events, pc.output.PurchaseEvents)
	}
	return nil
}

func (pc *planningContext) planShouldBeSafe() error {
	if !pc.verdict.Safe {
		return fmt.Errorf("expected a safe plan, got %d breaches", pc.verdict.ROBBreaches)
	}
	return nil
}

func (pc *planningContext) planShouldNotBeSafe() error {
	if pc.verdict.Safe {
		return fmt.Errorf("expected an unsafe plan")
	}
	return nil
}

func (pc *planningContext) deliveryChargeAtPortShouldBe(port string, charge float64) error {
	plan, err := pc.portPlan(port)
	if err != nil {
		return err
	}
	if diff := plan.Delivery.Total - charge; diff > 0.01 || diff < -0.01 {
		return fmt.Errorf("expected delivery charge %.2f at %s, got %.2f", charge, port, plan.Delivery.Total)
	}
	return nil
}

func (pc *planningContext) combinationsEvaluated(evaluated, grid int) error {
	if pc.err != nil {
		return pc.err
	}
	if pc.result.CombinationsEvaluated != evaluated {
		return fmt.Errorf("expected %d evaluated, got %d", evaluated, pc.result.CombinationsEvaluated)
	}
	if pc.result.GridCombinations != grid {
		return fmt.Errorf("expected grid of %d, got %d", grid, pc.result.GridCombinations)
	}
	return nil
}

func (pc *planningContext) ranksShouldBeConsecutive() error {
	if pc.err != nil {
		return pc.err
	}
	if len(pc.result.Plans) == 0 {
		return fmt.Errorf("no ranked plans returned")
	}
	for i, plan := range pc.result.Plans {
		if plan.Rank != i+1 {
			return fmt.Errorf("expected rank %d at position %d, got %d", i+1, i, plan.Rank)
		}
	}
	return nil
}

func (pc *planningContext) topPlanShouldBeSafe() error {
	if pc.err != nil {
		return pc.err
	}
	if !pc.result.Plans[0].Safety.Safe {
		return fmt.Errorf("top ranked plan is not safe")
	}
	return nil
}

func (pc *planningContext) plansShouldCarrySharedBaseline() error {
	if pc.err != nil {
		return pc.err
	}
	baseline := pc.result.Baseline.TotalCost
	for _, plan := range pc.result.Plans {
		if plan.BaselineCost != baseline {
			return fmt.Errorf("plan rank %d carries baseline %.2f, expected %.2f", plan.Rank, plan.BaselineCost, baseline)
		}
	}
	return nil
}

func (pc *planningContext) optimizationShouldFailMentioning(fragment string) error {
	if pc.err == nil {
		return fmt.Errorf("expected the optimization to fail")
	}
	if !strings.Contains(pc.err.Error(), fragment) {
		return fmt.Errorf("expected error mentioning %q, got: %v", fragment, pc.err)
	}
	return nil
}

func parseFloats(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	values := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func parseInts(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	values := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// InitializePlanningScenario registers the planning step definitions.
func InitializePlanningScenario(sc *godog.ScenarioContext) {
	pc := &planningContext{}

	sc.Before(func(ctx context.Context, scenario *godog.Scenario) (context.Context, error) {
		pc.reset()
		return ctx, nil
	})

	sc.Step(`^a vessel "([^"]*)" with grade configuration:$`, pc.aVesselWithGradeConfiguration)
	sc.Step(`^the replenishment policy:$`, pc.theReplenishmentPolicy)
	sc.Step(`^the upcoming rotation:$`, pc.theUpcomingRotation)
	sc.Step(`^port "([^"]*)" prices delivery at (\d+\.?\d*) per 100 liters$`, pc.portPricesDeliveryPer100Liters)
	sc.Step(`^current levels on board:$`, pc.currentLevelsOnBoard)
	sc.Step(`^the level on board for "([^"]*)" is unknown$`, pc.levelOnBoardIsUnknown)

	sc.Step(`^the forward simulation runs$`, pc.theForwardSimulationRuns)
	sc.Step(`^the delivery-aware strategy runs$`, pc.theDeliveryAwareStrategyRuns)
	sc.Step(`^the optimizer runs with fills "([^"]*)", discounts "([^"]*)", triggers "([^"]*)" and windows "([^"]*)"$`, pc.theOptimizerRunsWith)

	sc.Step(`^the plan at port "([^"]*)" should mark "([^"]*)" as "([^"]*)" with quantity (\d+\.?\d*)$`, pc.planShouldMarkWithQuantity)
	sc.Step(`^the plan at port "([^"]*)" should mark "([^"]*)" as "([^"]*)"$`, pc.planShouldMark)
	sc.Step(`^no grade should purchase anywhere except "([^"]*)" at port "([^"]*)"$`, pc.noOtherPurchases)
	sc.Step(`^the plan should have (\d+) delivery events?$`, pc.planShouldHaveDeliveryEvents)
	sc.Step(`^the plan should be safe$`, pc.planShouldBeSafe)
	sc.Step(`^the plan should not be safe$`, pc.planShouldNotBeSafe)
	sc.Step(`^the delivery charge at port "([^"]*)" should be (\d+\.?\d*)$`, pc.deliveryChargeAtPortShouldBe)
	sc.Step(`^(\d+) combinations should be evaluated over a grid of (\d+)$`, pc.combinationsEvaluated)
	sc.Step(`^the ranked plans should have consecutive ranks starting at 1$`, pc.ranksShouldBeConsecutive)
	sc.Step(`^the top ranked plan should be safe$`, pc.topPlanShouldBeSafe)
	sc.Step(`^every ranked plan should carry the shared baseline cost$`, pc.plansShouldCarrySharedBaseline)
	sc.Step(`^the optimization should fail mentioning "([^"]*)"$`, pc.optimizationShouldFailMentioning)
}
