package strength_test

import (
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/edruela/volleyball-simulator/internal/domain/model"
	"github.com/edruela/volleyball-simulator/internal/domain/strength"
)

func flatAttributes(v float64) model.PlayerAttributes {
	return model.PlayerAttributes{
		SpikePower: v, SpikeAccuracy: v, BlockTiming: v,
		PassingAccuracy: v, SettingPrecision: v, ServePower: v,
		ServeAccuracy: v, CourtVision: v, DecisionMaking: v,
		Communication: v, Stamina: v, Strength: v,
		Agility: v, JumpHeight: v, Speed: v,
	}
}

func flatRoster(level float64) model.Roster {
	positions := []model.Position{
		model.PositionSetter,
		model.PositionOutsideHitter,
		model.PositionOutsideHitter,
		model.PositionMiddleBlocker,
		model.PositionOppositeHitter,
		model.PositionLibero,
	}
	players := make([]model.Player, len(positions))
	for i, pos := range positions {
		players[i] = model.Player{
			ID:         fmt.Sprintf("p%d", i),
			Position:   pos,
			Attributes: flatAttributes(level),
		}
	}
	return model.Roster{ClubID: "club", Players: players}
}

func assertPositive(ts model.TeamStrength) {
	So(ts.Serve, ShouldBeGreaterThan, 0)
	So(ts.Attack, ShouldBeGreaterThan, 0)
	So(ts.Block, ShouldBeGreaterThan, 0)
	So(ts.Receive, ShouldBeGreaterThan, 0)
	So(ts.Overall, ShouldBeGreaterThan, 0)
}

func TestCalculatePositivity(t *testing.T) {
	Convey("Given a strength calculator", t, func() {
		calc := strength.NewCalculator()

		Convey("A normal roster yields strictly positive scalars", func() {
			ts := calc.Calculate(strength.Input{Roster: flatRoster(60), Tactics: model.DefaultTactics()})
			assertPositive(ts)
		})

		Convey("Even an all-zero roster stays at the floor", func() {
			ts := calc.Calculate(strength.Input{Roster: flatRoster(0), Tactics: model.DefaultTactics()})
			assertPositive(ts)
		})

		Convey("Full fatigue never drives a scalar to zero", func() {
			ts := calc.Calculate(strength.Input{
				Roster:  flatRoster(0),
				Tactics: model.DefaultTactics(),
				Fatigue: 100,
			})
			assertPositive(ts)
		})
	})
}

func TestCalculateOrdering(t *testing.T) {
	Convey("Given two rosters of different quality", t, func() {
		calc := strength.NewCalculator()
		strong := calc.Calculate(strength.Input{Roster: flatRoster(80), Tactics: model.DefaultTactics()})
		weak := calc.Calculate(strength.Input{Roster: flatRoster(40), Tactics: model.DefaultTactics()})

		Convey("The stronger roster scores higher in every phase", func() {
			So(strong.Serve, ShouldBeGreaterThan, weak.Serve)
			So(strong.Attack, ShouldBeGreaterThan, weak.Attack)
			So(strong.Block, ShouldBeGreaterThan, weak.Block)
			So(strong.Receive, ShouldBeGreaterThan, weak.Receive)
			So(strong.Overall, ShouldBeGreaterThan, weak.Overall)
		})
	})
}

func TestFatigueEffect(t *testing.T) {
	Convey("Given the same roster at different fatigue levels", t, func() {
		calc := strength.NewCalculator()
		fresh := calc.Calculate(strength.Input{Roster: flatRoster(70), Tactics: model.DefaultTactics(), Fatigue: 0})
		tired := calc.Calculate(strength.Input{Roster: flatRoster(70), Tactics: model.DefaultTactics(), Fatigue: 80})

		Convey("Fatigue reduces every phase scalar", func() {
			So(tired.Serve, ShouldBeLessThan, fresh.Serve)
			So(tired.Attack, ShouldBeLessThan, fresh.Attack)
			So(tired.Block, ShouldBeLessThan, fresh.Block)
			So(tired.Receive, ShouldBeLessThan, fresh.Receive)
		})

		Convey("Fatigue beyond 100 clamps to the 100 level", func() {
			at100 := calc.Calculate(strength.Input{Roster: flatRoster(70), Tactics: model.DefaultTactics(), Fatigue: 100})
			beyond := calc.Calculate(strength.Input{Roster: flatRoster(70), Tactics: model.DefaultTactics(), Fatigue: 250})
			So(beyond, ShouldResemble, at100)
		})
	})
}

func TestIntensityEffect(t *testing.T) {
	Convey("Given the same roster at different intensities", t, func() {
		calc := strength.NewCalculator()
		relaxed := model.Tactics{Formation: model.Formation51, Intensity: 0.8}
		aggressive := model.Tactics{Formation: model.Formation51, Intensity: 1.2}

		low := calc.Calculate(strength.Input{Roster: flatRoster(70), Tactics: relaxed})
		high := calc.Calculate(strength.Input{Roster: flatRoster(70), Tactics: aggressive})

		Convey("Higher intensity scales strength up", func() {
			So(high.Overall, ShouldBeGreaterThan, low.Overall)
		})
	})
}

func TestFormationTradeoffs(t *testing.T) {
	Convey("Given the same roster under different formations", t, func() {
		calc := strength.NewCalculator()
		input := func(formation string) strength.Input {
			return strength.Input{
				Roster:  flatRoster(70),
				Tactics: model.Tactics{Formation: formation, Intensity: 1.0},
			}
		}

		attackHeavy := calc.Calculate(input(model.Formation62))
		balanced := calc.Calculate(input(model.Formation51))
		defensive := calc.Calculate(input(model.Formation42))

		Convey("A 6-2 trades block for attack", func() {
			So(attackHeavy.Attack, ShouldBeGreaterThan, balanced.Attack)
			So(attackHeavy.Block, ShouldBeLessThan, balanced.Block)
		})

		Convey("A 4-2 trades attack for block", func() {
			So(defensive.Attack, ShouldBeLessThan, balanced.Attack)
			So(defensive.Block, ShouldBeGreaterThan, balanced.Block)
		})

		Convey("Formations leave serve and receive untouched", func() {
			So(attackHeavy.Serve, ShouldEqual, balanced.Serve)
			So(defensive.Receive, ShouldEqual, balanced.Receive)
		})
	})
}

func TestPositionWeighting(t *testing.T) {
	Convey("Given a libero-heavy and a hitter-heavy roster", t, func() {
		calc := strength.NewCalculator()

		build := func(extra model.Position) model.Roster {
			r := flatRoster(70)
			for i := 0; i < 3; i++ {
				r.Players = append(r.Players, model.Player{
					ID:         fmt.Sprintf("extra-%d", i),
					Position:   extra,
					Attributes: flatAttributes(70),
				})
			}
			return r
		}

		hitters := calc.Calculate(strength.Input{Roster: build(model.PositionOppositeHitter), Tactics: model.DefaultTactics()})
		liberos := calc.Calculate(strength.Input{Roster: build(model.PositionLibero), Tactics: model.DefaultTactics()})

		Convey("Extra hitters raise attack relative to extra liberos", func() {
			So(hitters.Attack, ShouldBeGreaterThan, liberos.Attack)
		})

		Convey("Extra liberos raise receive relative to extra hitters", func() {
			So(liberos.Receive, ShouldBeGreaterThan, hitters.Receive)
		})
	})
}

func TestCalculatorOptions(t *testing.T) {
	Convey("Given calculator options", t, func() {
		Convey("WithFloor raises the minimum scalar", func() {
			calc := strength.NewCalculator(strength.WithFloor(10))
			ts := calc.Calculate(strength.Input{Roster: flatRoster(0), Tactics: model.DefaultTactics()})
			So(ts.Serve, ShouldBeGreaterThanOrEqualTo, 10)
			So(ts.Receive, ShouldBeGreaterThanOrEqualTo, 10)
		})

		Convey("WithFatigueImpact zero makes fatigue a no-op", func() {
			calc := strength.NewCalculator(strength.WithFatigueImpact(0))
			fresh := calc.Calculate(strength.Input{Roster: flatRoster(70), Tactics: model.DefaultTactics(), Fatigue: 0})
			tired := calc.Calculate(strength.Input{Roster: flatRoster(70), Tactics: model.DefaultTactics(), Fatigue: 100})
			So(tired, ShouldResemble, fresh)
		})

		Convey("WithFormationBonuses replaces the trade-off table", func() {
			calc := strength.NewCalculator(strength.WithFormationBonuses(map[string]strength.FormationBonus{
				model.Formation51: {Attack: 2.0, Block: 1.0},
			}))
			base := strength.NewCalculator()

			boosted := calc.Calculate(strength.Input{Roster: flatRoster(70), Tactics: model.DefaultTactics()})
			plain := base.Calculate(strength.Input{Roster: flatRoster(70), Tactics: model.DefaultTactics()})
			So(boosted.Attack, ShouldBeGreaterThan, plain.Attack)
			So(boosted.Block, ShouldEqual, plain.Block)
		})
	})
}
