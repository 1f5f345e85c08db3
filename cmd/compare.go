package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/parking-sim/parking-sim/sim"
)

var (
	batchSize int  // number of vehicles in the comparison batch
	parallel  bool // evaluate strategies concurrently
)

// compareCmd benchmarks the three assignment strategies head-to-head on a
// seeded vehicle batch against the same starting facility state.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Benchmark assignment strategies on identical inputs",
	RunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()

		rng := sim.NewPartitionedRNG(sim.NewSimulationKey(seed))
		facility, err := sim.NewFacility(facilityName, loadLayout(), rng.ForSubsystem(sim.SubsystemLayout))
		if err != nil {
			return err
		}

		cfg := sim.DefaultGeneratorConfig()
		cfg.ArrivalRate = arrivalRate
		cfg.AvgDuration = avgDuration
		cfg.TypeWeights = sim.VehicleTypeWeights{Standard: weightStd, Handicap: weightHcp, Electric: weightElec}
		gen := sim.NewVehicleGenerator(cfg,
			rng.ForSubsystem(sim.SubsystemWorkload),
			rng.Source(sim.SubsystemWorkload))

		vehicles := make([]*sim.Vehicle, batchSize)
		for i := range vehicles {
			vehicles[i] = gen.Next(0)
		}
		logrus.Infof("comparing %d strategies on a batch of %d vehicles (seed=%d)",
			3, batchSize, seed)

		harness := sim.NewComparisonHarness()
		harness.Parallel = parallel
		sim.PrintResults(harness.Run(facility, vehicles))
		return nil
	},
}

func init() {
	compareCmd.Flags().IntVar(&batchSize, "vehicles", 20, "Vehicles in the comparison batch")
	compareCmd.Flags().BoolVar(&parallel, "parallel", false, "Evaluate strategies concurrently")
	rootCmd.AddCommand(compareCmd)
}
