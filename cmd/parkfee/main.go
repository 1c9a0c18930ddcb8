package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/cityops/parkfee/internal/config"
	"github.com/cityops/parkfee/internal/server"
	"github.com/cityops/parkfee/internal/storage"
	"github.com/cityops/parkfee/pkg/optimizer/framework"
	"github.com/cityops/parkfee/pkg/optimizer/util"
	"github.com/cityops/parkfee/pkg/pricing"
)

func main() {
	klog.InitFlags(nil)
	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)

	root := &cobra.Command{
		Use:   "parkfee",
		Short: "Multi-objective parking fee optimizer",
	}
	root.PersistentFlags().AddFlagSet(pflag.CommandLine)
	root.AddCommand(newServeCommand(), newOptimizeCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newServeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the optimization HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := klog.Background()

			conf, err := config.Load(configPath)
			if err != nil {
				return err
			}

			var store storage.RunStore
			if conf.Database.Host != "" {
				pg, err := storage.NewPostgresStore(conf.Database.DSN())
				if err != nil {
					return err
				}
				defer pg.Close()
				if err := pg.EnsureSchema(cmd.Context()); err != nil {
					return err
				}
				store = pg
				logger.Info("Using Postgres run store", "host", conf.Database.Host)
			} else {
				store = storage.NewMemoryStore()
				logger.Info("No database configured, keeping runs in memory")
			}

			srv := server.New(store, server.RunDefaults{
				PopulationSize:  conf.Optimizer.PopulationSize,
				Generations:     conf.Optimizer.Generations,
				TargetOccupancy: conf.Optimizer.TargetOccupancy,
			})

			httpServer := &http.Server{
				Addr:         conf.ListenAddr,
				Handler:      srv.Handler(),
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 5 * time.Minute, // long enough for a full run
			}

			errChan := make(chan error, 1)
			go func() {
				logger.Info("Listening", "addr", conf.ListenAddr)
				errChan <- httpServer.ListenAndServe()
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errChan:
				return err
			case sig := <-quit:
				logger.Info("Shutting down", "signal", sig.String())
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return httpServer.Shutdown(ctx)
			}
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to configuration file")
	return cmd
}

// optimizeInput is the one-shot input file: the zone set plus optional run
// settings, in the same shape the API accepts.
type optimizeInput struct {
	Zones    []pricing.Zone   `json:"zones"`
	Settings pricing.Settings `json:"settings"`
}

func newOptimizeCommand() *cobra.Command {
	var (
		zonesPath   string
		weightsFlag string
		plotPath    string
		population  int
		generations int
		target      float64
		seed        uint64
	)

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Run a single optimization from a zones file and print the front",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(zonesPath)
			if err != nil {
				return fmt.Errorf("failed to read zones at %s: %w", zonesPath, err)
			}
			var input optimizeInput
			if err := json.Unmarshal(data, &input); err != nil {
				return fmt.Errorf("failed to parse zones at %s: %w", zonesPath, err)
			}

			if population > 0 {
				input.Settings.PopulationSize = population
			}
			if generations > 0 {
				input.Settings.Generations = generations
			}
			if cmd.Flags().Changed("target") {
				input.Settings.TargetOccupancy = target
			}
			if seed != 0 {
				input.Settings.Seed = seed
			}

			result, err := pricing.Optimize(cmd.Context(), input.Zones, input.Settings)
			if err != nil {
				return err
			}

			printResult(result)

			if weightsFlag != "" {
				weights, err := parseWeights(weightsFlag)
				if err != nil {
					return err
				}
				best, err := pricing.SelectBest(result, weights)
				if err != nil {
					return err
				}
				fmt.Printf("\nBest compromise for %s: scenario %d\n", weightsFlag, best.ID)
			}

			if plotPath != "" {
				points := make([]framework.ObjectiveSpacePoint, len(result.Scenarios))
				for i, s := range result.Scenarios {
					points[i] = framework.ObjectiveSpacePoint{
						s.Scores.Revenue,
						s.Scores.OccupancyGap,
						s.Scores.DemandDrop,
						s.Scores.UserBalance,
					}
				}
				if err := util.PlotFront(points, nil, 0, 1, "revenue", "occupancy gap", "Fee optimization front", plotPath); err != nil {
					return err
				}
				fmt.Printf("Front plot written to %s\n", plotPath)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&zonesPath, "zones", "zones.json", "path to the zones input file")
	cmd.Flags().StringVar(&weightsFlag, "weights", "", "objective weighting, e.g. revenue=2,demand_drop=1")
	cmd.Flags().StringVar(&plotPath, "plot", "", "write an HTML scatter plot of the front to this path")
	cmd.Flags().IntVar(&population, "population", 0, "override population size")
	cmd.Flags().IntVar(&generations, "generations", 0, "override generation count")
	cmd.Flags().Float64Var(&target, "target", 0, "override target occupancy")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 uses the default)")
	return cmd
}

func printResult(result *pricing.Result) {
	fmt.Printf("--- %d Pareto-optimal scenarios (seed %d) ---\n", len(result.Scenarios), result.Seed)
	fmt.Printf("%-4s | %-12s | %-13s | %-11s | %s\n", "id", "revenue", "occupancy gap", "demand drop", "user balance")
	for _, s := range result.Scenarios {
		fmt.Printf("%-4d | %12.2f | %13.4f | %11.4f | %12.6f\n",
			s.ID, s.Scores.Revenue, s.Scores.OccupancyGap, s.Scores.DemandDrop, s.Scores.UserBalance)
	}
}

func parseWeights(s string) (map[string]int, error) {
	weights := make(map[string]int)
	for _, part := range strings.Split(s, ",") {
		name, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			return nil, fmt.Errorf("invalid weight %q, want name=value", part)
		}
		w, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid weight value in %q: %w", part, err)
		}
		weights[name] = w
	}
	return weights, nil
}
