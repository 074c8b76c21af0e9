package main

import (
	"context"
	"delivery-planner/internal/adapters/mapdata"
	"delivery-planner/internal/domain"
	"delivery-planner/internal/platform/logging"
	"delivery-planner/internal/services"
	"delivery-planner/internal/streetmap"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
)

// planner prints turn-by-turn delivery commands for a map and a deliveries file.
func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("planner", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	seed := flags.Uint64("seed", 0, "random seed for the tour optimizer (0 picks one)")
	logLevel := flags.String("log-level", "warn", "log level")
	flags.Usage = func() {
		fmt.Fprintln(stderr, "usage: planner [--seed N] [--log-level L] MAP-DATA DELIVERIES")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() != 2 {
		flags.Usage()
		return 2
	}

	logging.Setup(*logLevel, "text")
	ctx := context.Background()

	edges, err := mapdata.NewFileStreetSource(flags.Arg(0)).ListStreetEdges(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Unable to load map data file %s: %v\n", flags.Arg(0), err)
		return 1
	}
	manifest, err := mapdata.LoadManifestFile(ctx, flags.Arg(1))
	if err != nil {
		fmt.Fprintf(stderr, "Unable to load delivery request file %s: %v\n", flags.Arg(1), err)
		return 1
	}

	var opts []services.PlannerOption
	if *seed != 0 {
		opts = append(opts, services.WithSeed(*seed))
	}
	planner := services.NewPlanner(services.NewRouteSearch(streetmap.FromEdges(edges)), opts...)

	res, err := planner.GeneratePlan(ctx, manifest.Depot, manifest.Deliveries)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s: %v\n", domain.KindOf(err), err)
		return 1
	}

	printPlan(stdout, res)
	return 0
}

func printPlan(w io.Writer, res *domain.PlanResult) {
	for _, c := range res.Commands {
		fmt.Fprintln(w, c.String())
	}
	fmt.Fprintln(w, "You are back at the depot and your deliveries are done!")
	fmt.Fprintf(w, "%.2f miles travelled for all deliveries.\n", res.TotalMiles)
}
