package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"distribution-planner/internal/adapters/report"
	"distribution-planner/internal/adapters/repositories"
	"distribution-planner/internal/app"
	"distribution-planner/internal/config"
	"distribution-planner/internal/services"
)

type options struct {
	data    string
	mode    string
	out     string
	save    bool
	matrix  bool
	convert string
}

func main() {
	if err := config.Load(); err != nil {
		log.Fatal(err)
	}

	var opts options
	flag.StringVar(&opts.data, "data", config.Get("DATA_PATH", "data/sample_data.json"), "dataset file (.json, .yaml)")
	flag.StringVar(&opts.mode, "mode", config.Get("MERGE_MODE", string(services.MergeRestricted)), "merge mode: restricted or canonical")
	flag.StringVar(&opts.out, "out", config.Get("OUTPUT_DIR", "results"), "output directory for the solution files")
	flag.BoolVar(&opts.save, "save", false, "persist the solution in the configured database")
	flag.BoolVar(&opts.matrix, "matrix", false, "print the distance matrix and exit")
	flag.StringVar(&opts.convert, "convert", "", "write the dataset to this path (format from extension) and exit")
	flag.Parse()

	if err := run(context.Background(), os.Stdout, opts); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, w io.Writer, opts options) error {
	mode, err := services.ParseMergeMode(opts.mode)
	if err != nil {
		return err
	}

	if _, err := os.Stat(opts.data); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("dataset file %s not found", opts.data)
	}

	ds, err := repositories.LoadDataset(opts.data)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Loading distribution data...\n")
	fmt.Fprintf(w, "File: %s\n", ds.Title)
	if ds.Description != "" {
		fmt.Fprintf(w, "Description: %s\n", ds.Description)
	}
	fmt.Fprintf(w, "Locations: %d\n", len(ds.Locations))
	fmt.Fprintf(w, "Truck capacity: %d units\n\n", ds.Truck.Capacity)

	if opts.convert != "" {
		if err := repositories.SaveDataset(opts.convert, ds); err != nil {
			return err
		}
		fmt.Fprintf(w, "Dataset written to: %s\n", opts.convert)
		return nil
	}

	planner := services.NewPlanner(nil, nil, nil, mode)
	if opts.save {
		stores, err := app.OpenStores(ctx)
		if err != nil {
			return err
		}
		defer stores.Close()
		planner = services.NewPlanner(stores.Solutions, nil, stores.Distances, mode)
	}

	if opts.matrix {
		m, err := planner.DistanceMatrix(ctx, ds)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "Distance matrix (km):")
		return report.PrintDistanceMatrix(w, m)
	}

	sol, err := planner.Plan(ctx, ds, mode)
	if err != nil {
		return err
	}

	solutionPath := filepath.Join(opts.out, report.SolutionFile)
	if err := report.WriteSolutionJSON(solutionPath, sol); err != nil {
		return err
	}
	geoPath := filepath.Join(opts.out, report.GeoJSONFile)
	if err := report.WriteGeoJSON(geoPath, ds, sol); err != nil {
		return err
	}
	fmt.Fprintf(w, "Solution written to: %s\n", solutionPath)
	fmt.Fprintf(w, "Route map written to: %s\n", geoPath)
	if opts.save {
		fmt.Fprintf(w, "Solution stored with id: %s\n", sol.ID)
	}
	fmt.Fprintln(w)

	return report.PrintReport(w, ds, sol)
}
