// nn-infer: forward pass through a saved network
//
// Usage:
//
//	nn-infer --weights=xor.json --input="1 0"
//	nn-infer --db=nets.db --name=xor --input="1 0"
//	nn-infer --db=nets.db --list
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"neuron_lib/nn"
	"neuron_lib/store"
	"neuron_lib/utils"
)

var (
	weightsFile = flag.String("weights", "", "Weights JSON file")
	dbPath      = flag.String("db", "", "SQLite snapshot store")
	name        = flag.String("name", "", "Snapshot name in the store")
	list        = flag.Bool("list", false, "List snapshots in the store and exit")
	input       = flag.String("input", "", "Input vector, e.g. \"1 0\"")
	normalize   = flag.Bool("normalize", false, "Min-max rescale the input onto [0, 1] first")
	verbose     = flag.Bool("verbose", true, "Verbose output")
)

func main() {
	flag.Parse()
	utils.Verbose = *verbose

	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if *list {
		return listSnapshots(ctx)
	}

	snap, err := loadSnapshot(ctx)
	if err != nil {
		return err
	}
	net := nn.FromSnapshot(snap, nn.Config{})
	utils.Logf("Loaded network %v", net.Sizes())

	values, err := utils.ParseVector(*input)
	if err != nil {
		return err
	}
	if *normalize {
		values = utils.Normalize(values)
		utils.Logf("Normalized input %v", values)
	}
	out, err := net.Forward(values)
	if err != nil {
		return err
	}
	for i, v := range out {
		fmt.Printf("output[%d] = %.6f\n", i, v)
	}
	return nil
}

func loadSnapshot(ctx context.Context) (nn.Snapshot, error) {
	switch {
	case *weightsFile != "":
		return utils.LoadSnapshot(*weightsFile)
	case *dbPath != "" && *name != "":
		s, err := store.Open(ctx, *dbPath)
		if err != nil {
			return nn.Snapshot{}, err
		}
		defer s.Close()
		return s.Load(ctx, *name)
	default:
		return nn.Snapshot{}, fmt.Errorf("either -weights or -db with -name is required")
	}
}

func listSnapshots(ctx context.Context) error {
	if *dbPath == "" {
		return fmt.Errorf("-list requires -db")
	}
	s, err := store.Open(ctx, *dbPath)
	if err != nil {
		return err
	}
	defer s.Close()
	entries, err := s.List(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Printf("%-20s %v  %s\n", e.Name, e.Topology, e.Updated.Format("2006-01-02 15:04:05"))
	}
	return nil
}
