// nn-train: online backpropagation on a two-input truth table
//
// Usage:
//
//	nn-train --arch="2 3 1" --task=xor --epochs=5000 --lr=0.7 --output=xor.json
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"gonum.org/v1/gonum/mat"

	"neuron_lib/nn"
	"neuron_lib/random"
	"neuron_lib/store"
	"neuron_lib/utils"
)

var (
	arch         = flag.String("arch", "2 3 1", "Layer sizes, input first")
	task         = flag.String("task", "xor", "Truth table: xor, and, or")
	epochs       = flag.Int("epochs", 5000, "Number of training epochs")
	learningRate = flag.Float64("lr", nn.DefaultLearningRate, "Learning rate in (0, 1]")
	seed         = flag.Uint64("seed", 42, "Random seed")
	weightMin    = flag.Float64("wmin", nn.DefaultWeightRange.Min, "Lower bound of initial weights")
	weightMax    = flag.Float64("wmax", nn.DefaultWeightRange.Max, "Upper bound of initial weights")
	freeze       = flag.Bool("freeze-first-hidden", false, "Never update the first hidden layer")
	growLayer    = flag.Int("grow", 0, "Add one neuron to this hidden layer before training (0 = none)")
	addHidden    = flag.Bool("add-hidden", false, "Insert a single-neuron hidden layer before training")
	verbose      = flag.Bool("verbose", true, "Verbose output")
	logEvery     = flag.Int("log-every", 500, "Print loss every N epochs")
	outputFile   = flag.String("output", "", "Output weights file (JSON)")
	dbPath       = flag.String("db", "", "SQLite snapshot store")
	name         = flag.String("name", "", "Snapshot name in the store (defaults to the task)")
)

func main() {
	flag.Parse()
	utils.Verbose = *verbose

	layers, err := utils.ParseArchitecture(*arch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing architecture: %v\n", err)
		os.Exit(1)
	}
	cfg := utils.Config{
		Architecture:      layers,
		Task:              *task,
		Epochs:            *epochs,
		LearningRate:      *learningRate,
		Seed:              *seed,
		WeightMin:         *weightMin,
		WeightMax:         *weightMax,
		FreezeFirstHidden: *freeze,
		GrowLayer:         *growLayer,
	}
	if err := utils.ValidateConfig(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nConfiguration:\n")
	fmt.Printf("  Architecture:  %v\n", cfg.Architecture)
	fmt.Printf("  Task:          %s\n", cfg.Task)
	fmt.Printf("  Epochs:        %d\n", cfg.Epochs)
	fmt.Printf("  Learning Rate: %.4f\n", cfg.LearningRate)
	fmt.Printf("  Weight range:  [%v, %v]\n", cfg.WeightMin, cfg.WeightMax)
	fmt.Println()

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg utils.Config) error {
	stats := &utils.TimingStats{}
	totalStart := time.Now()

	start := time.Now()
	net, err := nn.NewNetwork(cfg.Architecture, nn.Config{
		WeightRange: nn.Range{Min: cfg.WeightMin, Max: cfg.WeightMax},
		Source:      random.NewUniform(cfg.Seed),
	})
	if err != nil {
		return err
	}
	if cfg.GrowLayer > 0 {
		if err := net.AddNeuron(cfg.GrowLayer); err != nil {
			return err
		}
	}
	if *addHidden {
		if err := net.AddHiddenLayer(); err != nil {
			return err
		}
	}
	stats.ModelInitTime = time.Since(start)
	utils.Logf("Model: %v", net.Sizes())

	lines, err := utils.TruthTable(cfg.Task)
	if err != nil {
		return err
	}

	opts := nn.TrainOptions{LearningRate: cfg.LearningRate, FreezeFirstHidden: cfg.FreezeFirstHidden}
	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		epochLoss := 0.0
		stepStart := time.Now()
		for _, line := range lines {
			loss, err := net.Train(line.Inputs, line.Targets, opts)
			if err != nil {
				return err
			}
			epochLoss += loss
		}
		stats.TrainStepTime += time.Since(stepStart)

		if *logEvery > 0 && (epoch%*logEvery == 0 || epoch == cfg.Epochs) {
			utils.Logf("Epoch %d/%d | Loss: %.6f", epoch, cfg.Epochs, epochLoss/float64(len(lines)))
		}
	}

	evalStart := time.Now()
	fmt.Println("\nResults:")
	for _, line := range lines {
		out, err := net.Forward(line.Inputs)
		if err != nil {
			return err
		}
		mse, err := utils.MeanSquaredError(out, line.Targets)
		if err != nil {
			return err
		}
		fmt.Printf("  %v -> %.4f (target %v, mse %.6f)\n", line.Inputs, out[0], line.Targets[0], mse)
	}
	stats.EvaluationTime = time.Since(evalStart)

	if utils.Verbose {
		for l := 1; l < net.Layers(); l++ {
			m, err := net.WeightMatrix(l)
			if err != nil {
				return err
			}
			fmt.Printf("\nLayer %d weights:\n%v\n", l, mat.Formatted(m, mat.Prefix(""), mat.Squeeze()))
		}
	}

	persistStart := time.Now()
	if err := persist(net.Snapshot(), cfg.Task); err != nil {
		return err
	}
	stats.PersistenceTime = time.Since(persistStart)

	stats.TotalTime = time.Since(totalStart)
	utils.PrintTimingStats(stats, cfg.Epochs*len(lines))
	return nil
}

func persist(snap nn.Snapshot, task string) error {
	if *outputFile != "" {
		fmt.Printf("\nSaving weights to %s...\n", *outputFile)
		if err := utils.SaveSnapshot(*outputFile, snap); err != nil {
			return err
		}
	}
	if *dbPath != "" {
		key := *name
		if key == "" {
			key = task
		}
		ctx := context.Background()
		s, err := store.Open(ctx, *dbPath)
		if err != nil {
			return err
		}
		defer s.Close()
		fmt.Printf("Saving snapshot %q to %s...\n", key, *dbPath)
		if err := s.Save(ctx, key, snap); err != nil {
			return err
		}
	}
	return nil
}
