package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/buildsearch/buildsearch/search"
)

// SearchFile is the YAML layout of a --config file. Keys left out keep the
// built-in defaults.
type SearchFile struct {
	PopSize       int     `yaml:"pop_size"`
	Generations   int     `yaml:"generations"`
	Budget        float64 `yaml:"budget"`
	CrossoverRate float64 `yaml:"crossover_rate"`
	MutationRate  float64 `yaml:"mutation_rate"`
	Seed          int64   `yaml:"seed"`
	Workers       int     `yaml:"workers"`
}

type resolvedConfig struct {
	Config search.Config
	Seed   int64
}

// loadSearchFile parses path on top of the defaults.
// Uses strict field checking: typos must cause errors.
func loadSearchFile(path string, defaults SearchFile) (SearchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return defaults, fmt.Errorf("reading search config: %w", err)
	}
	file := defaults
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return defaults, fmt.Errorf("parsing search config %s: %w", path, err)
	}
	return file, nil
}

// resolveConfig merges defaults, the optional config file and CLI flags.
// A flag wins over the file only when the user set it explicitly
// (cmd.Flags().Changed), so flag defaults never clobber file values.
func resolveConfig(cmd *cobra.Command, path string) (resolvedConfig, error) {
	d := search.DefaultConfig()
	file := SearchFile{
		PopSize:       d.PopSize,
		Generations:   d.Generations,
		Budget:        d.Budget,
		CrossoverRate: d.CrossoverRate,
		MutationRate:  d.MutationRate,
		Workers:       d.Workers,
		Seed:          seed,
	}
	if path != "" {
		var err error
		if file, err = loadSearchFile(path, file); err != nil {
			return resolvedConfig{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("pop-size") {
		file.PopSize = popSize
	}
	if flags.Changed("generations") {
		file.Generations = generations
	}
	if flags.Changed("budget") {
		file.Budget = budget
	}
	if flags.Changed("crossover-rate") {
		file.CrossoverRate = crossoverRate
	}
	if flags.Changed("mutation-rate") {
		file.MutationRate = mutationRate
	}
	if flags.Changed("workers") {
		file.Workers = workers
	}
	if flags.Changed("seed") {
		file.Seed = seed
	}

	return resolvedConfig{
		Config: search.Config{
			PopSize:       file.PopSize,
			Generations:   file.Generations,
			Budget:        file.Budget,
			CrossoverRate: file.CrossoverRate,
			MutationRate:  file.MutationRate,
			Workers:       file.Workers,
		},
		Seed: file.Seed,
	}, nil
}
