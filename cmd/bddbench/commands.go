// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"math/rand"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/ltlkit/bdd"
	"github.com/ltlkit/bdd/cnf"
	"github.com/ltlkit/bdd/internal/problems"
	"github.com/scott-cotton/cli"
	"go.uber.org/zap"
)

const usageText = `bddbench - run classical BDD benchmarks

Usage:
  bddbench queens [-n N]                       N-queens problem
  bddbench milner [-n N] [-slow]               reachable states of N Milner cyclers
  bddbench cnf [-vars V] [-clauses C] [-seed S] [-check] [-aut FILE]
                                               random 3-SAT formula

Every command accepts -config <file.yaml> to configure the engine, -v to log
garbage collections and resizing, and -stats to print engine statistics.`

// errMismatch is returned when a benchmark does not compute the expected
// result.
var errMismatch = errors.New("unexpected result")

// Root returns the root command for bddbench.
func Root() *cli.Command {
	return cli.NewCommand("bddbench").
		WithSynopsis("bddbench - run classical BDD benchmarks").
		WithDescription(usageText).
		WithSubs(
			QueensCommand(),
			MilnerCommand(),
			CNFCommand(),
		)
}

// engine creates the BDD used by a benchmark from a configuration file (or
// the default configuration when path is empty).
func engine(path string, verbose bool, varnum int) (*bdd.BDD, error) {
	cfg := bdd.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = bdd.LoadConfigFile(path); err != nil {
			return nil, fmt.Errorf("could not load %q: %w", path, err)
		}
	}
	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		cfg.Logger = logger
	}
	return bdd.NewWithConfig(varnum, cfg)
}

func status(ok bool) string {
	if ok {
		return color.GreenString("ok")
	}
	return color.RedString("mismatch")
}

func printStats(w io.Writer, b *bdd.BDD) {
	bold := color.New(color.Bold)
	fmt.Fprintln(w, bold.Sprint("engine"))
	fmt.Fprintln(w, b.Stats())
	fmt.Fprintln(w, bold.Sprint("caches"))
	fmt.Fprintln(w, b.CacheStats())
}

// ************************************************************

type queensConfig struct {
	*cli.Command
	Config  string `cli:"name=config aliases=c desc='YAML configuration of the engine'"`
	Verbose bool   `cli:"name=v desc='log garbage collections and resizing'"`
	Stats   bool   `cli:"name=stats desc='print engine statistics'"`
	N       int    `cli:"name=n desc='size of the board'"`
}

// QueensCommand returns the queens subcommand.
func QueensCommand() *cli.Command {
	cfg := &queensConfig{N: 8}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "queens").
		WithSynopsis("queens [-n N] - count the solutions of the N-queens problem").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *queensConfig) run(cc *cli.Context, args []string) error {
	if _, err := cfg.Parse(cc, args); err != nil {
		return err
	}
	b, err := engine(cfg.Config, cfg.Verbose, cfg.N*cfg.N)
	if err != nil {
		return err
	}
	if err := queens(cc.Out, b, cfg.N); err != nil {
		return err
	}
	if cfg.Stats {
		printStats(cc.Out, b)
	}
	return nil
}

// knownQueens is the number of solutions of the N-queens problem, for small
// values of N.
var knownQueens = []float64{1, 1, 0, 0, 2, 10, 4, 40, 92, 352, 724, 2680, 14200}

func queens(w io.Writer, b *bdd.BDD, n int) error {
	start := time.Now()
	q := problems.Queens(b, n)
	defer b.Dereference(q)
	count := b.SatCount(q)
	elapsed := time.Since(start)
	if n >= len(knownQueens) {
		fmt.Fprintf(w, "queens(%d): %g solutions in %s\n", n, count, elapsed)
		return nil
	}
	ok := count == knownQueens[n]
	fmt.Fprintf(w, "queens(%d): %g solutions in %s [%s]\n", n, count, elapsed, status(ok))
	if !ok {
		return fmt.Errorf("%w: queens(%d) expected %g", errMismatch, n, knownQueens[n])
	}
	return nil
}

// ************************************************************

type milnerConfig struct {
	*cli.Command
	Config  string `cli:"name=config aliases=c desc='YAML configuration of the engine'"`
	Verbose bool   `cli:"name=v desc='log garbage collections and resizing'"`
	Stats   bool   `cli:"name=stats desc='print engine statistics'"`
	N       int    `cli:"name=n desc='number of cyclers'"`
	Slow    bool   `cli:"name=slow desc='use And followed by Exists instead of AndExist'"`
}

// MilnerCommand returns the milner subcommand.
func MilnerCommand() *cli.Command {
	cfg := &milnerConfig{N: 16}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "milner").
		WithSynopsis("milner [-n N] [-slow] - reachable states of Milner's cyclers").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *milnerConfig) run(cc *cli.Context, args []string) error {
	if _, err := cfg.Parse(cc, args); err != nil {
		return err
	}
	b, err := engine(cfg.Config, cfg.Verbose, 6*cfg.N)
	if err != nil {
		return err
	}
	if err := milner(cc.Out, b, cfg.N, !cfg.Slow); err != nil {
		return err
	}
	if cfg.Stats {
		printStats(cc.Out, b)
	}
	return nil
}

func milner(w io.Writer, b *bdd.BDD, n int, fast bool) error {
	start := time.Now()
	R, err := problems.Milner(b, n, fast)
	if err != nil {
		return err
	}
	defer b.Dereference(R)
	count := b.SatCountExact(R)
	elapsed := time.Since(start)
	expected := big.NewInt(int64(n))
	expected.Mul(expected, new(big.Int).Lsh(big.NewInt(1), uint(4*n+1)))
	ok := count.Cmp(expected) == 0
	fmt.Fprintf(w, "milner(%d): %s states in %s [%s]\n", n, count, elapsed, status(ok))
	if !ok {
		return fmt.Errorf("%w: milner(%d) expected %s", errMismatch, n, expected)
	}
	return nil
}

// ************************************************************

type cnfConfig struct {
	*cli.Command
	Config  string `cli:"name=config aliases=c desc='YAML configuration of the engine'"`
	Verbose bool   `cli:"name=v desc='log garbage collections and resizing'"`
	Stats   bool   `cli:"name=stats desc='print engine statistics'"`
	Vars    int    `cli:"name=vars desc='number of variables'"`
	Clauses int    `cli:"name=clauses desc='number of clauses'"`
	Seed    int    `cli:"name=seed desc='seed of the random generator'"`
	Check   bool   `cli:"name=check desc='check satisfiability with the gini SAT solver'"`
	Aut     string `cli:"name=aut desc='write the BDD of the formula in AUT format to this file'"`
}

// CNFCommand returns the cnf subcommand.
func CNFCommand() *cli.Command {
	cfg := &cnfConfig{Vars: 40, Clauses: 160, Seed: 1}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Command, "cnf").
		WithSynopsis("cnf [-vars V] [-clauses C] [-seed S] [-check] - random 3-SAT formula").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *cnfConfig) run(cc *cli.Context, args []string) error {
	if _, err := cfg.Parse(cc, args); err != nil {
		return err
	}
	b, err := engine(cfg.Config, cfg.Verbose, cfg.Vars)
	if err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(int64(cfg.Seed)))
	clauses := cnf.Random3SAT(rng, cfg.Vars, cfg.Clauses)
	if err := random3sat(cc.Out, b, clauses, cfg.Check, cfg.Aut); err != nil {
		return err
	}
	if cfg.Stats {
		printStats(cc.Out, b)
	}
	return nil
}

func random3sat(w io.Writer, b *bdd.BDD, clauses [][]int, check bool, aut string) error {
	start := time.Now()
	n, err := cnf.Build(b, clauses)
	if err != nil {
		return err
	}
	defer b.Dereference(n)
	fmt.Fprintf(w, "cnf(%d clauses): %g models, %d live nodes in %s\n", len(clauses), b.SatCount(n), b.NodeCount(), time.Since(start))
	if aut != "" {
		if err := writeAut(aut, b, n); err != nil {
			return err
		}
	}
	if !check {
		return nil
	}
	sat, err := cnf.Satisfiable(clauses)
	if err != nil {
		return err
	}
	ok := sat == (n != bdd.False)
	fmt.Fprintf(w, "gini: satisfiable=%t [%s]\n", sat, status(ok))
	if !ok {
		return fmt.Errorf("%w: gini and bdd disagree on satisfiability", errMismatch)
	}
	return nil
}

// writeAut saves the BDD with root n in file path, or on the standard output
// when path is "-".
func writeAut(path string, b *bdd.BDD, n bdd.Node) error {
	if path == "-" {
		return b.PrintAut(os.Stdout, n)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := b.PrintAut(f, n); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
