// Package main provides the buildcalc binary that loads build documents,
// evaluates their stats and damage, and prints a stat sheet.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cory-johannsen/simu/internal/config"
	"github.com/cory-johannsen/simu/internal/game/build"
	"github.com/cory-johannsen/simu/internal/game/damage"
	"github.com/cory-johannsen/simu/internal/game/stats"
	"github.com/cory-johannsen/simu/internal/observability"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty = defaults and SIMU_ environment")
	weaponsDir := flag.String("weapons-dir", "", "path to weapon YAML definitions directory (overrides content.weapons_dir)")
	compare := flag.Bool("compare", false, "print the difference of every build against the first")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: buildcalc [flags] build.yaml [build.yaml ...]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *weaponsDir != "" {
		cfg.Content.WeaponsDir = *weaponsDir
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger, flag.Args(), *compare, os.Stdout); err != nil {
		logger.Fatal("evaluating builds", zap.Error(err))
	}
	logger.Info("done", zap.Duration("elapsed", time.Since(start)))
}

// run evaluates every build file and writes one sheet per build to out.
func run(cfg config.Config, logger *zap.Logger, paths []string, compare bool, out io.Writer) error {
	catalog, err := damage.LoadWeapons(cfg.Content.WeaponsDir)
	if err != nil {
		return err
	}
	logger.Info("weapons loaded", zap.Int("count", len(catalog.All())))

	calcOpts, err := cfg.Calculator.Options()
	if err != nil {
		return err
	}
	factory := build.Factory{Catalog: catalog, Logger: logger, CalculatorOptions: calcOpts}
	if cfg.Calculator.Instrument {
		factory.Recorder = observability.NewCalcRecorder(logger)
	}
	bench := build.NewWorkbench(factory)

	for _, path := range paths {
		doc, err := build.LoadFile(path)
		if err != nil {
			return err
		}
		sh, err := bench.Create(doc)
		if err != nil {
			return err
		}
		sh.Calculator.RecalculateAllStats()
		if err := writeSheet(out, sh); err != nil {
			return err
		}
	}

	if !compare {
		return nil
	}
	sheets := bench.All()
	for _, other := range sheets[1:] {
		cmp, err := bench.Compare(sheets[0].ID, other.ID)
		if err != nil {
			return err
		}
		if err := writeComparison(out, sheets[0].Name, other.Name, cmp); err != nil {
			return err
		}
	}
	return nil
}

func writeSheet(out io.Writer, sh *build.Sheet) error {
	s := sh.Stats
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "== %s (%s, %s)\n", sh.Name, sh.Calculator.AttackMode(), sh.Calculator.Weapon().Name)
	fmt.Fprintf(tw, "tags\t%s\n", s.ConditionalTags())
	for _, st := range s.AllStats() {
		marker := ""
		if st.IsOvercapped() {
			marker = fmt.Sprintf("\t(capped from %s)", st.Uncapped().StringFixed(2))
		}
		fmt.Fprintf(tw, "%s\t%s%s\n", st.Name(), s.Total(st).StringFixed(2), marker)
	}
	for _, l := range s.AllLists() {
		fmt.Fprintf(tw, "%s\t%s\n", l.Name(), s.ListTotal(l).StringFixed(2))
		for _, m := range l.Modifiers() {
			fmt.Fprintf(tw, "  %s\n", m)
		}
	}
	fmt.Fprintf(tw, "%s\t%s\n", stats.NameMana, s.Mana().StringFixed(2))
	if !s.DungeonStars.IsZero() {
		fmt.Fprintf(tw, "DungeonStars\t%s\n", s.DungeonStars.StringFixed(0))
	}

	if err := sh.Calculator.RefreshDamageBreakdown(); err != nil {
		fmt.Fprintf(tw, "damage\t%v\n", err)
	} else {
		b := sh.Calculator.Breakdown()
		fmt.Fprintf(tw, "damage per hit\t%s\n", b.DamagePerHit.StringFixed(2))
		fmt.Fprintf(tw, "hits per second\t%s\n", b.HitsPerSecond.StringFixed(3))
		fmt.Fprintf(tw, "damage per second\t%s\n", b.DamagePerSecond.StringFixed(2))
	}
	fmt.Fprintln(tw)
	return tw.Flush()
}

func writeComparison(out io.Writer, base, other string, cmp build.Comparison) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "== %s vs %s\n", other, base)
	for _, k := range cmp.Stats.Keys() {
		if d := cmp.Stats[k]; !d.IsZero() {
			fmt.Fprintf(tw, "%s\t%s\n", k, signed(d))
		}
	}
	fmt.Fprintf(tw, "damage per hit\t%s\n", signed(cmp.DamagePerHit))
	fmt.Fprintf(tw, "damage per second\t%s\n", signed(cmp.DamagePerSecond))
	fmt.Fprintln(tw)
	return tw.Flush()
}

func signed(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + d.StringFixed(2)
	}
	return d.StringFixed(2)
}
