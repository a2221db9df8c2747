package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"

	"github.com/rhartert/saturn/casc"
	"github.com/rhartert/saturn/kbo"
	"github.com/rhartert/saturn/saturation"
	"github.com/rhartert/saturn/term"
)

var flagCPUProfile = flag.Bool(
	"cpuprof",
	false,
	"save pprof CPU profile in cpuprof",
)

var flagMemProfile = flag.Bool(
	"memprof",
	false,
	"save pprof memory profile in memprof",
)

var flagBudget = flag.Int(
	"budget_deciseconds",
	100,
	"total wall-clock budget, in deciseconds, handed to the portfolio scheduler",
)

type config struct {
	memProfile bool
	cpuProfile bool
	budget     int
}

func parseConfig() *config {
	flag.Parse()
	return &config{
		memProfile: *flagMemProfile,
		cpuProfile: *flagCPUProfile,
		budget:     *flagBudget,
	}
}

// demoProblem builds { p(a), ~p(a) ∨ q(a), ~q(a) }: a small unsatisfiable
// set resolvable to the empty clause in two steps. A parser from an
// external clause-set format (TPTP, DIMACS) is out of scope (spec.md §1
// Non-goals); this engine's external interface is the already-clausified
// saturation.ProblemCnf (spec.md §6), which here is built directly from
// package term rather than read from a file.
func demoProblem() (saturation.ProblemCnf, *kbo.Ordering) {
	sig := term.NewSignature()
	aFn := sig.AddFunctor(term.FunctorInfo{Name: "a", Arity: 0})
	pPred := sig.AddPredicate("p", 1, 0)
	qPred := sig.AddPredicate("q", 1, 0)

	tbl := term.NewTable(sig)
	a := tbl.MkCompound(aFn, nil)

	pa := tbl.MkLiteral(pPred, true, []*term.Term{a})
	notPa := tbl.MkLiteral(pPred, false, []*term.Term{a})
	qa := tbl.MkLiteral(qPred, true, []*term.Term{a})
	notQa := tbl.MkLiteral(qPred, false, []*term.Term{a})

	clauses := []*term.Clause{
		tbl.NewClause([]*term.Literal{pa}, term.InferenceInput, nil),
		tbl.NewClause([]*term.Literal{notPa, qa}, term.InferenceInput, nil),
		tbl.NewClause([]*term.Literal{notQa}, term.InferenceInput, nil),
	}

	ord := kbo.NewOrdering(sig, kbo.DefaultWeightMap(sig.NumFunctors()), kbo.Precedence{})
	return saturation.ProblemCnf{Signature: sig, Table: tbl, Clauses: clauses}, ord
}

func run(ctx context.Context, cfg *config) error {
	problem, ord := demoProblem()

	prop := saturation.Property{Clauses: len(problem.Clauses), CategoryHint: "FOF"}
	category := casc.Classify(prop)
	schedules := casc.DefaultSchedules(cfg.budget)
	set, ok := schedules[category]
	if !ok {
		return fmt.Errorf("no schedule registered for category %v", category)
	}

	runner := casc.NewRunner(problem, ord, saturation.DefaultOptions())

	ok, err := casc.Run(ctx, set, cfg.budget, runner)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	fmt.Printf("c category:   %v\n", category)
	fmt.Printf("c status:     %s\n", refutationStatus(ok))
	return nil
}

func refutationStatus(foundRefutation bool) string {
	if foundRefutation {
		return "Refutation"
	}
	return "GaveUp"
}

func main() {
	cfg := parseConfig()

	if cfg.cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal(err)
	}

	if cfg.memProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}
}
