// Command logicdb is a small interactive harness over the unification
// and backtracking core: it loads an optional persisted fact snapshot,
// seeds a demo dataset when empty, and runs a fixed set of demo queries
// or an interactive relation-lookup loop. There is no query-language
// parser here (a core Non-goal) — queries are built from a tiny
// "relation arg arg ..." line format, where arguments starting with
// '?' are variables and everything else is a text literal.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/arcadia-db/logicdb"
	"github.com/arcadia-db/logicdb/annotations"
	"github.com/arcadia-db/logicdb/solver"
	"github.com/arcadia-db/logicdb/storage"
)

func main() {
	var dbPath string
	var interactive bool
	var help bool
	var verbose bool
	var queryLine string

	flag.StringVar(&dbPath, "db", "", "snapshot path for persisted facts")
	flag.BoolVar(&interactive, "i", false, "interactive mode")
	flag.BoolVar(&help, "h", false, "show help")
	flag.BoolVar(&verbose, "verbose", false, "verbose mode (show solver trace events)")
	flag.StringVar(&queryLine, "query", "", "run a single relation query and exit, e.g. 'parent ?x bob'")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [snapshot_path]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "A unification and backtracking query engine.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                         # Run demo with an in-memory database\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -db facts.db            # Run demo, persisting facts to facts.db\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -i                      # Interactive mode\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -verbose -i             # Interactive mode with solver trace\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -query 'parent ?x bob'  # Run a single relation query\n", os.Args[0])
	}
	flag.Parse()

	if help {
		flag.Usage()
		os.Exit(0)
	}

	if dbPath == "" && flag.NArg() > 0 {
		dbPath = flag.Arg(0)
	}

	db := storage.NewDatabase()
	var snapshot *storage.Snapshot
	if dbPath != "" {
		var err error
		snapshot, err = storage.OpenSnapshot(dbPath)
		if err != nil {
			log.Fatalf("failed to open snapshot: %v", err)
		}
		defer snapshot.Close()

		if err := snapshot.Load(db); err != nil {
			log.Fatalf("failed to load snapshot: %v", err)
		}
	}

	if db.IsEmpty() {
		fmt.Println("Database is empty, loading demo data...")
		loadDemoData(db, snapshot)
	}

	var opts *solver.Options
	if verbose {
		formatter := annotations.NewOutputFormatter(os.Stderr)
		opts = &solver.Options{Collector: annotations.NewCollector(formatter.Handle)}
	}

	switch {
	case queryLine != "":
		runQuery(db, opts, queryLine)
	case interactive:
		runInteractive(db, opts)
	default:
		runDemoQueries(db, opts)
	}
}

func loadDemoData(db *storage.Database, snapshot *storage.Snapshot) {
	facts := [][]logicdb.DBValue{
		{logicdb.TextValue("alice"), logicdb.RelationIDValue("parent"), logicdb.TextValue("bob")},
		{logicdb.TextValue("alice"), logicdb.RelationIDValue("parent"), logicdb.TextValue("carol")},
		{logicdb.TextValue("bob"), logicdb.RelationIDValue("parent"), logicdb.TextValue("dave")},
	}
	for _, fact := range facts {
		db.InsertFact(fact)
		if snapshot != nil {
			if err := snapshot.Append(fact); err != nil {
				log.Fatalf("failed to persist demo fact: %v", err)
			}
		}
	}

	// grandparent(X, Z) :- parent(X, Y), parent(Y, Z)
	db.InsertRule("grandparent",
		[]logicdb.Value{logicdb.Var("x"), logicdb.Var("z")},
		logicdb.NewIntersections(
			logicdb.Constraint{Kind: logicdb.ConstraintRelation, RelationID: "PARENT", Tokens: []logicdb.Value{logicdb.Var("x"), logicdb.Var("y")}},
			logicdb.Constraint{Kind: logicdb.ConstraintRelation, RelationID: "PARENT", Tokens: []logicdb.Value{logicdb.Var("y"), logicdb.Var("z")}},
		),
	)
}

func runDemoQueries(db *storage.Database, opts *solver.Options) {
	fmt.Println(color.CyanString("=== logicdb demo ==="))

	queries := []string{"parent ?x ?y", "grandparent ?a ?b"}
	for _, q := range queries {
		fmt.Printf("\nQuery: %s\n", q)
		runQuery(db, opts, q)
	}
}

func runInteractive(db *storage.Database, opts *solver.Options) {
	fmt.Println("=== logicdb interactive mode ===")
	fmt.Println("Enter a relation query, e.g. 'parent ?x bob'. Type .exit to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == ".exit" {
			return
		}
		if line == "" {
			continue
		}
		runQuery(db, opts, line)
	}
}

// runQuery parses line as "relation arg1 arg2 ..." (arguments starting
// with '?' are variables, everything else is a text literal) and prints
// every satisfying binding as a table.
func runQuery(db *storage.Database, opts *solver.Options, line string) {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		fmt.Println("expected: relation arg1 arg2 ...")
		return
	}

	relation := fields[0]
	args := make([]logicdb.Value, 0, len(fields)-1)
	var vars []string
	for _, f := range fields[1:] {
		if strings.HasPrefix(f, "?") {
			name := strings.TrimPrefix(f, "?")
			args = append(args, logicdb.Var(name))
			vars = append(vars, name)
		} else {
			args = append(args, logicdb.Lit(logicdb.TextValue(f)))
		}
	}

	constraint := logicdb.Constraint{
		Kind:       logicdb.ConstraintRelation,
		RelationID: strings.ToUpper(relation),
		Tokens:     args,
	}

	stream := solver.Backtrack([]logicdb.Constraint{constraint}, db, logicdb.Bindings{}, opts)
	defer stream.Close()

	renderBindings(stream, vars)
}

func renderBindings(stream solver.BindingStream, vars []string) {
	if len(vars) == 0 {
		vars = []string{"result"}
	}

	table := tablewriter.NewTable(os.Stdout)
	table.Header(toHeader(vars))

	rows := 0
	for stream.Next() {
		env := stream.Bindings()
		row := make([]string, len(vars))
		for i, v := range vars {
			if val := env.Resolve(logicdb.Var(v)); val.Kind != logicdb.ValueVariable {
				row[i] = val.String()
			} else {
				row[i] = "_"
			}
		}
		table.Append(row)
		rows++
	}

	table.Render()
	fmt.Printf("%d binding(s)\n", rows)
}

func toHeader(vars []string) []string {
	out := make([]string, len(vars))
	for i, v := range vars {
		out[i] = "?" + v
	}
	return out
}
