// Package feather provides an embeddable TCL interpreter for Go applications.
//
// # Architecture
//
// feather has a layered architecture:
//
//   - internal/core/hostops: the Host Operations Interface the engine is
//     written against — strings, numbers, lists, dicts, frames, namespaces,
//     commands and traces, addressed through opaque Handle values.
//   - internal/host: the default, pure-Go implementation of that interface.
//   - internal/core: the host-agnostic parser and evaluator — word/command
//     parsing, substitution, the command table, frames and namespaces, the
//     trace subsystem, and the expr sublanguage.
//   - This package: the public Go API using [*Obj] values.
//
// As a user of this package, you work exclusively with [*Obj] values. The
// Handle type exists only for internal implementation and may change between
// versions.
//
// # Quick Start
//
//	interp := feather.New()
//
//	// Evaluate TCL scripts
//	result, err := interp.Eval("expr {2 + 2}")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.String()) // "4"
//
//	// Register Go functions as TCL commands
//	interp.Register("env", func(name string) string {
//	    return os.Getenv(name)
//	})
//
//	result, _ = interp.Eval(`env HOME`)
//	fmt.Println(result.String()) // "/home/user"
//
// # Thread Safety
//
// An [*Interp] is NOT safe for concurrent use from multiple goroutines. Each
// goroutine that needs to evaluate TCL must have its own interpreter:
//
//	// WRONG: sharing interpreter between goroutines
//	interp := feather.New()
//	go func() { interp.Eval("...") }() // data race!
//	go func() { interp.Eval("...") }() // data race!
//
//	// CORRECT: one interpreter per goroutine
//	go func() {
//	    interp := feather.New()
//	    interp.Eval("...")
//	}()
//
// For server applications, use a pool of interpreters or create one per
// request. [*Obj] values are also tied to their interpreter and must not be
// shared.
//
// # Supported TCL Commands
//
// feather implements a substantial subset of TCL 8.6. Available commands:
//
// Control flow:
//
//	if, while, for, foreach, switch, break, continue, return, tailcall
//
// Procedures and evaluation:
//
//	proc, apply, uplevel, upvar, catch, try, throw, error
//
// Variables and namespaces:
//
//	set, unset, incr, append, global, variable, namespace, rename, trace
//
// Lists:
//
//	list, llength, lindex, lrange, linsert, lreplace, lreverse, lrepeat,
//	lsort, lsearch, lassign, split, join, concat
//
// Dictionaries:
//
//	dict (with subcommands: create, get, set, exists, keys, values, merge,
//	      for, incr, append, lappend, filter, update, with)
//
// Strings:
//
//	string (with subcommands: length, index, range, match, compare, equal,
//	        first, last, repeat, reverse, insert, replace, is, map, tolower,
//	        toupper, totitle, trim, trimleft, trimright, cat)
//
// Introspection:
//
//	info (with subcommands: exists, commands, procs, vars, locals, globals,
//	      level, frame, body, args, default, script, tclversion)
//
// Math functions (via expr):
//
//	sqrt, exp, log, log10, sin, cos, tan, asin, acos, atan, atan2,
//	sinh, cosh, tanh, floor, ceil, round, abs, pow, fmod, hypot,
//	double, int, wide, entier, max, min, isnan, isinf, isfinite,
//	isnormal, issubnormal, isunordered
//
// NOT implemented: file I/O, sockets, clock, encoding, and most Tk-related
// commands. Use [Interp.Register] to add these if needed.
//
// # Error Handling
//
// Errors from [Interp.Eval] are returned as [*EvalError]:
//
//	result, err := interp.Eval("expr {1/0}")
//	if err != nil {
//	    fmt.Println("Error:", err)
//	}
//
// To return errors from Go commands, use [Error] or [Errorf]:
//
//	interp.RegisterCommand("fail", func(i *feather.Interp, cmd *feather.Obj, args []*feather.Obj) feather.Result {
//	    _, err := os.Open("/nonexistent")
//	    if err != nil {
//	        return feather.Error(err.Error())
//	    }
//	    return feather.OK("success")
//	})
//
// For functions registered with [Interp.Register], return an error as the
// last value:
//
//	interp.Register("openfile", func(path string) (string, error) {
//	    data, err := os.ReadFile(path)
//	    return string(data), err // error automatically becomes a TCL error
//	})
//
// In TCL, use catch or try to handle errors:
//
//	if {[catch {openfile /nonexistent} errmsg]} {
//	    puts "Error: $errmsg"
//	}
//
// # Working with Results
//
// [Interp.Eval] returns (*Obj, error). The result is the value of the last
// command executed. Extract values using methods on [*Obj] or the As*
// functions:
//
//	result, _ := interp.Eval("expr {2 + 2}")
//	s := result.String()          // "4"
//	n, err := result.Int()        // 4, nil
//	f, err := result.Double()     // 4.0, nil
//	b, err := result.Bool()       // true, nil
//
//	result, _ = interp.Eval("list a b c")
//	items, err := result.List()   // []*Obj{"a", "b", "c"}
//	items, err = interp.ParseList("a b {c d}")
//
// The [Result] type is only used when implementing commands with
// [Interp.RegisterCommand]. Create results with [OK], [Error], or [Errorf].
//
// # Registering Commands
//
// For simple functions, use [Interp.Register] with automatic type
// conversion:
//
//	interp.Register("upper", strings.ToUpper)
//
//	interp.Register("readfile", func(path string) (string, error) {
//	    data, err := os.ReadFile(path)
//	    return string(data), err
//	})
//
//	interp.Register("sum", func(nums ...int) int {
//	    total := 0
//	    for _, n := range nums {
//	        total += n
//	    }
//	    return total
//	})
//
// For full control over argument handling, use [Interp.RegisterCommand]:
//
//	interp.RegisterCommand("mycommand", func(i *feather.Interp, cmd *feather.Obj, args []*feather.Obj) feather.Result {
//	    if len(args) < 1 {
//	        return feather.Errorf("usage: %s value", cmd.String())
//	    }
//	    n, err := feather.AsInt(args[0])
//	    if err != nil {
//	        return feather.Error(err.Error())
//	    }
//	    return feather.OK(n * 2)
//	})
//
// # Foreign Objects
//
// For exposing Go structs with methods to TCL, use [RegisterType]:
//
//	type DB struct {
//	    conn *sql.DB
//	}
//
//	feather.RegisterType[*DB](interp, "DB", feather.TypeDef[*DB]{
//	    New: func() *DB {
//	        conn, _ := sql.Open("sqlite3", ":memory:")
//	        return &DB{conn: conn}
//	    },
//	    Methods: map[string]any{
//	        "exec":  func(db *DB, sql string) error { _, err := db.conn.Exec(sql); return err },
//	    },
//	    Destroy: func(db *DB) { db.conn.Close() },
//	})
//
//	// In TCL:
//	// set db [DB new]
//	// $db exec "CREATE TABLE users (name TEXT)"
//	// $db destroy
//
// # Parsing Without Evaluation
//
// Use [Interp.Parse] to check if a script is syntactically complete without
// evaluating it. This is useful for implementing REPLs:
//
//	pr := interp.Parse("set x {")
//	switch pr.Status {
//	case feather.ParseOK:
//	    // Complete, ready to evaluate
//	case feather.ParseIncomplete:
//	    // Unclosed brace/bracket/quote, prompt for more input
//	case feather.ParseError:
//	    // Syntax error, pr.Message has details
//	}
package feather
