// Package internal provides the engine behind the parsec command.
//
// An Engine holds one compiled grammar and runs it over inputs. Every input
// has to be consumed entirely; the outcome of each is a types.Report.
//
// Key components:
//
// Engine: compiles a grammar.Grammar, either given in memory (NewEngine) or
// loaded from a YAML file (LoadEngine), and runs it over files, sources and
// literal inputs. In line mode every non-blank line of a file is a separate
// input.
//
// Watch mode: StartWatching checks files again as they change and recompiles
// the grammar when its file changes.
//
// Usage:
//
//	engine, err := internal.LoadEngine(".parsec.yaml", logger)
//	if err != nil {
//	    // handle error
//	}
//	engine.SetLineMode(true)
//
//	reports, err := engine.Run("prices.txt")
//	if err != nil {
//	    // handle error
//	}
//
//	for _, report := range reports {
//	    if !report.OK {
//	        fmt.Println(report.Filename, report.Line, report.Message())
//	    }
//	}
package internal
