// Package cli contains the command line interface for openr.
//
// # Usage
//
// Sources documents are named with --source (repeatable, "-" for stdin) and
// merged in order. The default command resolves a destination document:
//
//	openr -s defaults.yaml -s site.yaml run -d dest.yaml
//	openr -s sources.yaml run -d dest.yaml -o json -q 'actions(dest)'
//
// Other commands inspect documents and tokens:
//
//	openr get dest.yaml bar.baz
//	openr set dest.yaml bar.baz '{{openr->get()::foo}}'
//	openr count dest.yaml
//	openr parse '{{openr->join(`, `)::a,b}}'
//	openr -s sources.yaml browse -d dest.yaml
//
// # Configuration
//
// Flag defaults are read from config.json and config.yaml in the per-user
// configuration directory (for example ~/.config/openr). The YAML file may
// nest keys; see [resolve]. The init command writes the current flag values
// to config.yaml.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp layout (RFC3339, Kitchen, etc.)
//   - --[no-]log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o openr .
//
// Then:
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default ~/.cache/openr/pprof)
package cli
