// Package profile provides optional runtime profiling for openr.
//
// Profiling is compiled in only with the "pprof" build tag and is backed by
// [github.com/pkg/profile]. Without the tag [Profiler.Start] is a no-op and
// [Modes] is empty.
//
//	go build -tags pprof -o openr .
//	openr --pprof-mode=cpu --pprof-dir=/tmp/openr run -s sources.yaml -d dest.yaml
//	go tool pprof -http=: /tmp/openr/cpu.pprof
//
// With the tag, the package also imports [net/http/pprof], registering its
// handlers on [net/http.DefaultServeMux].
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
