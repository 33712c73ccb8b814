// Package profile starts runtime profiling for splice.
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof .
//	splice --pprof-mode cpu render '[repeat(1000,[calc(1+1)])]'
//	go tool pprof -http=: ~/.cache/splice/pprof/cpu.pprof
//
// Without the tag, [Modes] is empty and [Config.Start] always returns a
// no-op. When built with the tag, the package also registers the
// [net/http/pprof] handlers.
package profile

// Tag is the build tag that enables profiling.
const Tag = `pprof`
