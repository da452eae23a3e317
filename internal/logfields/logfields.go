package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyInput      = "input"
	KeyOutput     = "output"
	KeyLine       = "line"
	KeyOutputFile = "output_file"
	KeyOutputFmt  = "output_fmt"
	KeyCachePath  = "cache_path"
	KeyHash       = "hash"
	KeyPublished  = "published"
	KeyCacheHit   = "cache_hit"
	KeyBlocks     = "blocks"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Input(path string) slog.Attr     { return slog.String(KeyInput, path) }
func Output(path string) slog.Attr    { return slog.String(KeyOutput, path) }
func Line(n int) slog.Attr            { return slog.Int(KeyLine, n) }
func OutputFile(f string) slog.Attr   { return slog.String(KeyOutputFile, f) }
func OutputFmt(f string) slog.Attr    { return slog.String(KeyOutputFmt, f) }
func CachePath(p string) slog.Attr    { return slog.String(KeyCachePath, p) }
func Hash(h string) slog.Attr         { return slog.String(KeyHash, h) }
func Published(p string) slog.Attr    { return slog.String(KeyPublished, p) }
func CacheHit(hit bool) slog.Attr     { return slog.Bool(KeyCacheHit, hit) }
func Blocks(n int) slog.Attr          { return slog.Int(KeyBlocks, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
