package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyCrate      = "crate"
	KeyPath       = "path"
	KeyCommand    = "command"
	KeyExitCode   = "exit_code"
	KeyDurationMS = "duration_ms"
	KeyURL        = "url"
	KeyCommit     = "commit"
	KeyDepth      = "depth"
	KeyHandle     = "error_handle"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Crate(name string) slog.Attr     { return slog.String(KeyCrate, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Command(c string) slog.Attr      { return slog.String(KeyCommand, c) }
func ExitCode(code int) slog.Attr     { return slog.Int(KeyExitCode, code) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Commit(c string) slog.Attr       { return slog.String(KeyCommit, c) }
func Depth(d int) slog.Attr           { return slog.Int(KeyDepth, d) }
func Handle(h string) slog.Attr       { return slog.String(KeyHandle, h) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
