// Package logtail reads the tail of the apolice log file for the in-app log
// overlay.
//
// Read keeps a ring buffer of maxLines entries, so only the last lines of a
// large file are held in memory. Parse and Format turn the JSON lines written
// by the zap logger back into compact "time LEVEL message key=value" text;
// lines that are not JSON are shown unchanged.
package logtail
