// Package cli parses procgo's command line. It validates flags, picks the
// procedure path and maps bad input to an ExitError carrying the process
// exit code.
package cli
