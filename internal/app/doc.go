// Package app contains the application logic behind the CLI: it turns a
// validated Config into one analysis, a batch of analyses or a lexicon dump,
// decoupled from flag parsing and process exit codes.
package app
