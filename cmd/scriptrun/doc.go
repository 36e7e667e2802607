// Package main is a command-line harness for the script execution engine.
//
// It runs a single Transform script against JSON input and context files
// and prints the structured result, which makes it useful for debugging
// scripts outside the workflow runner.
//
// Usage:
//
//	# Run a script against an input document
//	./scriptrun -script transform.js -input input.json
//
//	# With block context and console capture
//	./scriptrun -script transform.js -input input.json -context ctx.json -console
//
// The process exits non-zero when the script fails, but the failure is
// still reported as structured JSON on stdout.
package main
