// Package main provides the entry point for the potability server.
//
// Usage:
//
//	potability serve --model model_and_scaler.json
//	potability check --model model_and_scaler.json
//
// See --help for all available options.
package main

func main() {
	Execute()
}
