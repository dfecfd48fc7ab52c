// Package main is the entry point for the skill-issue CLI tool, which
// collects historical esports match records and assembles them into a
// tabular dataset for match-outcome classifiers.
package main

import "github.com/lewcab/skill-issue/cmd"

func main() {
	cmd.Execute()
}
