package main

import (
	"fmt"

	"github.com/hhaeri/HydroAgent"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := hydroagent.HuntFilter{Limit: c.Limit}
	if c.Identifier != "" {
		filter.Identifier = &c.Identifier
	}

	hunts, err := deps.Hunts.FindHunts(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", hydroagent.ErrorMessage(err))
		return reported(err)
	}

	if len(hunts) == 0 && c.Format == "text" {
		fmt.Fprintln(deps.Stdout, "No hunts found. Use 'hydroagent hunt' to run one.")
		return nil
	}

	return writeHunts(deps.Stdout, c.Format, "Hunt History", hunts)
}
