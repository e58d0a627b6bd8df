package main

import (
	"fmt"

	"github.com/hhaeri/HydroAgent/hunt"
)

// Run executes the hunt command.
func (c *HuntCmd) Run(deps *Dependencies) error {
	batch := hunt.NewBatch(deps.Hunter,
		hunt.WithConcurrency(c.Concurrency),
		hunt.WithRateLimit(c.Rate),
	)

	hunts, err := batch.Run(deps.Ctx, c.Identifiers)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return reported(err)
	}

	if !c.NoSave {
		for _, h := range hunts {
			if err := deps.Hunts.CreateHunt(deps.Ctx, h); err != nil {
				deps.Logger.Warn("hunt not recorded", "identifier", h.Identifier, "err", err)
			}
		}
	}

	if err := writeHunts(deps.Stdout, c.Format, "Basin Documents", hunts); err != nil {
		return err
	}

	var failed int
	for _, h := range hunts {
		if h.Error != "" {
			fmt.Fprintf(deps.Stderr, "error: %s\n", h.Error)
			failed++
		}
	}
	if failed > 0 {
		return reported(fmt.Errorf("%d of %d hunts failed", failed, len(hunts)))
	}
	return nil
}
