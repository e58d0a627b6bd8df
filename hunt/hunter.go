package hunt

import (
	"context"
	"fmt"

	"github.com/hhaeri/HydroAgent"
)

var _ hydroagent.Hunter = (*Hunter)(nil)

// Hunter runs one query on one page: resolve the basin, then harvest its
// detail page.
type Hunter struct {
	Browser   hydroagent.Browser
	Resolver  hydroagent.Resolver
	Harvester hydroagent.Harvester
}

// GetBasinDocuments resolves identifier to its latest documents. The page is
// closed on every return path.
func (h *Hunter) GetBasinDocuments(ctx context.Context, identifier string) (*hydroagent.HuntResult, error) {
	q := hydroagent.BasinQuery(identifier)
	if err := q.Validate(); err != nil {
		return hydroagent.NewHuntResult(nil, nil), err
	}

	page, err := h.Browser.NewPage(ctx)
	if err != nil {
		return hydroagent.NewHuntResult(nil, nil), stageError("opening page", q, err)
	}
	defer page.Close()

	res, err := h.Resolver.Resolve(ctx, page, q)
	if err != nil {
		return hydroagent.NewHuntResult(nil, nil), stageError("resolving basin", q, err)
	}

	docs, err := h.Harvester.Harvest(ctx, page, res.DetailURL, res.LatestYear)
	if err != nil {
		return hydroagent.NewHuntResult(nil, nil), stageError("harvesting documents", q, err)
	}

	return hydroagent.NewHuntResult(res, docs), nil
}

// stageError prefixes err with the failing stage and identifier. Application
// errors keep their code; context errors stay matchable with errors.Is.
func stageError(stage string, q hydroagent.BasinQuery, err error) error {
	code := hydroagent.ErrorCode(err)
	if code == hydroagent.EINTERNAL {
		return fmt.Errorf("%s for %q: %w", stage, q.String(), err)
	}
	return hydroagent.Wrapf(code, err, "%s for %q", stage, q.String())
}
