package hunt

import (
	"context"
	"log/slog"
	"time"

	"github.com/hhaeri/HydroAgent"
)

// Harvester defaults.
const (
	DefaultDetailTimeout = 60 * time.Second
	DefaultPlanTimeout   = 30 * time.Second
	DefaultMaxProbes     = 5
)

var _ hydroagent.Harvester = (*Harvester)(nil)

// Harvester extracts the annual report and plan links from a basin detail
// page. Prober and FollowPlanPage are optional.
type Harvester struct {
	Outlines hydroagent.OutlineReader
	Prober   hydroagent.DocumentProber
	Anchors  []string
	Logger   *slog.Logger

	DetailTimeout  time.Duration
	PlanTimeout    time.Duration
	MaxProbes      int
	FollowPlanPage bool
}

// Harvest loads detailURL and looks up both documents in the loaded page.
// Only a failed load is an error; missing documents are nil fields.
func (h *Harvester) Harvest(ctx context.Context, page hydroagent.Page, detailURL string, year int) (*hydroagent.DocumentSet, error) {
	if detailURL == "" {
		return nil, hydroagent.Errorf(hydroagent.EINVALID, "detail URL required")
	}
	logger := loggerOrDiscard(h.Logger)

	if err := load(ctx, page, detailURL, "body", orDuration(h.DetailTimeout, DefaultDetailTimeout)); err != nil {
		return nil, err
	}

	outline, err := h.readOutline(ctx, page, detailURL)
	if err != nil {
		return nil, err
	}

	docs := &hydroagent.DocumentSet{
		AnnualReport: h.annualReport(ctx, outline, year, logger),
		Plan:         outline.Plan(),
	}
	if docs.AnnualReport == nil {
		logger.Info("no annual report link", "url", detailURL, "year", year)
	}
	if docs.Plan == nil {
		logger.Info("no plan link", "url", detailURL)
	} else if h.FollowPlanPage && !hydroagent.IsDocumentLike(docs.Plan.URL, docs.Plan.Text) {
		docs.Plan = h.followPlan(ctx, page, docs.Plan, logger)
	}

	return docs, nil
}

// annualReport tries the water-year pattern, then the anchored fallback,
// then content-type probes of the anchored candidates.
func (h *Harvester) annualReport(ctx context.Context, outline hydroagent.Outline, year int, logger *slog.Logger) *hydroagent.DocumentLink {
	if link := outline.MatchWaterYear(year); link != nil {
		return link
	}

	anchors := h.Anchors
	if anchors == nil {
		anchors = hydroagent.AnnualReportAnchors
	}
	candidates := outline.AnchoredLinks(anchors)
	if link := hydroagent.FirstDocumentLike(candidates); link != nil {
		return link
	}
	if h.Prober == nil || len(candidates) == 0 {
		return nil
	}

	maxProbes := h.MaxProbes
	if maxProbes <= 0 {
		maxProbes = DefaultMaxProbes
	}
	for i := range candidates {
		if i >= maxProbes || ctx.Err() != nil {
			break
		}
		ok, err := h.Prober.IsDocument(ctx, candidates[i].URL)
		if err != nil {
			logger.Warn("probe failed", "url", candidates[i].URL, "error", err)
			continue
		}
		if ok {
			link := candidates[i]
			link.Strategy = hydroagent.StrategyProbe
			return &link
		}
	}
	return nil
}

// followPlan opens a plan landing page and returns its first document-like
// link. Any failure keeps the landing page link.
func (h *Harvester) followPlan(ctx context.Context, page hydroagent.Page, plan *hydroagent.DocumentLink, logger *slog.Logger) *hydroagent.DocumentLink {
	if err := load(ctx, page, plan.URL, "body", orDuration(h.PlanTimeout, DefaultPlanTimeout)); err != nil {
		logger.Warn("plan page not loaded", "url", plan.URL, "error", err)
		return plan
	}

	outline, err := h.readOutline(ctx, page, plan.URL)
	if err != nil {
		logger.Warn("plan page not read", "url", plan.URL, "error", err)
		return plan
	}

	for _, el := range outline.Links() {
		if hydroagent.IsDocumentLike(el.URL, el.Text) {
			return &hydroagent.DocumentLink{
				Kind:     hydroagent.KindPlan,
				URL:      el.URL,
				Text:     el.Text,
				Strategy: hydroagent.StrategySubpage,
			}
		}
	}
	logger.Info("plan page has no document link", "url", plan.URL)
	return plan
}

func (h *Harvester) readOutline(ctx context.Context, page hydroagent.Page, baseURL string) (hydroagent.Outline, error) {
	html, err := page.HTML(ctx)
	if err != nil {
		return nil, err
	}
	return h.Outlines.ReadOutline(html, baseURL)
}
