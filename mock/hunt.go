package mock

import (
	"context"

	"github.com/hhaeri/HydroAgent"
)

var _ hydroagent.Resolver = (*Resolver)(nil)

// Resolver is a mock implementation of hydroagent.Resolver.
type Resolver struct {
	ResolveFn func(ctx context.Context, page hydroagent.Page, q hydroagent.BasinQuery) (*hydroagent.Resolution, error)
}

func (r *Resolver) Resolve(ctx context.Context, page hydroagent.Page, q hydroagent.BasinQuery) (*hydroagent.Resolution, error) {
	return r.ResolveFn(ctx, page, q)
}

var _ hydroagent.Harvester = (*Harvester)(nil)

// Harvester is a mock implementation of hydroagent.Harvester.
type Harvester struct {
	HarvestFn func(ctx context.Context, page hydroagent.Page, detailURL string, year int) (*hydroagent.DocumentSet, error)
}

func (h *Harvester) Harvest(ctx context.Context, page hydroagent.Page, detailURL string, year int) (*hydroagent.DocumentSet, error) {
	return h.HarvestFn(ctx, page, detailURL, year)
}

var _ hydroagent.Hunter = (*Hunter)(nil)

// Hunter is a mock implementation of hydroagent.Hunter.
type Hunter struct {
	GetBasinDocumentsFn func(ctx context.Context, identifier string) (*hydroagent.HuntResult, error)
}

func (h *Hunter) GetBasinDocuments(ctx context.Context, identifier string) (*hydroagent.HuntResult, error) {
	return h.GetBasinDocumentsFn(ctx, identifier)
}

var _ hydroagent.HuntService = (*HuntService)(nil)

// HuntService is a mock implementation of hydroagent.HuntService.
type HuntService struct {
	CreateHuntFn   func(ctx context.Context, hunt *hydroagent.Hunt) error
	FindHuntByIDFn func(ctx context.Context, id string) (*hydroagent.Hunt, error)
	FindHuntsFn    func(ctx context.Context, filter hydroagent.HuntFilter) ([]*hydroagent.Hunt, error)
}

func (s *HuntService) CreateHunt(ctx context.Context, hunt *hydroagent.Hunt) error {
	return s.CreateHuntFn(ctx, hunt)
}

func (s *HuntService) FindHuntByID(ctx context.Context, id string) (*hydroagent.Hunt, error) {
	return s.FindHuntByIDFn(ctx, id)
}

func (s *HuntService) FindHunts(ctx context.Context, filter hydroagent.HuntFilter) ([]*hydroagent.Hunt, error) {
	return s.FindHuntsFn(ctx, filter)
}
