package stats

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/berkaynayman/qr-menu/internal/logger"
	"github.com/berkaynayman/qr-menu/internal/menu"
	"go.uber.org/zap"
)

// Client is the slice of the backend API the dashboard needs.
type Client interface {
	Menus(ctx context.Context) ([]menu.Menu, error)
	DeleteMenu(ctx context.Context, id string) error
	DashboardStats(ctx context.Context) (*Stats, error)
}

type Service interface {
	Overview(ctx context.Context) (*Overview, error)
	Delete(ctx context.Context, id string, current []menu.Menu) ([]menu.Menu, error)
}

type service struct {
	client Client
}

func NewService(client Client) Service {
	return &service{client: client}
}

// Overview fetches the menu list and the aggregate stats concurrently
// and returns only after both resolve; either failure fails the whole
// overview so the screen never renders half a dashboard.
func (s *service) Overview(ctx context.Context) (*Overview, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Overview"),
	)

	g, ctx := errgroup.WithContext(ctx)

	var menus []menu.Menu
	var aggregate *Stats

	g.Go(func() error {
		var err error
		menus, err = s.client.Menus(ctx)
		return err
	})

	g.Go(func() error {
		var err error
		aggregate, err = s.client.DashboardStats(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		log.Error("failed to load dashboard", zap.Error(err))
		return nil, err
	}

	log.Info("dashboard loaded",
		zap.Int("menus", len(menus)),
		zap.Int("total_views", aggregate.TotalViews),
	)
	return &Overview{Menus: menus, Stats: *aggregate}, nil
}

// Delete removes the menu on the backend and returns the displayed list
// with the row pruned. On failure the input list comes back unchanged;
// the screen keeps showing the menu alongside the error.
func (s *service) Delete(ctx context.Context, id string, current []menu.Menu) ([]menu.Menu, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Delete"),
		zap.String("menu_id", id),
	)

	if err := s.client.DeleteMenu(ctx, id); err != nil {
		log.Error("failed to delete menu", zap.Error(err))
		return current, err
	}

	pruned := make([]menu.Menu, 0, len(current))
	for _, m := range current {
		if m.ID == id {
			continue
		}
		pruned = append(pruned, m)
	}

	log.Info("menu deleted", zap.Int("remaining", len(pruned)))
	return pruned, nil
}
