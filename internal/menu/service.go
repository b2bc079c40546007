package menu

import (
	"context"

	"github.com/berkaynayman/qr-menu/internal/logger"
	"go.uber.org/zap"
)

// Repository is the persistence boundary for menus. It is satisfied by
// the REST client; the backend is the source of truth for every menu.
type Repository interface {
	CreateMenu(ctx context.Context, p Payload) (*Menu, error)
	UpdateMenu(ctx context.Context, id string, p Payload) (*Menu, error)
	Menus(ctx context.Context) ([]Menu, error)
	Menu(ctx context.Context, id string) (*Menu, error)
	PublicMenu(ctx context.Context, id string) (*Menu, error)
	DeleteMenu(ctx context.Context, id string) error
}

// Service defines the menu workflows the screens call.
type Service interface {
	Create(ctx context.Context, m Menu) (*Menu, error)
	Update(ctx context.Context, m Menu) (*Menu, error)
	List(ctx context.Context) ([]Menu, error)
	Get(ctx context.Context, id string) (*Menu, error)
	GetPublic(ctx context.Context, id string) (*Menu, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

// NewService creates a new menu service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Create validates the draft locally and submits it as a whole document.
// Validation failures short-circuit before any network call.
func (s *service) Create(ctx context.Context, m Menu) (*Menu, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
	)

	if err := validate(m); err != nil {
		log.Warn("menu draft rejected", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.CreateMenu(ctx, ToPayload(m))
	if err != nil {
		log.Error("failed to create menu", zap.Error(err))
		return nil, err
	}

	log.Info("menu created", zap.String("menu_id", created.ID))
	return created, nil
}

// Update replaces the stored document with the given one. The backend
// has full-document replace semantics, so callers must send the entire
// tree, not a diff.
func (s *service) Update(ctx context.Context, m Menu) (*Menu, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.String("menu_id", m.ID),
	)

	if err := validate(m); err != nil {
		log.Warn("menu draft rejected", zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.UpdateMenu(ctx, m.ID, ToPayload(m))
	if err != nil {
		log.Error("failed to update menu", zap.Error(err))
		return nil, err
	}

	log.Info("menu updated", zap.Int("categories", len(updated.Categories)))
	return updated, nil
}

func (s *service) List(ctx context.Context) ([]Menu, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "List"),
	)

	menus, err := s.repo.Menus(ctx)
	if err != nil {
		log.Error("failed to list menus", zap.Error(err))
		return nil, err
	}

	log.Info("menus listed", zap.Int("count", len(menus)))
	return menus, nil
}

func (s *service) Get(ctx context.Context, id string) (*Menu, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Get"),
		zap.String("menu_id", id),
	)

	m, err := s.repo.Menu(ctx, id)
	if err != nil {
		log.Error("failed to get menu", zap.Error(err))
		return nil, err
	}
	return m, nil
}

// GetPublic fetches the unauthenticated public view. The backend counts
// the fetch as a view; that side effect is outside this client's control.
func (s *service) GetPublic(ctx context.Context, id string) (*Menu, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetPublic"),
		zap.String("menu_id", id),
	)

	m, err := s.repo.PublicMenu(ctx, id)
	if err != nil {
		log.Error("failed to get public menu", zap.Error(err))
		return nil, err
	}
	return m, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Delete"),
		zap.String("menu_id", id),
	)

	if err := s.repo.DeleteMenu(ctx, id); err != nil {
		log.Error("failed to delete menu", zap.Error(err))
		return err
	}

	log.Info("menu deleted")
	return nil
}

func validate(m Menu) error {
	if m.Name == "" {
		return ErrNameRequired
	}
	if !m.Currency.Valid() {
		return ErrInvalidCurrency
	}
	return nil
}
