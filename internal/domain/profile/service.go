package profile

import (
	"context"
	"log/slog"
	"strings"

	apperrors "github.com/yanqian/trip-advisor/pkg/errors"
)

// Service resolves traveler profiles by identifier.
type Service interface {
	Get(ctx context.Context, id string) (UserProfile, error)
	List(ctx context.Context) ([]string, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService wires the profile domain.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{repo: repo, logger: logger.With("component", "profile.service")}
}

// Get never fabricates a default: unknown identifiers yield not_found.
func (s *service) Get(ctx context.Context, id string) (UserProfile, error) {
	key := normalizeID(id)
	if key == "" {
		return UserProfile{}, apperrors.Wrap(apperrors.CodeInvalidInput, "user id cannot be empty", nil)
	}
	p, ok, err := s.repo.Get(ctx, key)
	if err != nil {
		return UserProfile{}, apperrors.Wrap(apperrors.CodeProfileStore, "profile lookup failed", err)
	}
	if !ok {
		return UserProfile{}, apperrors.Wrap(apperrors.CodeNotFound, "user '"+key+"' not found", nil)
	}
	if err := p.Validate(); err != nil {
		s.logger.Warn("stored profile failed validation", "user_id", key, "error", err)
		return UserProfile{}, err
	}
	return p.Clone(), nil
}

func (s *service) List(ctx context.Context) ([]string, error) {
	ids, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeProfileStore, "profile listing failed", err)
	}
	return ids, nil
}

// NormalizeID lower-cases and trims identifiers the way every store keys them.
func NormalizeID(id string) string {
	return normalizeID(id)
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
