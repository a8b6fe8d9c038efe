package bootstrap

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/trip-advisor/internal/domain/advisor"
	"github.com/yanqian/trip-advisor/internal/domain/profile"
	"github.com/yanqian/trip-advisor/internal/infra/catalog"
	"github.com/yanqian/trip-advisor/internal/infra/config"
	"github.com/yanqian/trip-advisor/internal/infra/profilerepo"
)

// ProvideAdvisorConfig maps the file/env settings onto the advisor domain.
func ProvideAdvisorConfig(cfg *config.Config) advisor.Config {
	return advisor.Config{
		DefaultLocation:          cfg.Advisor.DefaultLocation,
		DefaultOrigin:            cfg.Advisor.DefaultOrigin,
		DestinationAirport:       cfg.Advisor.DestinationAirport,
		HorizonDays:              cfg.Advisor.HorizonDays,
		MaxHorizonDays:           cfg.Advisor.MaxHorizonDays,
		MaxConcurrentSearches:    cfg.Advisor.MaxConcurrentSearches,
		SearchStepDays:           cfg.Advisor.SearchStepDays,
		StormDayThreshold:        cfg.Advisor.StormDayThreshold,
		TemperatureMargin:        cfg.Advisor.TemperatureMargin,
		MaxAlternatives:          cfg.Advisor.MaxAlternatives,
		HotelOverBudgetTolerance: cfg.Advisor.HotelOverBudgetTolerance,
	}
}

// ProvideCatalog builds the seeded synthetic flight and hotel catalog.
func ProvideCatalog(cfg *config.Config) *catalog.Catalog {
	return catalog.New(cfg.Advisor.CatalogSeed)
}

// ProvideProfileRepository prefers postgres, then the YAML seed file, then
// the built-in travelers. Any of them can sit behind the valkey cache.
func ProvideProfileRepository(cfg *config.Config, logger *slog.Logger) profile.Repository {
	repo := provideBaseProfileRepository(cfg, logger)
	if !cfg.Profiles.Redis.Enabled {
		return repo
	}
	client, ok := provideValkeyClient(cfg, logger)
	if !ok {
		return repo
	}
	logger.Info("profile valkey cache enabled", "addr", cfg.Profiles.Redis.Addr)
	return profilerepo.NewCachedRepository(repo, client, cfg.Profiles.Redis.Prefix, cfg.Profiles.Redis.TTL, logger)
}

func provideBaseProfileRepository(cfg *config.Config, logger *slog.Logger) profile.Repository {
	fallback := provideSeedRepository(cfg, logger)
	dsn := strings.TrimSpace(cfg.Profiles.Postgres.DSN)
	if dsn == "" {
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using seed profiles", "error", err)
		return fallback
	}
	if cfg.Profiles.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Profiles.Postgres.MaxConns
	}
	if cfg.Profiles.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Profiles.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using seed profiles", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using seed profiles", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("profile postgres repository enabled")
	return profilerepo.NewPostgresRepository(pool)
}

func provideSeedRepository(cfg *config.Config, logger *slog.Logger) *profilerepo.MemoryRepository {
	path := strings.TrimSpace(cfg.Profiles.File)
	if path == "" {
		logger.Info("profile file not set, using built-in profiles")
		return profilerepo.NewMemoryRepository(profilerepo.DefaultProfiles()...)
	}
	profiles, err := profilerepo.LoadYAML(path)
	if err != nil {
		logger.Error("failed to load profile file, using built-in profiles", "path", path, "error", err)
		return profilerepo.NewMemoryRepository(profilerepo.DefaultProfiles()...)
	}
	logger.Info("profiles loaded from file", "path", path, "count", len(profiles))
	return profilerepo.NewMemoryRepository(profiles...)
}

func provideValkeyClient(cfg *config.Config, logger *slog.Logger) (valkey.Client, bool) {
	opt, err := buildValkeyOptions(cfg.Profiles.Redis.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, cache disabled", "error", err)
		return nil, false
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, cache disabled", "error", err)
		return nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, cache disabled", "error", err)
		client.Close()
		return nil, false
	}
	return client, true
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

// NewAdvisorService assembles the advisor without the HTTP transport.
func NewAdvisorService(cfg *config.Config, logger *slog.Logger) advisor.Service {
	profiles := profile.NewService(ProvideProfileRepository(cfg, logger), logger)
	return advisor.NewService(ProvideAdvisorConfig(cfg), profiles, ProvideCatalog(cfg), logger)
}
