//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/trip-advisor/internal/bootstrap"
	"github.com/yanqian/trip-advisor/internal/domain/advisor"
	"github.com/yanqian/trip-advisor/internal/domain/profile"
	"github.com/yanqian/trip-advisor/internal/infra/catalog"
	"github.com/yanqian/trip-advisor/internal/infra/config"
	httpiface "github.com/yanqian/trip-advisor/internal/interface/http"
	"github.com/yanqian/trip-advisor/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		bootstrap.ProvideAdvisorConfig,
		bootstrap.ProvideProfileRepository,
		bootstrap.ProvideCatalog,
		profile.NewService,
		advisor.NewService,
		wire.Bind(new(advisor.Catalog), new(*catalog.Catalog)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
