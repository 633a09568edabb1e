//go:build wireinject

package main

import (
	"github.com/google/wire"
	"larpmanager.app/larp-gateway/app/domain"
	"larpmanager.app/larp-gateway/app/domain/signal"
	"larpmanager.app/larp-gateway/app/infrastructure/cache"
	"larpmanager.app/larp-gateway/app/infrastructure/database"
	"larpmanager.app/larp-gateway/app/infrastructure/database/repository"
	"larpmanager.app/larp-gateway/app/infrastructure/tasks"
	"larpmanager.app/larp-gateway/app/interfaces/http"
	"larpmanager.app/larp-gateway/app/interfaces/http/routes"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		database.NewDB,
		cache.NewCacheService,
		tasks.NewNatsTaskQueue,
		wire.Bind(new(tasks.Queue), new(*tasks.NatsTaskQueue)),
		tasks.NewWorker,
		signal.NewCommitListener,
		repository.RepositoryProvider,
		domain.ServiceProvider,
		routes.RouteProvider,
		http.NewHttpServer,
		NewDataInitializer,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
