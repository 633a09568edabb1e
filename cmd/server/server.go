package main

import (
	"context"

	"github.com/mileusna/crontab"
	"larpmanager.app/larp-gateway/app/domain/cron"
	"larpmanager.app/larp-gateway/app/domain/navigation"
	"larpmanager.app/larp-gateway/app/domain/relationship"
	"larpmanager.app/larp-gateway/app/domain/signal"
	"larpmanager.app/larp-gateway/app/infrastructure/tasks"
	"larpmanager.app/larp-gateway/app/interfaces/http"
	"larpmanager.app/larp-gateway/config/environment_variables"
)

type Application struct {
	HttpServer      *http.HttpServer
	Queue           *tasks.NatsTaskQueue
	Worker          *tasks.Worker
	CommitListener  *signal.CommitListener
	Dispatcher      *signal.Dispatcher
	Hooks           *signal.Hooks
	Rels            *relationship.Service
	Links           *navigation.Service
	Cron            *cron.CronService
	DataInitializer *DataInitializer
}

func (application *Application) Start() {
	ctx := context.Background()
	if err := application.DataInitializer.Install(ctx); err != nil {
		panic(err)
	}

	application.Hooks.Register(application.Dispatcher)
	application.Rels.RegisterHandlers(application.Worker)
	application.Links.RegisterHandlers(application.Worker)
	if err := application.Worker.Start(ctx, application.Queue.Conn()); err != nil {
		panic(err)
	}
	if err := application.CommitListener.Start(ctx, application.Queue.Conn()); err != nil {
		panic(err)
	}

	ctab := crontab.New()
	application.Cron.Start(ctx, ctab)

	if err := application.HttpServer.Run(); err != nil {
		panic(err)
	}
}

func init() {
	environment_variables.EnvironmentVariables.LoadFromEnv()
}

func main() {
	application, err := CreateApplication()
	if err != nil {
		panic(err)
	}
	application.Start()
}
