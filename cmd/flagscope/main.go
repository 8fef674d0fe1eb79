package main

import (
	"context"
	"log"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/yi-nology/flagscope/biz/dal/model"
	"github.com/yi-nology/flagscope/biz/handler"
	"github.com/yi-nology/flagscope/biz/middleware"
	"github.com/yi-nology/flagscope/biz/router"
	"github.com/yi-nology/flagscope/biz/service"
	"github.com/yi-nology/flagscope/pkg/config"
	"github.com/yi-nology/flagscope/pkg/database"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	dbConn, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	if err := dbConn.AutoMigrate(
		&model.Environment{},
		&model.Project{},
		&model.Feature{},
		&model.ProjectEnvironment{},
		&model.FeatureEnvironment{},
	); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	svc := service.NewService(dbConn)
	if err := svc.EnsureDefaultEnvironment(context.Background()); err != nil {
		log.Fatalf("seed default environment: %v", err)
	}

	h := server.New(server.WithHostPorts(cfg.Server.Address))
	// Auth runs before Logging so the request log can carry the user id.
	h.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Auth(),
		middleware.Logging(),
		middleware.CORS(&cfg.CORS),
	)

	router.RegisterAdminRoutes(
		h,
		handler.NewEnvironmentHandler(svc),
		handler.NewProjectHandler(svc),
		middleware.RequireAdmin(cfg.Auth.Enabled),
	)

	log.Printf("flagscope listening on %s", cfg.Server.Address)
	h.Spin()
}
