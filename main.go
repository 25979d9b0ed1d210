//go:build !cli
// +build !cli

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"

	"chatshop.GO/api"
	_ "chatshop.GO/api/catalog"
	_ "chatshop.GO/api/chat"
	_ "chatshop.GO/api/graphql"
	_ "chatshop.GO/api/rasa"
	"chatshop.GO/bootstrap"
	"chatshop.GO/config"
	"chatshop.GO/core/auth"
	"chatshop.GO/cron"
	_ "chatshop.GO/custom"
)

func main() {
	config.LoadEnv()
	cfg := config.LoadAppConfig()
	logger := config.InitLogger(cfg.LogLevel)

	svc, err := bootstrap.NewServiceContext(cfg, logger)
	if err != nil {
		log.Fatalf("failed to initialize services: %v", err)
	}
	defer svc.Close()

	if svc.Memory != nil {
		cron.RegisterSessionSweep(svc.Memory, logger)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())

	e.Use(api.RequestDuration(logger))

	apiGroup := e.Group("/api")
	apiGroup.Use(auth.Middleware())
	api.ApplyModules(apiGroup, svc)
	api.ApplyRoutes(e, svc)

	fig := figure.NewFigure("chatshop", []string{"standard", "slant", "small", "doom"}[rand.Intn(4)], true)
	fig.Print()
	fmt.Println()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Server running on :%s (catalog=%s sessions=%s)", cfg.Port, cfg.CatalogBackend, cfg.SessionBackend)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		c, err := cron.StartCron(gctx, logger)
		if err != nil {
			return err
		}
		<-gctx.Done()
		<-c.Stop().Done()
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
	log.Println("Server stopped")
}
