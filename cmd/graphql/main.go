// Standalone GraphQL catalog preview server. Run with: go run ./cmd/graphql
package main

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"chatshop.GO/api"
	_ "chatshop.GO/api/graphql"
	"chatshop.GO/bootstrap"
	"chatshop.GO/config"
)

func main() {
	config.LoadEnv()
	cfg := config.LoadAppConfig()
	logger := config.InitLogger(cfg.LogLevel)

	svc, err := bootstrap.NewServiceContext(cfg, logger)
	if err != nil {
		log.Fatal("bootstrap: ", err)
	}
	defer svc.Close()

	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(api.RequestDuration(logger))
	api.ApplyRoutes(e, svc)

	// ASCII banner on start (random font each run)
	gqlFonts := []string{"banner", "big", "block", "slant", "standard", "small", "shadow", "speed", "thick", "univers", "doom", "larry3d", "puffy", "rectangles", "bigchief", "cosmic"}
	fig := figure.NewFigure("chatshop GQL ->", gqlFonts[rand.Intn(len(gqlFonts))], true)
	fig.Print()
	fmt.Println("Standalone GraphQL server")

	log.Printf("GraphQL at http://localhost:%s/graphql  Playground at http://localhost:%s/playground", cfg.Port, cfg.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
