package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"eyewear.GO/api"
	"eyewear.GO/config"
	"eyewear.GO/core/auth"
	"eyewear.GO/core/logger"
	"eyewear.GO/cron"
)

var withCron bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the storefront catalog HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		deps, err := buildDeps(ctx)
		if err != nil {
			return err
		}
		log := logger.GetAppLogger()
		if err := deps.Catalog.Warm(ctx); err != nil {
			log.WithError(err).Warn("catalog warm-up failed, snapshots load on first request")
		}
		if withCron {
			c, err := cron.StartCron(ctx, &cron.Deps{Catalog: deps.Catalog, Indexer: deps.Indexer})
			if err != nil {
				return err
			}
			defer c.Stop()
		}

		e := newServer(deps)
		figure.NewFigure(config.AppConfig.AppName, "small", true).Print()

		port := config.AppConfig.Port
		go func() {
			log.Infof("Server running on :%s", port)
			if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
				log.WithError(err).Error("server stopped")
				stop()
			}
		}()
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	},
}

// newServer builds the echo instance with every registered route module.
func newServer(deps *api.Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(logger.Middleware())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			c.Response().Before(func() {
				c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(time.Since(start).Milliseconds(), 10))
			})
			return next(c)
		}
	})

	api.ApplyRoutes(e, deps)

	apiGroup := e.Group("/api")
	apiGroup.Use(auth.Middleware())
	api.ApplyModules(apiGroup, deps)
	return e
}

func init() {
	serveCmd.Flags().BoolVar(&withCron, "cron", false, "Run the cron scheduler inside the server process")
	rootCmd.AddCommand(serveCmd)
}
