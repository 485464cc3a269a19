package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"pcbuilder/internal/config"
	"pcbuilder/internal/events"
	httpapi "pcbuilder/internal/http"
	"pcbuilder/internal/logging"
	"pcbuilder/internal/observability"
	"pcbuilder/internal/repository"
	"pcbuilder/internal/seed"
	"pcbuilder/internal/service"

	_ "pcbuilder/docs"
)

//go:generate swag init --dir ../ --generalInfo cmd/main.go --output ../docs --outputTypes go

// @title PC Builder API
// @version 1.0
// @description Storefront for PC components with a build configurator.
// @BasePath /api/v1
func main() {
	app := &cli.App{
		Name:  "pcbuilder",
		Usage: "PC components storefront with build configurator",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run HTTP API",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "apply MySQL schema migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "down", Usage: "roll back all migrations"},
					&cli.StringFlag{Name: "dsn", Usage: "MySQL DSN, overrides PCBUILDER_MYSQL_DSN"},
				},
				Action: migrate,
			},
			{
				Name:  "seed",
				Usage: "load catalog from YAML into configured storage",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Usage: "catalog file, embedded catalog if empty"},
				},
				Action: seedCatalog,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("pcbuilder")
	}
}

// storage набор репозиториев выбранного хранилища
type storage struct {
	products repository.ProductRepository
	carts    repository.CartRepository
	orders   repository.OrderRepository
	builds   repository.BuildRepository
	tx       repository.TxManager
	close    func() error
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	if cfg.Storage == config.StorageMySQL {
		db, err := repository.OpenMySQL(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		return &storage{
			products: repository.NewMySQLProducts(db),
			carts:    repository.NewMySQLCarts(db),
			orders:   repository.NewMySQLOrders(db),
			builds:   repository.NewMySQLBuilds(db),
			tx:       repository.NewMySQLTx(db),
			close:    db.Close,
		}, nil
	}
	store := repository.NewMemoryStore()
	return &storage{
		products: store,
		carts:    repository.NewMemoryCarts(store),
		orders:   repository.NewMemoryOrders(store),
		builds:   repository.NewMemoryBuilds(store),
		tx:       repository.NewMemoryTx(store),
		close:    func() error { return nil },
	}, nil
}

func newServices(st *storage, publisher events.Publisher, metrics *observability.Metrics, log logrus.FieldLogger) httpapi.Services {
	ledger := service.NewStockLedger(st.products, st.tx)
	products := service.NewProductService(st.products, ledger)
	carts := service.NewCartService(st.products, st.carts, st.tx, metrics)
	return httpapi.Services{
		Products:     products,
		Carts:        carts,
		Checkout:     service.NewCheckoutService(st.carts, st.orders, st.tx, ledger, publisher, metrics, log),
		Configurator: service.NewConfiguratorService(st.products, products, carts, st.builds, st.tx),
	}
}

func setup() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func serve(c *cli.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled {
		shutdown, err := observability.InitTracing(os.Stdout)
		if err != nil {
			return err
		}
		defer shutdown(context.Background())
	}

	st, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)

	publisher := events.New(cfg.KafkaBrokers, cfg.KafkaOrdersTopic)
	defer publisher.Close()

	svc := newServices(st, publisher, metrics, log)

	// память стартует пустой, поэтому каталог засевается всегда
	if cfg.Storage == config.StorageMemory || cfg.SeedFile != "" {
		items, err := seed.Open(cfg.SeedFile)
		if err != nil {
			return err
		}
		n, err := seed.Apply(ctx, svc.Products, items)
		if err != nil {
			return err
		}
		log.WithField("created", n).Info("catalog seeded")
	}

	if !log.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := httpapi.NewServer(svc, log, metrics, reg)
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Engine(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithFields(logrus.Fields{"addr": httpServer.Addr, "storage": cfg.Storage}).Info("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server error")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return errors.Wrap(httpServer.Shutdown(sctx), "shutdown error")
	})
	return g.Wait()
}

func migrate(c *cli.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	dsn := c.String("dsn")
	if dsn == "" {
		dsn = cfg.MySQLDSN
	}
	if err := repository.Migrate(dsn, c.Bool("down")); err != nil {
		return err
	}
	log.WithField("down", c.Bool("down")).Info("migrations applied")
	return nil
}

func seedCatalog(c *cli.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if cfg.Storage == config.StorageMemory {
		log.Warn("memory storage is not persistent, seeded catalog lives only for this run")
	}
	st, err := openStorage(c.Context, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	items, err := seed.Open(c.String("file"))
	if err != nil {
		return err
	}
	svc := newServices(st, events.NopPublisher{}, nil, log)
	n, err := seed.Apply(c.Context, svc.Products, items)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"created": n, "total": len(items)}).Info("catalog seeded")
	return nil
}
