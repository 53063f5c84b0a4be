package app

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/niksmo/inventory/config"
	"github.com/niksmo/inventory/internal/adapter"
	"github.com/niksmo/inventory/internal/adapter/httphandler"
	"github.com/niksmo/inventory/internal/adapter/kafka"
	"github.com/niksmo/inventory/internal/adapter/storage"
	"github.com/niksmo/inventory/internal/core/service"
	"github.com/niksmo/inventory/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
	"gopkg.in/natefinch/lumberjack.v2"
)

type App struct {
	ctx        context.Context
	cfg        config.Config
	logFile    *lumberjack.Logger
	storage    storage.Storage
	saleEvents *kafka.SaleEventsProducer
	service    service.Service
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initStorage()
	app.initSaleEvents()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	var w io.Writer = os.Stderr
	if lf := app.cfg.LogFile; lf.Path != "" {
		app.logFile = &lumberjack.Logger{
			Filename:   lf.Path,
			MaxSize:    lf.MaxSizeMB,
			MaxBackups: lf.MaxBackups,
			MaxAge:     lf.MaxAgeDays,
		}
		w = io.MultiWriter(os.Stderr, app.logFile)
	}

	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(w, opts))
	slog.SetDefault(logger)
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	s, err := storage.Open(app.ctx, storage.Config{
		Driver:          app.cfg.SQLDB.Driver,
		DSN:             app.cfg.SQLDB.DSN,
		AutoMigrate:     app.cfg.SQLDB.AutoMigrate,
		ConnectAttempts: app.cfg.SQLDB.ConnectAttempts,
	})
	if err != nil {
		app.fallDown(op, err)
	}
	app.storage = s
}

func (app *App) initSaleEvents() {
	const op = "App.initSaleEvents"
	log := slog.With("op", op)

	bc := app.cfg.Broker
	if !bc.Enabled() {
		log.Info("sale events are disabled, no seed brokers")
		return
	}

	serde, err := app.saleEventsSerde()
	if err != nil {
		app.fallDown(op, err)
	}

	var tlsConfig *tls.Config
	if bc.TLS.CA != "" {
		tlsConfig, err = adapter.MakeTLSConfig(bc.TLS.CA, bc.TLS.Cert, bc.TLS.Key)
		if err != nil {
			app.fallDown(op, err)
		}
	}

	p, err := kafka.NewSaleEventsProducer(
		kafka.ProducerClientOpt(
			app.ctx, bc.SeedBrokers, bc.Topics.SaleEvents, tlsConfig,
		),
		kafka.ProducerEncoderOpt(serde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.saleEvents = &p
	log.Info("sale events are enabled", "topic", bc.Topics.SaleEvents)
}

func (app *App) saleEventsSerde() (schema.Serde, error) {
	urls := app.cfg.Broker.SchemaRegistryURLs
	if len(urls) == 0 {
		return schema.NewPlainSerdeSaleRecordedV1()
	}

	srClient, err := sr.NewClient(sr.URLs(urls...))
	if err != nil {
		return nil, err
	}

	subject := app.cfg.Broker.Topics.SaleEvents + "-value"
	return schema.NewSerdeSaleRecordedV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
}

func (app *App) initCoreService() {
	var opts []service.Opt
	if app.saleEvents != nil {
		opts = append(opts, service.SaleEventsOpt(*app.saleEvents))
	}
	app.service = service.New(app.storage, opts...)
}

func (app *App) initInboundAdapters() {
	addr := app.cfg.HTTPServerAddr
	s := app.service

	mux := http.NewServeMux()
	httphandler.RegisterProducts(mux, s)
	httphandler.RegisterInventory(mux, s)
	httphandler.RegisterSales(mux, s, s)
	httphandler.RegisterRevenue(mux, s)
	httphandler.RegisterDemo(mux, s)
	httphandler.RegisterHealth(mux, s)

	handler := httphandler.Wrap(mux)
	app.httpServer = httphandler.NewHTTPServer(
		addr, handler, app.cfg.HTTPHandlerTimeout,
	)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.saleEvents != nil {
		app.saleEvents.Close()
	}
	app.storage.Close()

	slog.Info("application is closed")

	if app.logFile != nil {
		_ = app.logFile.Close()
	}
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
