// Command quanttrader runs the broker session against a configured gateway:
// it connects, keeps the connection alive through disconnects, and maintains
// the local order, position, and account ledger from gateway events.
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/moznion/go-optional"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/CasinoHe/quanttrader-sub001/internal/broker"
	"github.com/CasinoHe/quanttrader-sub001/internal/broker/history"
	"github.com/CasinoHe/quanttrader-sub001/internal/config"
	"github.com/CasinoHe/quanttrader-sub001/internal/gateway"
	binancegw "github.com/CasinoHe/quanttrader-sub001/internal/gateway/binance"
	"github.com/CasinoHe/quanttrader-sub001/internal/gateway/sim"
	"github.com/CasinoHe/quanttrader-sub001/internal/logger"
	"github.com/CasinoHe/quanttrader-sub001/internal/session"
)

func runAction(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	log, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log.SetVerbose(cfg.Session.Verbose)

	var tradeLog history.TradeLog
	if cfg.Account.TradeHistoryPath != "" {
		tradeLog, err = history.NewDuckDBTradeLog(cfg.Account.TradeHistoryPath)
		if err != nil {
			return fmt.Errorf("failed to open trade history: %w", err)
		}
		defer tradeLog.Close()
	} else {
		tradeLog = history.NewMemoryTradeLog()
	}

	var client gateway.Client

	switch cfg.Gateway.Provider {
	case "binance":
		client = binancegw.NewClient(cfg.Gateway.ApiKey, cfg.Gateway.SecretKey, log)
	default:
		client = sim.NewClient(log)
	}

	sup := session.NewSupervisor(client, cfg.SessionSettings(), config.NewFileSource(configPath), log)

	// Simulation mode keeps the order path local; with a real provider the
	// ledger submits through the session.
	var transport broker.OrderTransport
	if cfg.Gateway.Provider != "sim" {
		transport = broker.NewSessionTransport(sup.Dispatcher())
	}

	ledger := broker.NewBroker(cfg.Account.StartingCash, transport, tradeLog, log)

	sup.SetExecutionHandler(func(exec *gateway.ExecutionResponse) {
		if err := ledger.ProcessOrderFill(exec.OrderID, exec.FillQuantity, exec.FillPrice, exec.Time); err != nil {
			log.Error("fill not applied", zap.Int64("order_id", exec.OrderID), zap.Error(err))
		}
	})

	sup.SetOrderStatusHandler(func(status *gateway.OrderStatusResponse) {
		var err error

		switch status.Status {
		case "CANCELLED":
			err = ledger.ProcessOrderCancel(status.OrderID)
		case "REJECTED":
			err = ledger.ProcessOrderReject(status.OrderID, status.Reason)
		}

		if err != nil {
			log.Error("order status not applied", zap.Int64("order_id", status.OrderID), zap.Error(err))
		}
	})

	// Market data subscriptions die with their connection; re-establish
	// them every time a generation comes up.
	sup.SetConnectedHandler(func(generation int64) {
		for _, symbol := range cfg.Gateway.WatchSymbols {
			requestID := sup.Dispatcher().Dispatch(&gateway.RealtimeDataRequest{Symbol: symbol},
				optional.Some[session.ResponseCallback](func(response gateway.Response) {
					if tick, ok := response.(*gateway.RealtimeTickResponse); ok {
						ledger.UpdateMarketPrices(map[string]float64{tick.Symbol: tick.Price})
					}
				}))
			if requestID == session.DispatchFailed {
				log.Warn("market data subscription not dispatched",
					zap.String("symbol", symbol),
					zap.Int64("generation", generation),
				)
			}
		}
	})

	sup.SetErrorHandler(func(gwErr *gateway.ErrorResponse) {
		log.Error("gateway error",
			zap.Int("code", gwErr.Code),
			zap.Int64("request_id", gwErr.RequestID()),
			zap.String("message", gwErr.Message),
		)
	})

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting session",
		zap.String("provider", cfg.Gateway.Provider),
		zap.String("host", cfg.Gateway.Host),
		zap.Int("port", cfg.Gateway.Port),
	)

	if err := sup.Run(runCtx); err != nil && !stderrors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

func schemaAction(_ context.Context, _ *cli.Command) error {
	schema, err := config.Schema()
	if err != nil {
		return err
	}

	fmt.Println(schema)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "quanttrader",
		Usage: "Run the broker session and account ledger",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Connect to the gateway and run until stopped",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to the YAML configuration file",
						Required: true,
					},
				},
				Action: runAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema for the configuration file",
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
