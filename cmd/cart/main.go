package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rl1809/rocketcart/internal/adapter/gateway"
	"github.com/rl1809/rocketcart/internal/adapter/notify"
	"github.com/rl1809/rocketcart/internal/adapter/storage"
	"github.com/rl1809/rocketcart/internal/config"
	"github.com/rl1809/rocketcart/internal/core/domain"
	"github.com/rl1809/rocketcart/internal/core/service"
	"github.com/rl1809/rocketcart/internal/logger"
	"github.com/rl1809/rocketcart/internal/metrics"
	"github.com/rl1809/rocketcart/internal/port"
)

const usage = `usage: cart [-config file] <command> [args]

commands:
  add <id>               add one unit of a product
  remove <id>            remove a product from the cart
  update <id> <amount>   set the amount of a product already in the cart
  list                   print the cart
`

func main() {
	configFile := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	cmd, err := parseCommand(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\n%s", err, usage)
		os.Exit(2)
	}

	cfg, err := config.LoadCart(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("cart", cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(context.Background(), cfg, log, cmd, os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

type command struct {
	name   string
	id     int
	amount int
}

func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return command{}, errors.New("missing command")
	}

	cmd := command{name: args[0]}
	want := map[string]int{"add": 2, "remove": 2, "update": 3, "list": 1}
	n, ok := want[cmd.name]
	if !ok {
		return command{}, fmt.Errorf("unknown command %q", cmd.name)
	}
	if len(args) != n {
		return command{}, fmt.Errorf("%s expects %d argument(s)", cmd.name, n-1)
	}

	if n >= 2 {
		id, err := strconv.Atoi(args[1])
		if err != nil || id <= 0 {
			return command{}, fmt.Errorf("invalid product id %q", args[1])
		}
		cmd.id = id
	}
	if n == 3 {
		amount, err := strconv.Atoi(args[2])
		if err != nil {
			return command{}, fmt.Errorf("invalid amount %q", args[2])
		}
		cmd.amount = amount
	}
	return cmd, nil
}

func run(ctx context.Context, cfg *config.CartConfig, log *zap.Logger, cmd command, stdout, stderr io.Writer) error {
	log.Debug("configuration loaded", zap.String("config", cfg.String()))

	gw, closeGateway, err := openGateway(cfg, log)
	if err != nil {
		fmt.Fprintf(stderr, "stock gateway: %v\n", err)
		return err
	}
	defer closeGateway()

	snapshots, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "cart storage: %v\n", err)
		return err
	}
	defer closeStorage()

	reg := prometheus.NewRegistry()
	notifier := notify.Fanout{notify.NewWriterNotifier(stderr), notify.NewLogNotifier(log)}

	store := service.NewCartStore(ctx, gw, snapshots, notifier,
		service.WithLogger(log),
		service.WithMetrics(metrics.NewCart(reg)),
	)

	opCtx := ctx
	if cfg.Gateway.Timeout > 0 {
		var cancel context.CancelFunc
		opCtx, cancel = context.WithTimeout(ctx, cfg.Gateway.Timeout)
		defer cancel()
	}

	var opErr error
	switch cmd.name {
	case "add":
		opErr = store.AddProduct(opCtx, cmd.id)
	case "remove":
		opErr = store.RemoveProduct(opCtx, cmd.id)
	case "update":
		opErr = store.UpdateProductAmount(opCtx, cmd.id, cmd.amount)
	}

	printCart(stdout, store.Cart())

	if cfg.Metrics.Textfile != "" {
		if err := prometheus.WriteToTextfile(cfg.Metrics.Textfile, reg); err != nil {
			log.Warn("write metrics textfile", zap.String("path", cfg.Metrics.Textfile), zap.Error(err))
		}
	}

	return opErr
}

func openGateway(cfg *config.CartConfig, log *zap.Logger) (port.StockGateway, func(), error) {
	var gw port.StockGateway
	closeFn := func() {}

	switch cfg.Gateway.Driver {
	case config.GatewayGRPC:
		cc, err := gateway.Dial(cfg.Gateway.URL)
		if err != nil {
			return nil, nil, err
		}
		gw = gateway.NewGRPCGateway(cc)
		closeFn = func() { cc.Close() }
	default:
		gw = gateway.NewHTTPGateway(cfg.Gateway.URL, cfg.Gateway.Timeout)
	}

	if cfg.Gateway.Breaker.Enabled {
		gw = gateway.NewBreaker(gw, gateway.BreakerSettings{
			ConsecutiveFailures: cfg.Gateway.Breaker.ConsecutiveFailures,
			OpenTimeout:         cfg.Gateway.Breaker.OpenTimeout,
		}, log)
	}
	return gw, closeFn, nil
}

func openStorage(ctx context.Context, cfg *config.CartConfig) (port.SnapshotRepository, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Storage.Redis.Addr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return storage.NewRedisSnapshotAdapter(rdb, cfg.Storage.Key), func() { rdb.Close() }, nil
	case config.StorageMemory:
		return storage.NewMemorySnapshotAdapter(), func() {}, nil
	default:
		return storage.NewFileAdapter(cfg.Storage.Path), func() {}, nil
	}
}

func printCart(w io.Writer, cart domain.CartState) {
	if cart.IsEmpty() {
		fmt.Fprintln(w, "cart is empty")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPRODUCT\tPRICE\tQTY\tSUBTOTAL")
	for _, e := range cart.Entries() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", e.ID, e.Title, e.FormattedPrice(), e.Amount, e.FormattedSubTotal())
	}
	fmt.Fprintf(tw, "\t\t\tTOTAL\t%s\n", cart.FormattedTotal())
	tw.Flush()
}
