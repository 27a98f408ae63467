package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rl1809/rocketcart/internal/adapter/storage"
	"github.com/rl1809/rocketcart/internal/core/domain"
	"github.com/rl1809/rocketcart/internal/core/service"
	"github.com/rl1809/rocketcart/internal/logger"
	"github.com/rl1809/rocketcart/internal/port"
)

const productID = 42

type silentNotifier struct{}

func (silentNotifier) Notify(port.Severity, string) {}

func main() {
	initialStock := flag.Int("stock", 20, "units available for the product")
	totalRequests := flag.Int("requests", 50, "concurrent add requests")
	logLevel := flag.String("log-level", "error", "log level")
	flag.Parse()

	log, err := logger.New("stress-test", *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	// Seed an in-memory catalog and stock store
	catalog := storage.NewMemoryCatalogAdapter()
	catalog.Put(domain.Product{
		ID:    productID,
		Title: "Flash Sale Runner",
		Price: decimal.RequireFromString("99.90"),
		Image: "https://static.rocketshoes.dev/img/42.jpg",
	}, *initialStock)

	catalogService := service.NewCatalogService(catalog, storage.NewMemoryStockAdapter(), log)
	if _, err := catalogService.SyncStock(ctx); err != nil {
		log.Fatal("failed to sync stock", zap.Error(err))
	}

	snapshots := storage.NewMemorySnapshotAdapter()
	store := service.NewCartStore(ctx, catalogService, snapshots, silentNotifier{}, service.WithLogger(log))

	// Counters
	var successCount, rejectCount, otherCount atomic.Int32

	// Spawn concurrent requests
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < *totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			err := store.AddProduct(ctx, productID)
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, service.ErrInsufficientStock):
				rejectCount.Add(1)
			default:
				otherCount.Add(1)
			}
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)

	// Results
	success := successCount.Load()
	reject := rejectCount.Load()
	cart := store.Cart()
	entry, _ := cart.Find(productID)

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Initial Stock:    %d\n", *initialStock)
	fmt.Printf("Total Requests:   %d\n", *totalRequests)
	fmt.Printf("Successful:       %d\n", success)
	fmt.Printf("Rejected:         %d\n", reject)
	fmt.Printf("Other Errors:     %d\n", otherCount.Load())
	fmt.Printf("Cart Entries:     %d\n", cart.Len())
	fmt.Printf("Cart Amount:      %d\n", entry.Amount)
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("==========================================")

	failed := false
	expected := min(*initialStock, *totalRequests)

	// Assertions
	if int(success) == expected && int(reject) == *totalRequests-expected {
		fmt.Printf("PASS: %d adds succeeded, %d rejected\n", success, reject)
	} else {
		fmt.Printf("FAIL: expected %d success/%d rejected, got %d/%d\n",
			expected, *totalRequests-expected, success, reject)
		failed = true
	}

	if cart.Len() <= 1 && entry.Amount == expected {
		fmt.Println("PASS: single entry, amount never exceeded stock")
	} else {
		fmt.Printf("FAIL: expected 1 entry with amount %d, got %d entries with amount %d\n",
			expected, cart.Len(), entry.Amount)
		failed = true
	}

	// Verify the persisted snapshot matches memory
	raw, err := snapshots.Load(ctx)
	if err == nil {
		persisted, decodeErr := domain.DecodeSnapshot(raw)
		if decodeErr == nil && persisted.Equal(cart) {
			fmt.Println("PASS: snapshot matches in-memory cart")
		} else {
			fmt.Println("FAIL: snapshot diverged from in-memory cart")
			failed = true
		}
	} else if !errors.Is(err, port.ErrSnapshotAbsent) || expected > 0 {
		fmt.Printf("FAIL: snapshot unreadable: %v\n", err)
		failed = true
	}

	if failed {
		os.Exit(1)
	}
}
