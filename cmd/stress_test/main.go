package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/rl1809/stock-gen/internal/adapter/storage"
	"github.com/rl1809/stock-gen/internal/core/domain"
	"github.com/rl1809/stock-gen/internal/core/service"
)

const (
	sectionName   = "stress-section"
	initialStock  = 20
	totalRequests = 50
	freeGenRole   = "free-gen"
)

func main() {
	ctx := context.Background()

	dir, err := os.MkdirTemp("", "stock-stress-*")
	if err != nil {
		log.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	stockRepo := storage.NewFileAdapter(filepath.Join(dir, "stock_data.json"))
	policy := service.AccessPolicy{FreeGenRole: freeGenRole, PremiumRoles: domain.NewRoleSet()}
	cooldowns := service.NewCooldownTracker(storage.NewMemoryAdapter(), domain.NewRoleSet(), time.Hour, 5*time.Minute)
	stockService := service.NewStockService(stockRepo, policy, cooldowns)

	// Seed the section
	if err := stockService.CreateSection(ctx, sectionName, "📦", domain.AccessFree); err != nil {
		log.Fatalf("failed to create section: %v", err)
	}
	lines := ""
	for i := 0; i < initialStock; i++ {
		lines += fmt.Sprintf("item-%04d\n", i)
	}
	added, err := stockService.AddItems(ctx, sectionName, lines)
	if err != nil {
		log.Fatalf("failed to add items: %v", err)
	}
	if added != initialStock {
		log.Fatalf("expected %d items added, got %d", initialStock, added)
	}

	// Counters and dispensed-item record
	var successCount atomic.Int32
	var failCount atomic.Int32
	var mu sync.Mutex
	seen := make(map[string]int)

	// Spawn concurrent requests from distinct principals
	var wg sync.WaitGroup
	start := time.Now()

	roles := domain.NewRoleSet(freeGenRole)
	now := time.Now()
	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			principal := domain.Principal{ID: uuid.New().String(), Roles: roles}
			item, err := stockService.Allocate(ctx, sectionName, principal, now)
			if err == nil {
				successCount.Add(1)
				mu.Lock()
				seen[item]++
				mu.Unlock()
			} else {
				failCount.Add(1)
			}
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)

	success := successCount.Load()
	fail := failCount.Load()

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Initial Stock:    %d\n", initialStock)
	fmt.Printf("Total Requests:   %d\n", totalRequests)
	fmt.Printf("Successful:       %d\n", success)
	fmt.Printf("Failed:           %d\n", fail)
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("==========================================")

	if success == int32(initialStock) && fail == int32(totalRequests-initialStock) {
		fmt.Printf("PASS: Exactly %d allocations succeeded, %d rejected\n", initialStock, totalRequests-initialStock)
	} else {
		fmt.Printf("FAIL: Expected %d success/%d fail, got %d/%d\n",
			initialStock, totalRequests-initialStock, success, fail)
	}

	// No item may be dispensed twice
	duplicates := 0
	for _, n := range seen {
		if n > 1 {
			duplicates++
		}
	}
	if duplicates == 0 && len(seen) == initialStock {
		fmt.Printf("PASS: %d distinct items dispensed, no duplicates\n", len(seen))
	} else {
		fmt.Printf("FAIL: %d distinct items, %d dispensed more than once\n", len(seen), duplicates)
	}

	// Section must be fully drained
	summaries, err := stockService.ListSections(ctx)
	if err != nil {
		log.Fatalf("failed to list sections: %v", err)
	}
	remaining := -1
	for _, s := range summaries {
		if s.Name == sectionName {
			remaining = s.Remaining
		}
	}
	if remaining == 0 {
		fmt.Println("PASS: Stock depleted to 0")
	} else {
		fmt.Printf("FAIL: Expected stock 0, got %d\n", remaining)
	}
}
