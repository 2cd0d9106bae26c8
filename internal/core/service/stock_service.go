package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rl1809/stock-gen/internal/core/domain"
	"github.com/rl1809/stock-gen/internal/port"
)

// StockService owns the stock store and performs every read and mutation on
// it under a single process-wide lock, so check-then-act sequences like
// "pop head item, persist" are atomic with respect to concurrent callers.
// If several engine processes ever share one durable store, an external
// mutual-exclusion mechanism is required on top.
type StockService struct {
	mu        sync.Mutex // held across load-mutate-save
	stock     port.StockRepository
	policy    AccessPolicy
	cooldowns *CooldownTracker
}

func NewStockService(stock port.StockRepository, policy AccessPolicy, cooldowns *CooldownTracker) *StockService {
	return &StockService{
		stock:     stock,
		policy:    policy,
		cooldowns: cooldowns,
	}
}

// withStore runs fn with exclusive access to the store and persists the
// result when fn succeeds. Any error from fn aborts without saving, so a
// rejected operation leaves durable state untouched.
func (s *StockService) withStore(ctx context.Context, fn func(store domain.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.stock.Load(ctx)
	if err != nil {
		return fmt.Errorf("load stock: %w", err)
	}
	if err := fn(store); err != nil {
		return err
	}
	if err := s.stock.Save(ctx, store); err != nil {
		return fmt.Errorf("save stock: %w", err)
	}
	return nil
}

// Allocate draws the oldest item from a section for a principal. The whole
// gate sequence (existence, access, cooldown, stock) and the pop + persist
// run inside one critical section; the cooldown clock is touched only after
// the updated store is durable.
func (s *StockService) Allocate(ctx context.Context, sectionName string, p domain.Principal, now time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.stock.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load stock: %w", err)
	}

	sec, ok := store[sectionName]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, sectionName)
	}
	if err := s.policy.Authorize(sec.Access, p.Roles); err != nil {
		return "", err
	}
	remaining, err := s.cooldowns.Remaining(ctx, p.ID, p.Roles, now)
	if err != nil {
		return "", fmt.Errorf("cooldown lookup: %w", err)
	}
	if remaining > 0 {
		return "", &CooldownError{Remaining: remaining}
	}
	if len(sec.Items) == 0 {
		return "", fmt.Errorf("%w: %q", ErrOutOfStock, sectionName)
	}

	item := sec.Items[0]
	sec.Items = sec.Items[1:]
	if err := s.stock.Save(ctx, store); err != nil {
		return "", fmt.Errorf("save stock: %w", err)
	}
	if err := s.cooldowns.Record(ctx, p.ID, now); err != nil {
		// The item is already committed; a lost cooldown mark only lets the
		// principal retry early.
		log.Printf("record cooldown for %s: %v", p.ID, err)
	}
	return item, nil
}

// CreateSection inserts a new empty section.
func (s *StockService) CreateSection(ctx context.Context, name, icon string, tier domain.AccessTier) error {
	return s.withStore(ctx, func(store domain.Store) error {
		if _, ok := store[name]; ok {
			return fmt.Errorf("%w: %q", ErrSectionExists, name)
		}
		store[name] = &domain.Section{
			Name:   name,
			Icon:   icon,
			Items:  []string{},
			Access: tier,
		}
		return nil
	})
}

// AddItems appends every non-blank, trimmed line of rawText to the section's
// tail in original order and returns how many were added.
func (s *StockService) AddItems(ctx context.Context, name, rawText string) (int, error) {
	added := 0
	err := s.withStore(ctx, func(store domain.Store) error {
		sec, ok := store[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownSection, name)
		}
		for _, line := range strings.Split(rawText, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			sec.Items = append(sec.Items, line)
			added++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

// ClearSection empties a section's items, keeping its icon and tier.
func (s *StockService) ClearSection(ctx context.Context, name string) error {
	return s.withStore(ctx, func(store domain.Store) error {
		sec, ok := store[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownSection, name)
		}
		sec.Items = []string{}
		return nil
	})
}

// RemoveSection deletes a section entirely.
func (s *StockService) RemoveSection(ctx context.Context, name string) error {
	return s.withStore(ctx, func(store domain.Store) error {
		if _, ok := store[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownSection, name)
		}
		delete(store, name)
		return nil
	})
}

// SetAccess changes a section's access tier.
func (s *StockService) SetAccess(ctx context.Context, name string, tier domain.AccessTier) error {
	return s.withStore(ctx, func(store domain.Store) error {
		sec, ok := store[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownSection, name)
		}
		sec.Access = tier
		return nil
	})
}

// SectionSummary is a read-only view of one section for status displays.
type SectionSummary struct {
	Name      string            `json:"name"`
	Icon      string            `json:"icon"`
	Access    domain.AccessTier `json:"access"`
	Remaining int               `json:"remaining"`
}

// ListSections returns a snapshot of all sections sorted by name.
func (s *StockService) ListSections(ctx context.Context) ([]SectionSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.stock.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stock: %w", err)
	}

	summaries := make([]SectionSummary, 0, len(store))
	for _, sec := range store {
		summaries = append(summaries, SectionSummary{
			Name:      sec.Name,
			Icon:      sec.Icon,
			Access:    sec.Access,
			Remaining: len(sec.Items),
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Name < summaries[j].Name })
	return summaries, nil
}
