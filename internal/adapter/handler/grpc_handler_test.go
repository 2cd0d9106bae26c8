package handler

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/rl1809/stock-gen/internal/adapter/handler/rpc"
	"github.com/rl1809/stock-gen/internal/adapter/storage"
	"github.com/rl1809/stock-gen/internal/core/domain"
	"github.com/rl1809/stock-gen/internal/core/service"
)

func newGRPCClient(t *testing.T) *rpc.Client {
	t.Helper()

	repo := storage.NewFileAdapter(filepath.Join(t.TempDir(), "stock_data.json"))
	policy := service.AccessPolicy{
		FreeGenRole:  "free-gen",
		PremiumRoles: domain.NewRoleSet("premium-a"),
	}
	cooldowns := service.NewCooldownTracker(storage.NewMemoryAdapter(), domain.NewRoleSet("premium-a"), time.Hour, 5*time.Minute)
	svc := service.NewStockService(repo, policy, cooldowns)

	lis := bufconn.Listen(1024 * 1024)
	server := grpc.NewServer()
	NewGRPCHandler(svc).Register(server)
	go server.Serve(lis)
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return rpc.NewClient(conn)
}

func TestGRPC_AllocateFlow(t *testing.T) {
	client := newGRPCClient(t)
	ctx := context.Background()

	resp, err := client.CreateSection(ctx, &rpc.CreateSectionRequest{Name: "netflix", Access: "free"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !resp.Success {
		t.Fatalf("create rejected: %s", resp.Message)
	}

	addResp, err := client.AddItems(ctx, &rpc.AddItemsRequest{Name: "netflix", Text: "a\nb\n\nc"})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !addResp.Success || addResp.Added != 3 {
		t.Fatalf("expected 3 added, got %+v", addResp)
	}

	alloc, err := client.Allocate(ctx, &rpc.AllocateRequest{
		Section:     "netflix",
		PrincipalID: "u1",
		Roles:       []string{"free-gen"},
	})
	if err != nil {
		t.Fatalf("allocate failed: %v", err)
	}
	if !alloc.Success || alloc.Item != "a" {
		t.Errorf("expected item a, got %+v", alloc)
	}

	// Retry by the same principal is rejected with the remaining wait.
	alloc, err = client.Allocate(ctx, &rpc.AllocateRequest{
		Section:     "netflix",
		PrincipalID: "u1",
		Roles:       []string{"free-gen"},
	})
	if err != nil {
		t.Fatalf("allocate failed: %v", err)
	}
	if alloc.Success {
		t.Error("expected cooldown rejection")
	}
	if alloc.RetryAfterSeconds < 3595 || alloc.RetryAfterSeconds > 3600 {
		t.Errorf("expected ~3600s retry, got %d", alloc.RetryAfterSeconds)
	}

	list, err := client.ListSections(ctx, &rpc.ListSectionsRequest{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list.Sections) != 1 || list.Sections[0].Remaining != 2 {
		t.Errorf("unexpected listing: %+v", list.Sections)
	}
}

func TestGRPC_AdminOperations(t *testing.T) {
	client := newGRPCClient(t)
	ctx := context.Background()

	if _, err := client.CreateSection(ctx, &rpc.CreateSectionRequest{Name: "s", Access: "free"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	dup, err := client.CreateSection(ctx, &rpc.CreateSectionRequest{Name: "s"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if dup.Success {
		t.Error("expected duplicate create to be rejected")
	}

	if _, err := client.AddItems(ctx, &rpc.AddItemsRequest{Name: "s", Text: "x\ny"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	set, err := client.SetAccess(ctx, &rpc.SetAccessRequest{Name: "s", Access: "premium"})
	if err != nil {
		t.Fatalf("set access failed: %v", err)
	}
	if !set.Success {
		t.Errorf("set access rejected: %s", set.Message)
	}

	cleared, err := client.ClearSection(ctx, &rpc.SectionRequest{Name: "s"})
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if !cleared.Success {
		t.Errorf("clear rejected: %s", cleared.Message)
	}

	list, err := client.ListSections(ctx, &rpc.ListSectionsRequest{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list.Sections) != 1 || list.Sections[0].Remaining != 0 || list.Sections[0].Access != "premium" {
		t.Errorf("unexpected listing: %+v", list.Sections)
	}

	removed, err := client.RemoveSection(ctx, &rpc.SectionRequest{Name: "s"})
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if !removed.Success {
		t.Errorf("remove rejected: %s", removed.Message)
	}

	missing, err := client.RemoveSection(ctx, &rpc.SectionRequest{Name: "s"})
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if missing.Success {
		t.Error("expected remove of missing section to be rejected")
	}
}
