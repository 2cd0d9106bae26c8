package storage

import (
	"context"
	"database/sql"
	"os"
	"reflect"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"github.com/rl1809/stock-gen/internal/core/domain"
)

func getMySQLAdapter(t *testing.T) *MySQLAdapter {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/stockgen?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	adapter := NewMySQLAdapter(db)
	if err := adapter.InitSchema(context.Background()); err != nil {
		t.Fatalf("init schema failed: %v", err)
	}
	// Reset to a pristine document for each test.
	if _, err := db.ExecContext(context.Background(), `DELETE FROM stock_store`); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	return adapter
}

func TestMySQLLoad_BootstrapsEmptyDocument(t *testing.T) {
	adapter := getMySQLAdapter(t)

	store, err := adapter.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(store) != 0 {
		t.Errorf("expected empty store, got %v", store)
	}

	// Bootstrap persists, so a second load reads the stored row.
	store, err = adapter.Load(context.Background())
	if err != nil {
		t.Fatalf("second load failed: %v", err)
	}
	if len(store) != 0 {
		t.Errorf("expected empty store, got %v", store)
	}
}

func TestMySQLSaveLoad_RoundTrip(t *testing.T) {
	adapter := getMySQLAdapter(t)
	ctx := context.Background()

	store := domain.Store{
		"netflix": {Name: "netflix", Icon: "📦", Items: []string{"a", "b", "c"}, Access: domain.AccessFree},
		"vip":     {Name: "vip", Icon: "⭐", Items: []string{}, Access: domain.AccessPremium},
	}
	if err := adapter.Save(ctx, store); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	reloaded, err := adapter.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(reloaded, store) {
		t.Errorf("expected %v, got %v", store, reloaded)
	}

	// Save replaces the whole document.
	delete(store, "vip")
	store["netflix"].Items = []string{"b", "c"}
	if err := adapter.Save(ctx, store); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	reloaded, err = adapter.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(reloaded, store) {
		t.Errorf("expected %v, got %v", store, reloaded)
	}
}
