package fixture

import (
	"context"
	"strings"
	"testing"

	"github.com/preston-bernstein/qb-rankings-service/internal/providers"
)

func TestFetchTabServesEveryConfiguredTab(t *testing.T) {
	tabs := providers.DefaultTabs()
	src := New(tabs)

	for _, tab := range tabs.All() {
		body, err := src.FetchTab(context.Background(), tab)
		if err != nil {
			t.Fatalf("expected tab %q, got error %v", tab, err)
		}
		if strings.TrimSpace(body) == "" {
			t.Fatalf("expected csv content for %q", tab)
		}
	}

	body, _ := src.FetchTab(context.Background(), tabs.Rankings)
	if !strings.Contains(body, "Lamar Jackson") {
		t.Fatalf("expected rankings content, got %q", body)
	}
}

func TestFetchTabUnknownTab(t *testing.T) {
	_, err := New(providers.DefaultTabs()).FetchTab(context.Background(), "Nope")
	st, ok := providers.AsStatusError(err)
	if !ok || st.StatusCode != 404 {
		t.Fatalf("expected 404 status error, got %v", err)
	}
}

func TestFetchTabHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(providers.DefaultTabs()).FetchTab(ctx, "Rankings"); err == nil {
		t.Fatalf("expected context error")
	}
}
