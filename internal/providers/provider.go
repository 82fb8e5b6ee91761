package providers

import "context"

// TabSource retrieves the CSV export of one named sheet tab.
// Implementations must be safe for concurrent use; the fetcher requests all
// tabs at once.
type TabSource interface {
	FetchTab(ctx context.Context, tab string) (string, error)
}
