package nav

import (
	"context"
	"time"
)

type Link struct {
	Name   string `json:"name"`
	Href   string `json:"href"`
	Icon   string `json:"icon"`
	Active bool   `json:"active"`
}

var links = []Link{
	{Name: "Home", Href: "/dashboard", Icon: "home"},
	{Name: "Invoices", Href: "/dashboard/invoices", Icon: "document-duplicate"},
	{Name: "Customers", Href: "/dashboard/customers", Icon: "user-group"},
}

const fetchDelay = 500 * time.Millisecond

// Fetch returns the dashboard links after a simulated lookup delay, standing
// in for a real settings store. Honors ctx cancellation while waiting.
func Fetch(ctx context.Context) ([]Link, error) {
	select {
	case <-time.After(fetchDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	out := make([]Link, len(links))
	copy(out, links)
	return out, nil
}

// Mark sets Active on the link whose target equals currentPath exactly.
// "/dashboard/invoices/create" does not highlight "/dashboard/invoices".
func Mark(links []Link, currentPath string) []Link {
	for i := range links {
		links[i].Active = links[i].Href == currentPath
	}
	return links
}
