package cli

import (
	"context"
	"fmt"
)

// Topics fetches and prints the catalog tree.
func (a *App) Topics(ctx context.Context) error {
	topics, err := a.catalog.Topics(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Failed to load catalog:", err)
		return err
	}

	if len(topics) == 0 {
		fmt.Fprintln(a.out, "The catalog is empty.")
		return nil
	}
	for _, t := range topics {
		fmt.Fprintf(a.out, "[%s] %s (%d subtopics, %d images)\n", t.ID, t.Title, len(t.SubTopics), len(t.Images))
	}
	return nil
}

// Topic prints one topic with its subtopics.
func (a *App) Topic(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: topic <id>")
		return nil
	}

	topics, err := a.catalog.Topics(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Failed to load catalog:", err)
		return err
	}

	for _, t := range topics {
		if t.ID != args[0] {
			continue
		}
		fmt.Fprintf(a.out, "%s\n", t.Title)
		for _, sub := range t.SubTopics {
			fmt.Fprintf(a.out, "  [%s] %s (%d images)\n", sub.ID, sub.Title, len(sub.Images))
		}
		return nil
	}

	fmt.Fprintln(a.out, "No such topic:", args[0])
	return nil
}

// Pages prints the catalog's detail pages.
func (a *App) Pages(ctx context.Context) error {
	pages, err := a.catalog.SubTitles(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Failed to load catalog:", err)
		return err
	}

	for _, p := range pages {
		fmt.Fprintf(a.out, "[%s] %s (%d images)\n", p.ID, p.Title, len(p.Images))
	}
	return nil
}

// Refresh forces a cache refresh from the backend.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.catalog.Refresh(ctx); err != nil {
		fmt.Fprintln(a.out, "Refresh failed:", err)
		return err
	}
	ts, _ := a.catalog.LastRefreshed(ctx)
	fmt.Fprintln(a.out, "Catalog refreshed at", ts.Format("15:04:05"))
	return nil
}

// CallLog prints the recent API calls, newest last.
func (a *App) CallLog() {
	entries := a.api.Calls().Entries()
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No API calls recorded.")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(a.out, "%s %s %s %s (%s)\n",
			e.Timestamp.Format("15:04:05"), e.Method, e.Resource, e.Status, e.Duration)
	}
}
