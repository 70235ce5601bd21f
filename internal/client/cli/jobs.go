package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/accion2025/buencuidar/internal/client/careplan"
	"github.com/accion2025/buencuidar/internal/client/models"
)

func (a *App) showJobs(ctx context.Context) {
	postings, err := a.board.Open(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	printPostings(postings)
}

// watchJobs follows the board: the change feed pushes refreshes, a ticker
// backstops it in case notifications get dropped. Enter stops watching.
func (a *App) watchJobs(ctx context.Context) {
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stop, err := a.board.Watch(wctx, func(postings []models.Posting) {
		fmt.Println("\nBoard updated:")
		printPostings(postings)
	})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer stop()

	go func() {
		ticker := time.NewTicker(a.config.BoardRefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if postings, err := a.board.Open(wctx); err == nil {
					printPostings(postings)
				}
			case <-wctx.Done():
				return
			}
		}
	}()

	a.showJobs(wctx)
	fmt.Println("(watching; press Enter to stop)")
	_, _ = a.reader.ReadString('\n')
}

func printPostings(postings []models.Posting) {
	if len(postings) == 0 {
		fmt.Println("No open jobs right now.")
		return
	}
	for _, p := range postings {
		window := p.Start
		if p.End != "" {
			window += "-" + p.End
		}
		status := p.Status
		if p.Assigned() {
			status += " (taken)"
		}
		summary := firstLine(careplan.Decode(p.Details).Description)
		fmt.Printf("%-36s  %s %-11s  %-10s  %s\n", p.ID, p.Date, window, status, summary)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 60 {
		s = s[:57] + "..."
	}
	return s
}
