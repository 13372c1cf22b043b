package cli

import (
	"context"
	"fmt"

	"impulselog/internal/client/client"
)

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func (a *App) List(ctx context.Context) error {
	didAct, err := GetSimpleText(a.reader, "Filter by outcome (yes/no/unknown, Enter for all)", a.out)
	if err != nil {
		return err
	}

	entries, err := a.api.ListEntries(ctx, client.ListFilter{DidAct: didAct})
	if err != nil {
		fmt.Fprintf(a.out, "Error listing entries: %s\n", err)
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No entries yet")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(a.out, "%s  %s  [%-7s]  %s\n",
			e.ID, e.CreatedAt.Local().Format("2006-01-02 15:04"), e.DidAct, truncate(e.ImpulseText, 50))
	}
	return nil
}
