package cli

import (
	"context"
	"fmt"

	"impulselog/internal/client/client"
)

func (a *App) printEntry(e *client.Entry) {
	fmt.Fprintf(a.out, "ID:      %s\n", e.ID)
	fmt.Fprintf(a.out, "Created: %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	if e.UpdatedAt != nil {
		fmt.Fprintf(a.out, "Updated: %s\n", e.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(a.out, "Impulse: %s\n", e.ImpulseText)
	if e.Trigger != "" {
		fmt.Fprintf(a.out, "Trigger: %s\n", e.Trigger)
	}
	if e.Emotion != "" {
		fmt.Fprintf(a.out, "Emotion: %s\n", e.Emotion)
	}
	fmt.Fprintf(a.out, "Acted:   %s\n", e.DidAct)
	if e.Notes != "" {
		fmt.Fprintf(a.out, "Notes:   %s\n", e.Notes)
	}
}

func (a *App) Show(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter entry id", a.out)
	if err != nil {
		return err
	}

	entry, err := a.api.GetEntry(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "Error fetching entry: %s\n", err)
		return err
	}

	a.printEntry(entry)
	return nil
}
