package cli

import (
	"context"
	"fmt"

	"impulselog/internal/client/client"
)

func (a *App) Add(ctx context.Context) error {
	text, err := GetSimpleText(a.reader, "What was the impulse?", a.out)
	if err != nil {
		return err
	}
	if text == "" {
		fmt.Fprintln(a.out, "Impulse text is required")
		return nil
	}

	trigger, err := GetSimpleText(a.reader, "What triggered it? (optional)", a.out)
	if err != nil {
		return err
	}
	emotion, err := GetSimpleText(a.reader, "How did it feel? (optional)", a.out)
	if err != nil {
		return err
	}
	didAct, err := GetSimpleText(a.reader, "Did you act on it? (yes/no, Enter for unknown)", a.out)
	if err != nil {
		return err
	}
	notes, err := GetMultiline(a.reader, "Notes (optional)", a.out)
	if err != nil {
		return err
	}

	entry, err := a.api.CreateEntry(ctx, client.EntryDraft{
		ImpulseText: text,
		Trigger:     trigger,
		Emotion:     emotion,
		DidAct:      didAct,
		Notes:       notes,
	})
	if err != nil {
		fmt.Fprintf(a.out, "Error creating entry: %s\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Recorded entry %s\n", entry.ID)
	return nil
}
