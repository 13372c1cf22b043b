package cli

import (
	"context"
	"fmt"

	"impulselog/internal/client/client"
)

// editField prompts for a replacement value. Enter keeps the current value
// (nil), a lone "-" clears the field.
func (a *App) editField(prompt, current string) (*string, error) {
	v, err := GetSimpleText(a.reader, fmt.Sprintf("%s [%s] (Enter to keep, '-' to clear)", prompt, current), a.out)
	if err != nil {
		return nil, err
	}
	switch v {
	case "":
		return nil, nil
	case "-":
		empty := ""
		return &empty, nil
	default:
		return &v, nil
	}
}

func (a *App) Edit(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter entry id", a.out)
	if err != nil {
		return err
	}

	entry, err := a.api.GetEntry(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "Error fetching entry: %s\n", err)
		return err
	}

	var patch client.EntryPatch

	if patch.ImpulseText, err = a.editField("Impulse", entry.ImpulseText); err != nil {
		return err
	}
	if patch.Trigger, err = a.editField("Trigger", entry.Trigger); err != nil {
		return err
	}
	if patch.Emotion, err = a.editField("Emotion", entry.Emotion); err != nil {
		return err
	}
	if patch.Notes, err = a.editField("Notes", entry.Notes); err != nil {
		return err
	}

	didAct, err := GetSimpleText(a.reader, fmt.Sprintf("Acted? yes/no/unknown [%s] (Enter to keep)", entry.DidAct), a.out)
	if err != nil {
		return err
	}
	if didAct != "" {
		patch.DidAct = &didAct
	}

	updated, err := a.api.UpdateEntry(ctx, id, patch)
	if err != nil {
		fmt.Fprintf(a.out, "Error updating entry: %s\n", err)
		return err
	}

	fmt.Fprintln(a.out, "Updated:")
	a.printEntry(updated)
	return nil
}
