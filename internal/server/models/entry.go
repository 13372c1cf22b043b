package models

import "time"

// Outcome is the three-valued didAct tag: whether the user acted on a
// recorded impulse.
type Outcome string

const (
	OutcomeYes     Outcome = "yes"
	OutcomeNo      Outcome = "no"
	OutcomeUnknown Outcome = "unknown"
)

// ValidOutcome reports whether s is one of the three allowed tags.
func ValidOutcome(s string) bool {
	switch Outcome(s) {
	case OutcomeYes, OutcomeNo, OutcomeUnknown:
		return true
	}
	return false
}

// ImpulseEntry is one journal record. ID is a random uuid so that guessing
// one id reveals nothing about others. UserID is immutable after creation.
// UpdatedAt stays nil until the first update.
type ImpulseEntry struct {
	ID          string
	UserID      int64
	ImpulseText string
	Trigger     string
	Emotion     string
	DidAct      Outcome
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// EntryView is the public JSON shape of an entry.
type EntryView struct {
	ID          string     `json:"id"`
	UserID      int64      `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt"`
	ImpulseText string     `json:"impulseText"`
	Trigger     string     `json:"trigger,omitempty"`
	Emotion     string     `json:"emotion,omitempty"`
	DidAct      Outcome    `json:"didAct"`
	Notes       string     `json:"notes,omitempty"`
}

// View returns the public projection of e.
func (e *ImpulseEntry) View() EntryView {
	return EntryView{
		ID:          e.ID,
		UserID:      e.UserID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
		ImpulseText: e.ImpulseText,
		Trigger:     e.Trigger,
		Emotion:     e.Emotion,
		DidAct:      e.DidAct,
		Notes:       e.Notes,
	}
}

// EntryPatch is a partial update. Nil means "leave unchanged"; a pointer to
// an empty string is an explicit overwrite. Absence and emptiness are
// therefore distinguishable, matching the wire contract.
type EntryPatch struct {
	ImpulseText *string
	Trigger     *string
	Emotion     *string
	DidAct      *Outcome
	Notes       *string
}

// Apply returns a copy of e with present fields overwritten and the update
// timestamp set.
func (p EntryPatch) Apply(e ImpulseEntry, now time.Time) ImpulseEntry {
	if p.ImpulseText != nil {
		e.ImpulseText = *p.ImpulseText
	}
	if p.Trigger != nil {
		e.Trigger = *p.Trigger
	}
	if p.Emotion != nil {
		e.Emotion = *p.Emotion
	}
	if p.DidAct != nil {
		e.DidAct = *p.DidAct
	}
	if p.Notes != nil {
		e.Notes = *p.Notes
	}
	e.UpdatedAt = &now
	return e
}

// EntryFilter bounds a listing. Nil dates mean unbounded; both bounds are
// inclusive. Empty DidAct means no outcome filter.
type EntryFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	DidAct    Outcome
}
