// internal/app/system/agenda/agenda.go

// Package agenda groups a user's events into date-keyed buckets for
// calendar rendering and applies the optimistic patches that keep a
// cached agenda in step with store writes.
//
// Bucket order is the insertion order of the first event seen for each
// date, not sorted order. That matches how the agenda is consumed: the
// calendar widget keys buckets by date itself, so ordering was never
// normalized upstream and downstream code must not rely on it.
package agenda

import (
	"github.com/upcyclebuild/upcyclehub/internal/domain/models"
)

// Bucket is one date's worth of events. Title is the YYYY-MM-DD date
// string (the bucket key), Data the events on that date.
type Bucket struct {
	Title string         `json:"title"`
	Data  []models.Event `json:"data"`
}

// Agenda is an ordered list of buckets.
type Agenda struct {
	Buckets []Bucket `json:"buckets"`
}

// Group builds an agenda from a flat event list, bucketing by Date in
// first-seen order.
func Group(events []models.Event) *Agenda {
	a := &Agenda{}
	for _, ev := range events {
		a.Add(ev.Date, ev)
	}
	return a
}

// Add appends an event to the bucket for date, creating the bucket at
// the end if the date has not been seen.
func (a *Agenda) Add(date string, ev models.Event) {
	for i := range a.Buckets {
		if a.Buckets[i].Title == date {
			a.Buckets[i].Data = append(a.Buckets[i].Data, ev)
			return
		}
	}
	a.Buckets = append(a.Buckets, Bucket{Title: date, Data: []models.Event{ev}})
}

// Remove drops every event with the given title from the bucket for
// date, pruning the bucket entirely if it becomes empty. Title is not a
// unique key: if two events on the same date share a title, both go.
func (a *Agenda) Remove(date, title string) {
	out := a.Buckets[:0]
	for _, b := range a.Buckets {
		if b.Title == date {
			kept := b.Data[:0]
			for _, ev := range b.Data {
				if ev.Title != title {
					kept = append(kept, ev)
				}
			}
			b.Data = kept
		}
		if len(b.Data) > 0 {
			out = append(out, b)
		}
	}
	a.Buckets = out
}

// Patch applies non-zero fields of patch to the event with the given id,
// wherever it sits. Returns true if an event was updated. The date key
// itself is not rewritten: a patch that changes Date does not move the
// event between buckets (callers that change dates reload instead).
func (a *Agenda) Patch(id string, patch EventPatch) bool {
	for i := range a.Buckets {
		for j := range a.Buckets[i].Data {
			ev := &a.Buckets[i].Data[j]
			if ev.ID.Hex() != id {
				continue
			}
			patch.applyTo(ev)
			return true
		}
	}
	return false
}

// EventPatch carries the optional field updates of an event edit. Nil
// means "leave unchanged".
type EventPatch struct {
	Title       *string `json:"title,omitempty"`
	Hour        *string `json:"hour,omitempty"`
	Duration    *string `json:"duration,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

func (p EventPatch) applyTo(ev *models.Event) {
	if p.Title != nil {
		ev.Title = *p.Title
	}
	if p.Hour != nil {
		ev.Hour = *p.Hour
	}
	if p.Duration != nil {
		ev.Duration = *p.Duration
	}
	if p.Description != nil {
		ev.Description = *p.Description
	}
	if p.Completed != nil {
		ev.Completed = *p.Completed
	}
}

// IsEmpty reports whether the patch changes nothing.
func (p EventPatch) IsEmpty() bool {
	return p.Title == nil && p.Hour == nil && p.Duration == nil &&
		p.Description == nil && p.Completed == nil
}
