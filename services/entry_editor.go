package services

import (
	"context"
	"sync"

	"github.com/hyuyu1012/chaeum/models"
	"github.com/hyuyu1012/chaeum/utils"
)

type editorState int

const (
	stateClosed editorState = iota
	stateOpenNew
	stateOpenEditing
)

func (s editorState) String() string {
	switch s {
	case stateOpenNew:
		return "open_new"
	case stateOpenEditing:
		return "open_editing"
	default:
		return "closed"
	}
}

// Draft is the transient state of one open add/edit session. It is copied
// out of and into the store at the session boundaries and destroyed on
// save or cancel; nothing in it is persisted.
type Draft struct {
	ImageRef string                 `json:"image_ref"`
	Label    string                 `json:"label"`
	MealSlot models.MealSlot        `json:"meal_slot"`
	Preview  *models.NutritionFacts `json:"preview,omitempty"`

	// view-relative position of the entry being replaced, when editing.
	// Translated to a store position fresh at commit time, never earlier.
	targetViewIndex int
}

// ClassifyResult is the outcome of one classification round trip.
type ClassifyResult struct {
	Label    string                 `json:"label,omitempty"`
	Preview  *models.NutritionFacts `json:"preview,omitempty"`
	NoResult bool                   `json:"no_result,omitempty"`
	// Stale marks a response that arrived after the session it belonged to
	// was cancelled or replaced; the draft was left untouched.
	Stale bool `json:"stale,omitempty"`
}

// CommitResult reports what a successful commit did to the store.
type CommitResult struct {
	Entry    models.Entry `json:"entry"`
	Replaced bool         `json:"replaced"`
	// Conflict is set when the edit target vanished between open and
	// commit; the entry was appended as new instead (documented policy).
	Conflict bool `json:"conflict,omitempty"`
}

// EntryEditor runs one add/edit session at a time:
// Closed → Open(new) / Open(editing) → Closed on save or cancel.
// A generation counter is bumped on every open, commit and cancel so a
// classification response that comes back for a dead session is discarded
// instead of leaking its prediction into an unrelated draft.
type EntryEditor struct {
	mu         sync.Mutex
	store      *EntryStore
	catalog    *NutritionCatalog
	classifier Classifier

	state        editorState
	draft        Draft
	selectedDate string
	gen          uint64
}

func NewEntryEditor(store *EntryStore, catalog *NutritionCatalog, classifier Classifier) *EntryEditor {
	return &EntryEditor{
		store:        store,
		catalog:      catalog,
		classifier:   classifier,
		selectedDate: utils.Today(),
	}
}

// SetSelectedDate is the calendar collaborator's callback.
func (e *EntryEditor) SetSelectedDate(date string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selectedDate = date
}

func (e *EntryEditor) SelectedDate() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selectedDate
}

// State reports the session state for the presentation layer.
func (e *EntryEditor) State() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.String()
}

// Snapshot returns a copy of the current draft.
func (e *EntryEditor) Snapshot() Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft
}

// OpenForNew starts a fresh add session. Opening over an already open
// session discards the old draft, the same as the modal re-opening.
func (e *EntryEditor) OpenForNew() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gen++
	e.draft = Draft{MealSlot: models.SlotBreakfast}
	e.state = stateOpenNew
}

// OpenForEdit starts an edit session on the viewIndex-th entry of the
// selected date's view, copying its fields into the draft.
func (e *EntryEditor) OpenForEdit(viewIndex int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	view := e.store.ViewForDate(e.selectedDate)
	if viewIndex < 0 || viewIndex >= len(view) {
		return ErrIndexNotFound
	}
	target := view[viewIndex]

	e.gen++
	e.draft = Draft{
		ImageRef:        target.ImageRef,
		Label:           target.Label,
		MealSlot:        target.MealSlot,
		targetViewIndex: viewIndex,
	}
	e.state = stateOpenEditing
	return nil
}

// SelectImage records the picked image. On a fresh add session a new pick
// also clears any label and preview carried over from a previous
// prediction, so a stale result never rides along with an unrelated photo.
func (e *EntryEditor) SelectImage(imageRef string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == stateClosed {
		return ErrSessionClosed
	}
	e.draft.ImageRef = imageRef
	if e.state == stateOpenNew {
		e.draft.Label = ""
		e.draft.Preview = nil
	}
	return nil
}

// SetLabel is a direct user edit of the draft label. The catalog is not
// re-queried here; the authoritative nutrition snapshot is resolved at
// commit.
func (e *EntryEditor) SetLabel(label string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == stateClosed {
		return ErrSessionClosed
	}
	e.draft.Label = label
	return nil
}

// SetMealSlot picks the meal category for the draft.
func (e *EntryEditor) SetMealSlot(slot models.MealSlot) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == stateClosed {
		return ErrSessionClosed
	}
	if !slot.Valid() {
		return &ValidationError{Field: "meal_slot"}
	}
	e.draft.MealSlot = slot
	return nil
}

// Classify sends the image to the classifier and, on success, fills the
// draft label and a read-only nutrition preview. The call happens outside
// the editor lock; the generation captured before the call is re-checked
// before the result is applied, and a mismatch discards the response.
func (e *EntryEditor) Classify(ctx context.Context, img ClassifyPayload) (ClassifyResult, error) {
	e.mu.Lock()
	if e.state == stateClosed {
		e.mu.Unlock()
		return ClassifyResult{}, ErrSessionClosed
	}
	if e.draft.ImageRef == "" {
		e.mu.Unlock()
		return ClassifyResult{}, &ValidationError{Field: "image_ref"}
	}
	gen := e.gen
	e.mu.Unlock()

	label, err := e.classifier.Classify(ctx, img)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.gen != gen {
		// session was cancelled or replaced while the call was in flight
		return ClassifyResult{Stale: true}, nil
	}
	if err != nil {
		// draft untouched; the caller may retry or type the label manually
		return ClassifyResult{}, err
	}
	if label == "" {
		return ClassifyResult{NoResult: true}, nil
	}

	e.draft.Label = label
	e.draft.Preview = e.catalog.Lookup(label)
	return ClassifyResult{Label: label, Preview: e.draft.Preview}, nil
}

// Commit validates the draft, resolves the nutrition snapshot from the
// label, and writes through to the store: replace when editing (appending
// as new if the target was deleted meanwhile), append otherwise. The
// session closes on success and stays open on validation failure.
func (e *EntryEditor) Commit() (CommitResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == stateClosed {
		return CommitResult{}, ErrSessionClosed
	}
	if e.draft.ImageRef == "" {
		return CommitResult{}, &ValidationError{Field: "image_ref"}
	}
	if e.draft.Label == "" {
		return CommitResult{}, &ValidationError{Field: "label"}
	}

	entry := models.Entry{
		Date:      e.selectedDate,
		ImageRef:  e.draft.ImageRef,
		MealSlot:  e.draft.MealSlot,
		Label:     e.draft.Label,
		Nutrition: e.catalog.Lookup(e.draft.Label), // nil when no match: not an error
	}

	res := CommitResult{Entry: entry}
	if e.state == stateOpenEditing {
		replaced := e.store.CommitReplace(e.selectedDate, e.draft.targetViewIndex, entry)
		res.Replaced = replaced
		res.Conflict = !replaced
	} else {
		e.store.Append(entry)
	}

	e.gen++
	e.draft = Draft{}
	e.state = stateClosed
	return res, nil
}

// Cancel discards the draft without touching the store. Safe to call when
// no session is open.
func (e *EntryEditor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == stateClosed {
		return
	}
	e.gen++
	e.draft = Draft{}
	e.state = stateClosed
}
