package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/hyuyu1012/chaeum/models"
)

const testDay = "2025-06-14"

func testCatalog() *NutritionCatalog {
	return NewNutritionCatalogFrom([]models.NutritionFacts{
		{Name: "토스트(식빵)", Energy: "279", Carbohydrate: "50.2", Protein: "9.2", Fat: "4.9"},
		{Name: "김치찌개", Energy: "48", Carbohydrate: "3.5", Protein: "3.9", Fat: "2.1"},
		{Name: "돼지고기 김치찌개", Energy: "72", Carbohydrate: "3.1", Protein: "6.2", Fat: "4"},
	})
}

// classifierFunc lets every test inject its own remote behavior.
type classifierFunc func(ctx context.Context, img ClassifyPayload) (string, error)

func (f classifierFunc) Classify(ctx context.Context, img ClassifyPayload) (string, error) {
	return f(ctx, img)
}

func fixedClassifier(label string, err error) Classifier {
	return classifierFunc(func(context.Context, ClassifyPayload) (string, error) {
		return label, err
	})
}

func newTestEditor(store *EntryStore, cl Classifier) *EntryEditor {
	e := NewEntryEditor(store, testCatalog(), cl)
	e.SetSelectedDate(testDay)
	return e
}

// Scenario A: fresh store, add one entry with a catalog-matching label.
func TestCommit_NewEntryWithNutritionSnapshot(t *testing.T) {
	store := NewEntryStore()
	e := newTestEditor(store, fixedClassifier("", nil))

	e.OpenForNew()
	if err := e.SelectImage("file:///u1.jpg"); err != nil {
		t.Fatalf("SelectImage error = %v", err)
	}
	if err := e.SetLabel("토스트(식빵)"); err != nil {
		t.Fatalf("SetLabel error = %v", err)
	}

	res, err := e.Commit()
	if err != nil {
		t.Fatalf("Commit error = %v", err)
	}
	if res.Replaced || res.Conflict {
		t.Errorf("Commit result = %+v, want plain append", res)
	}
	if store.Len() != 1 {
		t.Fatalf("store.Len = %d, want 1", store.Len())
	}

	got := store.All()[0]
	if got.Date != testDay {
		t.Errorf("entry.Date = %q, want %q", got.Date, testDay)
	}
	if got.Nutrition == nil || got.Nutrition.Name != "토스트(식빵)" {
		t.Errorf("entry.Nutrition = %+v, want 토스트(식빵) snapshot", got.Nutrition)
	}
	if e.State() != "closed" {
		t.Errorf("State = %q, want closed", e.State())
	}
}

func TestCommit_NoCatalogMatchIsNotAnError(t *testing.T) {
	store := NewEntryStore()
	e := newTestEditor(store, fixedClassifier("", nil))

	e.OpenForNew()
	e.SelectImage("file:///u1.jpg")
	e.SetLabel("외계음식")

	res, err := e.Commit()
	if err != nil {
		t.Fatalf("Commit error = %v", err)
	}
	if res.Entry.Nutrition != nil {
		t.Errorf("entry.Nutrition = %+v, want nil", res.Entry.Nutrition)
	}
}

func TestCommit_ValidationKeepsSessionOpen(t *testing.T) {
	store := NewEntryStore()
	e := newTestEditor(store, fixedClassifier("", nil))

	e.OpenForNew()

	var ve *ValidationError
	if _, err := e.Commit(); !errors.As(err, &ve) || ve.Field != "image_ref" {
		t.Fatalf("Commit with empty draft error = %v, want ValidationError{image_ref}", err)
	}
	e.SelectImage("file:///u1.jpg")
	if _, err := e.Commit(); !errors.As(err, &ve) || ve.Field != "label" {
		t.Fatalf("Commit without label error = %v, want ValidationError{label}", err)
	}
	if e.State() == "closed" {
		t.Fatal("session closed after validation failure, want still open")
	}
	if store.Len() != 0 {
		t.Errorf("store.Len = %d, want 0", store.Len())
	}

	// correct and retry
	e.SetLabel("김치찌개")
	if _, err := e.Commit(); err != nil {
		t.Fatalf("Commit after correction error = %v", err)
	}
}

// Commit is not idempotent across a closed session: the second call fails
// and nothing is double-inserted.
func TestCommit_TwiceFailsSecondTime(t *testing.T) {
	store := NewEntryStore()
	e := newTestEditor(store, fixedClassifier("", nil))

	e.OpenForNew()
	e.SelectImage("file:///u1.jpg")
	e.SetLabel("김치찌개")
	if _, err := e.Commit(); err != nil {
		t.Fatalf("first Commit error = %v", err)
	}
	if _, err := e.Commit(); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("second Commit error = %v, want ErrSessionClosed", err)
	}
	if store.Len() != 1 {
		t.Errorf("store.Len = %d, want 1", store.Len())
	}
}

// Scenario C plus round-trip: edit-and-commit replaces in place, and an
// untouched edit leaves the store content-equal.
func TestOpenForEdit_CommitReplacesNotAppends(t *testing.T) {
	store := NewEntryStore()
	e := newTestEditor(store, fixedClassifier("", nil))

	e.OpenForNew()
	e.SelectImage("file:///u1.jpg")
	e.SetLabel("김치찌개")
	e.Commit()

	if err := e.OpenForEdit(0); err != nil {
		t.Fatalf("OpenForEdit error = %v", err)
	}
	e.SetLabel("토스트(식빵)")
	res, err := e.Commit()
	if err != nil {
		t.Fatalf("Commit error = %v", err)
	}
	if !res.Replaced {
		t.Error("Commit.Replaced = false, want true")
	}
	if store.Len() != 1 {
		t.Fatalf("store.Len = %d, want 1 (replace, not append)", store.Len())
	}
	if got := store.All()[0].Label; got != "토스트(식빵)" {
		t.Errorf("entry.Label = %q, want 토스트(식빵)", got)
	}
}

func TestOpenForEdit_UnchangedRoundTrip(t *testing.T) {
	store := NewEntryStore()
	e := newTestEditor(store, fixedClassifier("", nil))

	for _, label := range []string{"김치찌개", "토스트(식빵)"} {
		e.OpenForNew()
		e.SelectImage("file:///" + label + ".jpg")
		e.SetLabel(label)
		if _, err := e.Commit(); err != nil {
			t.Fatalf("seed Commit error = %v", err)
		}
	}
	before := store.All()

	if err := e.OpenForEdit(1); err != nil {
		t.Fatalf("OpenForEdit error = %v", err)
	}
	if _, err := e.Commit(); err != nil {
		t.Fatalf("Commit error = %v", err)
	}

	after := store.All()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("store changed across no-op edit:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestOpenForEdit_OutOfRange(t *testing.T) {
	e := newTestEditor(NewEntryStore(), fixedClassifier("", nil))

	if err := e.OpenForEdit(0); !errors.Is(err, ErrIndexNotFound) {
		t.Errorf("OpenForEdit(0) on empty view error = %v, want ErrIndexNotFound", err)
	}
	if e.State() != "closed" {
		t.Errorf("State = %q, want closed", e.State())
	}
}

// Scenario E: the edit target is deleted while the session is open. The
// documented policy is append-as-new with a conflict flag.
func TestCommit_TargetDeletedAppendsAsNew(t *testing.T) {
	store := NewEntryStore()
	e := newTestEditor(store, fixedClassifier("", nil))

	e.OpenForNew()
	e.SelectImage("file:///u1.jpg")
	e.SetLabel("김치찌개")
	e.Commit()

	if err := e.OpenForEdit(0); err != nil {
		t.Fatalf("OpenForEdit error = %v", err)
	}
	// concurrent path removes the target mid-session
	if _, err := store.RemoveForDate(testDay, 0); err != nil {
		t.Fatalf("RemoveForDate error = %v", err)
	}

	e.SetLabel("토스트(식빵)")
	res, err := e.Commit()
	if err != nil {
		t.Fatalf("Commit error = %v", err)
	}
	if !res.Conflict || res.Replaced {
		t.Errorf("Commit result = %+v, want conflict append", res)
	}
	if store.Len() != 1 {
		t.Errorf("store.Len = %d, want 1", store.Len())
	}
	if got := store.All()[0].Label; got != "토스트(식빵)" {
		t.Errorf("entry.Label = %q, want 토스트(식빵)", got)
	}
}

// Scenario D: classification failure leaves the draft and store untouched.
func TestClassify_FailureLeavesDraftAlone(t *testing.T) {
	store := NewEntryStore()
	e := newTestEditor(store, fixedClassifier("", errors.New("prediction server error 500")))

	e.OpenForNew()
	e.SelectImage("file:///u1.jpg")
	e.SetLabel("수동입력")

	_, err := e.Classify(context.Background(), ClassifyPayload{Data: []byte("jpeg")})
	if err == nil {
		t.Fatal("Classify error = nil, want failure")
	}
	if got := e.Snapshot().Label; got != "수동입력" {
		t.Errorf("draft.Label = %q, want unchanged 수동입력", got)
	}
	if store.Len() != 0 {
		t.Errorf("store.Len = %d, want 0", store.Len())
	}
}

func TestClassify_SuccessFillsLabelAndPreview(t *testing.T) {
	e := newTestEditor(NewEntryStore(), fixedClassifier("김치찌개", nil))

	e.OpenForNew()
	e.SelectImage("file:///u1.jpg")

	res, err := e.Classify(context.Background(), ClassifyPayload{Data: []byte("jpeg")})
	if err != nil {
		t.Fatalf("Classify error = %v", err)
	}
	if res.Label != "김치찌개" {
		t.Errorf("result.Label = %q, want 김치찌개", res.Label)
	}
	if res.Preview == nil || res.Preview.Name != "김치찌개" {
		t.Errorf("result.Preview = %+v, want 김치찌개 record", res.Preview)
	}
	if got := e.Snapshot().Label; got != "김치찌개" {
		t.Errorf("draft.Label = %q, want 김치찌개", got)
	}
}

func TestClassify_NoResultKeepsLabel(t *testing.T) {
	e := newTestEditor(NewEntryStore(), fixedClassifier("", nil))

	e.OpenForNew()
	e.SelectImage("file:///u1.jpg")
	e.SetLabel("기존라벨")

	res, err := e.Classify(context.Background(), ClassifyPayload{Data: []byte("jpeg")})
	if err != nil {
		t.Fatalf("Classify error = %v", err)
	}
	if !res.NoResult {
		t.Error("result.NoResult = false, want true")
	}
	if got := e.Snapshot().Label; got != "기존라벨" {
		t.Errorf("draft.Label = %q, want unchanged 기존라벨", got)
	}
}

func TestClassify_RequiresOpenSessionAndImage(t *testing.T) {
	e := newTestEditor(NewEntryStore(), fixedClassifier("김치찌개", nil))

	if _, err := e.Classify(context.Background(), ClassifyPayload{}); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Classify when closed error = %v, want ErrSessionClosed", err)
	}

	e.OpenForNew()
	var ve *ValidationError
	if _, err := e.Classify(context.Background(), ClassifyPayload{}); !errors.As(err, &ve) {
		t.Errorf("Classify without image error = %v, want ValidationError", err)
	}
}

// A response that lands after the session was cancelled is discarded by the
// generation check instead of leaking into the next draft.
func TestClassify_StaleResponseDiscarded(t *testing.T) {
	var e *EntryEditor
	cl := classifierFunc(func(context.Context, ClassifyPayload) (string, error) {
		e.Cancel() // user cancels while the call is in flight
		return "김치찌개", nil
	})
	e = newTestEditor(NewEntryStore(), cl)

	e.OpenForNew()
	e.SelectImage("file:///u1.jpg")

	res, err := e.Classify(context.Background(), ClassifyPayload{Data: []byte("jpeg")})
	if err != nil {
		t.Fatalf("Classify error = %v", err)
	}
	if !res.Stale {
		t.Fatal("result.Stale = false, want true")
	}
	if e.State() != "closed" {
		t.Errorf("State = %q, want closed", e.State())
	}
}

func TestClassify_ResponseForReplacedSessionDiscarded(t *testing.T) {
	var e *EntryEditor
	cl := classifierFunc(func(context.Context, ClassifyPayload) (string, error) {
		e.OpenForNew() // user started over with a different photo
		return "김치찌개", nil
	})
	e = newTestEditor(NewEntryStore(), cl)

	e.OpenForNew()
	e.SelectImage("file:///u1.jpg")

	res, err := e.Classify(context.Background(), ClassifyPayload{Data: []byte("jpeg")})
	if err != nil {
		t.Fatalf("Classify error = %v", err)
	}
	if !res.Stale {
		t.Fatal("result.Stale = false, want true")
	}
	if got := e.Snapshot().Label; got != "" {
		t.Errorf("new draft.Label = %q, want empty", got)
	}
}

// A fresh image pick on a new session clears the previous prediction so it
// cannot ride along with an unrelated photo.
func TestSelectImage_NewSessionClearsStalePrediction(t *testing.T) {
	e := newTestEditor(NewEntryStore(), fixedClassifier("김치찌개", nil))

	e.OpenForNew()
	e.SelectImage("file:///u1.jpg")
	e.Classify(context.Background(), ClassifyPayload{Data: []byte("jpeg")})

	e.SelectImage("file:///u2.jpg")
	d := e.Snapshot()
	if d.Label != "" || d.Preview != nil {
		t.Errorf("draft after re-pick = %+v, want cleared label and preview", d)
	}
}

// Editing keeps the existing label when the user swaps the photo.
func TestSelectImage_EditSessionKeepsLabel(t *testing.T) {
	store := NewEntryStore()
	e := newTestEditor(store, fixedClassifier("", nil))

	e.OpenForNew()
	e.SelectImage("file:///u1.jpg")
	e.SetLabel("김치찌개")
	e.Commit()

	e.OpenForEdit(0)
	e.SelectImage("file:///u2.jpg")
	if got := e.Snapshot().Label; got != "김치찌개" {
		t.Errorf("draft.Label = %q, want kept 김치찌개", got)
	}
}

func TestCancel_DiscardsDraftWithoutStoreMutation(t *testing.T) {
	store := NewEntryStore()
	e := newTestEditor(store, fixedClassifier("", nil))

	e.OpenForNew()
	e.SelectImage("file:///u1.jpg")
	e.SetLabel("김치찌개")
	e.Cancel()

	if e.State() != "closed" {
		t.Errorf("State = %q, want closed", e.State())
	}
	if store.Len() != 0 {
		t.Errorf("store.Len = %d, want 0", store.Len())
	}
	if err := e.SetLabel("x"); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("SetLabel after cancel error = %v, want ErrSessionClosed", err)
	}
}

func TestSetMealSlot(t *testing.T) {
	e := newTestEditor(NewEntryStore(), fixedClassifier("", nil))

	e.OpenForNew()
	if got := e.Snapshot().MealSlot; got != models.SlotBreakfast {
		t.Errorf("default slot = %q, want breakfast", got)
	}
	if err := e.SetMealSlot(models.SlotDinner); err != nil {
		t.Fatalf("SetMealSlot error = %v", err)
	}

	var ve *ValidationError
	if err := e.SetMealSlot("elevenses"); !errors.As(err, &ve) {
		t.Errorf("SetMealSlot(invalid) error = %v, want ValidationError", err)
	}
	if got := e.Snapshot().MealSlot; got != models.SlotDinner {
		t.Errorf("slot after invalid set = %q, want dinner", got)
	}
}

// Nutrition is a snapshot, not a live reference: later catalog changes must
// not alter stored entries.
func TestCommit_NutritionIsSnapshotNotLiveReference(t *testing.T) {
	records := []models.NutritionFacts{
		{Name: "김치찌개", Energy: "48"},
	}
	store := NewEntryStore()
	e := NewEntryEditor(store, NewNutritionCatalogFrom(records), fixedClassifier("", nil))
	e.SetSelectedDate(testDay)

	e.OpenForNew()
	e.SelectImage("file:///u1.jpg")
	e.SetLabel("김치찌개")
	if _, err := e.Commit(); err != nil {
		t.Fatalf("Commit error = %v", err)
	}

	records[0].Energy = "9999" // catalog data changes after the save

	if got := store.All()[0].Nutrition.Energy; got != "48" {
		t.Errorf("stored snapshot Energy = %q, want 48 (frozen at save time)", got)
	}
}
