package models

// MealSlot is one of the fixed meal categories an entry can be logged under.
type MealSlot string

const (
	SlotBreakfast MealSlot = "breakfast"
	SlotBrunch    MealSlot = "brunch"
	SlotLunch     MealSlot = "lunch"
	SlotDinner    MealSlot = "dinner"
	SlotSnack     MealSlot = "snack"
	SlotOther     MealSlot = "other"
)

// Valid reports whether s is one of the known meal slots.
func (s MealSlot) Valid() bool {
	switch s {
	case SlotBreakfast, SlotBrunch, SlotLunch, SlotDinner, SlotSnack, SlotOther:
		return true
	}
	return false
}

// One logged meal instance. Nutrition is a snapshot resolved from the
// catalog at save time; it is never re-resolved when the catalog changes.
type Entry struct {
	Date      string          `json:"date"` // canonical YYYY-MM-DD day
	ImageRef  string          `json:"image_ref"`
	MealSlot  MealSlot        `json:"meal_slot"`
	Label     string          `json:"label"`
	Nutrition *NutritionFacts `json:"nutrition,omitempty"`
}
