package cart

import "time"

// Item types
const (
	TypeCourse    = "course"
	TypeActivity  = "activity"
	TypeTuition   = "tuition"
	TypeECA       = "eca"
	TypeExam      = "exam"
	TypeSchoolBus = "schoolbus"
)

// Item categories that make an item time-sensitive (seat is held while the
// countdown runs).
const (
	CategoryAfterSchool = "after-school"
	CategorySummer      = "summer"
)

// Item is a cart entry for tuition, courses, activities, exams and school-bus
// invoices. Uniqueness key is (ID, StudentID).
type Item struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Price       float64                `json:"price"`
	Type        string                 `json:"type"`
	Category    string                 `json:"category,omitempty"`
	StudentID   string                 `json:"student_id,omitempty"`
	StudentName string                 `json:"student_name,omitempty"`
	CampConfig  map[string]interface{} `json:"camp_config,omitempty"`
}

// Key returns the item's uniqueness key within a cart.
func (it Item) Key() string { return it.ID + "/" + it.StudentID }

// TimeSensitive reports whether adding the item arms the seat-hold countdown.
func (it Item) TimeSensitive() bool {
	return it.Type == TypeActivity || it.Category == CategoryAfterSchool || it.Category == CategorySummer
}

// TripItem is a trip cart entry. The trip cart is a disjoint collection from
// the main cart, with its own key space and no countdown behavior.
type TripItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	StudentID   string    `json:"student_id"`
	StudentName string    `json:"student_name"`
	Date        time.Time `json:"date"` // UTC
	Location    string    `json:"location"`
}

func (it TripItem) Key() string { return it.ID + "/" + it.StudentID }

func countTimeSensitive(items []Item) int {
	var n int
	for _, it := range items {
		if it.TimeSensitive() {
			n++
		}
	}
	return n
}
