package cart_test

import (
	"testing"
	"time"

	"github.com/psknn17/kingsportal/core"
	"github.com/psknn17/kingsportal/core/cart"
	inmemdb "github.com/psknn17/kingsportal/storage/inmem"
)

const parentID = "prt-test"

func setup(t *testing.T, conf *core.Config) *cart.Service {
	t.Helper()
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	return cart.NewService(conf, nil, inmemdb.NewCartRepository(db))
}

// idleConf keeps countdown ticks an hour apart so remaining seconds stay
// exactly where arming put them.
func idleConf(t *testing.T) *core.Config {
	conf := core.NewTestConfig()
	conf.Cart.CountdownBase = 10 * time.Minute
	conf.Cart.CountdownPerCourse = 5 * time.Minute
	conf.Cart.TickInterval = time.Hour
	return conf
}

func tuitionItem(id string) cart.Item {
	return cart.Item{ID: id, Name: "Tuition fee", Price: 185000, Type: cart.TypeTuition}
}

func courseItem(id, studentID string) cart.Item {
	return cart.Item{
		ID: id, Name: "Swimming Squad", Price: 8500,
		Type: cart.TypeCourse, Category: cart.CategoryAfterSchool,
		StudentID: studentID,
	}
}

func TestService_Add_rejectsDuplicates(t *testing.T) {
	svc := setup(t, idleConf(t))

	tests := []struct {
		name      string
		item      cart.Item
		wantAdded bool
	}{
		{name: "new item", item: tuitionItem("inv-001"), wantAdded: true},
		{name: "same id same student", item: tuitionItem("inv-001"), wantAdded: false},
		{name: "same id other student", item: courseItem("inv-001", "std-002"), wantAdded: true},
		{name: "dup with student", item: courseItem("inv-001", "std-002"), wantAdded: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			added, err := svc.Add(parentID, tt.item)
			if err != nil {
				t.Fatalf("Add() error = %v", err)
			}
			if added != tt.wantAdded {
				t.Errorf("Add() = %v, want %v", added, tt.wantAdded)
			}
		})
	}

	items, err := svc.Items(parentID)
	if err != nil {
		t.Fatalf("Items() error = %v", err)
	}
	if len(items) != 2 {
		t.Errorf("len(Items()) = %v, want 2", len(items))
	}
}

func TestService_Add_armsCountdown(t *testing.T) {
	svc := setup(t, idleConf(t))

	// plain invoices never arm
	if _, err := svc.Add(parentID, tuitionItem("inv-001")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, armed := svc.Countdown(parentID); armed {
		t.Fatal("Countdown() armed by a non time-sensitive item")
	}

	// first course arms at base + 1*perCourse
	if _, err := svc.Add(parentID, courseItem("crs-001", "std-001")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	seconds, armed := svc.Countdown(parentID)
	if !armed {
		t.Fatal("Countdown() not armed by a course")
	}
	if seconds != 900 {
		t.Errorf("Countdown() = %v, want 900", seconds)
	}

	// every extra course extends by perCourse
	if _, err := svc.Add(parentID, courseItem("crs-002", "std-001")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if seconds, _ = svc.Countdown(parentID); seconds != 1200 {
		t.Errorf("Countdown() = %v, want 1200", seconds)
	}

	// a duplicate add does not extend
	if _, err := svc.Add(parentID, courseItem("crs-002", "std-001")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if seconds, _ = svc.Countdown(parentID); seconds != 1200 {
		t.Errorf("Countdown() = %v, want 1200", seconds)
	}
}

func TestService_Remove(t *testing.T) {
	svc := setup(t, idleConf(t))

	mustAdd(t, svc, tuitionItem("inv-001"))
	mustAdd(t, svc, courseItem("crs-001", "std-001"))
	mustAdd(t, svc, courseItem("crs-001", "std-002"))

	// unknown item
	if err := svc.Remove(parentID, "nope", ""); err != cart.ErrItemNotFound {
		t.Errorf("Remove() error = %v, want %v", err, cart.ErrItemNotFound)
	}

	// scoped removal only drops the matching student's entry
	if err := svc.Remove(parentID, "crs-001", "std-001"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if in, _ := svc.Contains(parentID, "crs-001", "std-002"); !in {
		t.Error("Contains() = false for the remaining student's entry")
	}
	if _, armed := svc.Countdown(parentID); !armed {
		t.Error("Countdown() disarmed while a course remains")
	}

	// removing the last course disarms without evicting the rest
	if err := svc.Remove(parentID, "crs-001", "std-002"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, armed := svc.Countdown(parentID); armed {
		t.Error("Countdown() still armed with no course left")
	}
	if in, _ := svc.Contains(parentID, "inv-001", ""); !in {
		t.Error("Contains() = false, tuition item was evicted on disarm")
	}

	// student-less removal matches on id alone
	if err := svc.Remove(parentID, "inv-001", ""); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	items, _ := svc.Items(parentID)
	if len(items) != 0 {
		t.Errorf("len(Items()) = %v, want 0", len(items))
	}
}

func TestService_CancelCountdown_evicts(t *testing.T) {
	svc := setup(t, idleConf(t))

	mustAdd(t, svc, tuitionItem("inv-001"))
	mustAdd(t, svc, courseItem("crs-001", "std-001"))

	if err := svc.CancelCountdown(parentID); err != nil {
		t.Fatalf("CancelCountdown() error = %v", err)
	}
	if _, armed := svc.Countdown(parentID); armed {
		t.Error("Countdown() still armed after cancel")
	}

	items, _ := svc.Items(parentID)
	if len(items) != 1 || items[0].ID != "inv-001" {
		t.Errorf("Items() = %v, want only the tuition item", items)
	}
}

func TestService_expiryEvicts(t *testing.T) {
	conf := core.NewTestConfig()
	conf.Cart.CountdownBase = 2 * time.Second // 2 ticks
	conf.Cart.CountdownPerCourse = time.Second
	conf.Cart.TickInterval = time.Millisecond
	svc := setup(t, conf)

	mustAdd(t, svc, tuitionItem("inv-001"))
	mustAdd(t, svc, courseItem("crs-001", "std-001"))

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, armed := svc.Countdown(parentID); !armed {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("countdown did not expire")
		}
		time.Sleep(5 * time.Millisecond)
	}

	items, err := svc.Items(parentID)
	if err != nil {
		t.Fatalf("Items() error = %v", err)
	}
	if len(items) != 1 || items[0].ID != "inv-001" {
		t.Errorf("Items() = %v, want only the tuition item", items)
	}
}

func TestService_Clear(t *testing.T) {
	svc := setup(t, idleConf(t))

	mustAdd(t, svc, tuitionItem("inv-001"))
	mustAdd(t, svc, courseItem("crs-001", "std-001"))

	// a selection only drops the named items
	if err := svc.Clear(parentID, courseItem("crs-001", "std-001")); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	items, _ := svc.Items(parentID)
	if len(items) != 1 || items[0].ID != "inv-001" {
		t.Errorf("Items() = %v, want only the tuition item", items)
	}
	if _, armed := svc.Countdown(parentID); armed {
		t.Error("Countdown() still armed after the last course was cleared")
	}

	// no selection empties the cart
	if err := svc.Clear(parentID); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	items, _ = svc.Items(parentID)
	if len(items) != 0 {
		t.Errorf("len(Items()) = %v, want 0", len(items))
	}
}

func TestService_tripCart(t *testing.T) {
	svc := setup(t, idleConf(t))

	trip := cart.TripItem{ID: "trip-001", Name: "Science Centre day trip", Price: 3500, StudentID: "std-001"}

	added, err := svc.AddTrip(parentID, trip)
	if err != nil || !added {
		t.Fatalf("AddTrip() = %v, %v; want true, nil", added, err)
	}
	if added, _ = svc.AddTrip(parentID, trip); added {
		t.Error("AddTrip() = true for a duplicate")
	}

	// trips never arm the countdown
	if _, armed := svc.Countdown(parentID); armed {
		t.Error("Countdown() armed by a trip")
	}

	// the two carts are disjoint
	if in, _ := svc.Contains(parentID, "trip-001", "std-001"); in {
		t.Error("Contains() = true, trip leaked into the main cart")
	}
	if in, _ := svc.ContainsTrip(parentID, "trip-001", "std-001"); !in {
		t.Error("ContainsTrip() = false")
	}

	if err := svc.RemoveTrip(parentID, "trip-001", "std-001"); err != nil {
		t.Fatalf("RemoveTrip() error = %v", err)
	}
	if err := svc.RemoveTrip(parentID, "trip-001", "std-001"); err != cart.ErrItemNotFound {
		t.Errorf("RemoveTrip() error = %v, want %v", err, cart.ErrItemNotFound)
	}
}

func mustAdd(t *testing.T, svc *cart.Service, item cart.Item) {
	t.Helper()
	if _, err := svc.Add(parentID, item); err != nil {
		t.Fatalf("Add(%s) error = %v", item.ID, err)
	}
}
