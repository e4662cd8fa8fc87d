package services_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"bazar/internal/apperr"
	"bazar/internal/domain"
	"bazar/internal/repos"
	"bazar/internal/services"
)

// flakyWriter fails the nth Create call and passes everything else through.
type flakyWriter struct {
	inner  services.OrderWriter
	failAt int
	calls  int
}

func (w *flakyWriter) Create(o domain.Order) (string, error) {
	w.calls++
	if w.calls == w.failAt {
		return "", errors.New("remote write failed")
	}
	return w.inner.Create(o)
}

func TestCheckout_Preconditions(t *testing.T) {
	db := memdb(t)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	cartSvc := services.NewCartService(cartRepo)
	checkout := services.NewCheckoutService(cartRepo, orderRepo)

	sid := "sess-1"
	if err := cartSvc.Add(sid, line("p1", "s1", 10, 2, 5)); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name    string
		sid     string
		userID  string
		address string
		wantMsg string
	}{
		{"unauthenticated", sid, "", "Av. Siempre Viva 742", "you must be signed in to place an order"},
		{"blank address", sid, "u-1", "", "enter a shipping address"},
		{"empty cart", "sess-empty", "u-1", "Av. Siempre Viva 742", "cart is empty"},
	}
	for _, tc := range cases {
		_, err := checkout.Place(tc.sid, tc.userID, tc.address, "Efectivo")
		if err == nil {
			t.Fatalf("%s: want error", tc.name)
		}
		if got := apperr.Message(err); got != tc.wantMsg {
			t.Fatalf("%s: want %q, got %q", tc.name, tc.wantMsg, got)
		}
	}

	// No writes on any failed precondition.
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM orders`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("want no orders created, got %d", n)
	}
	cv, _ := cartSvc.View(sid)
	if len(cv.Items) != 1 {
		t.Fatal("cart should be untouched after failed preconditions")
	}
}

func TestCheckout_GroupsByStore(t *testing.T) {
	db := memdb(t)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	cartSvc := services.NewCartService(cartRepo)
	checkout := services.NewCheckoutService(cartRepo, orderRepo)

	sid := "sess-1"
	if err := cartSvc.Add(sid, line("p1", "s1", 10, 2, 5)); err != nil {
		t.Fatal(err)
	}
	if err := cartSvc.Add(sid, line("p2", "s1", 5, 1, 1)); err != nil {
		t.Fatal(err)
	}
	if err := cartSvc.Add(sid, line("p3", "s2", 20, 1, 3)); err != nil {
		t.Fatal(err)
	}

	ids, err := checkout.Place(sid, "u-1", "Av. Siempre Viva 742", "Tarjeta")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 {
		t.Fatalf("want 2 orders for 2 stores, got %d", len(ids))
	}

	orders, err := orderRepo.ListByUser("u-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 2 {
		t.Fatalf("want 2 persisted orders, got %d", len(orders))
	}

	byStore := map[string]domain.Order{}
	for _, o := range orders {
		if o.Status != domain.StatusPending {
			t.Fatalf("want PENDING, got %s", o.Status)
		}
		if o.CheckoutID == "" {
			t.Fatal("want checkout id stamped")
		}
		if o.ShippingAddress != "Av. Siempre Viva 742" || o.PaymentMethod != "Tarjeta" {
			t.Fatalf("bad order header: %+v", o)
		}
		byStore[o.StoreID] = o
	}

	a := byStore["s1"]
	if a.TotalAmount != 25 || len(a.Items) != 2 {
		t.Fatalf("store s1: want total 25 with 2 items, got %v with %d", a.TotalAmount, len(a.Items))
	}
	b := byStore["s2"]
	if b.TotalAmount != 20 || len(b.Items) != 1 {
		t.Fatalf("store s2: want total 20 with 1 item, got %v with %d", b.TotalAmount, len(b.Items))
	}
	if a.CheckoutID != b.CheckoutID {
		t.Fatal("orders of one attempt should share a checkout id")
	}

	wantItems := []domain.OrderItem{
		{ProductID: "p1", ProductName: "Product p1", Quantity: 2, Price: 10},
		{ProductID: "p2", ProductName: "Product p2", Quantity: 1, Price: 5},
	}
	if diff := cmp.Diff(wantItems, a.Items); diff != "" {
		t.Fatalf("store s1 items mismatch (-want +got):\n%s", diff)
	}

	// Full success clears the cart.
	cv, _ := cartSvc.View(sid)
	if len(cv.Items) != 0 {
		t.Fatalf("want cart cleared, got %d items", len(cv.Items))
	}
}

// A failed store order aborts the rest, keeps already-committed orders and
// leaves the cart intact; retrying duplicates orders for the committed
// store. This asserts the current no-compensation behavior.
func TestCheckout_PartialFailureThenRetryDuplicates(t *testing.T) {
	db := memdb(t)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	cartSvc := services.NewCartService(cartRepo)
	flaky := &flakyWriter{inner: orderRepo, failAt: 2}
	checkout := services.NewCheckoutService(cartRepo, flaky)

	sid := "sess-1"
	if err := cartSvc.Add(sid, line("p1", "s1", 10, 1, 5)); err != nil {
		t.Fatal(err)
	}
	if err := cartSvc.Add(sid, line("p3", "s2", 20, 1, 3)); err != nil {
		t.Fatal(err)
	}

	_, err := checkout.Place(sid, "u-1", "Calle 13", "Efectivo")
	if err == nil {
		t.Fatal("want checkout failure")
	}
	if apperr.KindOf(err) != apperr.Remote {
		t.Fatalf("want remote error, got %v", err)
	}

	orders, err := orderRepo.ListByUser("u-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 1 || orders[0].StoreID != "s1" {
		t.Fatalf("want the s1 order committed, got %+v", orders)
	}
	cv, _ := cartSvc.View(sid)
	if len(cv.Items) != 2 {
		t.Fatalf("cart must not be cleared on failure, got %d items", len(cv.Items))
	}

	// Retry succeeds and re-submits the already-committed store.
	if _, err := checkout.Place(sid, "u-1", "Calle 13", "Efectivo"); err != nil {
		t.Fatal(err)
	}
	orders, _ = orderRepo.ListByUser("u-1")
	if len(orders) != 3 {
		t.Fatalf("want 3 orders after retry (s1 duplicated), got %d", len(orders))
	}
	s1 := 0
	for _, o := range orders {
		if o.StoreID == "s1" {
			s1++
		}
	}
	if s1 != 2 {
		t.Fatalf("want duplicate s1 orders after retry, got %d", s1)
	}
	cv, _ = cartSvc.View(sid)
	if len(cv.Items) != 0 {
		t.Fatal("cart should clear after the retry fully succeeds")
	}
}
