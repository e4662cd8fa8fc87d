package services_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"bazar/internal/apperr"
	"bazar/internal/domain"
	"bazar/internal/repos"
	"bazar/internal/services"
)

func newCatalog(t *testing.T) (*services.CatalogService, *repos.ProductRepo) {
	t.Helper()
	db := memdb(t)
	prodRepo := repos.NewProductRepo(db)
	return services.NewCatalogService(prodRepo, repos.NewStoreRepo(db)), prodRepo
}

func TestCatalogSearch_SubstringAndTags(t *testing.T) {
	svc, _ := newCatalog(t)

	ids := func(ps []domain.Product) []string {
		var out []string
		for _, p := range ps {
			out = append(out, p.ID)
		}
		return out
	}

	// Name match, case-insensitive.
	got, err := svc.Search("MANGO")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"p-mango"}, ids(got)); diff != "" {
		t.Fatalf("name search mismatch (-want +got):\n%s", diff)
	}

	// Tag match.
	got, err = svc.Search("palta")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"p-palta"}, ids(got)); diff != "" {
		t.Fatalf("tag search mismatch (-want +got):\n%s", diff)
	}

	// Blank query returns everything available.
	got, err = svc.Search("  ")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("want all 3 seeded products, got %d", len(got))
	}

	// No match.
	got, err = svc.Search("zapatos")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("want no matches, got %+v", got)
	}
}

func TestCatalogSearch_SkipsUnavailable(t *testing.T) {
	svc, prodRepo := newCatalog(t)

	p, err := prodRepo.Get("p-cable")
	if err != nil {
		t.Fatal(err)
	}
	p.Available = false
	if err := prodRepo.Update("p-cable", p); err != nil {
		t.Fatal(err)
	}

	got, err := svc.Search("cable")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("unavailable product should not match, got %+v", got)
	}
}

func TestCatalogRecommended_OrderedByRating(t *testing.T) {
	svc, _ := newCatalog(t)

	got, err := svc.Recommended(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("want limit applied, got %d", len(got))
	}
	if got[0].Rating < got[1].Rating {
		t.Fatalf("want rating-descending order, got %v then %v", got[0].Rating, got[1].Rating)
	}
	if got[0].ID != "p-mango" {
		t.Fatalf("want top-rated product first, got %s", got[0].ID)
	}
}

func TestCatalogAddProduct_RequiresOwnStore(t *testing.T) {
	svc, prodRepo := newCatalog(t)

	// u-ana has no store.
	_, err := svc.AddProduct("u-ana", domain.Product{Name: "Tomate", Price: 1})
	if err == nil {
		t.Fatal("want add without a store rejected")
	}
	if apperr.KindOf(err) != apperr.NotFound {
		t.Fatalf("want not-found error, got %v", err)
	}

	id, err := svc.AddProduct("u-maria", domain.Product{
		Name:      "Tomate",
		Price:     0.8,
		Stock:     30,
		Available: true,
		Tags:      []string{"verdura"},
	})
	if err != nil {
		t.Fatal(err)
	}
	p, err := prodRepo.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	want := domain.Product{
		ID:        id,
		StoreID:   "s-frutas",
		StoreName: "Frutas Maria",
		Name:      "Tomate",
		Price:     0.8,
		Stock:     30,
		Available: true,
		ImageURLs: []string{},
		Tags:      []string{"verdura"},
	}
	if diff := cmp.Diff(want, p,
		cmpopts.IgnoreFields(domain.Product{}, "CreatedAt")); diff != "" {
		t.Fatalf("added product mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalogUpdateDelete_OwnStoreOnly(t *testing.T) {
	svc, prodRepo := newCatalog(t)

	// p-cable belongs to u-carlos's store.
	err := svc.UpdateProduct("u-maria", "p-cable", domain.Product{Name: "Cable", Price: 1})
	if err == nil {
		t.Fatal("want cross-store update rejected")
	}
	if apperr.KindOf(err) != apperr.Auth {
		t.Fatalf("want auth error, got %v", err)
	}

	if err := svc.DeleteProduct("u-carlos", "p-cable"); err != nil {
		t.Fatal(err)
	}
	if _, err := prodRepo.Get("p-cable"); err == nil {
		t.Fatal("want product gone after delete")
	}
}

func TestProductFinalPrice(t *testing.T) {
	price := func(d float64) *float64 { return &d }

	cases := []struct {
		name         string
		p            domain.Product
		want         float64
		wantDiscount bool
	}{
		{"no discount", domain.Product{Price: 10}, 10, false},
		{"lower discount", domain.Product{Price: 10, DiscountPrice: price(7.5)}, 7.5, true},
		{"discount above list is ignored", domain.Product{Price: 10, DiscountPrice: price(15)}, 10, false},
		{"discount equal to list is ignored", domain.Product{Price: 10, DiscountPrice: price(10)}, 10, false},
	}
	for _, tc := range cases {
		if got := tc.p.FinalPrice(); got != tc.want {
			t.Errorf("%s: want %v, got %v", tc.name, tc.want, got)
		}
		if got := tc.p.HasDiscount(); got != tc.wantDiscount {
			t.Errorf("%s: HasDiscount want %v, got %v", tc.name, tc.wantDiscount, got)
		}
	}
}
