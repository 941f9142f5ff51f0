package catalog

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
)

// stockRow mirrors what one import run leaves in product_info.
type stockRow struct {
	Product  string
	Category int64
	Model    string
	Quantity int64
	Price    int64
	PriceRRC int64
	Article  int64
	Params   map[string]string
}

// fakeRepo applies the same replace-entire-stock semantics as the Postgres
// repository, against in-memory state keyed by seller user id.
type fakeRepo struct {
	stock      map[int64][]stockRow
	sellerName map[int64]string
	categories map[int64]string
	replaceErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		stock:      map[int64][]stockRow{},
		sellerName: map[int64]string{},
		categories: map[int64]string{},
	}
}

func (f *fakeRepo) ReplaceSellerCatalog(ctx context.Context, userID int64, sourceURL string, doc *Document) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.sellerName[userID] = doc.Seller
	for _, c := range doc.Categories {
		f.categories[c.ID] = c.Name
	}
	rows := make([]stockRow, 0, len(doc.Goods))
	for _, g := range doc.Goods {
		params := map[string]string{}
		for name, value := range g.Parameters {
			params[name] = string(value)
		}
		rows = append(rows, stockRow{
			Product:  g.Name,
			Category: g.Category,
			Model:    g.Model,
			Quantity: g.Quantity,
			Price:    g.Price,
			PriceRRC: g.PriceRRC,
			Article:  g.ID,
			Params:   params,
		})
	}
	f.stock[userID] = rows
	return nil
}

func (f *fakeRepo) ListCategories(ctx context.Context) ([]*Category, error) {
	var categories []*Category
	for id, name := range f.categories {
		categories = append(categories, &Category{ID: id, Name: name})
	}
	return categories, nil
}

func (f *fakeRepo) ListOffers(ctx context.Context, filter OfferFilter) ([]*Offer, error) {
	return nil, nil
}

type fakeFetcher struct {
	data map[string][]byte
	err  error
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.data[url]
	if !ok {
		return nil, fmt.Errorf("no document at %s", url)
	}
	return data, nil
}

func TestImportFromURL(t *testing.T) {
	repo := newFakeRepo()
	fetcher := &fakeFetcher{data: map[string][]byte{
		"https://acme.example/stock.yaml": []byte(sampleDocument),
	}}
	svc := NewService(repo, fetcher)

	if err := svc.ImportFromURL(context.Background(), 7, "https://acme.example/stock.yaml"); err != nil {
		t.Fatalf("ImportFromURL: %v", err)
	}

	if repo.sellerName[7] != "Acme" {
		t.Errorf("seller name = %q, want Acme", repo.sellerName[7])
	}
	rows := repo.stock[7]
	if len(rows) != 1 {
		t.Fatalf("stock rows = %d, want 1", len(rows))
	}
	want := stockRow{
		Product: "Hammer", Category: 1, Model: "H1",
		Quantity: 5, Price: 1000, PriceRRC: 1200, Article: 10,
		Params: map[string]string{"Weight": "1kg"},
	}
	if !reflect.DeepEqual(rows[0], want) {
		t.Errorf("stock row = %+v, want %+v", rows[0], want)
	}
}

func TestImportFromURLIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	fetcher := &fakeFetcher{data: map[string][]byte{
		"https://acme.example/stock.yaml": []byte(sampleDocument),
	}}
	svc := NewService(repo, fetcher)

	if err := svc.ImportFromURL(context.Background(), 7, "https://acme.example/stock.yaml"); err != nil {
		t.Fatalf("first import: %v", err)
	}
	first := append([]stockRow(nil), repo.stock[7]...)

	if err := svc.ImportFromURL(context.Background(), 7, "https://acme.example/stock.yaml"); err != nil {
		t.Fatalf("second import: %v", err)
	}

	if !reflect.DeepEqual(repo.stock[7], first) {
		t.Errorf("stock changed on re-import:\nfirst:  %+v\nsecond: %+v", first, repo.stock[7])
	}
}

func TestImportFromURLRejectsBadURLs(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeFetcher{})

	for _, raw := range []string{"", "not a url", "ftp://acme.example/stock.yaml", "/relative/path"} {
		err := svc.ImportFromURL(context.Background(), 7, raw)
		if !errors.Is(err, ErrInvalidURL) {
			t.Errorf("ImportFromURL(%q) = %v, want ErrInvalidURL", raw, err)
		}
	}
}

func TestImportFromURLPropagatesFetchErrors(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeFetcher{err: errors.New("connection refused")})

	err := svc.ImportFromURL(context.Background(), 7, "https://acme.example/stock.yaml")
	if err == nil {
		t.Fatal("expected fetch error")
	}
	if len(repo.stock[7]) != 0 {
		t.Errorf("stock must be untouched on fetch failure")
	}
}

func TestImportFromURLPropagatesParseErrors(t *testing.T) {
	repo := newFakeRepo()
	fetcher := &fakeFetcher{data: map[string][]byte{
		"https://acme.example/stock.yaml": []byte("seller: ''\n"),
	}}
	svc := NewService(repo, fetcher)

	if err := svc.ImportFromURL(context.Background(), 7, "https://acme.example/stock.yaml"); err == nil {
		t.Fatal("expected parse error")
	}
}
