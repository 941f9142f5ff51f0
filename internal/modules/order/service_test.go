package order

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"
)

// fakeRepo keeps orders, items, listings and contacts in memory with the
// same scoping rules as the SQL repository.
type fakeRepo struct {
	nextID     int64
	orders     map[int64]*Order
	items      map[int64]*Item
	prices     map[int64]int64 // product_info id -> price
	contacts   map[int64]int64 // contact id -> owning user id
	userEmails map[int64]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		orders:     map[int64]*Order{},
		items:      map[int64]*Item{},
		prices:     map[int64]int64{},
		contacts:   map[int64]int64{},
		userEmails: map[int64]string{},
	}
}

func (f *fakeRepo) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeRepo) GetOrCreateBasket(ctx context.Context, userID int64) (*Order, error) {
	for _, o := range f.orders {
		if o.UserID == userID && o.State == StateBasket {
			return o, nil
		}
	}
	o := &Order{ID: f.id(), UserID: userID, State: StateBasket, CreatedAt: time.Now()}
	f.orders[o.ID] = o
	return o, nil
}

func (f *fakeRepo) AddItems(ctx context.Context, orderID int64, items []AddItemRequest) (int, error) {
	created := 0
	for _, req := range items {
		if _, ok := f.prices[req.ProductInfo]; !ok {
			return 0, ErrProductNotFound
		}
		for _, existing := range f.items {
			if existing.OrderID == orderID && existing.ProductInfoID == req.ProductInfo {
				return 0, ErrDuplicateItem
			}
		}
		item := &Item{ID: f.id(), OrderID: orderID, ProductInfoID: req.ProductInfo, Quantity: req.Quantity}
		f.items[item.ID] = item
		created++
	}
	return created, nil
}

func (f *fakeRepo) UpdateItemQuantities(ctx context.Context, orderID int64, items []UpdateItemRequest) (int64, error) {
	var updated int64
	for _, req := range items {
		item, ok := f.items[req.ID]
		if !ok || item.OrderID != orderID {
			continue
		}
		item.Quantity = req.Quantity
		updated++
	}
	return updated, nil
}

func (f *fakeRepo) DeleteItems(ctx context.Context, orderID int64, ids []int64) (int64, error) {
	var deleted int64
	for _, id := range ids {
		item, ok := f.items[id]
		if !ok || item.OrderID != orderID {
			continue
		}
		delete(f.items, id)
		deleted++
	}
	return deleted, nil
}

func (f *fakeRepo) ListByUser(ctx context.Context, userID int64, basket bool) ([]*Order, error) {
	var orders []*Order
	for _, o := range f.orders {
		if o.UserID != userID {
			continue
		}
		if basket != (o.State == StateBasket) {
			continue
		}
		orders = append(orders, f.withItemsAndTotal(o))
	}
	return orders, nil
}

func (f *fakeRepo) ListBySeller(ctx context.Context, sellerUserID int64) ([]*Order, error) {
	return nil, nil
}

func (f *fakeRepo) Place(ctx context.Context, userID, orderID, contactID int64) (int64, error) {
	if owner, ok := f.contacts[contactID]; !ok || owner != userID {
		return 0, nil
	}
	o, ok := f.orders[orderID]
	if !ok || o.UserID != userID {
		return 0, nil
	}
	o.ContactID = &contactID
	o.State = StateNew
	return 1, nil
}

func (f *fakeRepo) GetUserEmail(ctx context.Context, userID int64) (string, error) {
	return f.userEmails[userID], nil
}

func (f *fakeRepo) withItemsAndTotal(o *Order) *Order {
	out := *o
	out.Items = nil
	out.TotalSum = 0
	for _, item := range f.items {
		if item.OrderID != o.ID {
			continue
		}
		out.Items = append(out.Items, item)
		out.TotalSum += item.Quantity * f.prices[item.ProductInfoID]
	}
	return &out
}

type fakeNotifier struct{ orderEmails []string }

func (f *fakeNotifier) ConfirmationEmail(to, token string) error { return nil }
func (f *fakeNotifier) OrderPlaced(to string) error {
	f.orderEmails = append(f.orderEmails, to)
	return nil
}

func newTestService() (*fakeRepo, *fakeNotifier, Service) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	return repo, notifier, NewService(repo, notifier)
}

func TestAddToBasketKeepsSingleBasket(t *testing.T) {
	repo, _, svc := newTestService()
	repo.prices[101] = 100
	repo.prices[102] = 50

	ctx := context.Background()
	if _, err := svc.AddToBasket(ctx, 1, []AddItemRequest{{ProductInfo: 101, Quantity: 1}}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if _, err := svc.AddToBasket(ctx, 1, []AddItemRequest{{ProductInfo: 102, Quantity: 1}}); err != nil {
		t.Fatalf("second add: %v", err)
	}

	baskets := 0
	for _, o := range repo.orders {
		if o.UserID == 1 && o.State == StateBasket {
			baskets++
		}
	}
	if baskets != 1 {
		t.Errorf("baskets = %d, want 1", baskets)
	}
}

func TestBasketTotalSum(t *testing.T) {
	repo, _, svc := newTestService()
	repo.prices[101] = 100
	repo.prices[102] = 50

	ctx := context.Background()
	created, err := svc.AddToBasket(ctx, 1, []AddItemRequest{
		{ProductInfo: 101, Quantity: 2},
		{ProductInfo: 102, Quantity: 3},
	})
	if err != nil {
		t.Fatalf("AddToBasket: %v", err)
	}
	if created != 2 {
		t.Errorf("created = %d, want 2", created)
	}

	baskets, err := svc.ListBasket(ctx, 1)
	if err != nil {
		t.Fatalf("ListBasket: %v", err)
	}
	if len(baskets) != 1 {
		t.Fatalf("baskets = %d, want 1", len(baskets))
	}
	if baskets[0].TotalSum != 350 {
		t.Errorf("total_sum = %d, want 350", baskets[0].TotalSum)
	}
}

func TestAddToBasketRejectsDuplicates(t *testing.T) {
	repo, _, svc := newTestService()
	repo.prices[101] = 100

	ctx := context.Background()
	if _, err := svc.AddToBasket(ctx, 1, []AddItemRequest{{ProductInfo: 101, Quantity: 1}}); err != nil {
		t.Fatalf("AddToBasket: %v", err)
	}
	_, err := svc.AddToBasket(ctx, 1, []AddItemRequest{{ProductInfo: 101, Quantity: 2}})
	if !errors.Is(err, ErrDuplicateItem) {
		t.Errorf("err = %v, want ErrDuplicateItem", err)
	}
}

func TestAddToBasketValidatesInput(t *testing.T) {
	_, _, svc := newTestService()
	ctx := context.Background()

	if _, err := svc.AddToBasket(ctx, 1, nil); !errors.Is(err, ErrMissingArguments) {
		t.Errorf("empty list: err = %v, want ErrMissingArguments", err)
	}
	_, err := svc.AddToBasket(ctx, 1, []AddItemRequest{{ProductInfo: 101, Quantity: 0}})
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("zero quantity: err = %v, want ErrInvalidFormat", err)
	}
}

func TestUpdateBasketIgnoresUnknownIDs(t *testing.T) {
	repo, _, svc := newTestService()
	repo.prices[101] = 100

	ctx := context.Background()
	if _, err := svc.AddToBasket(ctx, 1, []AddItemRequest{{ProductInfo: 101, Quantity: 1}}); err != nil {
		t.Fatalf("AddToBasket: %v", err)
	}

	updated, err := svc.UpdateBasket(ctx, 1, []UpdateItemRequest{{ID: 9999, Quantity: 4}})
	if err != nil {
		t.Fatalf("UpdateBasket: %v", err)
	}
	if updated != 0 {
		t.Errorf("updated = %d, want 0", updated)
	}
}

func TestDeleteFromBasketIgnoresNonNumericIDs(t *testing.T) {
	repo, _, svc := newTestService()
	repo.prices[101] = 100
	repo.prices[102] = 50

	ctx := context.Background()
	if _, err := svc.AddToBasket(ctx, 1, []AddItemRequest{
		{ProductInfo: 101, Quantity: 1},
		{ProductInfo: 102, Quantity: 1},
	}); err != nil {
		t.Fatalf("AddToBasket: %v", err)
	}

	var itemID int64
	for id := range repo.items {
		itemID = id
		break
	}

	deleted, err := svc.DeleteFromBasket(ctx, 1, "abc, ,"+int64String(itemID))
	if err != nil {
		t.Fatalf("DeleteFromBasket: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	if _, err := svc.DeleteFromBasket(ctx, 1, "abc,,"); !errors.Is(err, ErrMissingArguments) {
		t.Errorf("all junk: err = %v, want ErrMissingArguments", err)
	}
}

func TestDeleteFromBasketCannotTouchOtherUsers(t *testing.T) {
	repo, _, svc := newTestService()
	repo.prices[101] = 100

	ctx := context.Background()
	if _, err := svc.AddToBasket(ctx, 1, []AddItemRequest{{ProductInfo: 101, Quantity: 1}}); err != nil {
		t.Fatalf("AddToBasket: %v", err)
	}

	var victimItem int64
	for id := range repo.items {
		victimItem = id
	}

	// User 2 tries to delete user 1's basket item by id.
	deleted, err := svc.DeleteFromBasket(ctx, 2, int64String(victimItem))
	if err != nil {
		t.Fatalf("DeleteFromBasket: %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0", deleted)
	}
	if _, ok := repo.items[victimItem]; !ok {
		t.Error("user 1's item was deleted by user 2")
	}
}

func TestPlaceOrder(t *testing.T) {
	repo, notifier, svc := newTestService()
	repo.prices[101] = 100
	repo.contacts[5] = 1
	repo.userEmails[1] = "buyer@example.com"

	ctx := context.Background()
	if _, err := svc.AddToBasket(ctx, 1, []AddItemRequest{{ProductInfo: 101, Quantity: 1}}); err != nil {
		t.Fatalf("AddToBasket: %v", err)
	}
	basket, _ := repo.GetOrCreateBasket(ctx, 1)

	if err := svc.Place(ctx, 1, basket.ID, 5); err != nil {
		t.Fatalf("Place: %v", err)
	}
	if repo.orders[basket.ID].State != StateNew {
		t.Errorf("state = %q, want new", repo.orders[basket.ID].State)
	}
	if len(notifier.orderEmails) != 1 || notifier.orderEmails[0] != "buyer@example.com" {
		t.Errorf("notifications = %v", notifier.orderEmails)
	}
}

func TestPlaceOrderRejectsForeignContact(t *testing.T) {
	repo, notifier, svc := newTestService()
	repo.prices[101] = 100
	repo.contacts[5] = 2 // contact belongs to another user

	ctx := context.Background()
	if _, err := svc.AddToBasket(ctx, 1, []AddItemRequest{{ProductInfo: 101, Quantity: 1}}); err != nil {
		t.Fatalf("AddToBasket: %v", err)
	}
	basket, _ := repo.GetOrCreateBasket(ctx, 1)

	err := svc.Place(ctx, 1, basket.ID, 5)
	if !errors.Is(err, ErrInvalidArguments) {
		t.Fatalf("err = %v, want ErrInvalidArguments", err)
	}
	if repo.orders[basket.ID].State != StateBasket {
		t.Errorf("state = %q, want basket (unchanged)", repo.orders[basket.ID].State)
	}
	if len(notifier.orderEmails) != 0 {
		t.Errorf("no notification expected, got %v", notifier.orderEmails)
	}
}

func int64String(v int64) string {
	return strconv.FormatInt(v, 10)
}
