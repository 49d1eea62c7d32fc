package order

import (
	"errors"
	"sync"
	"testing"

	orderRepo "tillpoint/database/repository/order"
	"tillpoint/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOrderRepo keeps orders in memory with the same compare-and-swap
// transition semantics as the Mongo implementation.
type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*models.Order
	next   int64
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*models.Order{}}
}

func (f *fakeOrderRepo) Create(order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *order
	f.orders[order.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) GetByID(id string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ord, ok := f.orders[id]
	if !ok {
		return nil, errors.New("order not found")
	}
	cp := *ord
	return &cp, nil
}

func (f *fakeOrderRepo) ListByStatus(status string) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Order
	for _, ord := range f.orders {
		if ord.Status == status {
			out = append(out, *ord)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(id, fromStatus, toStatus string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ord, ok := f.orders[id]
	if !ok || ord.Status != fromStatus {
		return nil, orderRepo.ErrStatusConflict
	}
	ord.Status = toStatus
	cp := *ord
	return &cp, nil
}

func (f *fakeOrderRepo) NextOrderNumber() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	return f.next, nil
}

func seedOrder(repo *fakeOrderRepo, id, status string) {
	_ = repo.Create(&models.Order{
		ID:        id,
		Number:    1,
		CashierID: "cashier-1",
		Items:     []models.OrderItem{{Name: "Flat white", Quantity: 1, UnitPrice: 3.5}},
		Status:    status,
	})
}

func TestAdvanceStatus_RejectsIllegalTransition(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(repo, "ord-1", models.OrderStatusOpen)
	svc := &DefaultOrderService{Repo: repo}

	_, err := svc.AdvanceStatus("ord-1", models.OrderStatusReady)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot move order")
}

// staleReadRepo simulates another writer landing between this caller's read
// and its write: reads always report the order as still open.
type staleReadRepo struct {
	*fakeOrderRepo
}

func (s *staleReadRepo) GetByID(id string) (*models.Order, error) {
	ord, err := s.fakeOrderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	ord.Status = models.OrderStatusOpen
	return ord, nil
}

func TestAdvanceStatus_ConflictWhenStatusChangedUnderneath(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(repo, "ord-1", models.OrderStatusPreparing)
	svc := &DefaultOrderService{Repo: &staleReadRepo{repo}}

	// The stale view passes the transition check, but the pinned write must
	// lose rather than advance (and notify) a second time.
	_, err := svc.AdvanceStatus("ord-1", models.OrderStatusPreparing)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "updated concurrently")

	ord, err := repo.GetByID("ord-1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPreparing, ord.Status)
}

func TestAdvanceStatus_ConcurrentAdvanceSingleWinner(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(repo, "ord-1", models.OrderStatusOpen)
	svc := &DefaultOrderService{Repo: repo}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.AdvanceStatus("ord-1", models.OrderStatusPreparing)
		}(i)
	}
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err != nil {
			failures++
		}
	}
	assert.Equal(t, 1, failures, "exactly one of the two racing advances must fail")

	ord, err := repo.GetByID("ord-1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPreparing, ord.Status)
}
