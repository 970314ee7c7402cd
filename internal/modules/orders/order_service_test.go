package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"roadside-dispatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dispatchCall struct {
	orderID      int
	dispatcherID int
	truckID      int
}

type lineageCall struct {
	orderID   int
	truckID   int
	orderTime time.Time
}

type fakeOrderRepo struct {
	orders map[int]*models.Order

	createErr         error
	lineageErr        error
	updateDispatchErr error
	statusErr         error

	created       []models.Order
	lineageCalls  []lineageCall
	dispatchCalls []dispatchCall
	statusUpdates map[int]string
	completedRows []models.CompletedOrder
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:        map[int]*models.Order{},
		statusUpdates: map[int]string{},
	}
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, orderID int) (*models.Order, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return order, nil
}

func (f *fakeOrderRepo) Create(ctx context.Context, clientID, nodeID int, carValue float64) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, models.Order{
		ClientID: clientID,
		NodeID:   nodeID,
		CarValue: carValue,
		Status:   models.OrderPending,
	})
	return nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, orderID int, status string) error {
	if f.statusErr != nil {
		return f.statusErr
	}
	f.statusUpdates[orderID] = status
	return nil
}

func (f *fakeOrderRepo) UpdateDispatched(ctx context.Context, orderID, dispatcherID, truckID int) error {
	if f.updateDispatchErr != nil {
		return f.updateDispatchErr
	}
	f.dispatchCalls = append(f.dispatchCalls, dispatchCall{orderID, dispatcherID, truckID})
	return nil
}

func (f *fakeOrderRepo) List(ctx context.Context, page, pageSize int, sortBy, sortOrder string, status *string, areaID *int) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrderRepo) CreateCompletedOrder(ctx context.Context, orderID, truckID int, orderTime time.Time) error {
	if f.lineageErr != nil {
		return f.lineageErr
	}
	f.lineageCalls = append(f.lineageCalls, lineageCall{orderID, truckID, orderTime})
	return nil
}

func (f *fakeOrderRepo) ListCompletedOrders(ctx context.Context) ([]models.CompletedOrder, error) {
	return f.completedRows, nil
}

type fakeIdentityReader struct {
	users       map[int]*models.User
	dispatchers map[int]*models.Dispatcher
}

func (f *fakeIdentityReader) FindUserByID(ctx context.Context, userID int) (*models.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return user, nil
}

func (f *fakeIdentityReader) FindDispatcherByID(ctx context.Context, dispatcherID int) (*models.Dispatcher, error) {
	dispatcher, ok := f.dispatchers[dispatcherID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return dispatcher, nil
}

type fakeTruckWriter struct {
	trucks   map[int]*models.TowTruck
	claimErr error
	claimed  []int
}

func (f *fakeTruckWriter) FindByID(ctx context.Context, truckID int) (*models.TowTruck, error) {
	truck, ok := f.trucks[truckID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return truck, nil
}

func (f *fakeTruckWriter) ClaimForDispatch(ctx context.Context, truckID int) error {
	if f.claimErr != nil {
		return f.claimErr
	}
	f.claimed = append(f.claimed, truckID)
	return nil
}

type fakeAreaResolver struct {
	areaByNode map[int]int
}

func (f *fakeAreaResolver) AreaIDForNode(ctx context.Context, nodeID int) (int, error) {
	areaID, ok := f.areaByNode[nodeID]
	if !ok {
		return 0, models.ErrNotFound
	}
	return areaID, nil
}

func newTestService(repo *fakeOrderRepo, trucks *fakeTruckWriter) (*Service, *fakeIdentityReader) {
	users := &fakeIdentityReader{
		users:       map[int]*models.User{},
		dispatchers: map[int]*models.Dispatcher{},
	}
	areas := &fakeAreaResolver{areaByNode: map[int]int{}}
	return NewService(repo, users, trucks, areas, nil, ""), users
}

func TestCreateClientOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("new orders start pending", func(t *testing.T) {
		repo := newFakeOrderRepo()
		svc, _ := newTestService(repo, &fakeTruckWriter{})

		err := svc.CreateClientOrder(ctx, 9, 100, 25000)
		require.NoError(t, err)
		require.Len(t, repo.created, 1)
		assert.Equal(t, models.OrderPending, repo.created[0].Status)
		assert.Equal(t, 9, repo.created[0].ClientID)
	})

	t.Run("storage failure reports bad request", func(t *testing.T) {
		repo := newFakeOrderRepo()
		repo.createErr = errors.New("violates foreign key constraint")
		svc, _ := newTestService(repo, &fakeTruckWriter{})

		err := svc.CreateClientOrder(ctx, 9, 100, 25000)
		assert.ErrorIs(t, err, models.ErrBadRequest)
	})

	t.Run("negative car values are accepted", func(t *testing.T) {
		repo := newFakeOrderRepo()
		svc, _ := newTestService(repo, &fakeTruckWriter{})

		err := svc.CreateClientOrder(ctx, 9, 100, -500)
		require.NoError(t, err)
		require.Len(t, repo.created, 1)
		assert.Equal(t, -500.0, repo.created[0].CarValue)
	})
}

func TestDispatch(t *testing.T) {
	ctx := context.Background()
	orderTime := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)

	t.Run("happy path runs all three steps", func(t *testing.T) {
		repo := newFakeOrderRepo()
		trucks := &fakeTruckWriter{}
		svc, _ := newTestService(repo, trucks)

		err := svc.Dispatch(ctx, 55, 3, 10, orderTime)
		require.NoError(t, err)

		require.Len(t, repo.lineageCalls, 1)
		assert.Equal(t, lineageCall{orderID: 55, truckID: 10, orderTime: orderTime}, repo.lineageCalls[0])
		require.Len(t, repo.dispatchCalls, 1)
		assert.Equal(t, dispatchCall{orderID: 55, dispatcherID: 3, truckID: 10}, repo.dispatchCalls[0])
		assert.Equal(t, []int{10}, trucks.claimed)
	})

	t.Run("lineage failure aborts before any other write", func(t *testing.T) {
		repo := newFakeOrderRepo()
		repo.lineageErr = errors.New("violates foreign key constraint")
		trucks := &fakeTruckWriter{}
		svc, _ := newTestService(repo, trucks)

		err := svc.Dispatch(ctx, 55, 3, 10, orderTime)
		assert.ErrorIs(t, err, models.ErrBadRequest)
		assert.Empty(t, repo.dispatchCalls)
		assert.Empty(t, trucks.claimed)
	})

	t.Run("order update failure is partial and leaves the truck unclaimed", func(t *testing.T) {
		repo := newFakeOrderRepo()
		repo.updateDispatchErr = errors.New("connection reset")
		trucks := &fakeTruckWriter{}
		svc, _ := newTestService(repo, trucks)

		err := svc.Dispatch(ctx, 55, 3, 10, orderTime)

		var partial *models.PartialFailureError
		require.ErrorAs(t, err, &partial)
		assert.Equal(t, "order_update", partial.Step)
		assert.Len(t, repo.lineageCalls, 1)
		assert.Empty(t, trucks.claimed)
	})

	t.Run("truck claim conflict is partial with the first two steps committed", func(t *testing.T) {
		repo := newFakeOrderRepo()
		trucks := &fakeTruckWriter{claimErr: models.ErrConflict}
		svc, _ := newTestService(repo, trucks)

		err := svc.Dispatch(ctx, 55, 3, 10, orderTime)

		var partial *models.PartialFailureError
		require.ErrorAs(t, err, &partial)
		assert.Equal(t, "truck_claim", partial.Step)
		assert.ErrorIs(t, err, models.ErrConflict)
		assert.Len(t, repo.lineageCalls, 1)
		assert.Len(t, repo.dispatchCalls, 1)
	})

	t.Run("status precondition is not enforced here", func(t *testing.T) {
		repo := newFakeOrderRepo()
		repo.orders[55] = &models.Order{ID: 55, Status: models.OrderDispatched, NodeID: 100}
		trucks := &fakeTruckWriter{}
		svc, _ := newTestService(repo, trucks)

		err := svc.Dispatch(ctx, 55, 3, 10, orderTime)
		require.NoError(t, err)
		assert.Len(t, repo.lineageCalls, 1)
		assert.Len(t, repo.dispatchCalls, 1)
		assert.Equal(t, []int{10}, trucks.claimed)
	})
}

func TestGetEnrichedOrder(t *testing.T) {
	ctx := context.Background()

	dispatcherID := 3
	truckID := 10

	setup := func() (*Service, *fakeOrderRepo, *fakeIdentityReader, *fakeTruckWriter, *fakeAreaResolver) {
		repo := newFakeOrderRepo()
		trucks := &fakeTruckWriter{trucks: map[int]*models.TowTruck{}}
		users := &fakeIdentityReader{
			users:       map[int]*models.User{},
			dispatchers: map[int]*models.Dispatcher{},
		}
		areas := &fakeAreaResolver{areaByNode: map[int]int{100: 1}}
		svc := NewService(repo, users, trucks, areas, nil, "")
		return svc, repo, users, trucks, areas
	}

	t.Run("joins client, dispatcher, driver and area", func(t *testing.T) {
		svc, repo, users, trucks, _ := setup()
		repo.orders[55] = &models.Order{
			ID: 55, ClientID: 9, DispatcherID: &dispatcherID, TowTruckID: &truckID,
			Status: models.OrderDispatched, NodeID: 100, CarValue: 25000,
		}
		users.users[9] = &models.User{ID: 9, Username: "stranded_carol", Role: models.RoleClient}
		users.users[4] = &models.User{ID: 4, Username: "dispatch_dan", Role: models.RoleDispatcher}
		users.users[7] = &models.User{ID: 7, Username: "driver_dave", Role: models.RoleDriver}
		users.dispatchers[3] = &models.Dispatcher{ID: 3, UserID: 4, AreaID: 1}
		trucks.trucks[10] = &models.TowTruck{ID: 10, DriverID: 7, Status: models.TruckBusy, AreaID: 1}

		enriched, err := svc.GetEnrichedOrder(ctx, 55)
		require.NoError(t, err)

		assert.Equal(t, "stranded_carol", enriched.ClientUsername)
		require.NotNil(t, enriched.DispatcherUsername)
		assert.Equal(t, "dispatch_dan", *enriched.DispatcherUsername)
		require.NotNil(t, enriched.DriverUsername)
		assert.Equal(t, "driver_dave", *enriched.DriverUsername)
		assert.Equal(t, 1, enriched.AreaID)
	})

	t.Run("pending order leaves dispatcher and driver unset", func(t *testing.T) {
		svc, repo, users, _, _ := setup()
		repo.orders[56] = &models.Order{
			ID: 56, ClientID: 9, Status: models.OrderPending, NodeID: 100,
		}
		users.users[9] = &models.User{ID: 9, Username: "stranded_carol", Role: models.RoleClient}

		enriched, err := svc.GetEnrichedOrder(ctx, 56)
		require.NoError(t, err)

		assert.Nil(t, enriched.DispatcherUsername)
		assert.Nil(t, enriched.DriverUsername)
	})

	t.Run("missing client is a data integrity failure", func(t *testing.T) {
		svc, repo, _, _, _ := setup()
		repo.orders[57] = &models.Order{ID: 57, ClientID: 999, Status: models.OrderPending, NodeID: 100}

		enriched, err := svc.GetEnrichedOrder(ctx, 57)
		assert.Nil(t, enriched)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("unknown order reports not found", func(t *testing.T) {
		svc, _, _, _, _ := setup()

		enriched, err := svc.GetEnrichedOrder(ctx, 999)
		assert.Nil(t, enriched)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestPartialFailureError(t *testing.T) {
	cause := errors.New("connection reset")
	err := &models.PartialFailureError{Step: "order_update", Err: cause}

	assert.Contains(t, err.Error(), "order_update")
	assert.ErrorIs(t, err, cause)
}
