//go:build integration

package mongodb

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

type RepositoriesIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *mongodb.MongoDBContainer
	client    *Client
	store     *repository.Store
}

func (s *RepositoriesIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := mongodb.Run(s.ctx, "mongo:6")
	s.Require().NoError(err)
	s.container = container

	uri, err := container.ConnectionString(s.ctx)
	s.Require().NoError(err)

	s.client, err = NewClient(s.ctx, Config{URI: uri, Database: "almacen_test", ConnectTimeout: 10 * time.Second})
	s.Require().NoError(err)
	s.Require().NoError(s.client.EnsureIndexes(s.ctx))
	s.store = s.client.Repositories()
}

func (s *RepositoriesIntegrationSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Close(s.ctx)
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *RepositoriesIntegrationSuite) SetupTest() {
	s.Require().NoError(s.client.Database().Drop(s.ctx))
	s.Require().NoError(s.client.EnsureIndexes(s.ctx))
}

func (s *RepositoriesIntegrationSuite) TestMovement_CicloCompleto() {
	arrival := time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC)
	m := &entity.Movement{
		Kind: entity.MovementDescarga, DateKey: "2024-05-01", RecordedBy: "u-1",
		ContainerNumber: "MSCU1234567", Origin: "Manzanillo", ArrivalAt: arrival,
		CreatedAt: arrival, UpdatedAt: arrival,
	}
	s.Require().NoError(s.store.Movements.Create(s.ctx, m))
	s.NotEmpty(m.ID)

	got, err := s.store.Movements.GetByID(s.ctx, m.ID)
	s.Require().NoError(err)
	s.Equal(entity.MovementOpen, got.State())

	pallets, boxes := 20, 0
	closed, err := s.store.Movements.Complete(s.ctx, m.ID, entity.MovementCompletion{
		DepartureAt: arrival.Add(2 * time.Hour), PalletsInside: &pallets, BoxesInside: &boxes,
		UpdatedAt: arrival.Add(2 * time.Hour),
	})
	s.Require().NoError(err)
	s.Equal(entity.MovementClosed, closed.State())
	s.Equal(20, *closed.PalletsInside)
	s.Equal("MSCU1234567", closed.ContainerNumber)

	_, err = s.store.Movements.Complete(s.ctx, "no-existe", entity.MovementCompletion{DepartureAt: arrival})
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *RepositoriesIntegrationSuite) TestMovement_ListPorRango() {
	for _, day := range []string{"2024-04-30", "2024-05-01", "2024-05-02"} {
		s.Require().NoError(s.store.Movements.Create(s.ctx, &entity.Movement{
			Kind: entity.MovementCarga, DateKey: day, ArrivalAt: time.Now().UTC(), CreatedAt: time.Now().UTC(),
		}))
	}
	list, err := s.store.Movements.List(s.ctx, entity.MovementFilter{
		DateRange: entity.DateRange{From: "2024-05-01", To: "2024-05-02"},
	})
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("2024-05-02", list[0].DateKey)
	s.Equal("2024-05-01", list[1].DateKey)
}

func (s *RepositoriesIntegrationSuite) TestWarehouseScan_UnicoPorCodigoYDia() {
	newScan := func(day string) *entity.WarehouseScan {
		return &entity.WarehouseScan{
			Code: "QR-1", Shift: entity.ShiftMatutino, Responsible: "Ana", DateKey: day,
			ScannedAt: time.Now().UTC(),
			Pallet:    entity.Fields{{Key: "codigo", Value: "QR-1"}, {Key: "cajas", Value: int64(48)}},
		}
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok, dupes int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.store.WarehouseScans.Create(s.ctx, newScan("2024-05-01"))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if s.ErrorIs(err, domain.ErrConflict) {
				dupes++
			}
		}()
	}
	wg.Wait()
	s.Equal(1, ok)
	s.Equal(7, dupes)

	s.Require().NoError(s.store.WarehouseScans.Create(s.ctx, newScan("2024-05-02")))

	exists, err := s.store.WarehouseScans.Exists(s.ctx, "QR-1", "2024-05-01")
	s.Require().NoError(err)
	s.True(exists)

	list, err := s.store.WarehouseScans.List(s.ctx, entity.WarehouseScanFilter{DateRange: entity.SingleDay("2024-05-01")})
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(entity.Fields{{Key: "codigo", Value: "QR-1"}, {Key: "cajas", Value: int64(48)}}, list[0].Pallet)
}

func (s *RepositoriesIntegrationSuite) TestPallet_BuscarYBorrarPorDia() {
	for _, day := range []string{"2024-05-01", "2024-05-01", "2024-05-02"} {
		s.Require().NoError(s.store.Pallets.Create(s.ctx, &entity.Pallet{
			Code: "QR-9", AssignedWorker: "Ana", PalletType: "chica", DateKey: day, CreatedAt: time.Now().UTC(),
		}))
	}
	found, err := s.store.Pallets.FindByCodeAndDay(s.ctx, "QR-9", "2024-05-01")
	s.Require().NoError(err)
	s.Require().NotNil(found)

	missing, err := s.store.Pallets.FindByCodeAndDay(s.ctx, "QR-9", "2024-05-03")
	s.Require().NoError(err)
	s.Nil(missing)

	n, err := s.store.Pallets.DeleteByDay(s.ctx, "2024-05-01")
	s.Require().NoError(err)
	s.EqualValues(2, n)
}

func (s *RepositoriesIntegrationSuite) TestUser_EmailDuplicado() {
	u := &entity.User{Email: "ana@almacen.mx", Name: "Ana", Role: entity.RoleAdmin, Active: true}
	s.Require().NoError(s.store.Users.Create(s.ctx, u))
	err := s.store.Users.Create(s.ctx, &entity.User{Email: "ana@almacen.mx", Role: entity.RoleAlmacen})
	s.ErrorIs(err, domain.ErrConflict)

	n, err := s.store.Users.Count(s.ctx)
	s.Require().NoError(err)
	s.EqualValues(1, n)

	s.ErrorIs(s.store.Users.Delete(s.ctx, "no-existe"), domain.ErrNotFound)
}

func TestRepositoriesIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("omitido en modo -short")
	}
	suite.Run(t, new(RepositoriesIntegrationSuite))
}
