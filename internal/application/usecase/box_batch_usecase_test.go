package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var almacenista = entity.Actor{ID: "u-2", Name: "Beto", Role: entity.RoleAlmacen}

func TestBoxBatch_CrearActualizarYListar(t *testing.T) {
	repos := memory.New().Repositories()
	uc := usecase.NewBoxBatchUseCase(repos.BoxBatches, time.UTC).WithClock(clock)
	ctx := context.Background()

	a, err := uc.Create(ctx, almacenista, dto.CreateBoxBatchRequest{BoxType: "chica", Quantity: 120})
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", a.DateKey)

	_, err = uc.Create(ctx, almacenista, dto.CreateBoxBatchRequest{BoxType: "grande", Quantity: 30, Date: "2024-04-29"})
	require.NoError(t, err)

	qty := 150
	updated, err := uc.Update(ctx, a.ID, dto.UpdateBoxBatchRequest{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 150, updated.Quantity)
	assert.Equal(t, "chica", updated.BoxType)

	list, err := uc.List(ctx, dto.DateQuery{From: "2024-04-29", To: "2024-05-01"}, "")
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 180, list.TotalBoxes)
	assert.Equal(t, "2024-05-01", list.Items[0].DateKey)

	onlyBig, err := uc.List(ctx, dto.DateQuery{From: "2024-04-29", To: "2024-05-01"}, "grande")
	require.NoError(t, err)
	assert.Len(t, onlyBig.Items, 1)
}

func TestBoxBatch_Validacion(t *testing.T) {
	repos := memory.New().Repositories()
	uc := usecase.NewBoxBatchUseCase(repos.BoxBatches, time.UTC).WithClock(clock)

	_, err := uc.Create(context.Background(), almacenista, dto.CreateBoxBatchRequest{Quantity: 0})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"box_type", "quantity"}, verr.Fields)

	_, err = uc.Create(context.Background(), almacenista, dto.CreateBoxBatchRequest{BoxType: "chica", Quantity: 1, Date: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	neg := -1
	_, err = uc.Update(context.Background(), "x", dto.UpdateBoxBatchRequest{Quantity: &neg})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	one := 1
	_, err = uc.Update(context.Background(), "x", dto.UpdateBoxBatchRequest{Quantity: &one})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWorker_AltaYBaja(t *testing.T) {
	repos := memory.New().Repositories()
	uc := usecase.NewWorkerUseCase(repos.Workers)
	ctx := context.Background()

	w, err := uc.Create(ctx, dto.CreateWorkerRequest{Name: " Rosa ", Area: "empaque"})
	require.NoError(t, err)
	assert.Equal(t, "Rosa", w.Name)

	_, err = uc.Create(ctx, dto.CreateWorkerRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	require.NoError(t, uc.Delete(ctx, w.ID))
	assert.ErrorIs(t, uc.Delete(ctx, w.ID), domain.ErrNotFound)
}

func TestUser_CrearDuplicadoYBorrarse(t *testing.T) {
	repos := memory.New().Repositories()
	uc := usecase.NewUserUseCase(repos.Users)
	ctx := context.Background()

	in := dto.CreateUserRequest{Email: "Ana@Example.com", Password: "secreto123", Name: "Ana", Role: "almacen"}
	u, err := uc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.True(t, u.Active)

	_, err = uc.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Email: "b@example.com", Password: "secreto123", Name: "B", Role: "gerente"})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"role"}, verr.Fields)

	admin := entity.Actor{ID: u.ID, Role: entity.RoleAdmin}
	assert.ErrorIs(t, uc.Delete(ctx, admin, u.ID), domain.ErrInvalidInput)
}
