package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestWineUsecase_ListWines_InvalidSort(t *testing.T) {
	uc := usecase.NewWineUsecase(new(WineRepoMock), new(InventoryRepoMock), new(AuditRepoMock))

	_, err := uc.ListWines(context.Background(), usecase.ListWinesInput{Page: 1, Limit: 20, Sort: "name_desc"})
	assertErrContains(t, err, "invalid sort")
}

func TestWineUsecase_ListWines_PriceRangeInverted(t *testing.T) {
	uc := usecase.NewWineUsecase(new(WineRepoMock), new(InventoryRepoMock), new(AuditRepoMock))

	min := 500.0
	max := 100.0
	_, err := uc.ListWines(context.Background(), usecase.ListWinesInput{Page: 1, Limit: 20, MinPrice: &min, MaxPrice: &max})
	assertErrContains(t, err, "min_price must be <= max_price")
}

func TestWineUsecase_ListWines_Success(t *testing.T) {
	wines := new(WineRepoMock)
	uc := usecase.NewWineUsecase(wines, new(InventoryRepoMock), new(AuditRepoMock))

	wines.On("List", mock.Anything, mock.Anything).Return([]model.Wine{
		{ID: 1, Name: "Malbec"},
	}, int64(1), nil)

	out, err := uc.ListWines(context.Background(), usecase.ListWinesInput{Page: 1, Limit: 20})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out.Items))
	assert.Equal(t, int64(1), out.Total)
}

func TestWineUsecase_GetWineDetail_NotFound(t *testing.T) {
	wines := new(WineRepoMock)
	uc := usecase.NewWineUsecase(wines, new(InventoryRepoMock), new(AuditRepoMock))

	wines.On("FindByID", mock.Anything, int64(9)).Return(model.Wine{}, repo.ErrNotFound)

	_, err := uc.GetWineDetail(context.Background(), 9)
	assertErrContains(t, err, "not found")
}

func TestWineUsecase_AdminCreateWine_Validation(t *testing.T) {
	uc := usecase.NewWineUsecase(new(WineRepoMock), new(InventoryRepoMock), new(AuditRepoMock))

	_, err := uc.AdminCreateWine(context.Background(), 1, usecase.AdminWineInput{Winery: "x", Price: 1})
	assertErrContains(t, err, "name required")

	_, err = uc.AdminCreateWine(context.Background(), 1, usecase.AdminWineInput{Name: "x", Winery: "y", Price: -1})
	assertErrContains(t, err, "price must be >= 0")
}

func TestWineUsecase_AdminUpdateStock_ReasonRequired(t *testing.T) {
	uc := usecase.NewWineUsecase(new(WineRepoMock), new(InventoryRepoMock), new(AuditRepoMock))

	err := uc.AdminUpdateStock(context.Background(), 1, 1, 10, "  ")
	assertErrContains(t, err, "reason required")
}

func TestWineUsecase_AdminUpdateStock_WritesAdjustmentAndAudit(t *testing.T) {
	wines := new(WineRepoMock)
	inv := new(InventoryRepoMock)
	audit := new(AuditRepoMock)
	uc := usecase.NewWineUsecase(wines, inv, audit)

	wines.On("FindByID", mock.Anything, int64(1)).Return(model.Wine{ID: 1, Stock: 4}, nil)
	inv.On("SetStock", mock.Anything, int64(1), int64(10)).Return(nil)

	var gotAdj model.InventoryAdjustment
	inv.On("CreateAdjustment", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		gotAdj = args.Get(1).(model.InventoryAdjustment)
	}).Return(nil)

	var gotLog model.AuditLog
	audit.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		gotLog = args.Get(1).(model.AuditLog)
	}).Return(nil)

	err := uc.AdminUpdateStock(context.Background(), 7, 1, 10, "recount")
	assert.NoError(t, err)

	assert.Equal(t, int64(6), gotAdj.Delta)
	assert.Equal(t, "recount", gotAdj.Reason)
	assert.Equal(t, model.AuditActionUpdateStock, gotLog.Action)
	assert.Contains(t, gotLog.BeforeJSON, "4")
	assert.Contains(t, gotLog.AfterJSON, "10")
}
