package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/internal/repositories"
	"asset-system/pkg/constants"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/types"
)

// fakeStore — состояние "БД" в памяти, общее для фейковых репозиториев.
type fakeStore struct {
	requests map[uint64]entities.AssetRequest
	assets   map[uint64]entities.Asset
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		requests: make(map[uint64]entities.AssetRequest),
		assets:   make(map[uint64]entities.Asset),
	}
}

func (s *fakeStore) snapshot() *fakeStore {
	cp := newFakeStore()
	for k, v := range s.requests {
		cp.requests[k] = v
	}
	for k, v := range s.assets {
		cp.assets[k] = v
	}
	return cp
}

func (s *fakeStore) restore(from *fakeStore) {
	s.requests = from.requests
	s.assets = from.assets
}

// fakeTxManager эмулирует транзакционность: при ошибке fn состояние
// хранилища откатывается к снимку, сделанному перед вызовом.
type fakeTxManager struct {
	store *fakeStore
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(q repositories.Querier) error) error {
	snap := m.store.snapshot()
	if err := fn(nil); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

type fakeRequestRepo struct {
	store *fakeStore
}

func (r *fakeRequestRepo) GetRequests(ctx context.Context, companyID uint64, filter types.Filter) ([]dto.AssetRequestDTO, uint64, error) {
	return nil, 0, nil
}

func (r *fakeRequestRepo) FindRequest(ctx context.Context, companyID uint64, id uint64) (*entities.AssetRequest, error) {
	req, ok := r.store.requests[id]
	if !ok || req.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return &req, nil
}

func (r *fakeRequestRepo) CreateRequest(ctx context.Context, companyID uint64, requesterID uint64, data dto.CreateAssetRequestDTO) (uint64, error) {
	return 0, nil
}

func (r *fakeRequestRepo) SetStatusFromPending(ctx context.Context, companyID uint64, id uint64, newStatus string, approverID uint64) error {
	req, ok := r.store.requests[id]
	if !ok || req.CompanyID != companyID {
		return apperrors.ErrNotFound
	}
	if req.Status != constants.RequestStatusPending {
		return apperrors.NewInvalidStateError("заявка #%d в статусе %s", id, req.Status)
	}
	req.Status = newStatus
	req.ApproverID = &approverID
	r.store.requests[id] = req
	return nil
}

func (r *fakeRequestRepo) FindForUpdateInTx(ctx context.Context, q repositories.Querier, companyID uint64, id uint64) (*entities.AssetRequest, error) {
	return r.FindRequest(ctx, companyID, id)
}

func (r *fakeRequestRepo) CompleteInTx(ctx context.Context, q repositories.Querier, id uint64, completedAt time.Time) error {
	req, ok := r.store.requests[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	req.Status = constants.RequestStatusCompleted
	req.CompletedDate = &completedAt
	r.store.requests[id] = req
	return nil
}

type fakeAssetRepo struct {
	store *fakeStore

	// transitionErr подменяет результат ApplyTransitionInTx для проверки отката.
	transitionErr error
}

func (r *fakeAssetRepo) GetAssets(ctx context.Context, companyID uint64, filter types.Filter) ([]dto.AssetDTO, uint64, error) {
	return nil, 0, nil
}

func (r *fakeAssetRepo) FindAsset(ctx context.Context, companyID uint64, id uint64) (*entities.Asset, error) {
	asset, ok := r.store.assets[id]
	if !ok || asset.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return &asset, nil
}

func (r *fakeAssetRepo) CreateAsset(ctx context.Context, companyID uint64, data dto.CreateAssetDTO) (uint64, error) {
	return 0, nil
}

func (r *fakeAssetRepo) UpdateAsset(ctx context.Context, companyID uint64, id uint64, data dto.UpdateAssetDTO) error {
	return nil
}

func (r *fakeAssetRepo) ListForExport(ctx context.Context, companyID uint64) ([]entities.Asset, error) {
	return nil, nil
}

func (r *fakeAssetRepo) ApplyTransition(ctx context.Context, companyID uint64, id uint64, status string, isActive bool, note string) (*entities.Asset, error) {
	return r.ApplyTransitionInTx(ctx, nil, companyID, id, status, isActive, note)
}

func (r *fakeAssetRepo) ApplyTransitionInTx(ctx context.Context, q repositories.Querier, companyID uint64, id uint64, status string, isActive bool, note string) (*entities.Asset, error) {
	if r.transitionErr != nil {
		return nil, r.transitionErr
	}
	asset, ok := r.store.assets[id]
	if !ok || asset.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	asset.Status = status
	asset.IsActive = isActive
	if asset.Notes == "" {
		asset.Notes = note
	} else {
		asset.Notes = asset.Notes + "\n" + note
	}
	r.store.assets[id] = asset
	return &asset, nil
}

func newTestEngine(store *fakeStore) (ExecutionEngineInterface, *fakeAssetRepo) {
	assetRepo := &fakeAssetRepo{store: store}
	engine := NewExecutionEngine(
		&fakeTxManager{store: store},
		&fakeRequestRepo{store: store},
		assetRepo,
		zap.NewNop(),
	)
	return engine, assetRepo
}

func seedApprovedRequest(store *fakeStore, requestType string) {
	store.assets[10] = entities.Asset{
		ID: 10, CompanyID: 1, AssetTag: "A1", Name: "Ноутбук",
		Status: constants.AssetStatusInUse, IsActive: true,
	}
	store.requests[1] = entities.AssetRequest{
		ID: 1, CompanyID: 1, RequestType: requestType,
		Status: constants.RequestStatusApproved, RequesterID: 5, AssetID: 10,
	}
}

func TestExecutionEngine_Execute_BreakdownRetiresAsset(t *testing.T) {
	store := newFakeStore()
	seedApprovedRequest(store, constants.RequestTypeBreakdown)
	engine, _ := newTestEngine(store)

	req, asset, err := engine.Execute(context.Background(), 1, 1)
	require.NoError(t, err)

	assert.Equal(t, constants.RequestStatusCompleted, req.Status)
	require.NotNil(t, req.CompletedDate)
	assert.Equal(t, constants.AssetStatusRetired, asset.Status)
	assert.False(t, asset.IsActive)
	assert.Contains(t, asset.Notes, "заявка #1")

	// Изменения видны и в "БД", не только в возвращенных структурах.
	assert.Equal(t, constants.RequestStatusCompleted, store.requests[1].Status)
	assert.Equal(t, constants.AssetStatusRetired, store.assets[10].Status)
}

func TestExecutionEngine_Execute_TransitionTable(t *testing.T) {
	cases := []struct {
		requestType  string
		wantStatus   string
		wantIsActive bool
	}{
		{constants.RequestTypeBreakdown, constants.AssetStatusRetired, false},
		{constants.RequestTypeDisposal, constants.AssetStatusDisposed, false},
		{constants.RequestTypeTransfer, constants.AssetStatusInUse, true},
		{constants.RequestTypeMaintenance, constants.AssetStatusMaintenance, true},
		{constants.RequestTypeAsset, constants.AssetStatusInUse, true},
	}

	for _, tc := range cases {
		t.Run(tc.requestType, func(t *testing.T) {
			store := newFakeStore()
			seedApprovedRequest(store, tc.requestType)
			engine, _ := newTestEngine(store)

			_, asset, err := engine.Execute(context.Background(), 1, 1)
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, asset.Status)
			assert.Equal(t, tc.wantIsActive, asset.IsActive)
		})
	}
}

func TestExecutionEngine_Execute_RequiresApprovedStatus(t *testing.T) {
	for _, status := range []string{
		constants.RequestStatusPending,
		constants.RequestStatusRejected,
		constants.RequestStatusCompleted,
	} {
		t.Run(status, func(t *testing.T) {
			store := newFakeStore()
			seedApprovedRequest(store, constants.RequestTypeBreakdown)
			req := store.requests[1]
			req.Status = status
			store.requests[1] = req

			engine, _ := newTestEngine(store)
			_, _, err := engine.Execute(context.Background(), 1, 1)
			require.Error(t, err)
			assert.True(t, apperrors.IsInvalidState(err))

			// Актив не тронут.
			assert.Equal(t, constants.AssetStatusInUse, store.assets[10].Status)
		})
	}
}

func TestExecutionEngine_Execute_SecondCallIsRejected(t *testing.T) {
	store := newFakeStore()
	seedApprovedRequest(store, constants.RequestTypeDisposal)
	engine, _ := newTestEngine(store)

	_, _, err := engine.Execute(context.Background(), 1, 1)
	require.NoError(t, err)

	_, _, err = engine.Execute(context.Background(), 1, 1)
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidState(err))

	// Актив выполнен ровно один раз: журнал содержит одну запись.
	assert.NotContains(t, store.assets[10].Notes, "\n")
}

func TestExecutionEngine_Execute_UnknownTypeLeavesStateIntact(t *testing.T) {
	store := newFakeStore()
	seedApprovedRequest(store, "PAINT_IT_BLUE")
	engine, _ := newTestEngine(store)

	_, _, err := engine.Execute(context.Background(), 1, 1)
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidState(err))

	assert.Equal(t, constants.RequestStatusApproved, store.requests[1].Status)
	assert.Equal(t, constants.AssetStatusInUse, store.assets[10].Status)
}

func TestExecutionEngine_Execute_RollsBackRequestOnAssetFailure(t *testing.T) {
	store := newFakeStore()
	seedApprovedRequest(store, constants.RequestTypeBreakdown)
	engine, assetRepo := newTestEngine(store)
	assetRepo.transitionErr = apperrors.ErrNotFound

	_, _, err := engine.Execute(context.Background(), 1, 1)
	require.Error(t, err)

	// Транзакция откатила завершение заявки: частичного состояния нет.
	assert.Equal(t, constants.RequestStatusApproved, store.requests[1].Status)
	assert.Nil(t, store.requests[1].CompletedDate)
	assert.Equal(t, constants.AssetStatusInUse, store.assets[10].Status)
}

func TestExecutionEngine_Execute_WrongCompanyNotFound(t *testing.T) {
	store := newFakeStore()
	seedApprovedRequest(store, constants.RequestTypeBreakdown)
	engine, _ := newTestEngine(store)

	_, _, err := engine.Execute(context.Background(), 2, 1)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, constants.RequestStatusApproved, store.requests[1].Status)
}
