package service

import (
	"context"
	"errors"
	"testing"

	"homewares/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type returnsFixture struct {
	returnRepo  *MockReturnRepository
	orderRepo   *MockOrderRepository
	productRepo *MockProductRepository
	lifecycle   *MockLifecycleService
	svc         ReturnsService
}

func newReturnsFixture() *returnsFixture {
	f := &returnsFixture{
		returnRepo:  new(MockReturnRepository),
		orderRepo:   new(MockOrderRepository),
		productRepo: new(MockProductRepository),
		lifecycle:   new(MockLifecycleService),
	}
	f.svc = NewReturnsService(f.returnRepo, f.orderRepo, f.productRepo, f.lifecycle, zerolog.Nop())
	return f
}

func TestReturnsService_Create(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()
	itemA := model.OrderItem{ID: uuid.New(), OrderID: orderID, ProductID: "prod-1", Quantity: 2}
	itemB := model.OrderItem{ID: uuid.New(), OrderID: orderID, ProductID: "prod-2", Quantity: 1}

	t.Run("Success", func(t *testing.T) {
		f := newReturnsFixture()
		order := guestOrder(orderID, model.OrderDelivered)

		f.orderRepo.On("GetByID", ctx, orderID).Return(order, []model.OrderItem{itemA, itemB}, nil)
		f.returnRepo.On("Create", ctx, mock.AnythingOfType("*model.ReturnRequest")).Return(nil)

		request, err := f.svc.Create(ctx, &model.ReturnCreateRequest{
			OrderID: orderID,
			Reason:  "damaged in transit",
			Items: []model.ReturnItemRequest{
				{OrderItemID: itemA.ID, Reason: "chipped", ConditionCode: "DAMAGED"},
			},
		})

		require.NoError(t, err)
		require.NotNil(t, request)
		assert.Equal(t, model.ReturnRequested, request.Status)
		assert.Equal(t, orderID, request.OrderID)
		require.Len(t, request.Items, 1)
		assert.Equal(t, itemA.ID, request.Items[0].OrderItemID)
		assert.Equal(t, request.ID, request.Items[0].ReturnID)
		f.returnRepo.AssertExpectations(t)
	})

	t.Run("Error - no items", func(t *testing.T) {
		f := newReturnsFixture()

		request, err := f.svc.Create(ctx, &model.ReturnCreateRequest{OrderID: orderID})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "must contain at least one item")
		assert.Nil(t, request)
		f.orderRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("Error - order not delivered", func(t *testing.T) {
		f := newReturnsFixture()
		order := guestOrder(orderID, model.OrderShipped)

		f.orderRepo.On("GetByID", ctx, orderID).Return(order, []model.OrderItem{itemA}, nil)

		request, err := f.svc.Create(ctx, &model.ReturnCreateRequest{
			OrderID: orderID,
			Items:   []model.ReturnItemRequest{{OrderItemID: itemA.ID}},
		})

		require.Error(t, err)
		assert.Equal(t, model.ErrReturnNotEligible, err)
		assert.Nil(t, request)
		f.returnRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Error - order not found", func(t *testing.T) {
		f := newReturnsFixture()

		f.orderRepo.On("GetByID", ctx, orderID).Return(nil, nil, nil)

		request, err := f.svc.Create(ctx, &model.ReturnCreateRequest{
			OrderID: orderID,
			Items:   []model.ReturnItemRequest{{OrderItemID: itemA.ID}},
		})

		require.Error(t, err)
		assert.Equal(t, model.ErrOrderNotFound, err)
		assert.Nil(t, request)
	})

	t.Run("Error - foreign order item", func(t *testing.T) {
		f := newReturnsFixture()
		order := guestOrder(orderID, model.OrderDelivered)

		f.orderRepo.On("GetByID", ctx, orderID).Return(order, []model.OrderItem{itemA}, nil)

		request, err := f.svc.Create(ctx, &model.ReturnCreateRequest{
			OrderID: orderID,
			Items:   []model.ReturnItemRequest{{OrderItemID: uuid.New()}},
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not belong to order")
		assert.Nil(t, request)
		f.returnRepo.AssertNotCalled(t, "Create")
	})
}

func TestReturnsService_Process_Rejection(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()
	returnID := uuid.New()

	f := newReturnsFixture()
	existing := &model.ReturnRequest{
		ID:      returnID,
		OrderID: orderID,
		Status:  model.ReturnRequested,
	}

	f.returnRepo.On("GetByID", ctx, returnID).Return(existing, nil)
	f.returnRepo.On("UpdateStatus", ctx, returnID, model.ReturnRejected, "outside return window").Return(nil)

	request, err := f.svc.Process(ctx, returnID, &model.ReturnProcessRequest{
		Decision: model.DecisionReject,
		Notes:    "outside return window",
	})

	require.NoError(t, err)
	assert.Equal(t, model.ReturnRejected, request.Status)
	assert.Equal(t, "outside return window", request.Description)
	f.lifecycle.AssertNotCalled(t, "CompleteReturn")
	f.productRepo.AssertNotCalled(t, "IncrementStock")
	f.returnRepo.AssertExpectations(t)
}

func TestReturnsService_Process_ApprovalCascade(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()
	returnID := uuid.New()
	itemA := model.OrderItem{ID: uuid.New(), OrderID: orderID, ProductID: "prod-1", Quantity: 2}
	itemB := model.OrderItem{ID: uuid.New(), OrderID: orderID, ProductID: "prod-2", Quantity: 1}

	f := newReturnsFixture()
	order := guestOrder(orderID, model.OrderDelivered)
	existing := &model.ReturnRequest{
		ID:      returnID,
		OrderID: orderID,
		Status:  model.ReturnRequested,
		Items: []model.ReturnItem{
			{ID: uuid.New(), ReturnID: returnID, OrderItemID: itemA.ID},
			{ID: uuid.New(), ReturnID: returnID, OrderItemID: itemB.ID},
		},
	}

	f.returnRepo.On("GetByID", ctx, returnID).Return(existing, nil)
	f.orderRepo.On("GetByID", ctx, orderID).Return(order, []model.OrderItem{itemA, itemB}, nil)
	f.returnRepo.On("ClaimApproval", ctx, returnID, "all good").Return(true, nil)
	f.lifecycle.On("CompleteReturn", ctx, orderID, "Return request approved").
		Return(&model.TransitionResult{Order: guestOrder(orderID, model.OrderReturned)}, nil)
	f.productRepo.On("IncrementStock", ctx, "prod-1", 2).Return(nil)
	f.productRepo.On("IncrementStock", ctx, "prod-2", 1).Return(nil)

	request, err := f.svc.Process(ctx, returnID, &model.ReturnProcessRequest{
		Decision: model.DecisionApprove,
		Notes:    "all good",
	})

	require.NoError(t, err)
	assert.Equal(t, model.ReturnApproved, request.Status)
	f.lifecycle.AssertExpectations(t)
	f.productRepo.AssertExpectations(t)
}

func TestReturnsService_Process_RepeatedApprovalSkipsCascade(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()
	returnID := uuid.New()
	itemA := model.OrderItem{ID: uuid.New(), OrderID: orderID, ProductID: "prod-1", Quantity: 2}

	f := newReturnsFixture()
	// The first approval already moved the order to RETURNED.
	order := guestOrder(orderID, model.OrderReturned)
	existing := &model.ReturnRequest{
		ID:      returnID,
		OrderID: orderID,
		Status:  model.ReturnApproved,
		Items: []model.ReturnItem{
			{ID: uuid.New(), ReturnID: returnID, OrderItemID: itemA.ID},
		},
	}

	f.returnRepo.On("GetByID", ctx, returnID).Return(existing, nil)
	f.orderRepo.On("GetByID", ctx, orderID).Return(order, []model.OrderItem{itemA}, nil)
	f.returnRepo.On("ClaimApproval", ctx, returnID, "retry").Return(false, nil)

	request, err := f.svc.Process(ctx, returnID, &model.ReturnProcessRequest{
		Decision: model.DecisionApprove,
		Notes:    "retry",
	})

	require.NoError(t, err)
	assert.Equal(t, model.ReturnApproved, request.Status)
	f.lifecycle.AssertNotCalled(t, "CompleteReturn")
	f.productRepo.AssertNotCalled(t, "IncrementStock")
}

func TestReturnsService_Process_ApprovalRejectedWhenOrderNotDelivered(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()
	returnID := uuid.New()

	f := newReturnsFixture()
	order := guestOrder(orderID, model.OrderShipped)
	existing := &model.ReturnRequest{ID: returnID, OrderID: orderID, Status: model.ReturnRequested}

	f.returnRepo.On("GetByID", ctx, returnID).Return(existing, nil)
	f.orderRepo.On("GetByID", ctx, orderID).Return(order, []model.OrderItem(nil), nil)

	request, err := f.svc.Process(ctx, returnID, &model.ReturnProcessRequest{Decision: model.DecisionApprove})

	require.Error(t, err)
	assert.Equal(t, model.ErrInvalidTransition, err)
	assert.Nil(t, request)
	f.returnRepo.AssertNotCalled(t, "ClaimApproval")
}

func TestReturnsService_Process_StockRestoreFailureDoesNotUnwindApproval(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()
	returnID := uuid.New()
	itemA := model.OrderItem{ID: uuid.New(), OrderID: orderID, ProductID: "prod-1", Quantity: 2}

	f := newReturnsFixture()
	order := guestOrder(orderID, model.OrderDelivered)
	existing := &model.ReturnRequest{
		ID:      returnID,
		OrderID: orderID,
		Status:  model.ReturnRequested,
		Items: []model.ReturnItem{
			{ID: uuid.New(), ReturnID: returnID, OrderItemID: itemA.ID},
		},
	}

	f.returnRepo.On("GetByID", ctx, returnID).Return(existing, nil)
	f.orderRepo.On("GetByID", ctx, orderID).Return(order, []model.OrderItem{itemA}, nil)
	f.returnRepo.On("ClaimApproval", ctx, returnID, "").Return(true, nil)
	f.lifecycle.On("CompleteReturn", ctx, orderID, "Return request approved").
		Return(&model.TransitionResult{Order: guestOrder(orderID, model.OrderReturned)}, nil)
	f.productRepo.On("IncrementStock", ctx, "prod-1", 2).Return(errors.New("stock table locked"))

	request, err := f.svc.Process(ctx, returnID, &model.ReturnProcessRequest{Decision: model.DecisionApprove})

	require.NoError(t, err)
	assert.Equal(t, model.ReturnApproved, request.Status)
}

func TestReturnsService_Process_Rejections(t *testing.T) {
	ctx := context.Background()
	returnID := uuid.New()

	t.Run("Invalid decision", func(t *testing.T) {
		f := newReturnsFixture()

		request, err := f.svc.Process(ctx, returnID, &model.ReturnProcessRequest{Decision: "ESCALATED"})

		require.Error(t, err)
		assert.Equal(t, model.ErrInvalidDecision, err)
		assert.Nil(t, request)
		f.returnRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("Return not found", func(t *testing.T) {
		f := newReturnsFixture()

		f.returnRepo.On("GetByID", ctx, returnID).Return(nil, nil)

		request, err := f.svc.Process(ctx, returnID, &model.ReturnProcessRequest{Decision: model.DecisionApprove})

		require.Error(t, err)
		assert.Equal(t, model.ErrReturnNotFound, err)
		assert.Nil(t, request)
	})
}
