package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/groupbuy-backend/internal/domain/constants"
	"github.com/yourusername/groupbuy-backend/internal/domain/entity"
	"github.com/yourusername/groupbuy-backend/internal/domain/repository"
	"github.com/yourusername/groupbuy-backend/internal/metrics"
	"github.com/yourusername/groupbuy-backend/pkg/logger"
)

// Validation messages shown on the order form.
const (
	msgNameRequired    = "請輸入姓名"
	msgEmailInvalid    = "請輸入有效的 Email"
	msgCartEmpty       = "請至少選擇一個團購商品"
	msgAddressRequired = "請輸入取貨地點或寄送地址"
	msgSubmitFailed    = "提交失敗，請檢查網路連線。"
)

// ValidationError carries a user-facing form message. Handlers translate it
// into a 400 instead of a 502.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// SubmitResult is what a successful submission hands back to the caller.
type SubmitResult struct {
	Order entity.RecentOrder
	Tip   string
}

// OrderUseCase validates and submits orders to the spreadsheet, then shows
// the buyer in the local ticker right away instead of waiting out the next
// poll cycle.
type OrderUseCase struct {
	sheets  repository.SheetRepository
	catalog repository.CatalogRepository
	archive repository.OrderArchive
	ai      repository.AIRepository
	sync    *SyncUseCase
	now     func() time.Time
}

func NewOrderUseCase(sheets repository.SheetRepository, catalog repository.CatalogRepository, archive repository.OrderArchive, ai repository.AIRepository, sync *SyncUseCase) *OrderUseCase {
	return &OrderUseCase{
		sheets:  sheets,
		catalog: catalog,
		archive: archive,
		ai:      ai,
		sync:    sync,
		now:     time.Now,
	}
}

// Validate checks the draft and cart the same way the form does, field by
// field, returning the first problem found.
func (uc *OrderUseCase) Validate(draft entity.OrderDraft, cart *Cart) error {
	if strings.TrimSpace(draft.Name) == "" {
		return &ValidationError{Field: "name", Message: msgNameRequired}
	}
	if !strings.Contains(strings.TrimSpace(draft.Email), "@") {
		return &ValidationError{Field: "email", Message: msgEmailInvalid}
	}
	if cart == nil || cart.Len() == 0 {
		return &ValidationError{Field: "cart", Message: msgCartEmpty}
	}
	if strings.TrimSpace(draft.Address) == "" {
		return &ValidationError{Field: "address", Message: msgAddressRequired}
	}
	return nil
}

// Submit validates the draft, posts the order to the spreadsheet script and,
// on success, pushes a provisional entry into the ticker, archives it if an
// archive is wired, clears the cart and schedules a reconciling resync.
func (uc *OrderUseCase) Submit(ctx context.Context, draft entity.OrderDraft, cart *Cart) (SubmitResult, error) {
	if err := uc.Validate(draft, cart); err != nil {
		return SubmitResult{}, err
	}

	name := strings.TrimSpace(draft.Name)
	submission := entity.OrderSubmission{
		Name:     name,
		Email:    strings.TrimSpace(draft.Email),
		Address:  strings.TrimSpace(draft.Address),
		Notes:    strings.TrimSpace(draft.Notes),
		Product:  cart.Summary(),
		Quantity: cart.TotalQuantity(),
	}

	if err := uc.sheets.SubmitOrder(ctx, submission); err != nil {
		logger.ErrorLogger.Printf("Order submission failed: %v", err)
		return SubmitResult{}, fmt.Errorf("%s: %w", msgSubmitFailed, err)
	}

	now := uc.now()
	order := entity.RecentOrder{
		ID:          uuid.New().String(),
		Buyer:       MaskName(name),
		RealName:    name,
		Email:       submission.Email,
		Address:     submission.Address,
		Notes:       submission.Notes,
		Product:     submission.Product,
		Quantity:    submission.Quantity,
		Time:        "剛剛",
		Timestamp:   now,
		AvatarColor: AvatarColor(name),
	}

	if err := uc.catalog.PushOrderFront(ctx, order); err != nil {
		logger.ErrorLogger.Printf("Failed to push provisional order: %v", err)
	}
	if uc.archive != nil {
		if err := uc.archive.SaveOrder(ctx, order); err != nil {
			logger.ErrorLogger.Printf("Failed to archive order %s: %v", order.ID, err)
		}
	}

	metrics.OrdersSubmitted.Inc()
	cart.Clear()

	if uc.sync != nil {
		uc.sync.RequestResyncAfter(constants.ResyncDelaySeconds * time.Second)
	}

	result := SubmitResult{Order: order}
	if uc.ai != nil {
		tip, err := uc.ai.BuyingTip(ctx, submission.Product)
		if err != nil {
			logger.ErrorLogger.Printf("Buying tip failed: %v", err)
		}
		result.Tip = tip
	}
	return result, nil
}
