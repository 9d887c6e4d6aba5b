package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"saribill/internal/dto"
	"saribill/internal/model"
	"saribill/internal/repository"
	"saribill/internal/worker"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type BillService interface {
	Create(ctx context.Context, req dto.CreateBillRequest) (*dto.BillResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateBillRequest) (*dto.BillResponse, error)
	Get(ctx context.Context, id string) (*dto.BillResponse, error)
	List(ctx context.Context, filter dto.BillFilter) (*dto.BillListResponse, error)
	CustomerBills(ctx context.Context, phone string) ([]dto.BillResponse, error)
	Trash(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) (*dto.BillResponse, error)
	Purge(ctx context.Context, id string) error
	ListTrash(ctx context.Context) ([]dto.TrashedBillResponse, error)
	Share(ctx context.Context, id string, req dto.ShareBillRequest) error
}

type billService struct {
	repo         repository.BillRepository
	trashRepo    repository.TrashRepository
	customerRepo repository.CustomerRepository
	shopRepo     repository.ShopRepository
	dispatcher   *worker.Dispatcher
	baseURL      string
}

func NewBillService(
	repo repository.BillRepository,
	trashRepo repository.TrashRepository,
	customerRepo repository.CustomerRepository,
	shopRepo repository.ShopRepository,
	dispatcher *worker.Dispatcher,
	baseURL string,
) BillService {
	return &billService{
		repo:         repo,
		trashRepo:    trashRepo,
		customerRepo: customerRepo,
		shopRepo:     shopRepo,
		dispatcher:   dispatcher,
		baseURL:      baseURL,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Create ────────────────────────────────────────────────────────────────────
// One transaction: allocate sequence, write bill, upsert customer. The viewer
// hash is allocated (and collision-checked) before the transaction begins so
// a retry loop never holds the counter row lock.

func (s *billService) Create(ctx context.Context, req dto.CreateBillRequest) (*dto.BillResponse, error) {
	date, err := parseBusinessDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	bill := &model.Bill{
		Date:          date,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Items:         itemsFromRequest(req.Items),
		TotalAmount:   req.TotalAmount,
		PaymentMode:   req.PaymentMode,
	}
	if err := bill.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	hash, err := s.allocateHash(ctx)
	if err != nil {
		return nil, err
	}
	bill.URLHash = hash

	prefix := BillPrefix(date)
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		seq, err := s.repo.NextSequence(ctx, tx, prefix)
		if err != nil {
			return fmt.Errorf("allocate sequence for %s: %w", prefix, err)
		}
		id, err := FormatBillID(prefix, seq)
		if err != nil {
			return err
		}
		bill.ID = id

		if err := s.customerRepo.Upsert(ctx, tx, &model.Customer{
			Phone: req.CustomerPhone,
			Name:  req.CustomerName,
		}); err != nil {
			return fmt.Errorf("upsert customer %s: %w", req.CustomerPhone, err)
		}

		return s.repo.Create(ctx, tx, bill)
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().Str("bill_id", bill.ID).Str("hash", bill.URLHash).Msg("bill created")

	// Best-effort share dispatch — never fails the create
	if req.ShareVia != nil {
		shareReq := dto.ShareBillRequest{Channel: *req.ShareVia, Email: req.ShareEmail}
		if err := s.Share(ctx, bill.ID, shareReq); err != nil {
			log.Warn().Err(err).Str("bill_id", bill.ID).Msg("share dispatch after create failed")
		}
	}

	return s.toResponse(ctx, bill), nil
}

// allocateHash draws viewer tokens until one is free. No check was performed
// in the legacy scheme; here a collision costs one extra round-trip instead
// of a shadowed bill.
func (s *billService) allocateHash(ctx context.Context) (string, error) {
	for attempt := 0; attempt < hashMaxAttempts; attempt++ {
		hash, err := GenerateBillHash()
		if err != nil {
			return "", err
		}
		used, err := s.repo.HashInUse(ctx, hash)
		if err != nil {
			return "", err
		}
		if !used {
			return hash, nil
		}
		log.Warn().Str("hash", hash).Int("attempt", attempt+1).Msg("bill hash collision, retrying")
	}
	return "", fmt.Errorf("could not allocate a free bill hash in %d attempts", hashMaxAttempts)
}

// ── Update ────────────────────────────────────────────────────────────────────

// Update replaces every caller-editable field. ID and URLHash stay as issued;
// changing the business date does NOT reallocate the identifier, so an edited
// bill may carry a prefix that no longer matches its date field.
func (s *billService) Update(ctx context.Context, id string, req dto.UpdateBillRequest) (*dto.BillResponse, error) {
	bill, err := s.findBill(ctx, id)
	if err != nil {
		return nil, err
	}

	date, err := parseBusinessDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	bill.Date = date
	bill.CustomerName = req.CustomerName
	bill.CustomerPhone = req.CustomerPhone
	bill.Items = itemsFromRequest(req.Items)
	bill.TotalAmount = req.TotalAmount
	bill.PaymentMode = req.PaymentMode

	if err := bill.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if err := s.repo.Save(ctx, bill); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, bill), nil
}

func (s *billService) Get(ctx context.Context, id string) (*dto.BillResponse, error) {
	bill, err := s.findBill(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, bill), nil
}

func (s *billService) List(ctx context.Context, filter dto.BillFilter) (*dto.BillListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	bills, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	shop := s.shopDetails(ctx)
	items := make([]dto.BillResponse, 0, len(bills))
	for i := range bills {
		items = append(items, *billToResponse(&bills[i], shop, s.baseURL))
	}
	return &dto.BillListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *billService) CustomerBills(ctx context.Context, phone string) ([]dto.BillResponse, error) {
	bills, err := s.repo.ListByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	shop := s.shopDetails(ctx)
	out := make([]dto.BillResponse, 0, len(bills))
	for i := range bills {
		out = append(out, *billToResponse(&bills[i], shop, s.baseURL))
	}
	return out, nil
}

// ── Trash / Restore / Purge ──────────────────────────────────────────────────
// Both moves run in one transaction, so a given id lives in exactly one of
// {bills, trash} at all times. Step logging is kept anyway: if a transaction
// fails the operator can see how far it got.

func (s *billService) Trash(ctx context.Context, id string) error {
	bill, err := s.findBill(ctx, id)
	if err != nil {
		return err
	}

	trashed := model.NewTrashedBill(bill, time.Now().UTC())
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.trashRepo.CreateTx(tx, trashed); err != nil {
			return fmt.Errorf("trash %s: copy step: %w", id, err)
		}
		if err := s.repo.DeleteTx(tx, id); err != nil {
			return fmt.Errorf("trash %s: delete step: %w", id, err)
		}
		return nil
	})
	if txErr != nil {
		log.Error().Err(txErr).Str("bill_id", id).Msg("trash failed")
		return txErr
	}
	log.Info().Str("bill_id", id).Msg("bill moved to trash")
	return nil
}

func (s *billService) Restore(ctx context.Context, id string) (*dto.BillResponse, error) {
	trashed, err := s.trashRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bill %s is not in trash", ErrNotFound, id)
		}
		return nil, err
	}

	bill := trashed.Bill()
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, bill); err != nil {
			return fmt.Errorf("restore %s: copy step: %w", id, err)
		}
		if err := s.trashRepo.DeleteTx(tx, id); err != nil {
			return fmt.Errorf("restore %s: delete step: %w", id, err)
		}
		return nil
	})
	if txErr != nil {
		log.Error().Err(txErr).Str("bill_id", id).Msg("restore failed")
		return nil, txErr
	}
	log.Info().Str("bill_id", id).Msg("bill restored from trash")
	return s.toResponse(ctx, bill), nil
}

func (s *billService) Purge(ctx context.Context, id string) error {
	existed, err := s.trashRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return fmt.Errorf("%w: bill %s is not in trash", ErrNotFound, id)
	}
	log.Info().Str("bill_id", id).Msg("bill permanently deleted")
	return nil
}

func (s *billService) ListTrash(ctx context.Context) ([]dto.TrashedBillResponse, error) {
	trashed, err := s.trashRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	shop := s.shopDetails(ctx)
	out := make([]dto.TrashedBillResponse, 0, len(trashed))
	for i := range trashed {
		t := &trashed[i]
		out = append(out, dto.TrashedBillResponse{
			BillResponse: *billToResponse(t.Bill(), shop, s.baseURL),
			DeletedAt:    t.DeletedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

// ── Share ─────────────────────────────────────────────────────────────────────

// Share enqueues an outbound message carrying the public viewer link. The
// send happens on the worker pool; a gateway failure is reported there and
// never touches the bill itself.
func (s *billService) Share(ctx context.Context, id string, req dto.ShareBillRequest) error {
	bill, err := s.findBill(ctx, id)
	if err != nil {
		return err
	}
	if req.Channel == worker.ChannelEmail && (req.Email == nil || *req.Email == "") {
		return fmt.Errorf("%w: email address is required for the email channel", ErrValidation)
	}
	if s.dispatcher == nil {
		return errors.New("share dispatcher is not configured")
	}

	viewURL := viewerURL(s.baseURL, bill.URLHash)
	payload := worker.SharePayload{
		Channel: req.Channel,
		BillID:  bill.ID,
		Phone:   bill.CustomerPhone,
		Message: fmt.Sprintf("Thank you for shopping with us!\nBill #%s\nAmount: ₹%s\nView Bill: %s",
			bill.ID, bill.TotalAmount.StringFixed(2), viewURL),
	}
	if req.Email != nil {
		payload.Email = *req.Email
	}
	return s.dispatcher.EnqueueShare(ctx, payload)
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (s *billService) findBill(ctx context.Context, id string) (*model.Bill, error) {
	bill, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bill %s", ErrNotFound, id)
		}
		return nil, err
	}
	return bill, nil
}

// shopDetails is best-effort for response enrichment: a missing singleton
// just means no UPI link on the response.
func (s *billService) shopDetails(ctx context.Context) *model.ShopDetails {
	shop, err := s.shopRepo.Get(ctx)
	if err != nil {
		return nil
	}
	return shop
}

func (s *billService) toResponse(ctx context.Context, b *model.Bill) *dto.BillResponse {
	return billToResponse(b, s.shopDetails(ctx), s.baseURL)
}

func parseBusinessDate(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", raw)
}

func itemsFromRequest(reqs []dto.BillItemRequest) model.BillItems {
	items := make(model.BillItems, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, model.BillItem{
			Kind:        r.Kind,
			CustomLabel: r.CustomLabel,
			UnitPrice:   r.UnitPrice,
			Quantity:    r.Quantity,
		})
	}
	return items
}

func viewerURL(baseURL, hash string) string {
	return fmt.Sprintf("%s/view/%s", baseURL, hash)
}

func billToResponse(b *model.Bill, shop *model.ShopDetails, baseURL string) *dto.BillResponse {
	items := make([]dto.BillItemResponse, 0, len(b.Items))
	for _, item := range b.Items {
		items = append(items, dto.BillItemResponse{
			Kind:        item.Kind,
			CustomLabel: item.CustomLabel,
			Name:        item.Name(),
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal(),
		})
	}
	resp := &dto.BillResponse{
		ID:            b.ID,
		URLHash:       b.URLHash,
		Date:          b.Date.Format("2006-01-02"),
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		Items:         items,
		TotalAmount:   b.TotalAmount,
		PaymentMode:   b.PaymentMode,
		ViewURL:       viewerURL(baseURL, b.URLHash),
		CreatedAt:     b.CreatedAt.UTC().Format(time.RFC3339),
	}
	if shop != nil && shop.UPIID != "" {
		resp.UPILink = BuildUPILink(shop.UPIID, shop.Name, b.TotalAmount, "Bill "+b.ID)
	}
	return resp
}
