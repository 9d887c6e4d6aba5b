package service

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	"saribill/internal/dto"
	"saribill/internal/model"
	"saribill/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// LookupKind is the public resolver's classification of a raw request.
type LookupKind string

const (
	LookupInvalid LookupKind = "invalid"
	LookupHash    LookupKind = "hash"
	LookupOldID   LookupKind = "oldId"
)

var hashPattern = regexp.MustCompile(`^[0-9a-z]{8}$`)

// ClassifyIdentifier applies the viewer's precedence rules to a request.
// First match wins:
//  1. legacy ?id= query parameter → oldId
//  2. empty final path segment, or the page itself (index.html) → invalid
//  3. exactly 8 lowercase alphanumerics → hash
//  4. anything else → oldId
//
// Note the classifier accepts [0-9a-z] even though newly issued hashes never
// contain 0: tokens typed by hand should still classify as hashes and simply
// miss, rather than fall through to an identifier lookup.
func ClassifyIdentifier(path, queryID string) (LookupKind, string) {
	if queryID != "" {
		return LookupOldID, queryID
	}
	segment := path
	if i := strings.LastIndex(segment, "/"); i >= 0 {
		segment = segment[i+1:]
	}
	if segment == "" || segment == "index.html" {
		return LookupInvalid, ""
	}
	if hashPattern.MatchString(segment) {
		return LookupHash, segment
	}
	return LookupOldID, segment
}

// PublicService resolves unauthenticated viewer requests. Its query surface
// is deliberately limited to exact-match lookups — no listing, no ranges —
// so the public page can never enumerate the shop's data.
type PublicService interface {
	Resolve(ctx context.Context, path, queryID string) (*dto.PublicBillResponse, error)
}

type publicService struct {
	billRepo repository.BillRepository
	oldRepo  repository.OldBillRepository
	shopRepo repository.ShopRepository
	rdb      *redis.Client
	baseURL  string
}

func NewPublicService(
	billRepo repository.BillRepository,
	oldRepo repository.OldBillRepository,
	shopRepo repository.ShopRepository,
	rdb *redis.Client,
	baseURL string,
) PublicService {
	return &publicService{billRepo: billRepo, oldRepo: oldRepo, shopRepo: shopRepo, rdb: rdb, baseURL: baseURL}
}

func (s *publicService) Resolve(ctx context.Context, path, queryID string) (*dto.PublicBillResponse, error) {
	kind, value := ClassifyIdentifier(path, queryID)

	var bill *model.Bill
	var err error
	switch kind {
	case LookupHash:
		bill, err = s.billRepo.FindByHash(ctx, value)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
	case LookupOldID:
		bill, err = s.resolveOldID(ctx, value)
	default:
		return nil, ErrInvalidIdentifier
	}
	if err != nil {
		return nil, err
	}

	shop, err := s.cachedShopDetails(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &dto.PublicBillResponse{
		Bill: *billToResponse(bill, shop, s.baseURL),
		Shop: dto.ShopResponse{
			Name:    shop.Name,
			Address: shop.Address,
			Phone:   shop.Phone,
			GST:     shop.GST,
			Logo:    shop.Logo,
			UPIID:   shop.UPIID,
		},
	}, nil
}

// resolveOldID tries the active collection first, then falls back to the
// old_bills archive for identifiers issued before the hash scheme.
func (s *publicService) resolveOldID(ctx context.Context, id string) (*model.Bill, error) {
	bill, err := s.billRepo.FindByID(ctx, id)
	if err == nil {
		return bill, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	old, err := s.oldRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &model.Bill{
		ID:            old.ID,
		URLHash:       old.URLHash,
		Date:          old.Date,
		CustomerName:  old.CustomerName,
		CustomerPhone: old.CustomerPhone,
		Items:         old.Items,
		TotalAmount:   old.TotalAmount,
		PaymentMode:   old.PaymentMode,
		CreatedAt:     old.CreatedAt,
	}, nil
}

const (
	shopCacheKey = "shop:details"
	shopCacheTTL = 5 * time.Minute
)

// cachedShopDetails reads the shop singleton through redis. The public page
// fetches it on every hit, so one row gets cached; a cache problem falls
// back to the store silently.
func (s *publicService) cachedShopDetails(ctx context.Context) (*model.ShopDetails, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, shopCacheKey).Result(); err == nil {
			var shop model.ShopDetails
			if err := json.Unmarshal([]byte(raw), &shop); err == nil {
				return &shop, nil
			}
		}
	}

	shop, err := s.shopRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(shop); err == nil {
			if err := s.rdb.Set(ctx, shopCacheKey, data, shopCacheTTL).Err(); err != nil {
				log.Debug().Err(err).Msg("shop cache write failed")
			}
		}
	}
	return shop, nil
}

// InvalidateShopCache drops the cached singleton after a settings update.
func InvalidateShopCache(ctx context.Context, rdb *redis.Client) {
	if rdb == nil {
		return
	}
	if err := rdb.Del(ctx, shopCacheKey).Err(); err != nil {
		log.Debug().Err(err).Msg("shop cache invalidation failed")
	}
}
