package services

import (
	"fmt"
	"sort"
	"time"

	"foodonline/internal/domain"
	"foodonline/internal/geo"
	"foodonline/internal/repos"
)

type MarketplaceService struct {
	Vendors *repos.VendorRepo
	Hours   *repos.OpeningHourRepo
	Menu    *repos.MenuRepo
	Carts   *repos.CartRepo
	Now     func() time.Time
}

func NewMarketplaceService(vendors *repos.VendorRepo, hours *repos.OpeningHourRepo, menu *repos.MenuRepo, carts *repos.CartRepo) *MarketplaceService {
	return &MarketplaceService{Vendors: vendors, Hours: hours, Menu: menu, Carts: carts, Now: time.Now}
}

func (s *MarketplaceService) ListVendors() ([]domain.VendorListing, error) {
	return s.Vendors.ListVisible()
}

type VendorDetail struct {
	Vendor       domain.VendorListing
	Categories   []domain.Category
	OpeningHours []domain.OpeningHour
	TodayHours   []domain.OpeningHour
	IsOpen       bool
	Cart         []domain.CartLine // nil for anonymous callers
}

// VendorDetail resolves a visible vendor by slug. userID may be empty.
func (s *MarketplaceService) VendorDetail(slug, userID string) (VendorDetail, error) {
	v, err := s.Vendors.VisibleBySlug(slug)
	if err != nil {
		return VendorDetail{}, err
	}
	cats, err := s.Menu.CategoriesWithAvailable(v.ID)
	if err != nil {
		return VendorDetail{}, err
	}
	hours, err := s.Hours.ForVendor(v.ID)
	if err != nil {
		return VendorDetail{}, err
	}

	now := s.Now()
	today, err := s.Hours.ForDay(v.ID, domain.ISOWeekday(now))
	if err != nil {
		return VendorDetail{}, err
	}

	d := VendorDetail{
		Vendor:       v,
		Categories:   cats,
		OpeningHours: hours,
		TodayHours:   today,
		IsOpen:       domain.IsOpen(today, now),
	}
	if userID != "" {
		if d.Cart, err = s.Carts.Lines(userID); err != nil {
			return VendorDetail{}, err
		}
	}
	return d, nil
}

// SearchParams carries a marketplace search. Near and RadiusKm are either both set
// or both zero.
type SearchParams struct {
	Name     string
	Address  string
	Near     *geo.Point
	RadiusKm float64
}

// Search matches visible vendors by name or dish, optionally restricted to a radius
// around Near. Radius results are ordered nearest first.
func (s *MarketplaceService) Search(p SearchParams) ([]domain.VendorListing, error) {
	if (p.Near == nil) != (p.RadiusKm == 0) {
		return nil, fmt.Errorf("%w: location needs lat, lng and radius", domain.ErrInvalidInput)
	}
	if p.Near != nil && !p.Near.Valid() {
		return nil, fmt.Errorf("%w: coordinates out of range", domain.ErrInvalidInput)
	}
	vendors, err := s.Vendors.SearchVisible(p.Name)
	if err != nil {
		return nil, err
	}
	if p.Near == nil {
		return vendors, nil
	}

	out := vendors[:0]
	for _, v := range vendors {
		if v.Latitude == nil || v.Longitude == nil {
			continue
		}
		d := geo.DistanceKm(*p.Near, geo.Point{Lat: *v.Latitude, Lng: *v.Longitude})
		if d > p.RadiusKm {
			continue
		}
		v.DistanceKm = &d
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool { return *out[i].DistanceKm < *out[j].DistanceKm })
	return out, nil
}
