package services

import (
	"context"
	"fmt"
	"time"

	"foodonline/internal/domain"
	applog "foodonline/internal/log"
	"foodonline/internal/repos"
	"foodonline/internal/validate"
)

const (
	approvalTemplate = "vendor_approval"
	SubjectApproved  = "Congratulations! Your restaurant has been approved"
	SubjectRejected  = "We're sorry! You are not eligible for publishing your menu on our marketplace"
)

// Notifier delivers a templated message to one recipient.
type Notifier interface {
	Send(ctx context.Context, to, subject, template string, data map[string]any) error
}

type VendorService struct {
	Vendors *repos.VendorRepo
	Hours   *repos.OpeningHourRepo
	Users   *repos.UserRepo
	Notify  Notifier
}

func NewVendorService(vendors *repos.VendorRepo, hours *repos.OpeningHourRepo, users *repos.UserRepo, n Notifier) *VendorService {
	return &VendorService{Vendors: vendors, Hours: hours, Users: users, Notify: n}
}

// Save creates v when it has no id, otherwise updates it. An update that flips the
// approval flag sends the owner exactly one notification once the write is committed.
func (s *VendorService) Save(ctx context.Context, v *domain.Vendor) error {
	if v.ID == 0 {
		id, err := s.Vendors.Create(*v)
		if err != nil {
			return err
		}
		v.ID = id
		return nil
	}

	prev, err := s.Vendors.Update(*v)
	if err != nil {
		return err
	}
	if prev != v.IsApproved {
		s.notifyApproval(ctx, *v)
	}
	return nil
}

// SetApproval is the admin toggle for a vendor's marketplace visibility.
func (s *VendorService) SetApproval(ctx context.Context, vendorID int64, approved bool) (domain.Vendor, error) {
	v, err := s.Vendors.ByID(vendorID)
	if err != nil {
		return domain.Vendor{}, err
	}
	v.IsApproved = approved
	if err := s.Save(ctx, &v); err != nil {
		return domain.Vendor{}, err
	}
	return s.Vendors.ByID(vendorID)
}

// Register turns a user into a vendor awaiting approval.
func (s *VendorService) Register(ctx context.Context, u *domain.User, in domain.VendorSignup) (domain.Vendor, error) {
	if err := validate.Struct(in); err != nil {
		return domain.Vendor{}, err
	}
	v := domain.Vendor{
		UserID:  u.ID,
		Name:    in.Name,
		Slug:    validate.Slugify(in.Name + " " + u.ID),
		License: in.License,
	}
	if err := s.Save(ctx, &v); err != nil {
		return domain.Vendor{}, err
	}
	if u.Role == domain.RoleCustomer {
		if err := s.Users.SetRole(u.ID, domain.RoleVendor); err != nil {
			return domain.Vendor{}, fmt.Errorf("promote user: %w", err)
		}
	}
	return s.Vendors.ByID(v.ID)
}

// notifyApproval is best-effort: failures are logged and never undo the change.
func (s *VendorService) notifyApproval(ctx context.Context, v domain.Vendor) {
	fields := map[string]any{"vendor_id": v.ID, "is_approved": v.IsApproved}
	if s.Notify == nil {
		applog.Security(nil, "vendor.notify.skip", fields)
		return
	}
	owner, err := s.Users.ByID(v.UserID)
	if err != nil {
		applog.Error(nil, "vendor.notify.fail", err, fields)
		return
	}
	subject := SubjectRejected
	if v.IsApproved {
		subject = SubjectApproved
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err = s.Notify.Send(ctx, owner.Email, subject, approvalTemplate, map[string]any{
		"user":        owner.FullName(),
		"vendor":      v.Name,
		"is_approved": v.IsApproved,
	})
	if err != nil {
		applog.Error(nil, "vendor.notify.fail", err, fields)
		return
	}
	applog.Audit(nil, "vendor.notify", fields)
}

// AddOpeningHour adds a slot for the vendor owned by ownerID.
func (s *VendorService) AddOpeningHour(ownerID string, in domain.OpeningHourInput) (domain.OpeningHour, error) {
	if err := validate.OpeningHour(in); err != nil {
		return domain.OpeningHour{}, err
	}
	v, err := s.Vendors.ByUser(ownerID)
	if err != nil {
		return domain.OpeningHour{}, err
	}
	h := domain.OpeningHour{VendorID: v.ID, Day: in.Day, FromHour: in.FromHour, ToHour: in.ToHour, IsClosed: in.IsClosed}
	if h.IsClosed {
		h.FromHour, h.ToHour = "", ""
	}
	id, err := s.Hours.Add(h)
	if err != nil {
		return domain.OpeningHour{}, err
	}
	h.ID = id
	return h, nil
}

// OpeningHours lists the owner's slots ordered by day and from-time.
func (s *VendorService) OpeningHours(ownerID string) ([]domain.OpeningHour, error) {
	v, err := s.Vendors.ByUser(ownerID)
	if err != nil {
		return nil, err
	}
	return s.Hours.ForVendor(v.ID)
}

// RemoveOpeningHour deletes one of the owner's slots.
func (s *VendorService) RemoveOpeningHour(ownerID string, id int64) error {
	v, err := s.Vendors.ByUser(ownerID)
	if err != nil {
		return err
	}
	return s.Hours.Remove(v.ID, id)
}
