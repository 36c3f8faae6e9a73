package certificates

import (
	"context"
	"fmt"
	"time"

	"github.com/greencycle/ewaste-backend/pkg/db/models"
	pkgerrors "github.com/greencycle/ewaste-backend/pkg/errors"
	"github.com/greencycle/ewaste-backend/pkg/pdf"
	"gorm.io/gorm"
)

// DefaultCompletedThreshold is the number of COMPLETED requests required
// before a certificate is issued. Config may override it.
const DefaultCompletedThreshold = 10

// UserFinder resolves the certificate recipient.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// CompletedCounter counts a user's completed requests.
type CompletedCounter interface {
	CountCompletedByUser(ctx context.Context, userID int64) (int64, error)
}

// EligibilityDetails is attached to NOT_ELIGIBLE failures.
type EligibilityDetails struct {
	Required  int64 `json:"required"`
	Completed int64 `json:"completed"`
}

// Service issues appreciation certificates.
type Service interface {
	Generate(ctx context.Context, email string) ([]byte, error)
}

type service struct {
	users     UserFinder
	counter   CompletedCounter
	threshold int64
	now       func() time.Time
}

// NewService builds the certificate service. A non-positive threshold falls
// back to the default.
func NewService(users UserFinder, counter CompletedCounter, threshold int64) (Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user finder required")
	}
	if counter == nil {
		return nil, fmt.Errorf("completed counter required")
	}
	if threshold <= 0 {
		threshold = DefaultCompletedThreshold
	}
	return &service{
		users:     users,
		counter:   counter,
		threshold: threshold,
		now:       time.Now,
	}, nil
}

// Generate renders the PDF for an eligible user. Read-only: nothing is
// consumed or marked, so repeated downloads succeed.
func (s *service) Generate(ctx context.Context, email string) ([]byte, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve user")
	}

	completed, err := s.counter.CountCompletedByUser(ctx, user.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count completed requests")
	}

	if completed < s.threshold {
		return nil, pkgerrors.New(pkgerrors.CodeIneligible, "not enough completed pickups").
			WithDetails(EligibilityDetails{Required: s.threshold, Completed: completed})
	}

	out, err := pdf.RenderCertificate(pdf.CertificateData{
		UserName:       user.Name,
		CompletedCount: completed,
		IssuedAt:       s.now().UTC(),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render certificate")
	}
	return out, nil
}
