package requests

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/greencycle/ewaste-backend/pkg/db/models"
	"github.com/greencycle/ewaste-backend/pkg/enums"
	pkgerrors "github.com/greencycle/ewaste-backend/pkg/errors"
	"github.com/greencycle/ewaste-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines the request lifecycle operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*RequestDTO, error)
	UpdateStatus(ctx context.Context, id int64, input StatusUpdateInput) (*RequestDTO, error)
	Schedule(ctx context.Context, id int64, input ScheduleInput) (*RequestDTO, error)
	ListForUser(ctx context.Context, userID int64) ([]RequestDTO, error)
	ListAll(ctx context.Context) ([]AdminRequestDTO, error)
	ListAssigned(ctx context.Context, pickupPersonID int64) ([]AdminRequestDTO, error)
}

type service struct {
	repo    Repository
	users   UserFinder
	persons PickupPersonFinder
	images  ImageStore
	mailer  ApprovalMailer
	tx      txRunner
	logg    *logger.Logger
}

// NewService builds a request service with the required collaborators. The
// mailer may be nil; approval notifications are then skipped.
func NewService(repo Repository, users UserFinder, persons PickupPersonFinder, images ImageStore, mailer ApprovalMailer, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("requests repository required")
	}
	if users == nil {
		return nil, fmt.Errorf("user finder required")
	}
	if persons == nil {
		return nil, fmt.Errorf("pickup person finder required")
	}
	if images == nil {
		return nil, fmt.Errorf("image store required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:    repo,
		users:   users,
		persons: persons,
		images:  images,
		mailer:  mailer,
		tx:      tx,
		logg:    logg,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*RequestDTO, error) {
	condition, err := enums.ParseDeviceCondition(input.Condition)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid device condition")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	user, err := s.users.FindByEmail(ctx, input.RequesterEmail)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve requester")
	}

	urls := make([]string, 0, len(input.Images))
	for _, image := range input.Images {
		objectName := requestObjectName(image.FileName)
		url, err := s.images.Upload(ctx, objectName, image.ContentType, bytes.NewReader(image.Data))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store request image")
		}
		urls = append(urls, url)
	}

	request := &models.EwasteRequest{
		UserID:        user.ID,
		DeviceType:    input.DeviceType,
		Brand:         input.Brand,
		Model:         input.Model,
		Condition:     condition,
		Quantity:      input.Quantity,
		PickupAddress: input.PickupAddress,
		Remarks:       input.Remarks,
		ImageURLs:     models.JoinImageURLs(urls),
		Status:        enums.RequestStatusPending,
	}

	created, err := s.repo.Create(ctx, request)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist request")
	}
	return FromModel(created), nil
}

// UpdateStatus overwrites the request status unconditionally; any status may
// replace any other. An APPROVED decision triggers a best-effort email.
func (s *service) UpdateStatus(ctx context.Context, id int64, input StatusUpdateInput) (*RequestDTO, error) {
	status, err := enums.ParseRequestStatus(input.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid request status")
	}

	var updated *models.EwasteRequest
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		request, err := repo.FindByID(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "request not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load request")
		}

		updates := map[string]any{"status": status}
		request.Status = status
		if input.RejectionReason != nil {
			updates["rejection_reason"] = *input.RejectionReason
			request.RejectionReason = input.RejectionReason
		}
		if err := repo.Update(ctx, id, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update request status")
		}
		updated = request
		return nil
	})
	if err != nil {
		return nil, err
	}

	if status == enums.RequestStatusApproved {
		s.notifyApproval(ctx, updated)
	}
	return FromModel(updated), nil
}

// notifyApproval sends the approval email; failures are logged and discarded.
func (s *service) notifyApproval(ctx context.Context, request *models.EwasteRequest) {
	if s.mailer == nil || request == nil || request.User == nil {
		return
	}
	deviceType := ""
	if request.DeviceType != nil {
		deviceType = *request.DeviceType
	}
	if err := s.mailer.SendApprovalEmail(ctx, request.User.Email, request.User.Name, request.ID, deviceType); err != nil && s.logg != nil {
		s.logg.Error(ctx, "approval email failed", err)
	}
}

// Schedule always forces SCHEDULED, even on completed or rejected requests.
func (s *service) Schedule(ctx context.Context, id int64, input ScheduleInput) (*RequestDTO, error) {
	var pickupAt *time.Time
	if input.PickupDate != nil && strings.TrimSpace(*input.PickupDate) != "" {
		parsed, err := time.Parse(time.RFC3339, *input.PickupDate)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid pickup date, expected RFC3339")
		}
		pickupAt = &parsed
	}

	var person *models.PickupPerson
	if input.PickupPersonID != nil {
		found, err := s.persons.FindByID(ctx, *input.PickupPersonID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "pickup person not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve pickup person")
		}
		person = found
	}

	var updated *models.EwasteRequest
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		request, err := repo.FindByID(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "request not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load request")
		}

		updates := map[string]any{"status": enums.RequestStatusScheduled}
		request.Status = enums.RequestStatusScheduled
		if pickupAt != nil {
			updates["scheduled_pickup_at"] = *pickupAt
			request.ScheduledPickupAt = pickupAt
		}
		if person != nil {
			updates["pickup_person_id"] = person.ID
			request.PickupPersonID = &person.ID
			request.PickupPerson = person
		}
		if err := repo.Update(ctx, id, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "schedule request")
		}
		updated = request
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(updated), nil
}

func (s *service) ListForUser(ctx context.Context, userID int64) ([]RequestDTO, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list user requests")
	}
	out := make([]RequestDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) ListAll(ctx context.Context) ([]AdminRequestDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list requests")
	}
	out := make([]AdminRequestDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *AdminFromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) ListAssigned(ctx context.Context, pickupPersonID int64) ([]AdminRequestDTO, error) {
	rows, err := s.repo.ListByPickupPerson(ctx, pickupPersonID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list assigned requests")
	}
	out := make([]AdminRequestDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *AdminFromModel(&rows[i]))
	}
	return out, nil
}

func requestObjectName(fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return "requests/" + uuid.NewString() + ext
}
