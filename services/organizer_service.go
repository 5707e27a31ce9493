package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"ticketapi/models"
	"ticketapi/utils"
)

const (
	msgOrganizerNotFound = "Organizer not found"
	msgEmailTaken        = "Email is already registered"
)

// OrganizerService 管 organizer 帳號與登入。
// 登入成功回傳的是設定檔裡那一把共用 token，不是 session。
type OrganizerService struct {
	repos models.Repositories
	token string
}

func NewOrganizerService(repos models.Repositories, apiToken string) *OrganizerService {
	return &OrganizerService{repos: repos, token: apiToken}
}

func trimOrganizer(in OrganizerInput) OrganizerInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	return in
}

func (s *OrganizerService) Create(ctx context.Context, in OrganizerInput) (models.Organizer, error) {
	in = trimOrganizer(in)
	if err := ValidateOrganizer(in, false); err != nil {
		return models.Organizer{}, err
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return models.Organizer{}, fmt.Errorf("hash password: %w", err)
	}

	o := models.Organizer{
		ID:       uuid.NewString(),
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Password: hashed,
	}
	if err := s.repos.Organizers.Create(ctx, &o); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return models.Organizer{}, &ConflictError{Message: msgEmailTaken}
		}
		return models.Organizer{}, fmt.Errorf("create organizer: %w", err)
	}
	return o, nil
}

// Update 只有在帶了新密碼時才重新 hash
func (s *OrganizerService) Update(ctx context.Context, o models.Organizer, in OrganizerInput) (models.Organizer, error) {
	in = trimOrganizer(in)
	if err := ValidateOrganizer(in, true); err != nil {
		return models.Organizer{}, err
	}

	o.Name = in.Name
	o.Email = in.Email
	o.Phone = in.Phone
	if in.Password != "" {
		hashed, err := utils.HashPassword(in.Password)
		if err != nil {
			return models.Organizer{}, fmt.Errorf("hash password: %w", err)
		}
		o.Password = hashed
	}

	if err := s.repos.Organizers.Update(ctx, &o); err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			return models.Organizer{}, notFound(msgOrganizerNotFound)
		case errors.Is(err, models.ErrDuplicate):
			return models.Organizer{}, &ConflictError{Message: msgEmailTaken}
		}
		return models.Organizer{}, fmt.Errorf("update organizer %s: %w", o.ID, err)
	}
	return o, nil
}

// Delete 由下往上刪：每個 event 的 tickets → events → organizer
func (s *OrganizerService) Delete(ctx context.Context, o models.Organizer) error {
	events, err := s.repos.Events.ListByOrganizer(ctx, o.ID)
	if err != nil {
		return fmt.Errorf("list events of organizer %s: %w", o.ID, err)
	}
	for _, e := range events {
		if err := deleteEventCascade(ctx, s.repos, e.ID); err != nil {
			return err
		}
	}

	if err := s.repos.Organizers.Delete(ctx, o.ID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return notFound(msgOrganizerNotFound)
		}
		return fmt.Errorf("delete organizer %s: %w", o.ID, err)
	}
	return nil
}

func (s *OrganizerService) Get(ctx context.Context, id string) (models.Organizer, error) {
	o, err := s.repos.Organizers.GetByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return models.Organizer{}, notFound(msgOrganizerNotFound)
	}
	if err != nil {
		return models.Organizer{}, fmt.Errorf("get organizer %s: %w", id, err)
	}
	return o, nil
}

func (s *OrganizerService) FindAll(ctx context.Context) ([]models.Organizer, error) {
	out, err := s.repos.Organizers.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list organizers: %w", err)
	}
	return out, nil
}

func (s *OrganizerService) FindByEmail(ctx context.Context, email string) (models.Organizer, error) {
	o, err := s.repos.Organizers.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, models.ErrNotFound) {
		return models.Organizer{}, notFound(msgOrganizerNotFound)
	}
	if err != nil {
		return models.Organizer{}, fmt.Errorf("find organizer by email: %w", err)
	}
	return o, nil
}

// Login 比對 bcrypt hash，成功就回共用 token
func (s *OrganizerService) Login(ctx context.Context, email, password string) (string, error) {
	o, err := s.FindByEmail(ctx, email)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !utils.CheckPasswordHash(password, o.Password) {
		return "", ErrInvalidCredentials
	}
	return s.token, nil
}
