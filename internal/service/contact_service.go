package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Eursukkul/nexo-service/internal/models"
	"github.com/Eursukkul/nexo-service/internal/repository"
	"gorm.io/gorm"
)

type ContactUpdate struct {
	Phone   *string
	Address *string
	City    *string
	Country *string
}

type ContactService interface {
	CreateContact(ctx context.Context, actor *models.User, contact *models.Contact) error
	ListContacts(ctx context.Context, actor *models.User) ([]models.Contact, error)
	GetContact(ctx context.Context, actor *models.User, id uint) (*models.Contact, error)
	UpdateContact(ctx context.Context, actor *models.User, id uint, update ContactUpdate) (*models.Contact, error)
	DeleteContact(ctx context.Context, actor *models.User, id uint) error
}

type contactService struct {
	contacts repository.ContactRepository
}

func NewContactService(contacts repository.ContactRepository) ContactService {
	return &contactService{contacts: contacts}
}

func (s *contactService) CreateContact(ctx context.Context, actor *models.User, contact *models.Contact) error {
	contact.UserID = actor.ID
	if err := s.contacts.Create(ctx, contact); err != nil {
		return fmt.Errorf("create contact: %w", err)
	}
	return nil
}

func (s *contactService) ListContacts(ctx context.Context, actor *models.User) ([]models.Contact, error) {
	return s.contacts.FindByUserID(ctx, actor.ID)
}

// GetContact returns ErrContactNotFound before ErrForbidden.
func (s *contactService) GetContact(ctx context.Context, actor *models.User, id uint) (*models.Contact, error) {
	contact, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	if !actor.CanAccess(contact.UserID) {
		return nil, ErrForbidden
	}
	return contact, nil
}

func (s *contactService) UpdateContact(ctx context.Context, actor *models.User, id uint, update ContactUpdate) (*models.Contact, error) {
	contact, err := s.GetContact(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if update.Phone != nil {
		contact.Phone = *update.Phone
	}
	if update.Address != nil {
		contact.Address = *update.Address
	}
	if update.City != nil {
		contact.City = *update.City
	}
	if update.Country != nil {
		contact.Country = *update.Country
	}

	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return contact, nil
}

func (s *contactService) DeleteContact(ctx context.Context, actor *models.User, id uint) error {
	if _, err := s.GetContact(ctx, actor, id); err != nil {
		return err
	}
	if err := s.contacts.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContactNotFound
		}
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}
