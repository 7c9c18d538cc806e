package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog/models"
)

// Service сервис каталога: услуги и мастера салона.
// Каталог - справочные данные, управляются миграциями, а не API.
type Service struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// ListServices возвращает все услуги каталога
func (s *Service) ListServices(ctx context.Context) (*models.ServiceListResponse, error) {
	services, err := s.catalogRepo.ListServices(ctx)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// GetService возвращает услугу по ID
func (s *Service) GetService(ctx context.Context, id string) (*domain.Service, error) {
	svc, err := s.catalogRepo.GetService(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("GetService: service id=%s not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetService: repository error for service id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetService - repository error: %v", ErrInternal, err)
	}

	return svc, nil
}

// ListStylists возвращает всех мастеров салона
func (s *Service) ListStylists(ctx context.Context) (*models.StylistListResponse, error) {
	stylists, err := s.catalogRepo.ListStylists(ctx)
	if err != nil {
		s.logger.Error("ListStylists: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListStylists - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStylistList(stylists), nil
}

// GetStylist возвращает мастера по ID
func (s *Service) GetStylist(ctx context.Context, id int64) (*domain.Stylist, error) {
	stylist, err := s.catalogRepo.GetStylist(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStylistNotFound) {
			s.logger.Warn("GetStylist: stylist id=%d not found", id)
			return nil, ErrStylistNotFound
		}
		s.logger.Error("GetStylist: repository error for stylist id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetStylist - repository error: %v", ErrInternal, err)
	}

	return stylist, nil
}
