package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/infra/cache"
	catalogRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-ClinicService/internal/service/catalog/models"
	"github.com/m04kA/SMC-ClinicService/pkg/slug"
)

const (
	servicesCachePrefix   = "services"
	categoriesCachePrefix = "service-categories"
)

// Service сервис каталога услуг: дерево услуг, порядок отображения, категории
type Service struct {
	repo      CatalogRepository
	cache     Cache
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(repo CatalogRepository, cache Cache, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:      repo,
		cache:     cache,
		txManager: txManager,
		logger:    logger,
	}
}

// List возвращает услуги. includeInactive доступен только администратору;
// tree=true группирует подуслуги под родителями.
func (s *Service) List(ctx context.Context, includeInactive, tree bool) (*models.ServiceListResponse, error) {
	s.logger.Info("List: fetching services includeInactive=%t tree=%t", includeInactive, tree)

	key := cache.Key(servicesCachePrefix, map[string]string{"tree": fmt.Sprint(tree)})
	if !includeInactive {
		var cached models.ServiceListResponse
		if found, err := s.cache.Get(ctx, key, &cached); err != nil {
			s.logger.Warn("List: cache read failed: %v", err)
		} else if found {
			return &cached, nil
		}
	}

	services, err := s.repo.ListServices(ctx, includeInactive)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	var resp *models.ServiceListResponse
	if tree {
		resp = models.FromServiceTree(domain.NewServiceTree(services))
	} else {
		resp = models.FromDomainServiceList(services)
	}

	if !includeInactive {
		if err := s.cache.Set(ctx, key, resp); err != nil {
			s.logger.Warn("List: cache write failed: %v", err)
		}
	}

	s.logger.Info("List: successfully fetched %d services", len(services))
	return resp, nil
}

// GetByID получает услугу по ID вместе с подуслугами
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	s.logger.Info("GetByID: fetching service id=%d", id)

	service, err := s.repo.GetServiceByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", id, err)
	}

	resp := models.FromDomainService(service)
	if service.ParentServiceID == nil {
		all, err := s.repo.ListServices(ctx, true)
		if err != nil {
			s.logger.Error("GetByID: failed to list sub-services of id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
		}
		for _, child := range domain.NewServiceTree(all).Children(id) {
			resp.Children = append(resp.Children, *models.FromDomainService(child))
		}
	}

	return resp, nil
}

// GetBySlug получает активную услугу по slug (публичная страница услуги)
func (s *Service) GetBySlug(ctx context.Context, value string) (*models.ServiceResponse, error) {
	s.logger.Info("GetBySlug: fetching service slug=%s", value)

	service, err := s.repo.GetServiceBySlug(ctx, value)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("GetBySlug: service slug=%s not found", value)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetBySlug: repository error for slug=%s: %v", value, err)
		return nil, fmt.Errorf("%w: GetBySlug - repository error: %v", ErrInternal, err)
	}
	if !service.IsActive {
		return nil, ErrServiceNotFound
	}

	return s.GetByID(ctx, service.ID)
}

// Create создает услугу.
// Подуслуга требует существующего родителя верхнего уровня.
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service name=%q isSubService=%t parent=%v", req.Name, req.IsSubService, req.ParentServiceID)

	service := req.ToDomainService()
	if err := s.prepareService(service, req.Slug); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}
	if req.IsSubService && req.ParentServiceID == nil {
		s.logger.Warn("Create: sub-service without parent")
		return nil, fmt.Errorf("%w: parentServiceId is required for a sub-service", ErrInvalidParent)
	}

	var created *domain.Service
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if service.ParentServiceID != nil {
			if err := s.validateParent(txCtx, 0, *service.ParentServiceID); err != nil {
				return err
			}
		}

		var err error
		created, err = s.repo.CreateService(txCtx, service)
		return err
	})
	if err != nil {
		return nil, s.mapWriteError("Create", err)
	}

	s.invalidate(ctx)
	s.logger.Info("Create: successfully created service id=%d", created.ID)
	return models.FromDomainService(created), nil
}

// Update частично обновляет услугу
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%d", id)

	var updated *domain.Service
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		service, err := s.repo.GetServiceByID(txCtx, id)
		if err != nil {
			return err
		}

		req.ApplyToService(service)
		// Slug сохраняется при переименовании, если его не передали явно
		slugValue := req.Slug
		if slugValue == nil {
			slugValue = &service.Slug
		}
		if err := s.prepareService(service, slugValue); err != nil {
			return err
		}

		if req.IsSubService != nil && *req.IsSubService && service.ParentServiceID == nil {
			return fmt.Errorf("%w: parentServiceId is required for a sub-service", ErrInvalidParent)
		}
		if service.ParentServiceID != nil {
			if err := s.validateParent(txCtx, id, *service.ParentServiceID); err != nil {
				return err
			}
		}

		updated, err = s.repo.UpdateService(txCtx, service)
		return err
	})
	if err != nil {
		return nil, s.mapWriteError("Update", err)
	}

	s.invalidate(ctx)
	s.logger.Info("Update: successfully updated service id=%d", id)
	return models.FromDomainService(updated), nil
}

// Toggle переключает активность услуги; подуслуги не затрагиваются
func (s *Service) Toggle(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	s.logger.Info("Toggle: toggling service id=%d", id)

	service, err := s.repo.ToggleService(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("Toggle", id, err)
	}

	s.invalidate(ctx)
	s.logger.Info("Toggle: service id=%d is now active=%t", id, service.IsActive)
	return models.FromDomainService(service), nil
}

// Reorder применяет новый порядок и родителей одной транзакцией.
// Итоговое дерево должно оставаться двухуровневым.
func (s *Service) Reorder(ctx context.Context, items []models.ReorderItem) error {
	s.logger.Info("Reorder: reordering %d services", len(items))

	if len(items) == 0 {
		return fmt.Errorf("%w: empty reorder list", ErrInvalidInput)
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		services, err := s.repo.ListServices(txCtx, true)
		if err != nil {
			return err
		}

		byID := make(map[int64]*domain.Service, len(services))
		for _, service := range services {
			copied := *service
			byID[service.ID] = &copied
		}

		seen := make(map[int64]struct{}, len(items))
		for _, item := range items {
			if _, dup := seen[item.ID]; dup {
				return fmt.Errorf("%w: service id=%d listed twice", ErrInvalidInput, item.ID)
			}
			seen[item.ID] = struct{}{}

			service, ok := byID[item.ID]
			if !ok {
				return fmt.Errorf("%w: id=%d", ErrServiceNotFound, item.ID)
			}
			service.DisplayOrder = item.DisplayOrder
			service.ParentServiceID = item.ParentServiceID
		}

		next := make([]*domain.Service, 0, len(byID))
		for _, service := range byID {
			next = append(next, service)
		}
		tree := domain.NewServiceTree(next)
		for _, service := range next {
			if service.ParentServiceID == nil {
				continue
			}
			if err := tree.ValidateParent(service.ID, *service.ParentServiceID); err != nil {
				return fmt.Errorf("%w: service id=%d: %v", ErrInvalidParent, service.ID, err)
			}
		}

		for _, item := range items {
			if err := s.repo.UpdateServiceOrder(txCtx, item.ToDomainOrder()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return s.mapWriteError("Reorder", err)
	}

	s.invalidate(ctx)
	s.logger.Info("Reorder: successfully reordered %d services", len(items))
	return nil
}

// Delete удаляет услугу; услуга с подуслугами не удаляется
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting service id=%d", id)

	if err := s.repo.DeleteService(ctx, id); err != nil {
		return s.mapRepoError("Delete", id, err)
	}

	s.invalidate(ctx)
	s.logger.Info("Delete: successfully deleted service id=%d", id)
	return nil
}

// Вспомогательные методы

// prepareService нормализует поля, вычисляет slug и проверяет ограничения
func (s *Service) prepareService(service *domain.Service, slugValue *string) error {
	service.Name = strings.TrimSpace(service.Name)
	if service.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(service.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}

	if slugValue != nil && strings.TrimSpace(*slugValue) != "" {
		service.Slug = slug.Make(*slugValue)
	} else {
		service.Slug = slug.Make(service.Name)
	}
	if service.Slug == "" {
		return fmt.Errorf("%w: slug cannot be derived from name", ErrInvalidInput)
	}

	if service.DurationMinutes < domain.MinServiceDurationMinutes || service.DurationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}
	if service.Price != nil && service.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	return nil
}

// validateParent проверяет двухуровневость дерева для serviceID (0 - новая услуга)
func (s *Service) validateParent(ctx context.Context, serviceID, parentID int64) error {
	services, err := s.repo.ListServices(ctx, true)
	if err != nil {
		return err
	}

	if err := domain.NewServiceTree(services).ValidateParent(serviceID, parentID); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParent, err)
	}
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.DeleteByPrefix(ctx, servicesCachePrefix); err != nil {
		s.logger.Warn("invalidate: failed to drop services cache: %v", err)
	}
}

// mapRepoError переводит ошибки репозитория для операций над одной услугой
func (s *Service) mapRepoError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, catalogRepo.ErrServiceNotFound):
		s.logger.Warn("%s: service id=%d not found", op, id)
		return ErrServiceNotFound
	case errors.Is(err, catalogRepo.ErrServiceHasChildren):
		s.logger.Warn("%s: service id=%d has sub-services", op, id)
		return ErrServiceHasChildren
	case errors.Is(err, catalogRepo.ErrServiceInUse):
		s.logger.Warn("%s: service id=%d is referenced by bookings", op, id)
		return ErrServiceInUse
	}
	s.logger.Error("%s: repository error for service id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

// mapWriteError переводит ошибки записи (включая ошибки, возвращенные из транзакции)
func (s *Service) mapWriteError(op string, err error) error {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidParent), errors.Is(err, ErrServiceNotFound):
		s.logger.Warn("%s: rejected: %v", op, err)
		return err
	case errors.Is(err, catalogRepo.ErrServiceNotFound):
		s.logger.Warn("%s: service not found", op)
		return ErrServiceNotFound
	case errors.Is(err, catalogRepo.ErrSlugTaken):
		s.logger.Warn("%s: slug already taken", op)
		return ErrSlugTaken
	case errors.Is(err, catalogRepo.ErrCategoryNotFound):
		s.logger.Warn("%s: category not found: %v", op, err)
		return ErrCategoryNotFound
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
