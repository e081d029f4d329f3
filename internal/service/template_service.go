package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrTemplateNotFound       = errors.New("workout template not found")
	ErrTemplateCategoryLocked = errors.New("template category cannot change while exercises are attached")
)

// TemplateService manages the list of saved workout templates.
type TemplateService interface {
	CreateTemplate(ctx context.Context, title string, category domain.WorkoutCategory) (*domain.WorkoutTemplate, error)
	GetTemplateByID(ctx context.Context, templateID primitive.ObjectID) (*domain.WorkoutTemplate, error)
	ListTemplates(ctx context.Context) ([]domain.WorkoutTemplate, error)
	UpdateTemplate(ctx context.Context, templateID primitive.ObjectID, title string, category domain.WorkoutCategory) (*domain.WorkoutTemplate, error)
	DeleteTemplate(ctx context.Context, templateID primitive.ObjectID) error
	ReorderTemplates(ctx context.Context, from []int, to int) error
	ReorderTemplatesInCategory(ctx context.Context, category domain.WorkoutCategory, from []int, to int) error
}

type templateService struct {
	templateRepo  repository.TemplateRepository
	linkRepo      repository.LinkRepository
	targetSetRepo repository.TargetSetRepository
	setRecordRepo repository.SetRecordRepository
	tx            repository.TxRunner
}

// NewTemplateService creates a new instance of templateService.
func NewTemplateService(
	templateRepo repository.TemplateRepository,
	linkRepo repository.LinkRepository,
	targetSetRepo repository.TargetSetRepository,
	setRecordRepo repository.SetRecordRepository,
	tx repository.TxRunner,
) TemplateService {
	return &templateService{
		templateRepo:  templateRepo,
		linkRepo:      linkRepo,
		targetSetRepo: targetSetRepo,
		setRecordRepo: setRecordRepo,
		tx:            tx,
	}
}

// CreateTemplate adds a new template at the end of the saved workout list.
func (s *templateService) CreateTemplate(ctx context.Context, title string, category domain.WorkoutCategory) (*domain.WorkoutTemplate, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidationFailed)
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown workout category %q", ErrValidationFailed, category)
	}

	count, err := s.templateRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	template := &domain.WorkoutTemplate{
		Title:    title,
		Category: category,
		Order:    int(count),
	}
	templateID, err := s.templateRepo.Create(ctx, template)
	if err != nil {
		return nil, err
	}
	return s.templateRepo.GetByID(ctx, templateID)
}

// GetTemplateByID retrieves a single template.
func (s *templateService) GetTemplateByID(ctx context.Context, templateID primitive.ObjectID) (*domain.WorkoutTemplate, error) {
	template, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return template, nil
}

// ListTemplates returns every template sorted by list position.
func (s *templateService) ListTemplates(ctx context.Context) ([]domain.WorkoutTemplate, error) {
	return s.templateRepo.GetAll(ctx)
}

// UpdateTemplate edits title and category. The category is frozen as soon as
// the template has exercises attached: the exercise picker filters by it, so
// flipping it afterwards would strand the attached exercises.
func (s *templateService) UpdateTemplate(ctx context.Context, templateID primitive.ObjectID, title string, category domain.WorkoutCategory) (*domain.WorkoutTemplate, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidationFailed)
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown workout category %q", ErrValidationFailed, category)
	}

	template, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}

	if category != template.Category {
		links, err := s.linkRepo.CountByOwner(ctx, domain.TemplateOwner(templateID))
		if err != nil {
			return nil, err
		}
		if links > 0 {
			return nil, ErrTemplateCategoryLocked
		}
	}

	template.Title = title
	template.Category = category
	if err := s.templateRepo.Update(ctx, template); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return template, nil
}

// DeleteTemplate removes a template and everything it owns: its exercise
// links and their target sets and set records. Events scheduled from the
// template are NOT touched; their template reference simply stops resolving
// and their display titles fall back. Runs as one transaction.
func (s *templateService) DeleteTemplate(ctx context.Context, templateID primitive.ObjectID) error {
	if _, err := s.templateRepo.GetByID(ctx, templateID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return err
	}

	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		owner := domain.TemplateOwner(templateID)
		links, err := s.linkRepo.GetByOwner(ctx, owner)
		if err != nil {
			return err
		}

		// Children first, bottom up.
		for _, link := range links {
			if err := s.targetSetRepo.DeleteByLinkID(ctx, link.ID); err != nil {
				return err
			}
			if err := s.setRecordRepo.DeleteByLinkID(ctx, link.ID); err != nil {
				return err
			}
		}
		if err := s.linkRepo.DeleteByOwner(ctx, owner); err != nil {
			return err
		}
		if err := s.templateRepo.Delete(ctx, templateID); err != nil {
			return err
		}

		// Close the gap in the saved workout list.
		return s.reindexTemplates(ctx)
	})
}

// reindexTemplates reassigns dense 0..N-1 orders over the current template
// list, writing only the positions that moved.
func (s *templateService) reindexTemplates(ctx context.Context) error {
	templates, err := s.templateRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	var updates []repository.OrderUpdate
	for i, t := range templates {
		if t.Order != i {
			updates = append(updates, repository.OrderUpdate{ID: t.ID, Order: i})
		}
	}
	if len(updates) == 0 {
		return nil
	}
	return s.templateRepo.UpdateOrders(ctx, updates)
}

// ReorderTemplates moves the templates at the from positions, as one block,
// to offset to within the global list.
func (s *templateService) ReorderTemplates(ctx context.Context, from []int, to int) error {
	templates, err := s.templateRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	arrangement, err := domain.MoveIndices(len(templates), from, to)
	if err != nil {
		return err
	}

	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return s.templateRepo.UpdateOrders(ctx, orderUpdates(arrangement, func(old int) primitive.ObjectID {
			return templates[old].ID
		}))
	})
}

// ReorderTemplatesInCategory moves templates within one category of the
// list, as shown by a category-filtered view. Templates of other categories
// keep their slots. The full recomputed order is persisted, not just the
// filtered slice.
func (s *templateService) ReorderTemplatesInCategory(ctx context.Context, category domain.WorkoutCategory, from []int, to int) error {
	if !category.Valid() {
		return fmt.Errorf("%w: unknown workout category %q", ErrValidationFailed, category)
	}

	templates, err := s.templateRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	var scope []int
	for i, t := range templates {
		if t.Category == category {
			scope = append(scope, i)
		}
	}

	arrangement, err := domain.MoveWithinScope(len(templates), scope, from, to)
	if err != nil {
		return err
	}

	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return s.templateRepo.UpdateOrders(ctx, orderUpdates(arrangement, func(old int) primitive.ObjectID {
			return templates[old].ID
		}))
	})
}

// orderUpdates turns an arrangement (new position -> old position) into the
// bulk write that assigns each element its new position.
func orderUpdates(arrangement []int, idAt func(old int) primitive.ObjectID) []repository.OrderUpdate {
	updates := make([]repository.OrderUpdate, len(arrangement))
	for newPos, old := range arrangement {
		updates[newPos] = repository.OrderUpdate{ID: idAt(old), Order: newPos}
	}
	return updates
}
