package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrLinkNotFound      = errors.New("workout exercise entry not found")
	ErrTargetSetNotFound = errors.New("target set not found")
	ErrSetRecordNotFound = errors.New("set record not found")
)

// SetMetrics carries the optional numeric fields of a target set or set
// record. Nil means "not filled in"; which fields matter is decided by the
// set type (domain.RelevantAttributes).
type SetMetrics struct {
	Weight     *float64
	Reps       *int
	RPE        *float64
	Duration   *float64
	Distance   *float64
	Resistance *float64
	HeartRate  *int
}

// LinkDetail is a workout exercise entry with everything a client renders:
// the exercise it points at and both set lists in order.
type LinkDetail struct {
	Link       domain.WorkoutExerciseLink
	Exercise   *domain.Exercise
	TargetSets []domain.TargetSet
	Sets       []domain.SetRecord
}

// LinkService manages the exercise entries of templates and events together
// with their target sets and set records.
type LinkService interface {
	AttachExercise(ctx context.Context, owner domain.LinkOwner, exerciseID primitive.ObjectID) (*domain.WorkoutExerciseLink, error)
	GetLinkByID(ctx context.Context, linkID primitive.ObjectID) (*LinkDetail, error)
	ListLinks(ctx context.Context, owner domain.LinkOwner) ([]LinkDetail, error)
	UpdateLink(ctx context.Context, linkID primitive.ObjectID, notes string, targetMode domain.TargetMode, targetNote string) (*domain.WorkoutExerciseLink, error)
	ToggleLinkCompleted(ctx context.Context, linkID primitive.ObjectID) (*domain.WorkoutExerciseLink, error)
	DeleteLink(ctx context.Context, linkID primitive.ObjectID) error
	ReorderLinks(ctx context.Context, owner domain.LinkOwner, from []int, to int) error
	ReorderLinksInCategory(ctx context.Context, owner domain.LinkOwner, category domain.ExerciseCategory, from []int, to int) error

	// Target sets (advanced target mode).
	AddTargetSet(ctx context.Context, linkID primitive.ObjectID, metrics SetMetrics) (*domain.TargetSet, error)
	UpdateTargetSet(ctx context.Context, targetSetID primitive.ObjectID, metrics SetMetrics) (*domain.TargetSet, error)
	DeleteTargetSet(ctx context.Context, targetSetID primitive.ObjectID) error
	ReorderTargetSets(ctx context.Context, linkID primitive.ObjectID, from []int, to int) error

	// Set records and reconciliation.
	SyncSetCounts(ctx context.Context, linkID primitive.ObjectID) (*LinkDetail, error)
	AddSet(ctx context.Context, linkID primitive.ObjectID) (*domain.SetRecord, error)
	UpdateSetRecord(ctx context.Context, setRecordID primitive.ObjectID, metrics SetMetrics, isTracked *bool) (*domain.SetRecord, error)
	RemoveSetAt(ctx context.Context, linkID primitive.ObjectID, position int) error
}

type linkService struct {
	linkRepo      repository.LinkRepository
	exerciseRepo  repository.ExerciseRepository
	templateRepo  repository.TemplateRepository
	eventRepo     repository.EventRepository
	targetSetRepo repository.TargetSetRepository
	setRecordRepo repository.SetRecordRepository
	tx            repository.TxRunner
}

// NewLinkService creates a new instance of linkService.
func NewLinkService(
	linkRepo repository.LinkRepository,
	exerciseRepo repository.ExerciseRepository,
	templateRepo repository.TemplateRepository,
	eventRepo repository.EventRepository,
	targetSetRepo repository.TargetSetRepository,
	setRecordRepo repository.SetRecordRepository,
	tx repository.TxRunner,
) LinkService {
	return &linkService{
		linkRepo:      linkRepo,
		exerciseRepo:  exerciseRepo,
		templateRepo:  templateRepo,
		eventRepo:     eventRepo,
		targetSetRepo: targetSetRepo,
		setRecordRepo: setRecordRepo,
		tx:            tx,
	}
}

// resolveOwner verifies that the owner side of a link actually exists.
func (s *linkService) resolveOwner(ctx context.Context, owner domain.LinkOwner) error {
	switch owner.Kind {
	case domain.OwnerTemplate:
		if _, err := s.templateRepo.GetByID(ctx, owner.ID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrTemplateNotFound
			}
			return err
		}
	case domain.OwnerEvent:
		if _, err := s.eventRepo.GetByID(ctx, owner.ID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrEventNotFound
			}
			return err
		}
	default:
		return fmt.Errorf("%w: owner kind must be template or event", ErrValidationFailed)
	}
	return nil
}

// AttachExercise adds an exercise to the end of a template's or event's
// exercise list. New entries start in simple target mode with no sets.
func (s *linkService) AttachExercise(ctx context.Context, owner domain.LinkOwner, exerciseID primitive.ObjectID) (*domain.WorkoutExerciseLink, error) {
	// 1. Both ends of the link must exist.
	if _, err := s.exerciseRepo.GetByID(ctx, exerciseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if err := s.resolveOwner(ctx, owner); err != nil {
		return nil, err
	}

	// 2. Append at the end of the owner's list.
	count, err := s.linkRepo.CountByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	link := &domain.WorkoutExerciseLink{
		ExerciseID: exerciseID,
		Owner:      owner,
		Order:      int(count),
		TargetMode: domain.TargetSimple,
	}
	linkID, err := s.linkRepo.Create(ctx, link)
	if err != nil {
		return nil, err
	}
	return s.linkRepo.GetByID(ctx, linkID)
}

// GetLinkByID retrieves one entry with its exercise and both set lists.
func (s *linkService) GetLinkByID(ctx context.Context, linkID primitive.ObjectID) (*LinkDetail, error) {
	link, err := s.linkRepo.GetByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}
	return s.loadDetail(ctx, link)
}

func (s *linkService) loadDetail(ctx context.Context, link *domain.WorkoutExerciseLink) (*LinkDetail, error) {
	// A missing exercise would be a broken invariant (deletion is refused
	// while referenced); surface the entry anyway rather than failing the
	// whole list.
	exercise, err := s.exerciseRepo.GetByID(ctx, link.ExerciseID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	targets, err := s.targetSetRepo.GetByLinkID(ctx, link.ID)
	if err != nil {
		return nil, err
	}
	sets, err := s.setRecordRepo.GetByLinkID(ctx, link.ID)
	if err != nil {
		return nil, err
	}
	return &LinkDetail{Link: *link, Exercise: exercise, TargetSets: targets, Sets: sets}, nil
}

// ListLinks returns the owner's exercise entries in order, fully loaded.
func (s *linkService) ListLinks(ctx context.Context, owner domain.LinkOwner) ([]LinkDetail, error) {
	if err := s.resolveOwner(ctx, owner); err != nil {
		return nil, err
	}
	links, err := s.linkRepo.GetByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	details := make([]LinkDetail, 0, len(links))
	for i := range links {
		detail, err := s.loadDetail(ctx, &links[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

// UpdateLink edits an entry's notes and target settings. Switching target
// mode never touches the other mode's data: the free-text note and the
// structured target list coexist, and whichever mode is active is the one
// that counts.
func (s *linkService) UpdateLink(ctx context.Context, linkID primitive.ObjectID, notes string, targetMode domain.TargetMode, targetNote string) (*domain.WorkoutExerciseLink, error) {
	if !targetMode.Valid() {
		return nil, fmt.Errorf("%w: unknown target mode %q", ErrValidationFailed, targetMode)
	}

	link, err := s.linkRepo.GetByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}

	link.Notes = notes
	link.TargetMode = targetMode
	link.TargetNote = targetNote
	if err := s.linkRepo.Update(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// ToggleLinkCompleted flips an entry's completed checkmark.
func (s *linkService) ToggleLinkCompleted(ctx context.Context, linkID primitive.ObjectID) (*domain.WorkoutExerciseLink, error) {
	link, err := s.linkRepo.GetByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}

	link.IsCompleted = !link.IsCompleted
	if err := s.linkRepo.Update(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// DeleteLink removes an entry together with its target sets and set records,
// then closes the gap in the owner's list. One transaction.
func (s *linkService) DeleteLink(ctx context.Context, linkID primitive.ObjectID) error {
	link, err := s.linkRepo.GetByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLinkNotFound
		}
		return err
	}

	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.targetSetRepo.DeleteByLinkID(ctx, linkID); err != nil {
			return err
		}
		if err := s.setRecordRepo.DeleteByLinkID(ctx, linkID); err != nil {
			return err
		}
		if err := s.linkRepo.Delete(ctx, linkID); err != nil {
			return err
		}
		return s.reindexLinks(ctx, link.Owner)
	})
}

// reindexLinks reassigns dense 0..N-1 orders over one owner's entries.
func (s *linkService) reindexLinks(ctx context.Context, owner domain.LinkOwner) error {
	links, err := s.linkRepo.GetByOwner(ctx, owner)
	if err != nil {
		return err
	}
	var updates []repository.OrderUpdate
	for i, l := range links {
		if l.Order != i {
			updates = append(updates, repository.OrderUpdate{ID: l.ID, Order: i})
		}
	}
	if len(updates) == 0 {
		return nil
	}
	return s.linkRepo.UpdateOrders(ctx, updates)
}

// ReorderLinks moves the entries at the from positions of an owner's list,
// as one block, to offset to.
func (s *linkService) ReorderLinks(ctx context.Context, owner domain.LinkOwner, from []int, to int) error {
	links, err := s.linkRepo.GetByOwner(ctx, owner)
	if err != nil {
		return err
	}

	arrangement, err := domain.MoveIndices(len(links), from, to)
	if err != nil {
		return err
	}

	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return s.linkRepo.UpdateOrders(ctx, orderUpdates(arrangement, func(old int) primitive.ObjectID {
			return links[old].ID
		}))
	})
}

// ReorderLinksInCategory moves entries within the subset of the owner's list
// whose exercises are of one category, as shown by a category-filtered view.
// Entries of other categories keep their slots, and the full recomputed
// order is persisted.
func (s *linkService) ReorderLinksInCategory(ctx context.Context, owner domain.LinkOwner, category domain.ExerciseCategory, from []int, to int) error {
	if !category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrValidationFailed, category)
	}

	links, err := s.linkRepo.GetByOwner(ctx, owner)
	if err != nil {
		return err
	}

	var scope []int
	for i := range links {
		exercise, err := s.exerciseRepo.GetByID(ctx, links[i].ExerciseID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return err
		}
		if exercise.Category == category {
			scope = append(scope, i)
		}
	}

	arrangement, err := domain.MoveWithinScope(len(links), scope, from, to)
	if err != nil {
		return err
	}

	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return s.linkRepo.UpdateOrders(ctx, orderUpdates(arrangement, func(old int) primitive.ObjectID {
			return links[old].ID
		}))
	})
}

// --- Target sets ---

// AddTargetSet appends one planned set to the entry's target list.
func (s *linkService) AddTargetSet(ctx context.Context, linkID primitive.ObjectID, metrics SetMetrics) (*domain.TargetSet, error) {
	if _, err := s.linkRepo.GetByID(ctx, linkID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}

	count, err := s.targetSetRepo.CountByLinkID(ctx, linkID)
	if err != nil {
		return nil, err
	}

	target := &domain.TargetSet{LinkID: linkID, Order: int(count)}
	applyMetricsToTarget(target, metrics)

	targetID, err := s.targetSetRepo.Create(ctx, target)
	if err != nil {
		return nil, err
	}
	return s.targetSetRepo.GetByID(ctx, targetID)
}

// UpdateTargetSet overwrites a planned set's metrics.
func (s *linkService) UpdateTargetSet(ctx context.Context, targetSetID primitive.ObjectID, metrics SetMetrics) (*domain.TargetSet, error) {
	target, err := s.targetSetRepo.GetByID(ctx, targetSetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTargetSetNotFound
		}
		return nil, err
	}

	applyMetricsToTarget(target, metrics)
	if err := s.targetSetRepo.Update(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

// DeleteTargetSet removes one planned set and closes the gap in the entry's
// target list. One transaction.
func (s *linkService) DeleteTargetSet(ctx context.Context, targetSetID primitive.ObjectID) error {
	target, err := s.targetSetRepo.GetByID(ctx, targetSetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTargetSetNotFound
		}
		return err
	}

	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.targetSetRepo.Delete(ctx, targetSetID); err != nil {
			return err
		}
		return s.reindexTargetSets(ctx, target.LinkID)
	})
}

func (s *linkService) reindexTargetSets(ctx context.Context, linkID primitive.ObjectID) error {
	targets, err := s.targetSetRepo.GetByLinkID(ctx, linkID)
	if err != nil {
		return err
	}
	var updates []repository.OrderUpdate
	for i, t := range targets {
		if t.Order != i {
			updates = append(updates, repository.OrderUpdate{ID: t.ID, Order: i})
		}
	}
	if len(updates) == 0 {
		return nil
	}
	return s.targetSetRepo.UpdateOrders(ctx, updates)
}

// ReorderTargetSets moves the planned sets at the from positions, as one
// block, to offset to within the entry's target list.
func (s *linkService) ReorderTargetSets(ctx context.Context, linkID primitive.ObjectID, from []int, to int) error {
	targets, err := s.targetSetRepo.GetByLinkID(ctx, linkID)
	if err != nil {
		return err
	}

	arrangement, err := domain.MoveIndices(len(targets), from, to)
	if err != nil {
		return err
	}

	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return s.targetSetRepo.UpdateOrders(ctx, orderUpdates(arrangement, func(old int) primitive.ObjectID {
			return targets[old].ID
		}))
	})
}

// --- Set records & reconciliation ---

// setRecordDate picks the date new set records carry: the owning event's
// day, or the current moment for template-owned entries.
func (s *linkService) setRecordDate(ctx context.Context, link *domain.WorkoutExerciseLink) time.Time {
	if link.Owner.Kind == domain.OwnerEvent {
		if event, err := s.eventRepo.GetByID(ctx, link.Owner.ID); err == nil {
			return event.Date
		}
	}
	return time.Now().UTC()
}

// SyncSetCounts equalizes the entry's target and actual set counts by
// appending to the shorter list until both reach the longer one's length.
// Existing sets are never removed, reordered or rewritten; the operation
// only appends, so it cannot lose data. One transaction.
func (s *linkService) SyncSetCounts(ctx context.Context, linkID primitive.ObjectID) (*LinkDetail, error) {
	link, err := s.linkRepo.GetByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		targets, err := s.targetSetRepo.GetByLinkID(ctx, linkID)
		if err != nil {
			return err
		}
		sets, err := s.setRecordRepo.GetByLinkID(ctx, linkID)
		if err != nil {
			return err
		}

		maxCount := len(targets)
		if len(sets) > maxCount {
			maxCount = len(sets)
		}
		if len(targets) == maxCount && len(sets) == maxCount {
			return nil // Already in step.
		}

		for i := len(targets); i < maxCount; i++ {
			target := &domain.TargetSet{LinkID: linkID, Order: i}
			if _, err := s.targetSetRepo.Create(ctx, target); err != nil {
				return err
			}
			targets = append(targets, *target)
		}

		setType := domain.SetTypeResistance
		if exercise, err := s.exerciseRepo.GetByID(ctx, link.ExerciseID); err == nil {
			setType = exercise.SetType()
		}
		date := s.setRecordDate(ctx, link)

		for i := len(sets); i < maxCount; i++ {
			record := &domain.SetRecord{
				LinkID: linkID,
				Type:   setType,
				Date:   date,
				Order:  i,
			}
			if i < len(targets) {
				record.CopyTargets(&targets[i])
			}
			if _, err := s.setRecordRepo.Create(ctx, record); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.loadDetail(ctx, link)
}

// AddSet appends exactly one set record to the entry, typed from its
// exercise and dated from its owning event. The plan at the same position,
// if any, is echoed into the record's target fields.
func (s *linkService) AddSet(ctx context.Context, linkID primitive.ObjectID) (*domain.SetRecord, error) {
	link, err := s.linkRepo.GetByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}

	count, err := s.setRecordRepo.CountByLinkID(ctx, linkID)
	if err != nil {
		return nil, err
	}

	setType := domain.SetTypeResistance
	if exercise, err := s.exerciseRepo.GetByID(ctx, link.ExerciseID); err == nil {
		setType = exercise.SetType()
	}

	record := &domain.SetRecord{
		LinkID: linkID,
		Type:   setType,
		Date:   s.setRecordDate(ctx, link),
		Order:  int(count),
	}

	targets, err := s.targetSetRepo.GetByLinkID(ctx, linkID)
	if err != nil {
		return nil, err
	}
	if int(count) < len(targets) {
		record.CopyTargets(&targets[count])
	}

	recordID, err := s.setRecordRepo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return s.setRecordRepo.GetByID(ctx, recordID)
}

// UpdateSetRecord logs the actuals of a performed set. isTracked, when
// non-nil, also flips whether the set counts toward history.
func (s *linkService) UpdateSetRecord(ctx context.Context, setRecordID primitive.ObjectID, metrics SetMetrics, isTracked *bool) (*domain.SetRecord, error) {
	record, err := s.setRecordRepo.GetByID(ctx, setRecordID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSetRecordNotFound
		}
		return nil, err
	}

	record.Weight = metrics.Weight
	record.Reps = metrics.Reps
	record.RPE = metrics.RPE
	record.Duration = metrics.Duration
	record.Distance = metrics.Distance
	record.Resistance = metrics.Resistance
	record.HeartRate = metrics.HeartRate
	if isTracked != nil {
		record.IsTracked = *isTracked
	}

	if err := s.setRecordRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// RemoveSetAt deletes the whole set row at one position: the set record
// there and the target set at the same position when present. Both lists
// are re-indexed afterwards, so the counts stay in step and reconciliation
// will not resurrect the row. One transaction.
func (s *linkService) RemoveSetAt(ctx context.Context, linkID primitive.ObjectID, position int) error {
	if _, err := s.linkRepo.GetByID(ctx, linkID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLinkNotFound
		}
		return err
	}

	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		sets, err := s.setRecordRepo.GetByLinkID(ctx, linkID)
		if err != nil {
			return err
		}
		if position < 0 || position >= len(sets) {
			return domain.ErrIndexOutOfRange
		}
		if err := s.setRecordRepo.Delete(ctx, sets[position].ID); err != nil {
			return err
		}

		targets, err := s.targetSetRepo.GetByLinkID(ctx, linkID)
		if err != nil {
			return err
		}
		if position < len(targets) {
			if err := s.targetSetRepo.Delete(ctx, targets[position].ID); err != nil {
				return err
			}
		}

		if err := s.reindexSetRecords(ctx, linkID); err != nil {
			return err
		}
		return s.reindexTargetSets(ctx, linkID)
	})
}

func (s *linkService) reindexSetRecords(ctx context.Context, linkID primitive.ObjectID) error {
	sets, err := s.setRecordRepo.GetByLinkID(ctx, linkID)
	if err != nil {
		return err
	}
	var updates []repository.OrderUpdate
	for i, rec := range sets {
		if rec.Order != i {
			updates = append(updates, repository.OrderUpdate{ID: rec.ID, Order: i})
		}
	}
	if len(updates) == 0 {
		return nil
	}
	return s.setRecordRepo.UpdateOrders(ctx, updates)
}

func applyMetricsToTarget(target *domain.TargetSet, metrics SetMetrics) {
	target.Weight = metrics.Weight
	target.Reps = metrics.Reps
	target.RPE = metrics.RPE
	target.Duration = metrics.Duration
	target.Distance = metrics.Distance
	target.Resistance = metrics.Resistance
	target.HeartRate = metrics.HeartRate
}
