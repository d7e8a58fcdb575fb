package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/victortedesco/inventory-management/internal/audit"
	"github.com/victortedesco/inventory-management/internal/domain"
	"github.com/victortedesco/inventory-management/internal/interfaces"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCommitFailed = errors.New("failed to commit changes")
	ErrNotFound     = errors.New("record not found")
)

// UnitOfWork tracks the entities touched by one business operation and
// writes them, together with their audit log entries, in one transaction.
// A unit of work belongs to a single request and is not safe for
// concurrent use.
type UnitOfWork interface {
	Attach(entity domain.Trackable)
	Add(entity domain.Trackable)
	Remove(entity domain.Trackable)

	Categories() CategoryRepository
	Products() ProductRepository
	Boxes() BoxRepository

	Commit(ctx context.Context, actorID string) error
}

// UnitOfWorkFactory opens a fresh unit of work.
type UnitOfWorkFactory func() UnitOfWork

const unchanged audit.State = 0

type tracked struct {
	entity   domain.Trackable
	state    audit.State
	original []domain.Property
	err      error
}

type unitOfWork struct {
	db        *gorm.DB
	builder   *audit.Builder
	publisher interfaces.ProducerHandler

	entries []*tracked
	removed []*tracked
	index   map[domain.Trackable]*tracked
}

func NewUnitOfWork(db *gorm.DB, builder *audit.Builder, publisher interfaces.ProducerHandler) UnitOfWork {
	return &unitOfWork{
		db:        db,
		builder:   builder,
		publisher: publisher,
		index:     make(map[domain.Trackable]*tracked),
	}
}

func NewUnitOfWorkFactory(db *gorm.DB, builder *audit.Builder, publisher interfaces.ProducerHandler) UnitOfWorkFactory {
	return func() UnitOfWork {
		return NewUnitOfWork(db, builder, publisher)
	}
}

func (u *unitOfWork) Attach(entity domain.Trackable) {
	if entity == nil {
		return
	}
	if _, ok := u.index[entity]; ok {
		return
	}
	t := &tracked{entity: entity, state: unchanged}
	t.original, t.err = audit.Snapshot(entity)
	u.entries = append(u.entries, t)
	u.index[entity] = t
}

func (u *unitOfWork) Add(entity domain.Trackable) {
	if entity == nil {
		return
	}
	if t, ok := u.index[entity]; ok {
		if t.state == audit.Deleted {
			t.state = unchanged
			u.removed = without(u.removed, t)
			u.entries = append(u.entries, t)
		}
		return
	}
	t := &tracked{entity: entity, state: audit.Added}
	u.entries = append(u.entries, t)
	u.index[entity] = t
}

func (u *unitOfWork) Remove(entity domain.Trackable) {
	if entity == nil {
		return
	}
	t, ok := u.index[entity]
	if !ok {
		u.Attach(entity)
		t = u.index[entity]
	}
	switch t.state {
	case audit.Added:
		u.entries = without(u.entries, t)
		delete(u.index, entity)
	case audit.Deleted:
	default:
		t.state = audit.Deleted
		u.entries = without(u.entries, t)
		u.removed = append(u.removed, t)
	}
}

func (u *unitOfWork) Categories() CategoryRepository {
	return &categoryRepository{db: u.db, uow: u}
}

func (u *unitOfWork) Products() ProductRepository {
	return &productRepository{db: u.db, uow: u}
}

func (u *unitOfWork) Boxes() BoxRepository {
	return &boxRepository{db: u.db, uow: u}
}

// Commit writes every pending insert, update and delete plus the audit
// entries describing them. Either all of it persists or none of it does.
func (u *unitOfWork) Commit(ctx context.Context, actorID string) error {
	now := u.builder.Now()
	pending, sets, err := u.detectChanges(now)
	if err != nil {
		audit.Commits.WithLabelValues("failed").Inc()
		return fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}
	if len(pending) == 0 {
		return nil
	}

	entries, err := u.builder.BuildAt(sets, actorID, now)
	if err != nil {
		audit.Commits.WithLabelValues("failed").Inc()
		return fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, c := range pending {
			if err := c.write(tx); err != nil {
				return err
			}
		}
		if len(entries) > 0 {
			if err := tx.Create(&entries).Error; err != nil {
				return fmt.Errorf("insert audit entries: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("commit unit of work error: %v", err)
		audit.Commits.WithLabelValues("failed").Inc()
		return fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}

	u.reset(pending)
	audit.Commits.WithLabelValues("committed").Inc()
	audit.RecordEntries(entries)
	u.publish(entries)
	return nil
}

// change is one pending write.
type change struct {
	t     *tracked
	state audit.State
}

// timestamped entities carry their own write time.
type timestamped interface {
	Touch(at time.Time, created bool)
}

// detectChanges lists the pending writes in the order they will run
// (inserts and updates in tracking order, then deletes in removal order),
// stamps inserts and updates with now and builds one change set per
// written entity.
func (u *unitOfWork) detectChanges(now time.Time) ([]change, []audit.ChangeSet, error) {
	var pending []change
	for _, t := range u.entries {
		switch {
		case t.state == audit.Added:
			pending = append(pending, change{t, audit.Added})
		case t.err != nil:
			// no usable snapshot, written without entries
			pending = append(pending, change{t, audit.Modified})
		default:
			current, err := audit.Snapshot(t.entity)
			if err != nil || audit.Differs(t.original, current) {
				pending = append(pending, change{t, audit.Modified})
			}
		}
	}
	for _, t := range u.removed {
		pending = append(pending, change{t, audit.Deleted})
	}

	var sets []audit.ChangeSet
	for _, c := range pending {
		if e, ok := c.t.entity.(timestamped); ok && c.state != audit.Deleted {
			e.Touch(now, c.state == audit.Added)
		}
		set, err := c.changeSet()
		if err != nil {
			if err := u.builder.Tolerate(c.t.entity.EntityType(), c.t.entity.PrimaryKey(), err); err != nil {
				return nil, nil, err
			}
			continue
		}
		sets = append(sets, set)
	}
	return pending, sets, nil
}

func (c change) changeSet() (audit.ChangeSet, error) {
	if c.t.err != nil {
		return audit.ChangeSet{}, c.t.err
	}
	return audit.NewChangeSet(c.state, c.t.entity, c.t.original)
}

func (c change) write(tx *gorm.DB) error {
	var err error
	switch c.state {
	case audit.Added:
		err = tx.Omit(clause.Associations).Create(c.t.entity).Error
	case audit.Modified:
		err = tx.Omit(clause.Associations).Save(c.t.entity).Error
	case audit.Deleted:
		err = tx.Delete(c.t.entity).Error
	}
	if err != nil {
		return fmt.Errorf("%s %s %s: %w", c.state, c.t.entity.EntityType(), c.t.entity.PrimaryKey(), err)
	}
	return nil
}

// reset makes the committed state the new baseline.
func (u *unitOfWork) reset(pending []change) {
	for _, c := range pending {
		if c.state == audit.Deleted {
			delete(u.index, c.t.entity)
			continue
		}
		c.t.state = unchanged
		c.t.original, c.t.err = audit.Snapshot(c.t.entity)
	}
	u.removed = nil
}

func (u *unitOfWork) publish(entries []domain.AuditLog) {
	if u.publisher == nil {
		return
	}
	for _, e := range entries {
		value, err := json.Marshal(e)
		if err != nil {
			log.Printf("marshal audit entry error: %v", err)
			continue
		}
		if err := u.publisher.PublishMessage([]byte(e.EntityID), value); err != nil {
			log.Printf("publish audit entry error: %v", err)
		}
	}
}

func without(list []*tracked, t *tracked) []*tracked {
	out := list[:0]
	for _, item := range list {
		if item != t {
			out = append(out, item)
		}
	}
	return out
}
