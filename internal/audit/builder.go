package audit

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/victortedesco/inventory-management/internal/domain"
)

// FailureMode decides what a capture error does to the surrounding commit.
type FailureMode int

const (
	// FailureModeSkip drops the failing entity's entries and lets the commit proceed.
	FailureModeSkip FailureMode = iota
	// FailureModeFail aborts the commit.
	FailureModeFail
)

var ErrCaptureFailed = errors.New("audit capture failed")

func ParseFailureMode(s string) (FailureMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skip":
		return FailureModeSkip, nil
	case "fail":
		return FailureModeFail, nil
	}
	return FailureModeSkip, fmt.Errorf("unknown audit failure mode %q", s)
}

type Option func(*Builder)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

func WithFailureMode(mode FailureMode) Option {
	return func(b *Builder) { b.mode = mode }
}

// Builder turns change sets into audit log rows.
type Builder struct {
	policy *Policy
	now    func() time.Time
	mode   FailureMode
}

func NewBuilder(policy *Policy, opts ...Option) *Builder {
	b := &Builder{policy: policy, now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Builder) Policy() *Policy { return b.policy }

// Tolerate applies the failure mode to a capture error for one entity.
// It returns nil when the commit may continue without that entity's entries.
func (b *Builder) Tolerate(entityType, entityID string, err error) error {
	if b.mode == FailureModeFail {
		return fmt.Errorf("%w: %s %s: %v", ErrCaptureFailed, entityType, entityID, err)
	}
	log.Printf("audit degraded: skipping %s %s: %v", entityType, entityID, err)
	CaptureDegraded.WithLabelValues(entityType).Inc()
	return nil
}

// Now reads the builder's clock at the precision the database keeps.
func (b *Builder) Now() time.Time {
	return b.now().UTC().Truncate(time.Microsecond)
}

// Build emits one entry per tracked, changed property. Every entry of one
// call shares the same user and timestamp.
func (b *Builder) Build(sets []ChangeSet, userID string) ([]domain.AuditLog, error) {
	return b.BuildAt(sets, userID, b.Now())
}

// BuildAt is Build with the batch timestamp supplied by the caller.
func (b *Builder) BuildAt(sets []ChangeSet, userID string, at time.Time) ([]domain.AuditLog, error) {
	if strings.TrimSpace(userID) == "" {
		userID = domain.AnonymousUser
	}
	ts := at.UTC()

	var logs []domain.AuditLog
	for _, set := range sets {
		entries, err := b.build(set, userID, ts)
		if err != nil {
			if err := b.Tolerate(set.EntityType, set.EntityID, err); err != nil {
				return nil, err
			}
			continue
		}
		logs = append(logs, entries...)
	}
	return logs, nil
}

func (b *Builder) build(set ChangeSet, userID string, ts time.Time) (entries []domain.AuditLog, err error) {
	defer func() {
		if r := recover(); r != nil {
			entries, err = nil, fmt.Errorf("build entries: %v", r)
		}
	}()

	entry := func(action domain.AuditActionType, property string, oldValue, newValue *string) domain.AuditLog {
		return domain.AuditLog{
			ActionType: action,
			EntityType: set.EntityType,
			EntityName: set.DisplayName,
			EntityID:   set.EntityID,
			Property:   property,
			OldValue:   oldValue,
			NewValue:   newValue,
			UserID:     userID,
			Timestamp:  ts,
		}
	}

	switch set.State {
	case Added:
		for _, p := range set.Properties {
			if !b.policy.IsTracked(set.EntityType, p.Name) {
				continue
			}
			if b.policy.SuppressDefaults && IsDefaultValue(p.Current) {
				continue
			}
			entries = append(entries, entry(domain.AuditActionCreate, p.Name, nil, Stringify(p.Current)))
		}
	case Deleted:
		for _, p := range set.Properties {
			if !b.policy.IsTracked(set.EntityType, p.Name) {
				continue
			}
			if b.policy.SuppressDefaults && IsDefaultValue(p.Original) {
				continue
			}
			entries = append(entries, entry(domain.AuditActionDelete, p.Name, Stringify(p.Original), nil))
		}
	case Modified:
		for _, p := range set.Properties {
			if !b.policy.IsTrackedOnUpdate(set.EntityType, p.Name) {
				continue
			}
			if Equal(p.Original, p.Current) {
				continue
			}
			if b.policy.RedactOnUpdate(p.Name) {
				entries = append(entries, entry(domain.AuditActionUpdate, p.Name, nil, nil))
				continue
			}
			entries = append(entries, entry(domain.AuditActionUpdate, p.Name, Stringify(p.Original), Stringify(p.Current)))
		}
	default:
		return nil, fmt.Errorf("unknown entity state %s", set.State)
	}
	return entries, nil
}
