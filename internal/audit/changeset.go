package audit

import (
	"fmt"

	"github.com/victortedesco/inventory-management/internal/domain"
)

type State int

const (
	Added State = iota + 1
	Modified
	Deleted
)

func (s State) String() string {
	switch s {
	case Added:
		return "Added"
	case Modified:
		return "Modified"
	case Deleted:
		return "Deleted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type PropertyChange struct {
	Name     string
	Original any
	Current  any
}

// ChangeSet is the before/after view of one entity in one commit.
type ChangeSet struct {
	State       State
	EntityType  string
	EntityID    string
	DisplayName *string
	Properties  []PropertyChange
}

// Snapshot reads the entity's properties, turning a panic in the entity's
// property table into an error.
func Snapshot(entity domain.Trackable) (props []domain.Property, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read properties of %T: %v", entity, r)
		}
	}()
	return entity.AuditProperties(), nil
}

// NewChangeSet pairs the original snapshot with the entity's current
// properties. Added entities have no originals; Deleted entities have no
// current values and are described by their original snapshot, which may be
// nil when the entity was never loaded through the unit of work.
func NewChangeSet(state State, entity domain.Trackable, original []domain.Property) (ChangeSet, error) {
	set := ChangeSet{
		State:       state,
		EntityType:  entity.EntityType(),
		EntityID:    entity.PrimaryKey(),
		DisplayName: entity.DisplayName(),
	}

	current, err := Snapshot(entity)
	if err != nil {
		return set, err
	}

	switch state {
	case Added:
		for _, p := range current {
			set.Properties = append(set.Properties, PropertyChange{Name: p.Name, Current: p.Value})
		}
	case Deleted:
		if original == nil {
			original = current
		}
		for _, p := range original {
			set.Properties = append(set.Properties, PropertyChange{Name: p.Name, Original: p.Value})
		}
		if name, ok := lookup(original, "Name"); ok {
			if s, ok := name.(string); ok && s != "" {
				set.DisplayName = &s
			}
		}
	case Modified:
		for _, p := range current {
			orig, _ := lookup(original, p.Name)
			set.Properties = append(set.Properties, PropertyChange{Name: p.Name, Original: orig, Current: p.Value})
		}
	default:
		return set, fmt.Errorf("unknown entity state %s", state)
	}
	return set, nil
}

// Differs reports whether any property changed between two snapshots of
// the same entity.
func Differs(original, current []domain.Property) bool {
	if len(original) != len(current) {
		return true
	}
	for _, p := range current {
		orig, ok := lookup(original, p.Name)
		if !ok || !Equal(orig, p.Value) {
			return true
		}
	}
	return false
}

func lookup(props []domain.Property, name string) (any, bool) {
	for _, p := range props {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}
