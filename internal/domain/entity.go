package domain

import (
	"time"

	"github.com/google/uuid"
)

// Property is one named scalar value of an entity, as seen by change tracking.
type Property struct {
	Name  string
	Value any
}

// Trackable is implemented by every entity whose writes are audited.
// AuditProperties must list every scalar property in a stable order and
// return values, not pointers into the entity.
type Trackable interface {
	EntityType() string
	PrimaryKey() string
	DisplayName() *string
	AuditProperties() []Property
}

// Entity holds the columns shared by all inventory records.
type Entity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	CreatedBy string    `gorm:"type:varchar(64)" json:"created_by"`
	UpdatedBy string    `gorm:"type:varchar(64)" json:"updated_by"`
	CreatedAt time.Time `gorm:"autoCreateTime:false;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false;not null" json:"updated_at"`
}

// NewEntity assigns the primary key up front so it is known before the
// row is written.
func NewEntity(name, actor string) Entity {
	return Entity{
		ID:        uuid.New(),
		Name:      name,
		CreatedBy: actor,
		UpdatedBy: actor,
	}
}

func (e *Entity) PrimaryKey() string { return e.ID.String() }

func (e *Entity) DisplayName() *string {
	if e.Name == "" {
		return nil
	}
	name := e.Name
	return &name
}

// Touch stamps the write time. The unit of work calls it with the timestamp
// of the audit entries it writes in the same commit.
func (e *Entity) Touch(at time.Time, created bool) {
	if created {
		e.CreatedAt = at
	}
	e.UpdatedAt = at
}

// CreatedAt and UpdatedAt are set through Touch and not audited.
func (e *Entity) baseProperties() []Property {
	return []Property{
		{Name: "Id", Value: e.ID},
		{Name: "Name", Value: e.Name},
		{Name: "CreatedBy", Value: e.CreatedBy},
		{Name: "UpdatedBy", Value: e.UpdatedBy},
	}
}

func optionalUUID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return *id
}
