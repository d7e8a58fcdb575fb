package domain

type Category struct {
	Entity
}

func NewCategory(name, actor string) *Category {
	return &Category{Entity: NewEntity(name, actor)}
}

func (c *Category) EntityType() string { return "Category" }

func (c *Category) AuditProperties() []Property {
	return c.baseProperties()
}
