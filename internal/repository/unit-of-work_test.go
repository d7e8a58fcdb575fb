package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/victortedesco/inventory-management/infra/database"
	"github.com/victortedesco/inventory-management/internal/audit"
	"github.com/victortedesco/inventory-management/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupInMemoryDB opens a private SQLite database with the full schema.
func setupInMemoryDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(database.SQLite(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a new database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	err = db.AutoMigrate(&domain.Category{}, &domain.Product{}, &domain.Box{}, &domain.ProductInBox{}, &domain.AuditLog{}, &fragileEntity{})
	require.NoError(t, err)
	return db
}

func newTestUnitOfWork(t *testing.T, db *gorm.DB, opts ...audit.Option) UnitOfWork {
	t.Helper()
	policy, err := audit.PolicyVersion(audit.PolicyRedactedImages)
	require.NoError(t, err)
	return NewUnitOfWork(db, audit.NewBuilder(policy, opts...), nil)
}

func auditEntries(t *testing.T, db *gorm.DB, entityID string) []domain.AuditLog {
	t.Helper()
	var logs []domain.AuditLog
	require.NoError(t, db.Where("entity_id = ?", entityID).Order("id ASC").Find(&logs).Error)
	return logs
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

// fragileEntity can be made to fail while its properties are read.
type fragileEntity struct {
	domain.Entity
	Broken bool `gorm:"-"`
}

func (f *fragileEntity) EntityType() string { return "Fragile" }

func (f *fragileEntity) AuditProperties() []domain.Property {
	if f.Broken {
		panic("property table unavailable")
	}
	return []domain.Property{{Name: "Name", Value: f.Name}}
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) PublishMessage(key, value []byte) error {
	args := m.Called(key, value)
	return args.Error(0)
}

func TestCommit_CreateWritesEntityAndEntries(t *testing.T) {
	db := setupInMemoryDB(t)
	uow := newTestUnitOfWork(t, db)

	category := domain.NewCategory("Tools", "u-1")
	uow.Add(category)
	require.NoError(t, uow.Commit(context.Background(), "u-1"))

	assert.Equal(t, int64(1), countRows(t, db, &domain.Category{}))

	logs := auditEntries(t, db, category.ID.String())
	require.NotEmpty(t, logs)
	var sawName bool
	for _, l := range logs {
		assert.Equal(t, domain.AuditActionCreate, l.ActionType)
		assert.Equal(t, "Category", l.EntityType)
		assert.Equal(t, "u-1", l.UserID)
		assert.Nil(t, l.OldValue)
		assert.True(t, l.Timestamp.Equal(logs[0].Timestamp))
		if l.Property == "Name" {
			sawName = true
			require.NotNil(t, l.NewValue)
			assert.Equal(t, "Tools", *l.NewValue)
		}
	}
	assert.True(t, sawName)
}

func TestCommit_TimestampsMatchStoredRowAndEntries(t *testing.T) {
	db := setupInMemoryDB(t)
	ctx := context.Background()
	policy, err := audit.PolicyVersion(audit.PolicyAllProperties)
	require.NoError(t, err)

	at := time.Date(2025, 3, 14, 12, 0, 0, 123456000, time.UTC)
	builder := audit.NewBuilder(policy, audit.WithClock(func() time.Time { return at }))

	category := domain.NewCategory("Tools", "u-1")
	uow := NewUnitOfWork(db, builder, nil)
	uow.Add(category)
	require.NoError(t, uow.Commit(ctx, "u-1"))

	var stored domain.Category
	require.NoError(t, db.First(&stored, "id = ?", category.ID).Error)
	assert.True(t, stored.CreatedAt.Equal(at))
	assert.True(t, stored.UpdatedAt.Equal(at))

	columns := map[string]*string{}
	for _, p := range stored.AuditProperties() {
		columns[p.Name] = audit.Stringify(p.Value)
	}
	created := auditEntries(t, db, category.ID.String())
	require.Len(t, created, len(columns))
	for _, e := range created {
		want, ok := columns[e.Property]
		require.True(t, ok, e.Property)
		assert.Equal(t, want, e.NewValue, e.Property)
		assert.True(t, e.Timestamp.Equal(stored.CreatedAt), e.Property)
	}

	createdAt := at
	at = at.Add(time.Minute)
	uow = NewUnitOfWork(db, builder, nil)
	loaded, err := uow.Categories().FindByID(ctx, category.ID)
	require.NoError(t, err)
	loaded.Name = "Hand Tools"
	require.NoError(t, uow.Commit(ctx, "u-2"))

	require.NoError(t, db.First(&stored, "id = ?", category.ID).Error)
	assert.True(t, stored.CreatedAt.Equal(createdAt))
	assert.True(t, stored.UpdatedAt.Equal(at))

	logs := auditEntries(t, db, category.ID.String())
	require.Len(t, logs, len(created)+1)
	update := logs[len(logs)-1]
	assert.Equal(t, domain.AuditActionUpdate, update.ActionType)
	assert.Equal(t, "Name", update.Property)
	assert.True(t, update.Timestamp.Equal(stored.UpdatedAt))
}

func TestCommit_NothingPendingIsNoop(t *testing.T) {
	db := setupInMemoryDB(t)
	assert.NoError(t, newTestUnitOfWork(t, db).Commit(context.Background(), "u-1"))

	category := domain.NewCategory("Tools", "u-1")
	uow := newTestUnitOfWork(t, db)
	uow.Add(category)
	require.NoError(t, uow.Commit(context.Background(), "u-1"))
	before := countRows(t, db, &domain.AuditLog{})

	uow = newTestUnitOfWork(t, db)
	_, err := uow.Categories().FindByID(context.Background(), category.ID)
	require.NoError(t, err)
	require.NoError(t, uow.Commit(context.Background(), "u-2"))

	assert.Equal(t, before, countRows(t, db, &domain.AuditLog{}))
}

func TestCommit_UpdateIsPerProperty(t *testing.T) {
	db := setupInMemoryDB(t)
	ctx := context.Background()

	product := domain.NewProduct("Hammer", "u-1")
	product.UnitPrice = decimal.RequireFromString("10.00")
	uow := newTestUnitOfWork(t, db)
	uow.Add(product)
	require.NoError(t, uow.Commit(ctx, "u-1"))

	uow = newTestUnitOfWork(t, db)
	loaded, err := uow.Products().FindByID(ctx, product.ID)
	require.NoError(t, err)
	loaded.UnitPrice = decimal.RequireFromString("12.50")
	require.NoError(t, uow.Commit(ctx, "u-1"))

	var updates []domain.AuditLog
	require.NoError(t, db.Where("entity_id = ? AND action_type = ?", product.ID.String(), domain.AuditActionUpdate).Find(&updates).Error)
	require.Len(t, updates, 1)
	assert.Equal(t, "UnitPrice", updates[0].Property)
	assert.Equal(t, "10.00", *updates[0].OldValue)
	assert.Equal(t, "12.50", *updates[0].NewValue)

	stored, err := newTestUnitOfWork(t, db).Products().FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, stored.UnitPrice.Equal(decimal.RequireFromString("12.5")))
}

func TestCommit_SecondCommitOnlyWritesNewChanges(t *testing.T) {
	db := setupInMemoryDB(t)
	ctx := context.Background()

	uow := newTestUnitOfWork(t, db)
	category := domain.NewCategory("Tools", "u-1")
	uow.Add(category)
	require.NoError(t, uow.Commit(ctx, "u-1"))
	created := countRows(t, db, &domain.AuditLog{})

	category.Name = "Hand Tools"
	require.NoError(t, uow.Commit(ctx, "u-1"))

	logs := auditEntries(t, db, category.ID.String())
	assert.Len(t, logs, int(created)+1)
	last := logs[len(logs)-1]
	assert.Equal(t, domain.AuditActionUpdate, last.ActionType)
	assert.Equal(t, "Tools", *last.OldValue)
	assert.Equal(t, "Hand Tools", *last.NewValue)
}

func TestCommit_DeleteCapturesEntityID(t *testing.T) {
	db := setupInMemoryDB(t)
	ctx := context.Background()

	category := domain.NewCategory("Tools", "u-1")
	uow := newTestUnitOfWork(t, db)
	uow.Add(category)
	require.NoError(t, uow.Commit(ctx, "u-1"))

	uow = newTestUnitOfWork(t, db)
	loaded, err := uow.Categories().FindByID(ctx, category.ID)
	require.NoError(t, err)
	uow.Remove(loaded)
	require.NoError(t, uow.Commit(ctx, "u-2"))

	assert.Equal(t, int64(0), countRows(t, db, &domain.Category{}))

	var deletes []domain.AuditLog
	require.NoError(t, db.Where("action_type = ?", domain.AuditActionDelete).Find(&deletes).Error)
	require.NotEmpty(t, deletes)
	for _, l := range deletes {
		assert.Equal(t, category.ID.String(), l.EntityID)
		assert.Equal(t, "u-2", l.UserID)
		assert.Nil(t, l.NewValue)
		require.NotNil(t, l.EntityName)
		assert.Equal(t, "Tools", *l.EntityName)
	}
}

func TestCommit_RemoveAddedEntityIsForgotten(t *testing.T) {
	db := setupInMemoryDB(t)
	uow := newTestUnitOfWork(t, db)

	category := domain.NewCategory("Tools", "u-1")
	uow.Add(category)
	uow.Remove(category)
	require.NoError(t, uow.Commit(context.Background(), "u-1"))

	assert.Equal(t, int64(0), countRows(t, db, &domain.Category{}))
	assert.Equal(t, int64(0), countRows(t, db, &domain.AuditLog{}))
}

func failInserts(t *testing.T, db *gorm.DB, table string) {
	t.Helper()
	err := db.Callback().Create().Before("gorm:create").Register("test:fail_"+table, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			tx.AddError(errors.New("disk full"))
		}
	})
	require.NoError(t, err)
}

func TestCommit_AuditInsertFailureRollsBackBusinessRows(t *testing.T) {
	db := setupInMemoryDB(t)
	failInserts(t, db, "audit_logs")

	uow := newTestUnitOfWork(t, db)
	uow.Add(domain.NewCategory("Tools", "u-1"))
	err := uow.Commit(context.Background(), "u-1")

	assert.ErrorIs(t, err, ErrCommitFailed)
	assert.Equal(t, int64(0), countRows(t, db, &domain.Category{}))
	assert.Equal(t, int64(0), countRows(t, db, &domain.AuditLog{}))
}

func TestCommit_BusinessFailureWritesNoEntries(t *testing.T) {
	db := setupInMemoryDB(t)
	failInserts(t, db, "products")

	uow := newTestUnitOfWork(t, db)
	uow.Add(domain.NewCategory("Tools", "u-1"))
	product := domain.NewProduct("Hammer", "u-1")
	product.UnitPrice = decimal.NewFromInt(10)
	uow.Add(product)
	err := uow.Commit(context.Background(), "u-1")

	assert.ErrorIs(t, err, ErrCommitFailed)
	assert.Equal(t, int64(0), countRows(t, db, &domain.Category{}))
	assert.Equal(t, int64(0), countRows(t, db, &domain.AuditLog{}))
}

func TestCommit_CancelledContext(t *testing.T) {
	db := setupInMemoryDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	uow := newTestUnitOfWork(t, db)
	uow.Add(domain.NewCategory("Tools", "u-1"))
	err := uow.Commit(ctx, "u-1")

	assert.ErrorIs(t, err, ErrCommitFailed)
	assert.Equal(t, int64(0), countRows(t, db, &domain.Category{}))
	assert.Equal(t, int64(0), countRows(t, db, &domain.AuditLog{}))
}

func TestCommit_CaptureFailureSkipMode(t *testing.T) {
	db := setupInMemoryDB(t)
	uow := newTestUnitOfWork(t, db)

	fragile := &fragileEntity{Entity: domain.NewEntity("Fragile", "u-1"), Broken: true}
	category := domain.NewCategory("Tools", "u-1")
	uow.Add(fragile)
	uow.Add(category)
	require.NoError(t, uow.Commit(context.Background(), "u-1"))

	assert.Equal(t, int64(1), countRows(t, db, &fragileEntity{}))
	assert.Equal(t, int64(1), countRows(t, db, &domain.Category{}))
	assert.Empty(t, auditEntries(t, db, fragile.ID.String()))
	assert.NotEmpty(t, auditEntries(t, db, category.ID.String()))
}

func TestCommit_CaptureFailureFailMode(t *testing.T) {
	db := setupInMemoryDB(t)
	uow := newTestUnitOfWork(t, db, audit.WithFailureMode(audit.FailureModeFail))

	uow.Add(&fragileEntity{Entity: domain.NewEntity("Fragile", "u-1"), Broken: true})
	uow.Add(domain.NewCategory("Tools", "u-1"))
	err := uow.Commit(context.Background(), "u-1")

	assert.ErrorIs(t, err, ErrCommitFailed)
	assert.ErrorIs(t, err, audit.ErrCaptureFailed)
	assert.Equal(t, int64(0), countRows(t, db, &fragileEntity{}))
	assert.Equal(t, int64(0), countRows(t, db, &domain.Category{}))
	assert.Equal(t, int64(0), countRows(t, db, &domain.AuditLog{}))
}

func TestCommit_BoxWithLines(t *testing.T) {
	db := setupInMemoryDB(t)
	ctx := context.Background()

	product := domain.NewProduct("Hammer", "u-1")
	product.UnitPrice = decimal.NewFromInt(10)
	box := domain.NewBox("Starter kit", "u-1")
	box.Weight, box.Depth, box.Height, box.Width = 1, 2, 3, 4
	line := domain.NewProductInBox(box, product, 2, "u-1")

	uow := newTestUnitOfWork(t, db)
	uow.Add(product)
	uow.Add(box)
	uow.Add(line)
	require.NoError(t, uow.Commit(ctx, "u-1"))

	uow = newTestUnitOfWork(t, db)
	loaded, err := uow.Boxes().FindByID(ctx, box.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Products, 1)
	require.NotNil(t, loaded.Products[0].Product)
	assert.Equal(t, "Hammer", loaded.Products[0].Product.Name)

	for i := range loaded.Products {
		uow.Remove(&loaded.Products[i])
	}
	uow.Remove(loaded)
	require.NoError(t, uow.Commit(ctx, "u-1"))

	assert.Equal(t, int64(0), countRows(t, db, &domain.Box{}))
	assert.Equal(t, int64(0), countRows(t, db, &domain.ProductInBox{}))
	assert.Equal(t, int64(1), countRows(t, db, &domain.Product{}))

	var deletedTypes []string
	require.NoError(t, db.Model(&domain.AuditLog{}).Where("action_type = ?", domain.AuditActionDelete).Distinct().Pluck("entity_type", &deletedTypes).Error)
	assert.ElementsMatch(t, []string{"Box", "ProductInBox"}, deletedTypes)
}

func TestCommit_PublishesEntries(t *testing.T) {
	db := setupInMemoryDB(t)
	policy, err := audit.PolicyVersion(audit.PolicyNameOnly)
	require.NoError(t, err)

	producer := new(MockProducer)
	producer.On("PublishMessage", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	uow := NewUnitOfWork(db, audit.NewBuilder(policy), producer)
	category := domain.NewCategory("Tools", "u-1")
	uow.Add(category)
	require.NoError(t, uow.Commit(context.Background(), "u-1"))

	producer.AssertNumberOfCalls(t, "PublishMessage", 1)
	producer.AssertCalled(t, "PublishMessage", []byte(category.ID.String()), mock.Anything)
}
