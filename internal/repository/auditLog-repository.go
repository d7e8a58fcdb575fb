package repository

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/victortedesco/inventory-management/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AuditLogRepository reads the audit trail. Results are newest first.
// Entries are written by the unit of work only, so there is no write method.
type AuditLogRepository interface {
	GetAll(ctx context.Context, skip, take int) ([]domain.AuditLog, error)
	GetByEntityName(ctx context.Context, skip, take int, entityName string) ([]domain.AuditLog, error)
	GetByEntityID(ctx context.Context, skip, take int, entityID string) ([]domain.AuditLog, error)
	GetByEntityType(ctx context.Context, skip, take int, entityType string) ([]domain.AuditLog, error)
	GetByUserID(ctx context.Context, skip, take int, userID string) ([]domain.AuditLog, error)
	GetByActionType(ctx context.Context, skip, take int, action domain.AuditActionType) ([]domain.AuditLog, error)
	Count(ctx context.Context) (int64, error)
}

type auditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

var newestFirst = clause.OrderBy{Columns: []clause.OrderByColumn{
	{Column: clause.Column{Name: "timestamp"}, Desc: true},
	{Column: clause.Column{Name: "id"}, Desc: true},
}}

func (r *auditLogRepository) page(ctx context.Context, skip, take int) *gorm.DB {
	return r.db.WithContext(ctx).Model(&domain.AuditLog{}).Order(newestFirst).Offset(skip).Limit(take)
}

func (r *auditLogRepository) find(q *gorm.DB, op string) ([]domain.AuditLog, error) {
	var logs []domain.AuditLog
	if err := q.Find(&logs).Error; err != nil {
		log.Printf("%s error: %v", op, err)
		return nil, errors.New("failed to " + op)
	}
	return logs, nil
}

func (r *auditLogRepository) GetAll(ctx context.Context, skip, take int) ([]domain.AuditLog, error) {
	return r.find(r.page(ctx, skip, take), "list audit logs")
}

func (r *auditLogRepository) GetByEntityName(ctx context.Context, skip, take int, entityName string) ([]domain.AuditLog, error) {
	q := r.page(ctx, skip, take).Where("LOWER(entity_name) LIKE ? ESCAPE '\\'", containsPattern(entityName))
	return r.find(q, "list audit logs by entity name")
}

func (r *auditLogRepository) GetByEntityID(ctx context.Context, skip, take int, entityID string) ([]domain.AuditLog, error) {
	q := r.page(ctx, skip, take).Where("entity_id = ?", entityID)
	return r.find(q, "list audit logs by entity id")
}

func (r *auditLogRepository) GetByEntityType(ctx context.Context, skip, take int, entityType string) ([]domain.AuditLog, error) {
	q := r.page(ctx, skip, take).Where("LOWER(entity_type) LIKE ? ESCAPE '\\'", containsPattern(entityType))
	return r.find(q, "list audit logs by entity type")
}

func (r *auditLogRepository) GetByUserID(ctx context.Context, skip, take int, userID string) ([]domain.AuditLog, error) {
	q := r.page(ctx, skip, take).Where("user_id = ?", userID)
	return r.find(q, "list audit logs by user id")
}

func (r *auditLogRepository) GetByActionType(ctx context.Context, skip, take int, action domain.AuditActionType) ([]domain.AuditLog, error) {
	q := r.page(ctx, skip, take).Where("action_type = ?", action)
	return r.find(q, "list audit logs by action type")
}

func (r *auditLogRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.AuditLog{}).Count(&n).Error; err != nil {
		log.Printf("count audit logs error: %v", err)
		return 0, errors.New("failed to count audit logs")
	}
	return n, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-insensitive LIKE pattern matching s
// anywhere, with s's wildcard characters taken literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
