package services

import (
	"context"

	"github.com/victortedesco/inventory-management/internal/domain"
	"github.com/victortedesco/inventory-management/internal/dto"
	"github.com/victortedesco/inventory-management/internal/repository"
)

const (
	defaultTake = 10
	maxTake     = 100
)

type AuditLogService interface {
	GetAll(ctx context.Context, skip, take int) ([]dto.AuditLogResponse, error)
	GetByEntityName(ctx context.Context, skip, take int, entityName string) ([]dto.AuditLogResponse, error)
	GetByEntityID(ctx context.Context, skip, take int, entityID string) ([]dto.AuditLogResponse, error)
	GetByEntityType(ctx context.Context, skip, take int, entityType string) ([]dto.AuditLogResponse, error)
	GetByUserID(ctx context.Context, skip, take int, userID string) ([]dto.AuditLogResponse, error)
	GetByActionType(ctx context.Context, skip, take int, actionType string) ([]dto.AuditLogResponse, error)
	Count(ctx context.Context) (int64, error)
}

type auditLogService struct {
	repo repository.AuditLogRepository
}

func NewAuditLogService(repo repository.AuditLogRepository) AuditLogService {
	return &auditLogService{repo: repo}
}

func normalizePage(skip, take int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if take <= 0 {
		take = defaultTake
	}
	if take > maxTake {
		take = maxTake
	}
	return skip, take
}

func (s *auditLogService) GetAll(ctx context.Context, skip, take int) ([]dto.AuditLogResponse, error) {
	skip, take = normalizePage(skip, take)
	return toAuditLogResponses(s.repo.GetAll(ctx, skip, take))
}

func (s *auditLogService) GetByEntityName(ctx context.Context, skip, take int, entityName string) ([]dto.AuditLogResponse, error) {
	skip, take = normalizePage(skip, take)
	return toAuditLogResponses(s.repo.GetByEntityName(ctx, skip, take, entityName))
}

func (s *auditLogService) GetByEntityID(ctx context.Context, skip, take int, entityID string) ([]dto.AuditLogResponse, error) {
	skip, take = normalizePage(skip, take)
	return toAuditLogResponses(s.repo.GetByEntityID(ctx, skip, take, entityID))
}

func (s *auditLogService) GetByEntityType(ctx context.Context, skip, take int, entityType string) ([]dto.AuditLogResponse, error) {
	skip, take = normalizePage(skip, take)
	return toAuditLogResponses(s.repo.GetByEntityType(ctx, skip, take, entityType))
}

func (s *auditLogService) GetByUserID(ctx context.Context, skip, take int, userID string) ([]dto.AuditLogResponse, error) {
	skip, take = normalizePage(skip, take)
	return toAuditLogResponses(s.repo.GetByUserID(ctx, skip, take, userID))
}

func (s *auditLogService) GetByActionType(ctx context.Context, skip, take int, actionType string) ([]dto.AuditLogResponse, error) {
	action, err := domain.ParseAuditActionType(actionType)
	if err != nil {
		return nil, &ValidationError{Messages: []string{"actionType must be one of Create, Update, Delete"}}
	}
	skip, take = normalizePage(skip, take)
	return toAuditLogResponses(s.repo.GetByActionType(ctx, skip, take, action))
}

func (s *auditLogService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func toAuditLogResponses(logs []domain.AuditLog, err error) ([]dto.AuditLogResponse, error) {
	if err != nil {
		return nil, err
	}
	out := make([]dto.AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.AuditLogResponse{
			ID:         l.ID,
			ActionType: string(l.ActionType),
			EntityType: l.EntityType,
			EntityName: l.EntityName,
			EntityID:   l.EntityID,
			Property:   l.Property,
			OldValue:   l.OldValue,
			NewValue:   l.NewValue,
			UserID:     l.UserID,
			Timestamp:  l.Timestamp,
		})
	}
	return out, nil
}
