package service

import (
	"context"
	"encoding/json"

	"backend/internal/model"
	"backend/internal/repository"
	ws "backend/internal/websocket"
)

type AuditLogResponse struct {
	ID         string `json:"id"`
	AccountID  string `json:"account_id"`
	UserName   string `json:"user_name"`
	Action     string `json:"action"`
	EntityID   string `json:"entity_id"`
	EntityName string `json:"entity_name"`
	Details    string `json:"details"`
	CreatedAt  string `json:"created_at"`
}

// AuditEvent is the payload broadcast to websocket clients after a mutation
type AuditEvent struct {
	Event string            `json:"event"`
	Data  map[string]string `json:"data"`
}

type AuditService interface {
	GetAuditLogs(ctx context.Context, page, limit int) ([]AuditLogResponse, int64, error)
}

type auditService struct {
	auditRepo repository.AuditRepository
}

// NewAuditService creates a new AuditService instance
func NewAuditService(auditRepo repository.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

func (s *auditService) GetAuditLogs(ctx context.Context, page, limit int) ([]AuditLogResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	logs, total, err := s.auditRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		userName := "System"
		accountID := ""
		if l.Account != nil {
			userName = l.Account.UserName
		}
		if l.AccountID != nil {
			accountID = *l.AccountID
		}

		res = append(res, AuditLogResponse{
			ID:         l.ID.String(),
			AccountID:  accountID,
			UserName:   userName,
			Action:     l.Action,
			EntityID:   l.EntityID,
			EntityName: l.EntityName,
			Details:    l.Details,
			CreatedAt:  l.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	return res, total, nil
}

// actorRef converts a non-empty actor account ID into the nullable reference
// stored on audit rows.
func actorRef(accountID string) *string {
	if accountID == "" {
		return nil
	}
	return &accountID
}

// auditEntry builds an audit row. Details are marshaled here so call sites
// stay terse; callers must never pass credentials in details.
func auditEntry(actorID string, action, entityID, entityName string, details interface{}) *model.AuditLog {
	serialized := "{}"
	if details != nil {
		if data, err := json.Marshal(details); err == nil {
			serialized = string(data)
		}
	}
	return &model.AuditLog{
		AccountID:  actorRef(actorID),
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    serialized,
	}
}

// broadcastAudit pushes an audit event to connected websocket clients. The
// hub is optional; services constructed without one simply skip broadcasting.
func broadcastAudit(hub *ws.Hub, action, entityID, entityName string) {
	if hub == nil {
		return
	}
	payload, err := json.Marshal(AuditEvent{
		Event: action,
		Data: map[string]string{
			"entity_id":   entityID,
			"entity_name": entityName,
		},
	})
	if err != nil {
		return
	}
	hub.Broadcast <- payload
}
