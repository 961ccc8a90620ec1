package service

import (
	"context"
	"encoding/json"

	"shelfcloud/internal/logging"

	"github.com/google/uuid"
)

// AuditEventType labels a control-plane audit event
type AuditEventType string

const (
	AuditEventOrgCreated AuditEventType = "ORG_CREATED"
	AuditEventOrgDeleted AuditEventType = "ORG_DELETED"

	AuditEventTeamCreated AuditEventType = "TEAM_CREATED"
	AuditEventTeamDeleted AuditEventType = "TEAM_DELETED"

	AuditEventInvitationCreated  AuditEventType = "INVITATION_CREATED"
	AuditEventInvitationAccepted AuditEventType = "INVITATION_ACCEPTED"

	AuditEventBucketRegistered   AuditEventType = "BUCKET_REGISTERED"
	AuditEventBucketDeleted      AuditEventType = "BUCKET_DELETED"
	AuditEventBucketShared       AuditEventType = "BUCKET_SHARED"
	AuditEventBucketUnshared     AuditEventType = "BUCKET_UNSHARED"
	AuditEventBucketValidated    AuditEventType = "BUCKET_VALIDATED"
	AuditEventCredentialsRotated AuditEventType = "CREDENTIALS_ROTATED"

	AuditEventProjectCreated     AuditEventType = "PROJECT_CREATED"
	AuditEventProjectDeleted     AuditEventType = "PROJECT_DELETED"
	AuditEventProjectTransferred AuditEventType = "PROJECT_TRANSFERRED"

	AuditEventKeyCreated     AuditEventType = "KEY_CREATED"
	AuditEventKeyRevoked     AuditEventType = "KEY_REVOKED"
	AuditEventKeyRegenerated AuditEventType = "KEY_REGENERATED"
)

// AuditService writes structured audit events through the global logger.
// Events describe who did what to which resource; secrets never appear in
// details.
type AuditService struct{}

func NewAuditService() *AuditService {
	return &AuditService{}
}

func (s *AuditService) LogOrgEvent(ctx context.Context, eventType AuditEventType, actorID, orgID uuid.UUID, details map[string]interface{}) {
	s.log(eventType, actorID, "organization", orgID, details)
}

func (s *AuditService) LogTeamEvent(ctx context.Context, eventType AuditEventType, actorID, teamID uuid.UUID, details map[string]interface{}) {
	s.log(eventType, actorID, "team", teamID, details)
}

func (s *AuditService) LogInvitationEvent(ctx context.Context, eventType AuditEventType, actorID, invitationID uuid.UUID, details map[string]interface{}) {
	s.log(eventType, actorID, "invitation", invitationID, details)
}

func (s *AuditService) LogBucketEvent(ctx context.Context, eventType AuditEventType, actorID, bucketID uuid.UUID, details map[string]interface{}) {
	s.log(eventType, actorID, "bucket", bucketID, details)
}

func (s *AuditService) LogProjectEvent(ctx context.Context, eventType AuditEventType, actorID, projectID uuid.UUID, details map[string]interface{}) {
	s.log(eventType, actorID, "project", projectID, details)
}

func (s *AuditService) LogKeyEvent(ctx context.Context, eventType AuditEventType, actorID, keyID uuid.UUID, details map[string]interface{}) {
	s.log(eventType, actorID, "api_key", keyID, details)
}

func (s *AuditService) log(eventType AuditEventType, actorID uuid.UUID, resource string, resourceID uuid.UUID, details map[string]interface{}) {
	logger := logging.GetGlobalLogger()
	if details == nil {
		logger.Info("AUDIT %s actor=%s %s=%s", eventType, actorID, resource, resourceID)
		return
	}
	encoded, err := json.Marshal(details)
	if err != nil {
		logger.Info("AUDIT %s actor=%s %s=%s", eventType, actorID, resource, resourceID)
		return
	}
	logger.Info("AUDIT %s actor=%s %s=%s details=%s", eventType, actorID, resource, resourceID, encoded)
}
