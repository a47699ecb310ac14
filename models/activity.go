package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ActivityType string

const (
	ActivityIssueCreated  ActivityType = "issueCreated"
	ActivityIssueUpdated  ActivityType = "issueUpdated"
	ActivityStatusChanged ActivityType = "statusChanged"
	ActivityCommentAdded  ActivityType = "commentAdded"
	ActivityIssueDeleted  ActivityType = "issueDeleted"
	ActivityMemberAdded   ActivityType = "memberAdded"
)

// ActivityRecord is an audit/notification event generated when issues
// change. It is append-only: the only mutation after insert is adding
// viewer ids to ReadBy.
type ActivityRecord struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID     primitive.ObjectID `bson:"projectId" json:"projectId"`
	IssueID       primitive.ObjectID `bson:"issueId,omitempty" json:"issueId,omitempty"`
	Type          ActivityType       `bson:"type" json:"type"`
	Message       string             `bson:"message" json:"message"`
	ActorID       string             `bson:"actorId" json:"actorId"`
	ActorEmail    string             `bson:"actorEmail" json:"actorEmail"`
	ActorName     string             `bson:"actorName" json:"actorName"`
	TargetUserIDs []string           `bson:"targetUserIds" json:"targetUserIds"`
	ReadBy        []string           `bson:"readBy" json:"readBy"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// ReadBy membership check.
func (a ActivityRecord) IsReadBy(userID string) bool {
	for _, id := range a.ReadBy {
		if id == userID {
			return true
		}
	}
	return false
}
