package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Issue statuses. Anything outside this set is treated as StatusTodo
// wherever issues are counted or filtered.
const (
	StatusTodo       = "todo"
	StatusInProgress = "inProgress"
	StatusDone       = "done"
)

// Issue priorities, highest first.
const (
	PriorityUrgent = "urgent"
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// DeadlineLayout is the stored form of Issue.Deadline.
const DeadlineLayout = "2006-01-02"

type Comment struct {
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type Issue struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID   primitive.ObjectID `bson:"projectId" json:"projectId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Status      string             `bson:"status" json:"status"`
	Priority    string             `bson:"priority" json:"priority"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Reporter    string             `bson:"reporter" json:"reporter"`
	Assignee    string             `bson:"assignee,omitempty" json:"assignee,omitempty"`
	Deadline    string             `bson:"deadline,omitempty" json:"deadline,omitempty"`
	Tags        []string           `bson:"tags" json:"tags"`
	Comments    []Comment          `bson:"comments" json:"comments"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// NormalizeStatus maps a stored status onto the canonical set,
// defaulting missing or unrecognized values to StatusTodo.
func NormalizeStatus(status string) string {
	switch status {
	case StatusTodo, StatusInProgress, StatusDone:
		return status
	default:
		return StatusTodo
	}
}

// PriorityRank orders priorities for sorting. Unrecognized values rank
// below PriorityLow.
func PriorityRank(priority string) int {
	switch priority {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// ApplyDefaults fills the fields the register form leaves optional, so
// nothing downstream has to branch on missing values.
func (i *Issue) ApplyDefaults() {
	i.Status = NormalizeStatus(i.Status)
	if PriorityRank(i.Priority) == 0 {
		i.Priority = PriorityMedium
	}
	if i.Tags == nil {
		i.Tags = []string{}
	}
	if i.Comments == nil {
		i.Comments = []Comment{}
	}
	if i.Deadline != "" {
		if _, err := time.Parse(DeadlineLayout, i.Deadline); err != nil {
			i.Deadline = ""
		}
	}
}
