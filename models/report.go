package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ReportStatusPending  = "pending"
	ReportStatusApproved = "approved"
	ReportStatusRejected = "rejected"
)

const (
	CounterStatusNone     = "none"
	CounterStatusPending  = "pending"
	CounterStatusAccepted = "accepted"
	CounterStatusRejected = "rejected"
)

// IssueTypes is the closed set of report categories.
var IssueTypes = []string{
	"Food Safety",
	"Water Quality",
	"Hygiene",
	"Security",
	"Infrastructure",
}

type ReportImage struct {
	URL      string `json:"url" bson:"url"`
	PublicID string `json:"publicId" bson:"publicId"`
}

// ReportAuthor is the populated author snapshot attached to admin and
// public listings. It is never stored on the report document.
type ReportAuthor struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Report references its accommodation by exact name string, not by id.
// Renaming or deleting an accommodation orphans the match; see DESIGN.md.
type Report struct {
	ID                primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	AccommodationName string               `json:"accommodationName" bson:"accommodationName"`
	IssueType         string               `json:"issueType" bson:"issueType"`
	Description       string               `json:"description" bson:"description"`
	Images            []ReportImage        `json:"images" bson:"images"`
	Status            string               `json:"status" bson:"status"`
	IsCountered       bool                 `json:"isCountered" bson:"isCountered"`
	CounterStatus     string               `json:"counterStatus" bson:"counterStatus"`
	Upvotes           int                  `json:"upvotes" bson:"upvotes"`
	UpvotedBy         []primitive.ObjectID `json:"upvotedBy" bson:"upvotedBy"`
	User              primitive.ObjectID   `json:"userId" bson:"user"`
	Author            *ReportAuthor        `json:"user,omitempty" bson:"-"`
	CreatedAt         time.Time            `json:"createdAt" bson:"createdAt"`
}

// HasUpvoted reports membership of userID in the upvotedBy set.
func (r *Report) HasUpvoted(userID primitive.ObjectID) bool {
	for _, id := range r.UpvotedBy {
		if id == userID {
			return true
		}
	}
	return false
}

type CreateReportRequest struct {
	AccommodationName string        `json:"accommodationName"`
	IssueType         string        `json:"issueType"`
	Description       string        `json:"description"`
	Images            []ReportImage `json:"images"`
}

type UpvoteResult struct {
	Upvotes    int  `json:"upvotes"`
	HasUpvoted bool `json:"hasUpvoted"`
}
