package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CounterReasons is the closed set of dispute reasons an owner may cite.
var CounterReasons = []string{
	"false_information",
	"outdated_issue",
	"mistaken_identity",
	"resolved_issue",
	"malicious_intent",
	"other",
}

// CounterReport is an owner's dispute of a single report. At most one
// counter-report may ever reference a given report.
type CounterReport struct {
	ID                  primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	OriginalReport      primitive.ObjectID `json:"originalReport" bson:"originalReport"`
	Accommodation       primitive.ObjectID `json:"accommodation" bson:"accommodation"`
	Owner               primitive.ObjectID `json:"owner" bson:"owner"`
	Reason              string             `json:"reason" bson:"reason"`
	Explanation         string             `json:"explanation" bson:"explanation"`
	EvidenceUrls        []string           `json:"evidenceUrls" bson:"evidenceUrls"`
	EvidenceDescription string             `json:"evidenceDescription,omitempty" bson:"evidenceDescription,omitempty"`
	Status              string             `json:"status" bson:"status"`
	AdminNotes          string             `json:"adminNotes,omitempty" bson:"adminNotes,omitempty"`
	CreatedAt           time.Time          `json:"createdAt" bson:"createdAt"`
	ReviewedAt          *time.Time         `json:"reviewedAt,omitempty" bson:"reviewedAt,omitempty"`
}

type SubmitCounterRequest struct {
	ReportID            string   `json:"reportId"`
	Reason              string   `json:"reason"`
	Explanation         string   `json:"explanation"`
	EvidenceUrls        []string `json:"evidenceUrls"`
	EvidenceDescription string   `json:"evidenceDescription"`
}

type ResolveCounterRequest struct {
	Status     string `json:"status"`
	AdminNotes string `json:"adminNotes"`
}
