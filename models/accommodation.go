package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SafetyLevelSafe     = "Safe"
	SafetyLevelRisky    = "Risky"
	SafetyLevelHighRisk = "High Risk"
)

type Accommodation struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Address       string             `json:"address" bson:"address"`
	City          string             `json:"city" bson:"city"`
	Description   string             `json:"description" bson:"description"`
	Amenities     []string           `json:"amenities" bson:"amenities"`
	TotalRooms    int                `json:"totalRooms" bson:"totalRooms"`
	OccupiedRooms int                `json:"occupiedRooms" bson:"occupiedRooms"`
	PricePerMonth float64            `json:"pricePerMonth" bson:"pricePerMonth"`
	ContactPhone  string             `json:"contactPhone" bson:"contactPhone"`
	Images        []string           `json:"images" bson:"images"`
	Owner         primitive.ObjectID `json:"owner" bson:"owner"`
	IsVerified    bool               `json:"isVerified" bson:"isVerified"`
	RiskScore     int                `json:"riskScore" bson:"riskScore"`
	SafetyLevel   string             `json:"safetyLevel" bson:"-"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}

type AccommodationRequest struct {
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	Description   string   `json:"description"`
	Amenities     []string `json:"amenities"`
	TotalRooms    int      `json:"totalRooms"`
	OccupiedRooms int      `json:"occupiedRooms"`
	PricePerMonth float64  `json:"pricePerMonth"`
	ContactPhone  string   `json:"contactPhone"`
	Images        []string `json:"images"`
}

type OccupancyRequest struct {
	OccupiedRooms int `json:"occupiedRooms"`
}

type AdminStats struct {
	TotalReports    int          `json:"totalReports"`
	PendingReports  int          `json:"pendingReports"`
	ApprovedReports int          `json:"approvedReports"`
	RejectedReports int          `json:"rejectedReports"`
	TotalUsers      int          `json:"totalUsers"`
	BannedUsers     int          `json:"bannedUsers"`
	PendingCounters int          `json:"pendingCounterReports"`
	IssueStats      []IssueCount `json:"issueStats"`
}

// IssueCount matches the shape of a Mongo $group aggregation bucket.
type IssueCount struct {
	IssueType string `json:"_id" bson:"_id"`
	Count     int    `json:"count" bson:"count"`
}

type OwnerStats struct {
	TotalAccommodations int     `json:"totalAccommodations"`
	TotalRooms          int     `json:"totalRooms"`
	OccupiedRooms       int     `json:"occupiedRooms"`
	OccupancyRate       float64 `json:"occupancyRate"`
	TotalReports        int     `json:"totalReports"`
	PendingCounters     int     `json:"pendingCounters"`
}
