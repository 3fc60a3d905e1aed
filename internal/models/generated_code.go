package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GeneratedCode is a stored snippet of produced code with metadata. Entries
// are immutable once created and subject to the store's retention cap.
type GeneratedCode struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Language    string             `json:"language" bson:"language"`
	Type        string             `json:"type" bson:"type"`
	Code        string             `json:"code" bson:"code"`
	Description string             `json:"description" bson:"description"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}
