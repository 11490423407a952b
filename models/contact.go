package models

import "time"

// Contact is a message left by a site visitor.
type Contact struct {
	ID        string    `json:"_id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Msg       string    `json:"msg" bson:"msg"`
	TimeStamp time.Time `json:"timeStamp" bson:"timeStamp"`
}
