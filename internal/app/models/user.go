package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	Email          string             `bson:"email"`
	Password       string             `bson:"password"`
	PhoneNumber    string             `bson:"phone,omitempty"`
	Role           string             `bson:"role"`
	LicenseNumber  string             `bson:"licenseNumber,omitempty"`
	Specialization string             `bson:"specialization,omitempty"`
	TimeModel      `bson:",inline"`
}
