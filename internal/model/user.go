package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// PlaceholderUserImage is the avatar every new user starts with.
const PlaceholderUserImage = "https://www.seekpng.com/png/full/138-1388103_user-login-icon-login.png"

// User is a stored user document.
//
// Password holds the bcrypt hash. It is never serialized to JSON.
type User struct {
	ID       primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Name     string               `json:"name" bson:"name"`
	Email    string               `json:"email" bson:"email"`
	Image    string               `json:"image" bson:"image"`
	Password string               `json:"-" bson:"password,omitempty"`
	Places   []primitive.ObjectID `json:"places" bson:"places"`
}

// UserView is the normalized JSON view of a user.
type UserView struct {
	User
	ID string `json:"id"`
}

// Normalize returns the view of u with the identifier as plain text.
// A nil place set is reported as an empty list.
func (u User) Normalize() UserView {
	if u.Places == nil {
		u.Places = []primitive.ObjectID{}
	}
	return UserView{User: u, ID: u.ID.Hex()}
}

// NormalizeUsers normalizes every user, keeping the order.
func NormalizeUsers(users []User) []UserView {
	views := make([]UserView, 0, len(users))
	for _, user := range users {
		views = append(views, user.Normalize())
	}
	return views
}
