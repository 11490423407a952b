package models

import "time"

const (
	RoleNormal    = "normal"
	RoleSuperuser = "superuser"
)

// User is an account able to sign in. Role is stored under "type" to stay
// compatible with documents written by earlier versions of the site.
type User struct {
	ID        string    `json:"_id" bson:"_id" db:"id"`
	Name      string    `json:"name" bson:"name" db:"name"`
	Email     string    `json:"email" bson:"email" db:"email"`
	Password  string    `json:"-" bson:"password" db:"password_hash"`
	Role      string    `json:"type" bson:"type" db:"role"`
	CreatedAt time.Time `json:"date" bson:"date" db:"created_at"`
}

func (u *User) IsSuperuser() bool {
	return u != nil && u.Role == RoleSuperuser
}
