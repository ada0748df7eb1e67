// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// UsersTable represents the 'users' table
type UsersTable struct {
	Table
	ID            string
	Email         string
	Name          string
	PasswordHash  string
	EmailVerified string
	Role          string
}

// Users is the schema definition for users
var Users = UsersTable{
	Table: Table{
		Name:       "users",
		PrimaryKey: "id",
		Fields: append([]Field{
			{Name: "id", Type: TypeInt},
			{Name: "email", Type: TypeText},
			{Name: "name", Type: TypeText},
			{Name: "password_hash", Type: TypeText},
			{Name: "email_verified", Type: TypeBool, Default: false},
			{Name: "role", Type: TypeText, Default: "user"},
		}, commonFields()...),
		Unique: []string{"email"},
	},
	ID:            "id",
	Email:         "email",
	Name:          "name",
	PasswordHash:  "password_hash",
	EmailVerified: "email_verified",
	Role:          "role",
}

// PublicColumns returns every column except the password hash.
func (t UsersTable) PublicColumns() []string {
	return t.Without(t.PasswordHash)
}
