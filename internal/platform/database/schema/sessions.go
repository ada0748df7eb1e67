// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// SessionsTable represents the 'sessions' table
type SessionsTable struct {
	Table
	ID          string
	Token       string
	UserID      string
	Devices     string
	IPAddress   string
	ExpiresDate string
}

// Sessions is the schema definition for sessions
var Sessions = SessionsTable{
	Table: Table{
		Name:       "sessions",
		PrimaryKey: "id",
		Fields: append([]Field{
			{Name: "id", Type: TypeUUID},
			{Name: "token", Type: TypeText},
			{Name: "user_id", Type: TypeInt},
			{Name: "devices", Type: TypeText},
			{Name: "ip_address", Type: TypeText},
			{Name: "expires_date", Type: TypeTimestamp},
		}, commonFields()...),
		References: []Reference{
			{Field: "user_id", Target: "users", Label: "User ID"},
		},
	},
	ID:          "id",
	Token:       "token",
	UserID:      "user_id",
	Devices:     "devices",
	IPAddress:   "ip_address",
	ExpiresDate: "expires_date",
}

// PublicColumns returns every column except the raw token.
func (t SessionsTable) PublicColumns() []string {
	return t.Without(t.Token)
}
