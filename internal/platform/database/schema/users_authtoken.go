package schema

// UsersAuthTokenTable represents the 'users.authtoken' table
type UsersAuthTokenTable struct {
	Table     string
	Key       string
	UserID    string
	CreatedAt string
}

// UsersAuthToken is the schema definition for users.authtoken
var UsersAuthToken = UsersAuthTokenTable{
	Table:     "users.authtoken",
	Key:       "key",
	UserID:    "userid",
	CreatedAt: "createdat",
}
