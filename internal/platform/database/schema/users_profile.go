package schema

// UsersProfileTable represents the 'users.profile' table
type UsersProfileTable struct {
	Table      string
	UserID     string
	Reputation string
	Bio        string
	Website    string
	Location   string
	AvatarURL  string
	CreatedAt  string
	UpdatedAt  string
}

// UsersProfile is the schema definition for users.profile
var UsersProfile = UsersProfileTable{
	Table:      "users.profile",
	UserID:     "userid",
	Reputation: "reputation",
	Bio:        "bio",
	Website:    "website",
	Location:   "location",
	AvatarURL:  "avatarurl",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}
