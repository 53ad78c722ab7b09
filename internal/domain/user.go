package domain

// Role tags a user's access level. Only "employee" is seeded today; the
// column exists so an admin surface can be added without a schema change.
type Role string

const RoleEmployee Role = "employee"

// User is the domain representation of an employee account.
// PasswordHash is a bcrypt hash and must never leave the server.
type User struct {
	ID           UserID
	Username     string
	EmployeeID   string
	FullName     string
	PasswordHash string
	Role         Role
}

// Profile is the public shape of a User, safe to bind to a session and
// return to clients.
type Profile struct {
	ID         UserID
	Username   string
	EmployeeID string
	FullName   string
	Role       Role
}

func (u User) Profile() Profile {
	return Profile{
		ID:         u.ID,
		Username:   u.Username,
		EmployeeID: u.EmployeeID,
		FullName:   u.FullName,
		Role:       u.Role,
	}
}
