package staff

// Role is the hub staff role carried in the access token.
type Role string

const (
	RoleOperator   Role = "operator"
	RoleDispatcher Role = "dispatcher"
	RoleAdmin      Role = "admin"
)
