package domain

const (
	RoleAdmin    = "ADMIN"
	RoleOperator = "OPERATOR"
	RoleViewer   = "VIEWER"
)

// Audit actions written by the operator console.
const (
	AuditLogin         = "login"
	AuditNVPCall       = "nvp_call"
	AuditProfileStatus = "recurring_profile_status"
)

const (
	ResourceNVPTransaction = "nvp_transaction"
)
