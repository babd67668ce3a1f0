package model

// User roles. Directors and guards receive broadcast notifications,
// faculty members receive room-scoped events for their own visitors.
const (
	RoleAdmin    = "admin"
	RoleDirector = "director"
	RoleFaculty  = "faculty"
	RoleGuard    = "guard"
)

// User is a staff account: admin, director, faculty or guard.
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(100);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null"                      json:"role"`
	Department   string `gorm:"type:varchar(100)"                              json:"department,omitempty"`
	BaseModel
}

// TableName maps User to its table.
func (User) TableName() string { return "users" }
