package model

import "time"

// EntryKind discriminates the two record variants sharing one table and
// one workflow.
type EntryKind string

const (
	KindVisitor EntryKind = "visitor"
	KindStudent EntryKind = "student"
)

// Valid reports whether k is a known kind.
func (k EntryKind) Valid() bool {
	return k == KindVisitor || k == KindStudent
}

// EntryRecord tracks one campus visit from entry to confirmed exit.
// Identity is the natural key: phone number for visitors, student
// number for students. The three booleans encode the exit workflow
// state and only ever move forward:
//
//	inside --request--> requested --approve--> approved --confirm--> exited
type EntryRecord struct {
	RecordID      string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"record_id"`
	Kind          EntryKind  `gorm:"type:varchar(10);not null"                      json:"kind"`
	Identity      string     `gorm:"type:varchar(50);not null;index:idx_entry_records_identity" json:"identity"`
	Name          string     `gorm:"type:varchar(100);not null"                     json:"name"`
	Purpose       string     `gorm:"type:varchar(255);not null"                     json:"purpose"`
	Department    string     `gorm:"type:varchar(100)"                              json:"department,omitempty"`
	FacultyID     *string    `gorm:"type:uuid"                                      json:"faculty_id,omitempty"`
	EntryTime     time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"entry_time"`
	ExitTime      *time.Time `json:"exit_time,omitempty"`
	ExitRequested bool       `gorm:"not null;default:false" json:"exit_requested"`
	ExitApproved  bool       `gorm:"not null;default:false" json:"exit_approved"`
	HasExited     bool       `gorm:"not null;default:false" json:"has_exited"`
	BaseModel

	Faculty *User `gorm:"foreignKey:FacultyID;references:UserID" json:"faculty,omitempty"`
}

// TableName maps EntryRecord to its table.
func (EntryRecord) TableName() string { return "entry_records" }
