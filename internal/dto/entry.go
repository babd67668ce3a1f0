package dto

// EntryRequest registers a new entry at the gate. Department and
// FacultyID are required for visitors: a visitor is always destined for
// one faculty member, who gets the arrival notification and later
// approves the exit.
type EntryRequest struct {
	Identity   string `json:"identity"   binding:"required,min=2,max=50"`
	Name       string `json:"name"       binding:"required,min=2,max=100"`
	Purpose    string `json:"purpose"    binding:"required,min=2,max=255"`
	Department string `json:"department" binding:"omitempty,max=100"`
	FacultyID  string `json:"faculty_id" binding:"omitempty,uuid"`
}

// IdentityRequest addresses the active record of one identity.
type IdentityRequest struct {
	Identity string `json:"identity" binding:"required,min=2,max=50"`
}

// EntryResponse is one entry record as returned to clients.
type EntryResponse struct {
	ID            string `json:"id"`
	Kind          string `json:"kind"`
	Identity      string `json:"identity"`
	Name          string `json:"name"`
	Purpose       string `json:"purpose"`
	Department    string `json:"department,omitempty"`
	FacultyID     string `json:"faculty_id,omitempty"`
	EntryTime     string `json:"entry_time"`
	ExitTime      string `json:"exit_time,omitempty"`
	State         string `json:"state"`
	ExitRequested bool   `json:"exit_requested"`
	ExitApproved  bool   `json:"exit_approved"`
	HasExited     bool   `json:"has_exited"`
}

// EntryCreatedResponse wraps a fresh registration together with the
// exit QR code handed to the person at the gate.
type EntryCreatedResponse struct {
	Record EntryResponse `json:"record"`
	QRCode string        `json:"qr_code,omitempty"` // base64 PNG
}
