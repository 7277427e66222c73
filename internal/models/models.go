// Package models defines the domain entities and view types for facilitycheck.
// It includes database models mapped to PostgreSQL tables and the JSON views
// returned by the HTTP API.
package models

import "time"

// ============================================================================
// Enumerations
// ============================================================================

// UserRole is the closed set of account roles.
type UserRole string

const (
	RoleAdmin  UserRole = "ADMIN"  // Full access including user management
	RoleUser   UserRole = "USER"   // Can run inspections and record results
	RoleViewer UserRole = "VIEWER" // Read-only access
)

// Valid reports whether the role is one of the recognized values.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleViewer:
		return true
	}
	return false
}

// InspectionStatus tracks the lifecycle of an inspection.
// Transitions are unrestricted: any status may be set at any time.
type InspectionStatus string

const (
	StatusPlanned    InspectionStatus = "PLANNED"
	StatusInProgress InspectionStatus = "IN_PROGRESS"
	StatusCompleted  InspectionStatus = "COMPLETED"
)

// Valid reports whether the status is one of the recognized values.
func (s InspectionStatus) Valid() bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// ResultStatus is the recorded outcome of checking one item.
type ResultStatus string

const (
	ResultFulfilled     ResultStatus = "FULFILLED"
	ResultNotFulfilled  ResultStatus = "NOT_FULFILLED"
	ResultNotApplicable ResultStatus = "NOT_APPLICABLE"
)

// Valid reports whether the status is one of the recognized values.
func (s ResultStatus) Valid() bool {
	switch s {
	case ResultFulfilled, ResultNotFulfilled, ResultNotApplicable:
		return true
	}
	return false
}

// ============================================================================
// Domain Models (Database Entities)
// ============================================================================

// User represents a system account with role-based access control.
//
// Database Table: users
// Security Note: PasswordHash must never appear in API responses or logs;
// handlers convert to UserView before responding.
type User struct {
	ID           int64    `db:"id"`            // Primary key, auto-increment
	Username     string   `db:"username"`      // Unique login name (matched case-insensitively)
	Name         string   `db:"name"`          // Display name
	PasswordHash string   `db:"password_hash"` // bcrypt hash, or plaintext in legacy mode
	Email        string   `db:"email"`         // Unique
	Role         UserRole `db:"role"`
	Enabled      bool     `db:"enabled"` // Disabled accounts cannot log in
}

// Checklist is a named, ordered template of inspection items.
// A checklist owns its items: deleting the checklist deletes them.
//
// Database Table: checklists
type Checklist struct {
	ID          int64           `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	Items       []ChecklistItem `db:"-" json:"items"` // Loaded separately, ordered by order_index
}

// ChecklistItem is a single line of a checklist template.
//
// Database Table: checklist_items
// Deletion note: results referencing an item are not removed with it; their
// reference is nulled first so inspection history survives.
type ChecklistItem struct {
	ID              int64   `db:"id" json:"id"`
	ChecklistID     int64   `db:"checklist_id" json:"-"`
	Description     string  `db:"description" json:"description"`
	OrderIndex      int     `db:"order_index" json:"orderIndex"` // Display order, duplicates allowed
	DesiredPhotoURL *string `db:"desired_photo_url" json:"desiredPhotoUrl,omitempty"`
}

// Inspection is a visit to a facility on a date, optionally driven by a
// checklist template. An inspection owns its results.
//
// Database Table: inspections
type Inspection struct {
	ID                  int64            `db:"id"`
	FacilityName        string           `db:"facility_name"`
	InspectionDate      time.Time        `db:"inspection_date"`
	ResponsibleEmployee string           `db:"responsible_employee"`
	Status              InspectionStatus `db:"status"`
	ChecklistID         *int64           `db:"checklist_id"` // Nullable: template may be detached or deleted
}

// Result is the recorded outcome of checking one item during one inspection.
//
// Database Table: results
// The inspection reference is never null; the checklist item reference may be
// (either never set, or the item was deleted after the result was recorded).
type Result struct {
	ID              int64          `db:"id" json:"id"`
	InspectionID    int64          `db:"inspection_id" json:"-"`
	ChecklistItemID *int64         `db:"checklist_item_id" json:"-"`
	ChecklistItem   *ChecklistItem `db:"-" json:"checklistItem"` // Loaded for responses; null once the item is gone
	Status          ResultStatus   `db:"status" json:"status"`
	Comment         string         `db:"comment" json:"comment"`
	PhotoURL        string         `db:"photo_url" json:"photoUrl"`
}

// ============================================================================
// View Models (API Responses)
// ============================================================================

// UserView is the safe projection of a User for API responses.
type UserView struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Role     UserRole `json:"role"`
	Enabled  bool     `json:"enabled"`
}

// View converts a User to its response projection, dropping the hash.
func (u *User) View() UserView {
	return UserView{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		Enabled:  u.Enabled,
	}
}

// InspectionView is the API shape of an inspection with its embedded checklist
// (when attached) and recorded results.
type InspectionView struct {
	ID                  int64            `json:"id"`
	FacilityName        string           `json:"facilityName"`
	InspectionDate      string           `json:"inspectionDate"` // YYYY-MM-DD
	ResponsibleEmployee string           `json:"responsibleEmployee"`
	Status              InspectionStatus `json:"status"`
	Checklist           *Checklist       `json:"checklist"`
	Results             []Result         `json:"results"`
}

// Statistics summarizes inspection counts per status.
type Statistics struct {
	Planned    int64 `json:"planned"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
	Total      int64 `json:"total"`
}

// DateFormat is the wire format for inspection dates.
const DateFormat = "2006-01-02"
