package models

// User represents a registered account: a field worker, ward official or
// administrator.
type User struct {
	BaseModel
	Name       string `gorm:"type:varchar(100);not null" json:"name"`
	Username   string `gorm:"type:varchar(50);unique;not null" json:"username"`
	Password   string `gorm:"type:varchar(100);not null" json:"-"` // Password never exposed in JSON
	Phone      string `gorm:"type:varchar(20);not null" json:"phone"`
	Role       Role   `gorm:"type:varchar(20);default:'USER';not null" json:"role"`
	IsApproved bool   `gorm:"default:false;not null" json:"is_approved"`
	WardNumber int    `gorm:"not null" json:"ward_number"`
	LocalBody  string `gorm:"type:varchar(50);not null" json:"local_body"`

	// ApprovedBy references the admin that approved this account, if any.
	ApprovedBy *uint `json:"approved_by,omitempty"`
	Approver   *User `gorm:"foreignKey:ApprovedBy" json:"approver,omitempty"`

	Surveys []Survey `gorm:"foreignKey:CreatedBy;constraint:OnDelete:CASCADE" json:"-"`
}

// UserSummary is the safe projection embedded in survey and approval
// responses.
type UserSummary struct {
	ID       uint   `json:"id,omitempty"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// Summary returns the safe projection of u.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
	}
}
