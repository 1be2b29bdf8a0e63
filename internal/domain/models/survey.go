package models

// PoliticalAffiliation is the front a surveyed constituent leans towards.
type PoliticalAffiliation string

const (
	AffiliationLDF     PoliticalAffiliation = "LDF"
	AffiliationUDF     PoliticalAffiliation = "UDF"
	AffiliationNDA     PoliticalAffiliation = "NDA"
	AffiliationCentral PoliticalAffiliation = "CENTRAL"
	AffiliationOthers  PoliticalAffiliation = "OTHERS"
)

// AllAffiliations lists every valid political affiliation.
var AllAffiliations = []PoliticalAffiliation{
	AffiliationLDF,
	AffiliationUDF,
	AffiliationNDA,
	AffiliationCentral,
	AffiliationOthers,
}

// IsValid reports whether a is a known affiliation.
func (a PoliticalAffiliation) IsValid() bool {
	for _, candidate := range AllAffiliations {
		if a == candidate {
			return true
		}
	}
	return false
}

// Sex of a surveyed constituent.
type Sex string

const (
	SexMale   Sex = "MALE"
	SexFemale Sex = "FEMALE"
	SexOther  Sex = "OTHER"
)

// IsValid reports whether s is a known sex value.
func (s Sex) IsValid() bool {
	return s == SexMale || s == SexFemale || s == SexOther
}

// Survey is one demographic data point collected in the field. Every survey
// is owned by exactly one user, its creator.
type Survey struct {
	BaseModel
	Name                 string               `gorm:"type:varchar(100);not null" json:"name"`
	Age                  int                  `gorm:"not null" json:"age"`
	Education            string               `gorm:"type:varchar(50);not null" json:"education"`
	Job                  string               `gorm:"type:varchar(50);not null" json:"job"`
	Phone                string               `gorm:"type:varchar(20);not null" json:"phone"`
	PoliticalAffiliation PoliticalAffiliation `gorm:"type:varchar(20);not null" json:"political_affiliation"`
	Religion             string               `gorm:"type:varchar(30);not null" json:"religion"`
	Caste                string               `gorm:"type:varchar(50);not null" json:"caste"`
	CustomCaste          *string              `gorm:"type:varchar(50)" json:"custom_caste,omitempty"`
	Category             string               `gorm:"type:varchar(20)" json:"category"`
	Sex                  Sex                  `gorm:"type:varchar(10);not null" json:"sex"`

	CreatedBy uint  `gorm:"not null;index" json:"created_by"`
	User      *User `gorm:"foreignKey:CreatedBy;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}
