package models

// Fixed option sets for account and survey fields. These mirror the paper
// form handed to field workers, so the lists change rarely and only here.

// LocalBodies are the local self-government bodies covered by the survey.
var LocalBodies = []string{
	"N.Paravur",
	"Varappuzha",
	"Kottuvally",
	"Ezhikkara",
	"Chittattukara",
	"Vadakkekara",
	"Chendamangalam",
}

// EducationOptions for the education field.
var EducationOptions = []string{
	"No Formal Education",
	"Primary Education",
	"Secondary Education",
	"Higher Secondary",
	"Diploma",
	"Bachelor's Degree",
	"Master's Degree",
	"Doctoral Degree",
	"Professional Course",
	"Technical Education",
	"Others",
}

// ReligionOptions for the religion field.
var ReligionOptions = []string{
	"Hindu",
	"Christian",
	"Islam",
	"Sikh",
	"Buddhist",
	"Jain",
	"Others",
}

// CasteOptionsByReligion maps each religion to its caste options. Religions
// without a dedicated list fall back to the "Other" entry only.
var CasteOptionsByReligion = map[string][]string{
	"Hindu": {
		"Ezhava",
		"Nair",
		"Araya",
		"Vettuvan",
		"Pulaya",
		"Ulladan",
		"Vishwakarma",
		"Tamil Brahmins",
		"Malayalam Brahmins",
		"Gowda Saraswatha Brahmins (Konkani)",
		"Other",
	},
	"Christian": {
		"Latin Catholic",
		"Roman Catholic",
		"Jacobite Orthodox",
		"Jehovah's Witnesses",
		"Pentecostal",
		"Other",
	},
	"Islam": {
		"Muslim",
		"Rawther",
		"Mappila",
		"Ossan",
		"Other",
	},
}

// CategoryOptions for the reservation category field.
var CategoryOptions = []string{
	"General",
	"OBC",
	"OEC",
	"SC",
	"ST",
	"Others",
}

// JobOptions for the occupation field.
var JobOptions = []string{
	"Student",
	"Government Employee",
	"Private Employee",
	"Self Employed",
	"Business Owner",
	"Farmer",
	"Daily Wage Worker",
	"Housewife",
	"Retired",
	"Unemployed",
	"Others",
}

// IsValidLocalBody reports whether name is a covered local body.
func IsValidLocalBody(name string) bool {
	return contains(LocalBodies, name)
}

// IsValidEducation reports whether value is a known education option.
func IsValidEducation(value string) bool {
	return contains(EducationOptions, value)
}

// IsValidReligion reports whether value is a known religion option.
func IsValidReligion(value string) bool {
	return contains(ReligionOptions, value)
}

// IsValidCaste reports whether caste is valid for the given religion.
func IsValidCaste(religion, caste string) bool {
	if options, ok := CasteOptionsByReligion[religion]; ok {
		return contains(options, caste)
	}
	return caste == "Other"
}

// IsValidCategory reports whether value is a known category option.
func IsValidCategory(value string) bool {
	return contains(CategoryOptions, value)
}

// IsValidJob reports whether value is a known occupation option.
func IsValidJob(value string) bool {
	return contains(JobOptions, value)
}

func contains(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}

// Ward number bounds for every local body.
const (
	MinWardNumber = 1
	MaxWardNumber = 100
)

// IsValidWardNumber reports whether n is inside the allowed ward range.
func IsValidWardNumber(n int) bool {
	return n >= MinWardNumber && n <= MaxWardNumber
}

// NormalizePhone strips whitespace from raw and reports whether the result
// is exactly ten digits. Applies to user and survey phone numbers alike.
func NormalizePhone(raw string) (string, bool) {
	var digits []byte
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == ' ' || c == '\t':
			continue
		case c < '0' || c > '9':
			return "", false
		default:
			digits = append(digits, c)
		}
	}
	if len(digits) != 10 {
		return "", false
	}
	return string(digits), true
}

// Age bounds for surveyed constituents.
const (
	MinAge = 1
	MaxAge = 120
)

// IsValidAge reports whether n is a plausible constituent age.
func IsValidAge(n int) bool {
	return n >= MinAge && n <= MaxAge
}
