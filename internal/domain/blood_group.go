package domain

type BloodGroup string

const (
	GroupONeg  BloodGroup = "O-"
	GroupOPos  BloodGroup = "O+"
	GroupANeg  BloodGroup = "A-"
	GroupAPos  BloodGroup = "A+"
	GroupBNeg  BloodGroup = "B-"
	GroupBPos  BloodGroup = "B+"
	GroupABNeg BloodGroup = "AB-"
	GroupABPos BloodGroup = "AB+"
)

// AllBloodGroups lists the eight groups in the order the app displays them.
var AllBloodGroups = []BloodGroup{
	GroupAPos, GroupANeg, GroupBPos, GroupBNeg,
	GroupABPos, GroupABNeg, GroupOPos, GroupONeg,
}

func (g BloodGroup) IsValid() bool {
	switch g {
	case GroupONeg, GroupOPos, GroupANeg, GroupAPos,
		GroupBNeg, GroupBPos, GroupABNeg, GroupABPos:
		return true
	default:
		return false
	}
}
