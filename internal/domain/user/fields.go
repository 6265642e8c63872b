package user

// ProfilePatch mirrors the flat update-details payload: identity and
// employment fields at the top level, address and emergency-contact fields
// inlined, education/experience as positional arrays.
type ProfilePatch struct {
	FirstName   string `json:"firstname"`
	LastName    string `json:"lastname"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	EmpID       string `json:"empID"`
	JoiningDate string `json:"joiningDate"`
	Department  string `json:"department"`
	Designation string `json:"designation"`

	Education  []Education  `json:"education"`
	Experience []Experience `json:"experience"`

	HouseNo  string `json:"houseNo"`
	Locality string `json:"locality"`
	Landmark string `json:"landmark"`
	City     string `json:"city"`
	District string `json:"district"`
	State    string `json:"state"`
	Country  string `json:"country"`
	Pincode  string `json:"pincode"`

	Name          string `json:"name"`
	Relation      string `json:"relation"`
	ContactNumber string `json:"contactNumber"`
	BloodGroup    string `json:"bloodGroup"`

	DOB             string `json:"DOB"`
	MaritalStatus   string `json:"maritalStatus"`
	AnniversaryDate string `json:"anniversaryDate"`
}

// Apply merges the patch into u. Only provided (non-empty) fields are
// touched; education and experience entries merge field-wise by index,
// growing the stored arrays when the patch is longer.
func (p ProfilePatch) Apply(u *User) {
	setIf(&u.FirstName, p.FirstName)
	setIf(&u.LastName, p.LastName)
	setIf(&u.Email, p.Email)
	setIf(&u.Phone, p.Phone)
	setIf(&u.EmpID, p.EmpID)
	setIf(&u.JoiningDate, p.JoiningDate)
	setIf(&u.Department, p.Department)
	setIf(&u.Designation, p.Designation)

	for i, entry := range p.Education {
		for len(u.Education) <= i {
			u.Education = append(u.Education, Education{})
		}
		setIf(&u.Education[i].Degree, entry.Degree)
		setIf(&u.Education[i].Institution, entry.Institution)
		setIf(&u.Education[i].Year, entry.Year)
	}
	for i, entry := range p.Experience {
		for len(u.Experience) <= i {
			u.Experience = append(u.Experience, Experience{})
		}
		setIf(&u.Experience[i].Designation, entry.Designation)
		setIf(&u.Experience[i].Company, entry.Company)
		setIf(&u.Experience[i].Year, entry.Year)
	}

	setIf(&u.Address.HouseNo, p.HouseNo)
	setIf(&u.Address.Locality, p.Locality)
	setIf(&u.Address.Landmark, p.Landmark)
	setIf(&u.Address.City, p.City)
	setIf(&u.Address.District, p.District)
	setIf(&u.Address.State, p.State)
	setIf(&u.Address.Country, p.Country)
	setIf(&u.Address.Pincode, p.Pincode)

	setIf(&u.Emergency.Name, p.Name)
	setIf(&u.Emergency.Relation, p.Relation)
	setIf(&u.Emergency.ContactNumber, p.ContactNumber)
	setIf(&u.Emergency.BloodGroup, p.BloodGroup)

	setIf(&u.DOB, p.DOB)
	setIf(&u.MaritalStatus, p.MaritalStatus)
	setIf(&u.AnniversaryDate, p.AnniversaryDate)
}

func setIf(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
