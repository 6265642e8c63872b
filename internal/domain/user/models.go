package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrDuplicate    = errors.New("email, phone or empID already in use")
	ErrTodoNotFound = errors.New("todo not found")
)

const DefaultRole = "employee"

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

type Experience struct {
	Designation string `json:"designation"`
	Company     string `json:"company"`
	Year        string `json:"year"`
}

type Address struct {
	HouseNo  string `json:"houseNo"`
	Locality string `json:"locality"`
	Landmark string `json:"landmark"`
	City     string `json:"city"`
	District string `json:"district"`
	State    string `json:"state"`
	Country  string `json:"country"`
	Pincode  string `json:"pincode"`
}

type Emergency struct {
	Name          string `json:"name"`
	Relation      string `json:"relation"`
	ContactNumber string `json:"contactNumber"`
	BloodGroup    string `json:"bloodGroup"`
}

type TodoItem struct {
	ID   string `json:"id"`
	Todo string `json:"todo"`
}

// User is the single employee document: identity, employment, profile,
// salary composition and the embedded todo list. Dates are kept as plain
// strings, matching the wire format the frontend sends.
type User struct {
	ID              string       `json:"id"`
	FirstName       string       `json:"firstname"`
	LastName        string       `json:"lastname"`
	Email           string       `json:"email"`
	Phone           string       `json:"phone"`
	EmpID           string       `json:"empID"`
	PasswordHash    string       `json:"-"`
	Role            string       `json:"role"`
	JoiningDate     string       `json:"joiningDate"`
	Department      string       `json:"department"`
	Designation     string       `json:"designation"`
	AvatarURL       string       `json:"avatar,omitempty"`
	CoverImageURL   string       `json:"coverImage,omitempty"`
	DOB             string       `json:"DOB,omitempty"`
	MaritalStatus   string       `json:"maritalStatus,omitempty"`
	AnniversaryDate string       `json:"anniversaryDate,omitempty"`
	Education       []Education  `json:"education"`
	Experience      []Experience `json:"experience"`
	Address         Address      `json:"address"`
	Emergency       Emergency    `json:"emergency"`
	Salary          Salary       `json:"salary"`
	Todos           []TodoItem   `json:"todos"`
	RefreshToken    string       `json:"-"`
	MFASecret       string       `json:"-"`
	MFAEnabled      bool         `json:"mfaEnabled"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}
