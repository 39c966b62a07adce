package state

// UserState is the step of the dialog a user is currently in
type UserState string

const (
	StateNone UserState = ""

	// Student profile dialog
	StateProfileFullName   UserState = "profile_full_name"
	StateProfilePhone      UserState = "profile_phone"
	StateProfileBirthDate  UserState = "profile_birth_date"
	StateProfileGender     UserState = "profile_gender"
	StateProfileCity       UserState = "profile_city"
	StateProfileBoard      UserState = "profile_board"
	StateProfilePercentage UserState = "profile_percentage"
	StateProfileCourses    UserState = "profile_courses"

	// College profile dialog
	StateCollegeCode        UserState = "college_code"
	StateCollegeName        UserState = "college_name"
	StateCollegeCity        UserState = "college_city"
	StateCollegeCourses     UserState = "college_courses"
	StateCollegeFee         UserState = "college_fee"
	StateCollegeHostel      UserState = "college_hostel"
	StateCollegeScholarship UserState = "college_scholarship"
)

// Data keys shared by handlers and callbacks
const (
	KeyProfileForm = "profile_form"
	KeyCollegeForm = "college_form"
)

// Operations guarded against duplicate submission
const (
	OpApply       = "apply"
	OpBook        = "book"
	OpCancelSlot  = "cancel_slot"
	OpSetStatus   = "set_status"
	OpSetPayment  = "set_payment"
	OpSaveProfile = "save_profile"
	OpSaveCollege = "save_college"
	OpAddSlot     = "add_slot"
	OpDeleteSlot  = "delete_slot"
	OpAnnounce    = "announce"
	OpUpload      = "upload"
	OpExport      = "export"
	OpToggleSlot  = "toggle_slot"
	OpSetResult   = "set_result"
	OpWithdraw    = "withdraw"
	OpUpdateUser  = "update_user"
	OpEditCollege = "edit_college"
)

// UserData holds the temporary data of a dialog
type UserData struct {
	State UserState
	Data  map[string]interface{}
}
