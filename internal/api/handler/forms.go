package handler

type userForm struct {
	Username string `json:"username" form:"username" validate:"notblank"`
	Password string `json:"password,omitempty" form:"password" validate:"notblank"`
}

type loginForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password,omitempty" form:"password"`
}

type passwordForm struct {
	NewPassword string `json:"new_password,omitempty" form:"new_password" validate:"notblank"`
}

type patientForm struct {
	Name           string `json:"name" form:"name" validate:"notblank,max=50"`
	Age            int    `json:"age" form:"age" validate:"min=0,max=120"`
	MedicalHistory string `json:"medical_history" form:"medical_history" validate:"max=500"`
}

const (
	viewRegister            = "register"
	viewLogin               = "login"
	viewPassword            = "change-password"
	viewPatientRegistration = "patient-registration"
	viewPatientDashboard    = "patient-dashboard"
)

type userResponse struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

type patientResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Age            int    `json:"age"`
	MedicalHistory string `json:"medical_history"`
	UserID         *int64 `json:"user_id,omitempty"`
}

// viewResponse is the envelope every page-level endpoint renders: the view to
// show plus whatever the view needs.
type viewResponse struct {
	View    string           `json:"view"`
	Message string           `json:"message,omitempty"`
	Error   string           `json:"error,omitempty"`
	Errors  []FieldError     `json:"errors,omitempty"`
	Form    any              `json:"form,omitempty"`
	User    *userResponse    `json:"user,omitempty"`
	Patient *patientResponse `json:"patient,omitempty"`
	Token   string           `json:"token,omitempty"`
}

// errorResponse is the envelope produced by the central error handler.
type errorResponse struct {
	Error string `json:"error"`
}
