package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carehub/patient-portal/internal/api/metrics"
	"github.com/carehub/patient-portal/internal/api/middleware"
	"github.com/carehub/patient-portal/internal/core/domain"
	"github.com/carehub/patient-portal/internal/core/ports"
)

const (
	msgRegistered         = "Registration successful! Please log in."
	msgLoggedIn           = "Login successful!"
	msgInvalidCredentials = "Invalid credentials!"
	msgPasswordChanged    = "Password changed successfully."

	patientDashboardPath = "/patient/dashboard"
)

// AuthHandler serves the registration, login and password-change views.
type AuthHandler struct {
	accounts     ports.AccountService
	validator    *Validator
	secureCookie bool
}

func NewAuthHandler(accounts ports.AccountService, validator *Validator, secureCookie bool) *AuthHandler {
	return &AuthHandler{accounts: accounts, validator: validator, secureCookie: secureCookie}
}

// ShowRegister presents an empty registration form.
//
// @Summary      Registration form
// @Tags         auth
// @Produce      json
// @Success      200  {object}  viewResponse
// @Router       /register [get]
func (h *AuthHandler) ShowRegister(c echo.Context) error {
	return c.JSON(http.StatusOK, viewResponse{View: viewRegister, Form: userForm{}})
}

// Register validates the form and creates a user with the default role.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Accept       json
// @Produce      json
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      201  {object}  viewResponse
// @Failure      400  {object}  viewResponse
// @Failure      409  {object}  errorResponse
// @Failure      422  {object}  viewResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var form userForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, viewResponse{View: viewRegister, Error: "invalid payload"})
	}

	if fields := h.validator.Check(&form); len(fields) > 0 {
		metrics.ValidationFailuresTotal.WithLabelValues(viewRegister).Inc()
		form.Password = ""
		return c.JSON(http.StatusUnprocessableEntity, viewResponse{View: viewRegister, Errors: fields, Form: form})
	}

	user, err := h.accounts.Register(c.Request().Context(), &domain.User{
		Username: form.Username,
		Password: form.Password,
		Roles:    domain.DefaultRoles(),
	})
	if err != nil {
		return err
	}
	metrics.UsersRegisteredTotal.Inc()

	return c.JSON(http.StatusCreated, viewResponse{
		View:    viewRegister,
		Message: msgRegistered,
		User:    toUserResponse(*user),
	})
}

// ShowLogin presents an empty login form.
//
// @Summary      Login form
// @Tags         auth
// @Produce      json
// @Success      200  {object}  viewResponse
// @Router       /login [get]
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return c.JSON(http.StatusOK, viewResponse{View: viewLogin, Form: loginForm{}})
}

// Login checks the credentials. Patients are redirected to their dashboard;
// everybody else gets the login view with a success message. Unknown users
// and wrong passwords produce the same response.
//
// @Summary      Login
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Accept       json
// @Produce      json
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      200  {object}  viewResponse
// @Success      303  "Redirect to /patient/dashboard"
// @Failure      401  {object}  viewResponse
// @Failure      429  {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, viewResponse{View: viewLogin, Error: "invalid payload"})
	}

	user, found, err := h.accounts.Login(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		return err
	}
	if !found {
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusUnauthorized, viewResponse{View: viewLogin, Error: msgInvalidCredentials})
	}

	token, err := h.accounts.IssueToken(user)
	if err != nil {
		return err
	}
	c.SetCookie(h.sessionCookie(token))

	if user.Roles.Has(domain.RolePatient) {
		metrics.LoginsTotal.WithLabelValues("patient").Inc()
		return c.Redirect(http.StatusSeeOther, patientDashboardPath)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, viewResponse{
		View:    viewLogin,
		Message: msgLoggedIn,
		User:    toUserResponse(user),
		Token:   token,
	})
}

// ChangePassword replaces the password of the signed-in user.
//
// @Summary      Change password
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        new_password  formData  string  true  "New password"
// @Success      200  {object}  viewResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  viewResponse
// @Failure      422  {object}  viewResponse
// @Router       /password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	var form passwordForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, viewResponse{View: viewPassword, Error: "invalid payload"})
	}
	if fields := h.validator.Check(&form); len(fields) > 0 {
		metrics.ValidationFailuresTotal.WithLabelValues(viewPassword).Inc()
		return c.JSON(http.StatusUnprocessableEntity, viewResponse{View: viewPassword, Errors: fields})
	}

	changed, err := h.accounts.ChangePassword(c.Request().Context(), username, form.NewPassword)
	if err != nil {
		return err
	}
	if !changed {
		metrics.PasswordChangesTotal.WithLabelValues("unknown_user").Inc()
		return c.JSON(http.StatusNotFound, viewResponse{View: viewPassword, Error: domain.ErrUserNotFound.Error()})
	}

	metrics.PasswordChangesTotal.WithLabelValues("changed").Inc()
	return c.JSON(http.StatusOK, viewResponse{View: viewPassword, Message: msgPasswordChanged})
}

func (h *AuthHandler) sessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

func toUserResponse(u domain.User) *userResponse {
	return &userResponse{ID: u.ID, Username: u.Username, Roles: u.Roles.Slice()}
}
