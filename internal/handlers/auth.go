package handlers

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"nationpress/internal/middleware"
	"nationpress/internal/render"
	"nationpress/internal/session"
	"nationpress/internal/store"
)

// totpIssuer is the issuer shown in authenticator apps.
const totpIssuer = "NationPress"

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	renderer *render.Renderer
	sessions *session.Store
	staff    *store.StaffUserStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer, sessions *session.Store, staff *store.StaffUserStore) *Auth {
	return &Auth{
		renderer: renderer,
		sessions: sessions,
		staff:    staff,
	}
}

// LoginPage renders the login form.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	// If already logged in with 2FA complete, redirect to dashboard.
	sess := middleware.SessionFromCtx(r.Context())
	if sess != nil && sess.TwoFADone {
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "admin/login", &render.PageData{
		Title:     "Sign In",
		CSRFToken: middleware.GetCSRFToken(r),
		Data:      map[string]any{},
	})
}

// LoginSubmit processes the login form.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	loginError := func(msg string) {
		a.renderer.Page(w, r, "admin/login", &render.PageData{
			Title:     "Sign In",
			CSRFToken: middleware.GetCSRFToken(r),
			Data:      map[string]any{"Error": msg},
		})
	}

	user, err := a.staff.FindByEmail(email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		loginError("An unexpected error occurred.")
		return
	}

	if user == nil || !a.staff.CheckPassword(user, password) {
		loginError("Invalid email or password.")
		return
	}

	// Create a session. TwoFADone starts as false until the code checks out.
	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		TwoFADone:   false,
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if user.NeedsTwoFASetup() {
		http.Redirect(w, r, "/admin/2fa/setup", http.StatusSeeOther)
	} else {
		http.Redirect(w, r, "/admin/2fa/verify", http.StatusSeeOther)
	}
}

// TwoFASetupPage generates a TOTP secret and displays the enrollment QR code.
func (a *Auth) TwoFASetupPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: sess.Email,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := a.staff.SetTOTPSecret(sess.UserID, key.Secret()); err != nil {
		slog.Error("save totp secret failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	qrDataURL, err := qrPNGDataURL(key.URL())
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.renderer.Page(w, r, "admin/2fa_setup", &render.PageData{
		Title:     "Set Up Two-Factor Authentication",
		CSRFToken: middleware.GetCSRFToken(r),
		Data: map[string]any{
			"QRCodeDataURL": qrDataURL,
			"Secret":        key.Secret(),
		},
	})
}

// TwoFAVerifyPage renders the code entry form for staff who already
// have 2FA enabled.
func (a *Auth) TwoFAVerifyPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "admin/2fa_verify", &render.PageData{
		Title:     "Two-Factor Authentication",
		CSRFToken: middleware.GetCSRFToken(r),
		Data:      map[string]any{},
	})
}

// TwoFAVerifySubmit validates the TOTP code and completes authentication.
// Both the setup and verify forms post here.
func (a *Auth) TwoFAVerifySubmit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	code := r.FormValue("code")

	user, err := a.staff.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("staff lookup for 2fa failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if user.TOTPSecret == nil {
		http.Redirect(w, r, "/admin/2fa/setup", http.StatusSeeOther)
		return
	}

	if !totp.Validate(code, *user.TOTPSecret) {
		if !user.TOTPEnabled {
			// Still enrolling: show the setup page again with the same secret.
			qrDataURL, _ := qrPNGDataURL(fmt.Sprintf(
				"otpauth://totp/%s:%s?secret=%s&issuer=%s",
				totpIssuer, user.Email, *user.TOTPSecret, totpIssuer,
			))
			a.renderer.Page(w, r, "admin/2fa_setup", &render.PageData{
				Title:     "Set Up Two-Factor Authentication",
				CSRFToken: middleware.GetCSRFToken(r),
				Data: map[string]any{
					"Error":         "Invalid code. Please try again.",
					"QRCodeDataURL": qrDataURL,
					"Secret":        *user.TOTPSecret,
				},
			})
			return
		}

		a.renderer.Page(w, r, "admin/2fa_verify", &render.PageData{
			Title:     "Two-Factor Authentication",
			CSRFToken: middleware.GetCSRFToken(r),
			Data:      map[string]any{"Error": "Invalid code. Please try again."},
		})
		return
	}

	// First successful code on a fresh secret completes enrollment.
	if !user.TOTPEnabled {
		if err := a.staff.EnableTOTP(user.ID); err != nil {
			slog.Error("enable totp failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

// Logout destroys the session and redirects to the login page.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.Destroy(r.Context(), w, r)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

// qrPNGDataURL encodes a TOTP enrollment URL as an inline PNG data URL.
func qrPNGDataURL(otpauthURL string) (string, error) {
	png, err := qrcode.Encode(otpauthURL, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
