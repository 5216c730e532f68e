// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"linkhub/internal/imaging"
	"linkhub/internal/middleware"
	"linkhub/internal/models"
	"linkhub/internal/render"
)

// SettingsTab renders the settings page.
func (d *Dashboard) SettingsTab(w http.ResponseWriter, r *http.Request) {
	profile := d.currentProfile(w, r)
	if profile == nil {
		return
	}
	d.renderSettings(w, r, profile, "", "")
}

func (d *Dashboard) renderSettings(w http.ResponseWriter, r *http.Request, profile *models.Profile, flash, flashType string) {
	sess := middleware.SessionFromCtx(r.Context())
	totpEnabled := false
	if sess != nil {
		if user, err := d.userStore.FindByID(sess.UserID); err == nil && user != nil {
			totpEnabled = user.TOTPEnabled
		}
	}
	d.renderer.Page(w, r, "settings", &render.PageData{
		Title:     "Settings",
		Tab:       "settings",
		Flash:     flash,
		FlashType: flashType,
		Data: map[string]any{
			"Profile":        profile,
			"TOTPEnabled":    totpEnabled,
			"StorageEnabled": d.storageClient != nil,
		},
	})
}

// AvatarUpload processes a multipart avatar upload: decode, square-crop,
// resize, store in S3, then point the profile at the new URL.
func (d *Dashboard) AvatarUpload(w http.ResponseWriter, r *http.Request) {
	profile := d.currentProfile(w, r)
	if profile == nil {
		return
	}
	if d.storageClient == nil {
		d.renderSettings(w, r, profile, "Avatar uploads are disabled: object storage is not configured.", "error")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes)
	file, _, err := r.FormFile("avatar")
	if err != nil {
		d.renderSettings(w, r, profile, "Please choose an image file to upload.", "error")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		d.renderSettings(w, r, profile, "Upload failed. Please try again.", "error")
		return
	}

	avatar, err := imaging.ProcessAvatar(raw)
	if err != nil {
		d.renderSettings(w, r, profile, "That file doesn't look like an image we can process.", "error")
		return
	}

	url, err := d.storageClient.UploadAvatar(r.Context(), profile.ID.String(), avatar)
	if err != nil {
		slog.Error("avatar upload failed", "error", err)
		d.renderSettings(w, r, profile, "Upload failed. Please try again.", "error")
		return
	}

	old := profile.AvatarURL
	updated, err := d.profileStore.Update(profile.UserID, models.ProfileUpdate{AvatarURL: &url})
	if err != nil {
		slog.Error("avatar url save failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if old != nil {
		if err := d.storageClient.DeleteAvatar(r.Context(), *old); err != nil {
			slog.Warn("old avatar delete failed", "error", err)
		}
	}

	d.invalidate(r, updated.Username)
	d.renderSettings(w, r, updated, "Avatar updated.", "success")
}

// ShareQR serves a PNG QR code pointing at the user's public page.
func (d *Dashboard) ShareQR(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	png, err := qrcode.Encode(d.baseURL+"/"+sess.Username, qrcode.Medium, 512)
	if err != nil {
		slog.Error("share qr generation failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}

// TwoFASetupPage generates a TOTP secret and shows the enrolment QR.
func (d *Dashboard) TwoFASetupPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "LinkHub",
		AccountName: sess.Email,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if err := d.userStore.SetTOTPSecret(sess.UserID, key.Secret()); err != nil {
		slog.Error("save totp secret failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	qrPNG, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		slog.Error("totp qr generation failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	d.renderer.Page(w, r, "2fa_setup", &render.PageData{
		Title: "Set up 2FA",
		Data: map[string]any{
			"QRDataURI": "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrPNG),
			"Secret":    key.Secret(),
		},
	})
}

// TwoFAConfirm validates the first code and enables TOTP for the account.
func (d *Dashboard) TwoFAConfirm(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := d.userStore.FindByID(sess.UserID)
	if err != nil || user == nil || user.TOTPSecret == nil {
		http.Redirect(w, r, "/dashboard/settings/2fa/setup", http.StatusSeeOther)
		return
	}

	if !totp.Validate(r.FormValue("code"), *user.TOTPSecret) {
		qrPNG, _ := qrcode.Encode(totpURL(user.Email, *user.TOTPSecret), qrcode.Medium, 256)
		d.renderer.Page(w, r, "2fa_setup", &render.PageData{
			Title:     "Set up 2FA",
			Flash:     "Invalid code. Please try again.",
			FlashType: "error",
			Data: map[string]any{
				"QRDataURI": "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrPNG),
				"Secret":    *user.TOTPSecret,
			},
		})
		return
	}

	if err := d.userStore.EnableTOTP(user.ID); err != nil {
		slog.Error("enable totp failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/dashboard/settings", http.StatusSeeOther)
}

// TwoFADisable drops the account's TOTP enrolment.
func (d *Dashboard) TwoFADisable(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := d.userStore.ResetTOTP(sess.UserID); err != nil {
		slog.Error("reset totp failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/dashboard/settings", http.StatusSeeOther)
}

func totpURL(email, secret string) string {
	return "otpauth://totp/LinkHub:" + email + "?secret=" + secret + "&issuer=LinkHub"
}
