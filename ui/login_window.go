package ui

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/store-ratings/desktop/internal/auth"
	"github.com/store-ratings/desktop/services"
)

// NewLoginWindow creates and returns the login window. On successful login
// the session is already persisted by the auth service; onSuccess is called
// with the user's role so the caller can open the matching dashboard.
// onRegister switches to the registration screen.
func NewLoginWindow(a fyne.App, service auth.Service, onSuccess func(role string), onRegister func()) fyne.Window {
	if service == nil {
		log.Fatal("Auth service not provided to NewLoginWindow")
	}

	win := a.NewWindow("Login")

	emailEntry := widget.NewEntry()
	emailEntry.SetPlaceHolder("Email")

	passwordEntry := widget.NewPasswordEntry()
	passwordEntry.SetPlaceHolder("Password")

	statusLabel := widget.NewLabel("")

	loginButton := widget.NewButton("Login", func() {
		statusLabel.SetText("Logging in...")
		email := emailEntry.Text
		password := passwordEntry.Text

		if email == "" || password == "" {
			statusLabel.SetText("Email and password required.")
			dialog.ShowError(fmt.Errorf("email and password cannot be empty"), win)
			return
		}

		_, user, err := service.Login(email, password)
		if err != nil {
			log.Printf("Login failed: %v", err)
			msg := services.ErrorMessage(err, "Login failed")
			statusLabel.SetText(msg)
			dialog.ShowError(fmt.Errorf("%s", msg), win)
			return
		}

		log.Printf("Login successful, role %q", user.Role)
		statusLabel.SetText("Login successful!")
		onSuccess(user.Role)
		win.Close()
	})

	registerButton := widget.NewButton("Register", func() {
		onRegister()
		win.Close()
	})

	form := container.NewVBox(
		widget.NewLabel("Please Log In"),
		emailEntry,
		passwordEntry,
		loginButton,
		registerButton,
		statusLabel,
	)

	win.SetContent(form)
	win.Resize(fyne.NewSize(300, 240))
	win.SetFixedSize(true)
	win.CenterOnScreen()
	return win
}
