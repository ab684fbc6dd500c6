package ui

import (
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/store-ratings/desktop/internal/auth"
	"github.com/store-ratings/desktop/internal/validate"
	"github.com/store-ratings/desktop/services"
)

// NewRegisterWindow creates the self-service registration window. The form
// is validated locally before anything is sent; the server still validates
// again and its message is shown verbatim when it rejects. After a
// successful signup the window shows a confirmation and returns to the
// login screen via onDone.
func NewRegisterWindow(a fyne.App, service auth.Service, onDone func()) fyne.Window {
	win := a.NewWindow("Register")

	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Full Name")

	emailEntry := widget.NewEntry()
	emailEntry.SetPlaceHolder("Email")

	addressEntry := widget.NewMultiLineEntry()
	addressEntry.SetPlaceHolder("Address")

	passwordEntry := widget.NewPasswordEntry()
	passwordEntry.SetPlaceHolder("Password")

	statusLabel := widget.NewLabel("")
	statusLabel.Wrapping = fyne.TextWrapWord

	var registerButton *widget.Button
	registerButton = widget.NewButton("Register", func() {
		statusLabel.SetText("")

		if err := validate.Registration(nameEntry.Text, emailEntry.Text, addressEntry.Text, passwordEntry.Text); err != nil {
			statusLabel.SetText(err.Error())
			return
		}

		registerButton.Disable()
		message, err := service.Signup(nameEntry.Text, emailEntry.Text, addressEntry.Text, passwordEntry.Text)
		if err != nil {
			log.Printf("Signup failed: %v", err)
			statusLabel.SetText(services.ErrorMessage(err, "Signup failed."))
			registerButton.Enable()
			return
		}

		if message == "" {
			message = "User registered successfully."
		}
		statusLabel.SetText(message + " Redirecting to login...")

		time.AfterFunc(2*time.Second, func() {
			fyne.Do(func() {
				win.Close()
				onDone()
			})
		})
	})

	backButton := widget.NewButton("Back to Login", func() {
		win.Close()
		onDone()
	})

	form := container.NewVBox(
		widget.NewLabel("Create an Account"),
		nameEntry,
		emailEntry,
		addressEntry,
		passwordEntry,
		registerButton,
		backButton,
		statusLabel,
	)

	win.SetContent(form)
	win.Resize(fyne.NewSize(360, 420))
	win.SetFixedSize(true)
	win.CenterOnScreen()
	return win
}
