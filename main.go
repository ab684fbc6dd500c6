package main

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/store-ratings/desktop/assets"
	"github.com/store-ratings/desktop/core"
	"github.com/store-ratings/desktop/internal/config"
	"github.com/store-ratings/desktop/internal/types"
	"github.com/store-ratings/desktop/services"
	"github.com/store-ratings/desktop/ui"
)

// appState wires the shared pieces every screen needs.
type appState struct {
	fyneApp      fyne.App
	sessions     *core.SessionDB
	apiClient    *services.ApiClient
	authService  *services.AuthService
	adminService *services.AdminService
	storeService *services.StoreService
}

// showLogin displays the login window, wiring the post-login navigation and
// the switch to the registration screen.
func (s *appState) showLogin() {
	win := ui.NewLoginWindow(s.fyneApp, s.authService, s.showDashboard, s.showRegister)
	win.Show()
}

func (s *appState) showRegister() {
	win := ui.NewRegisterWindow(s.fyneApp, s.authService, s.showLogin)
	win.Show()
}

// showDashboard opens the screen matching the role: admin -> admin
// dashboard, store_owner -> owner dashboard, anything else -> user
// dashboard.
func (s *appState) showDashboard(role string) {
	log.Printf("Opening dashboard for role %q (%s)", role, types.RouteForRole(role))
	switch types.RouteForRole(role) {
	case types.RouteAdmin:
		ui.NewAdminWindow(s.fyneApp, s.adminService, s.logout).Win.Show()
	case types.RouteOwner:
		ui.NewOwnerWindow(s.fyneApp, s.storeService, s.logout).Win.Show()
	default:
		ratings := core.NewRatingManager(s.storeService)
		ui.NewUserWindow(s.fyneApp, s.storeService, ratings, s.logout).Win.Show()
	}
}

// logout clears the session and returns to the login screen. Dashboards call
// this both for the Logout button and when the backend rejects the token.
func (s *appState) logout() {
	if err := s.authService.Logout(); err != nil {
		log.Printf("Error clearing session: %v", err)
	}
	s.showLogin()
}

func main() {
	cfg := config.Load()

	myApp := app.New()
	if icon := assets.GetAppIconResource(); icon != nil {
		myApp.SetIcon(icon)
	} else {
		log.Println("Failed to load icon from embedded resources")
	}

	sessions, err := core.NewSessionDB(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to prepare session store: %v", err)
	}
	if err := sessions.Connect(); err != nil {
		log.Fatalf("Failed to open session store: %v", err)
	}
	defer sessions.Close()

	apiClient := services.NewApiClient(cfg.APIBaseURL, cfg.RequestTimeout)

	state := &appState{
		fyneApp:      myApp,
		sessions:     sessions,
		apiClient:    apiClient,
		authService:  services.NewAuthService(apiClient, sessions),
		adminService: services.NewAdminService(apiClient),
		storeService: services.NewStoreService(apiClient),
	}

	// Rehydrate a persisted session so a restart does not force a re-login.
	session, ok, err := sessions.Current()
	if err != nil {
		log.Printf("Error loading saved session: %v", err)
	}
	if ok {
		log.Printf("Found saved session, role %q", session.Role)
		apiClient.SetToken(session.Token)
		state.showDashboard(session.Role)
	} else {
		log.Println("No saved session, launching login window.")
		state.showLogin()
	}

	myApp.Run()
	log.Println("Application has exited.")
}
