package ui

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/store-ratings/desktop/core"
	"github.com/store-ratings/desktop/internal/types"
	"github.com/store-ratings/desktop/services"
)

// UserWindowUI is the store browsing and rating screen for regular users.
type UserWindowUI struct {
	App fyne.App
	Win fyne.Window

	nameEntry     *widget.Entry
	addressEntry  *widget.Entry
	searchButton  *widget.Button
	refreshButton *widget.Button
	messageLabel  *widget.Label
	storesBox     *fyne.Container
	logoutButton  *widget.Button

	stores []types.Store

	storeService *services.StoreService
	ratings      *core.RatingManager
	onLogout     func()
}

// NewUserWindow creates the user dashboard. onLogout is called after the
// session has to end, whether the user clicked Logout or the backend
// rejected the token.
func NewUserWindow(a fyne.App, storeService *services.StoreService, ratings *core.RatingManager, onLogout func()) *UserWindowUI {
	ui := &UserWindowUI{
		App:          a,
		storeService: storeService,
		ratings:      ratings,
		onLogout:     onLogout,
	}
	ui.Win = a.NewWindow("Store Ratings")
	ui.Win.Resize(fyne.NewSize(520, 620))

	ui.setupUI()
	ui.loadStores(true)

	return ui
}

func (ui *UserWindowUI) setupUI() {
	ui.nameEntry = widget.NewEntry()
	ui.nameEntry.SetPlaceHolder("Search by Name")

	ui.addressEntry = widget.NewEntry()
	ui.addressEntry.SetPlaceHolder("Search by Address")

	ui.searchButton = widget.NewButton("Search", func() { ui.loadStores(false) })
	ui.refreshButton = widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), func() { ui.loadStores(true) })

	searchLayout := container.NewVBox(
		ui.nameEntry,
		ui.addressEntry,
		container.NewBorder(nil, nil, nil, ui.refreshButton, ui.searchButton),
	)
	searchCard := widget.NewCard("Search Stores", "", searchLayout)

	ui.messageLabel = widget.NewLabel("")
	ui.messageLabel.Wrapping = fyne.TextWrapWord

	ui.storesBox = container.NewVBox()
	storesScroll := container.NewVScroll(ui.storesBox)
	storesScroll.SetMinSize(fyne.NewSize(480, 380))
	storesCard := widget.NewCard("Stores", "", storesScroll)

	ui.logoutButton = widget.NewButton("Logout", func() { ui.forceLogout() })

	header := container.NewBorder(nil, nil, widget.NewLabel("User Dashboard"), ui.logoutButton)

	content := container.NewVBox(
		header,
		ui.messageLabel,
		searchCard,
		storesCard,
		layout.NewSpacer(),
	)
	ui.Win.SetContent(content)
}

// loadStores fetches the store list (and on first load the user's existing
// ratings) and rebuilds the display.
func (ui *UserWindowUI) loadStores(withRatings bool) {
	ui.searchButton.Disable()
	ui.refreshButton.Disable()
	ui.messageLabel.SetText("Loading stores...")

	filters := types.StoreFilters{
		Name:    ui.nameEntry.Text,
		Address: ui.addressEntry.Text,
	}

	go func() {
		if withRatings {
			if err := ui.ratings.Load(); err != nil {
				log.Printf("Error loading ratings: %v", err)
				if services.IsAuthError(err) {
					fyne.Do(func() { ui.forceLogout() })
					return
				}
			}
		}

		stores, err := ui.storeService.ListStores(filters)
		fyne.Do(func() {
			ui.searchButton.Enable()
			ui.refreshButton.Enable()
			if err != nil {
				log.Printf("Error loading stores: %v", err)
				if services.IsAuthError(err) {
					ui.forceLogout()
					return
				}
				ui.messageLabel.SetText(services.ErrorMessage(err, "Failed to load stores"))
				return
			}
			ui.stores = stores
			ui.messageLabel.SetText("")
			ui.renderStores()
		})
	}()
}

// renderStores rebuilds the store list from ui.stores and the rating cache.
func (ui *UserWindowUI) renderStores() {
	ui.storesBox.RemoveAll()

	if len(ui.stores) == 0 {
		ui.storesBox.Add(widget.NewLabel("No stores found."))
		ui.storesBox.Refresh()
		return
	}

	for _, store := range ui.stores {
		store := store

		yourRating := "Not Rated"
		if rating, ok := ui.ratings.Get(store.ID); ok {
			yourRating = fmt.Sprintf("%d stars", rating)
		}

		info := container.NewVBox(
			widget.NewLabel(store.Address),
			widget.NewLabel(fmt.Sprintf("Avg Rating: %.1f", store.AvgRating)),
			widget.NewLabel("Your Rating: "+yourRating),
		)

		starButtons := make([]fyne.CanvasObject, 0, 5)
		for star := 1; star <= 5; star++ {
			star := star
			btn := widget.NewButton(fmt.Sprintf("%d", star), func() {
				ui.handleRate(store.ID, star)
			})
			if rating, ok := ui.ratings.Get(store.ID); ok && rating == star {
				btn.Importance = widget.HighImportance
			}
			starButtons = append(starButtons, btn)
		}
		rateRow := container.NewGridWithColumns(5, starButtons...)

		ui.storesBox.Add(widget.NewCard(store.Name, "", container.NewVBox(info, rateRow)))
	}

	ui.storesBox.Refresh()
}

// handleRate submits a rating. The rating cache is only updated after the
// server accepts; a failure leaves the previous rating in place and shows
// the server's message.
func (ui *UserWindowUI) handleRate(storeID, rating int) {
	go func() {
		message, err := ui.ratings.Rate(storeID, rating)
		fyne.Do(func() {
			if err != nil {
				log.Printf("Rating store %d failed: %v", storeID, err)
				if services.IsAuthError(err) {
					ui.forceLogout()
					return
				}
				ui.messageLabel.SetText(services.ErrorMessage(err, "Rating failed"))
				return
			}
			if message == "" {
				message = "Rating submitted."
			}
			ui.messageLabel.SetText(message)
			ui.renderStores()
		})
	}()
}

// forceLogout ends the session and hands control back to the login screen.
func (ui *UserWindowUI) forceLogout() {
	ui.ratings.Clear()
	ui.onLogout()
	ui.Win.Close()
}
