package ui

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/store-ratings/desktop/internal/types"
	"github.com/store-ratings/desktop/services"
)

// OwnerWindowUI is the store owner's read-only view: the stores in the
// system with their aggregated ratings. Ratings themselves are submitted by
// regular users; the averages are computed server-side.
type OwnerWindowUI struct {
	App fyne.App
	Win fyne.Window

	messageLabel  *widget.Label
	storesBox     *fyne.Container
	refreshButton *widget.Button

	storeService *services.StoreService
	onLogout     func()
}

// NewOwnerWindow creates the store owner dashboard.
func NewOwnerWindow(a fyne.App, storeService *services.StoreService, onLogout func()) *OwnerWindowUI {
	ui := &OwnerWindowUI{
		App:          a,
		storeService: storeService,
		onLogout:     onLogout,
	}
	ui.Win = a.NewWindow("Owner Dashboard")
	ui.Win.Resize(fyne.NewSize(440, 520))

	ui.setupUI()
	ui.loadStores()

	return ui
}

func (ui *OwnerWindowUI) setupUI() {
	logoutButton := widget.NewButton("Logout", func() { ui.forceLogout() })
	header := container.NewBorder(nil, nil, widget.NewLabel("Owner Dashboard"), logoutButton)

	ui.messageLabel = widget.NewLabel("")
	ui.messageLabel.Wrapping = fyne.TextWrapWord

	ui.storesBox = container.NewVBox()
	storesScroll := container.NewVScroll(ui.storesBox)
	storesScroll.SetMinSize(fyne.NewSize(400, 360))

	ui.refreshButton = widget.NewButtonWithIcon("Refresh", theme.ViewRefreshIcon(), ui.loadStores)

	content := container.NewVBox(
		header,
		ui.messageLabel,
		widget.NewCard("Store Ratings", "", container.NewVBox(storesScroll, ui.refreshButton)),
	)
	ui.Win.SetContent(content)
}

func (ui *OwnerWindowUI) loadStores() {
	ui.refreshButton.Disable()
	ui.messageLabel.SetText("Loading stores...")

	go func() {
		stores, err := ui.storeService.ListStores(types.StoreFilters{})
		fyne.Do(func() {
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
			ui.messageLabel.SetText("")
			ui.renderStores(stores)
		})
	}()
}

func (ui *OwnerWindowUI) renderStores(stores []types.Store) {
	ui.storesBox.RemoveAll()

	if len(stores) == 0 {
		ui.storesBox.Add(widget.NewLabel("No stores found."))
		ui.storesBox.Refresh()
		return
	}

	for _, store := range stores {
		details := container.NewVBox(
			widget.NewLabel(store.Address),
			widget.NewLabel(fmt.Sprintf("Avg Rating: %.1f", store.AvgRating)),
		)
		ui.storesBox.Add(widget.NewCard(store.Name, "", details))
	}
	ui.storesBox.Refresh()
}

func (ui *OwnerWindowUI) forceLogout() {
	ui.onLogout()
	ui.Win.Close()
}
