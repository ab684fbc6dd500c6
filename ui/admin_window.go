package ui

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/store-ratings/desktop/internal/types"
	"github.com/store-ratings/desktop/internal/validate"
	"github.com/store-ratings/desktop/services"
)

const allRolesOption = "All Roles"

var roleOptions = []string{types.RoleUser, types.RoleAdmin, types.RoleStoreOwner}

// AdminWindowUI is the administration screen: overview counters, user and
// store listings with filters, and forms to create users and stores.
type AdminWindowUI struct {
	App fyne.App
	Win fyne.Window

	totalUsersLabel   *widget.Label
	totalStoresLabel  *widget.Label
	totalRatingsLabel *widget.Label
	statsMessage      *widget.Label

	userNameFilter    *widget.Entry
	userEmailFilter   *widget.Entry
	userAddressFilter *widget.Entry
	userRoleFilter    *widget.Select
	userFilterButton  *widget.Button
	usersBox          *fyne.Container

	newUserName     *widget.Entry
	newUserEmail    *widget.Entry
	newUserAddress  *widget.Entry
	newUserPassword *widget.Entry
	newUserRole     *widget.Select
	userMessage     *widget.Label

	storeNameFilter    *widget.Entry
	storeEmailFilter   *widget.Entry
	storeAddressFilter *widget.Entry
	storeFilterButton  *widget.Button
	storesBox          *fyne.Container

	newStoreName    *widget.Entry
	newStoreEmail   *widget.Entry
	newStoreAddress *widget.Entry
	ownerSelect     *widget.Select
	storeMessage    *widget.Label

	users       []types.User
	storeOwners []types.User
	stores      []types.Store

	adminService *services.AdminService
	onLogout     func()
}

// NewAdminWindow creates the admin dashboard and kicks off the initial
// stats, user and store fetches.
func NewAdminWindow(a fyne.App, adminService *services.AdminService, onLogout func()) *AdminWindowUI {
	ui := &AdminWindowUI{
		App:          a,
		adminService: adminService,
		onLogout:     onLogout,
	}
	ui.Win = a.NewWindow("Admin Dashboard")
	ui.Win.Resize(fyne.NewSize(720, 640))

	ui.setupUI()
	ui.fetchStats()
	ui.fetchUsers()
	ui.fetchStores()

	return ui
}

func (ui *AdminWindowUI) setupUI() {
	logoutButton := widget.NewButton("Logout", func() { ui.forceLogout() })
	header := container.NewBorder(nil, nil, widget.NewLabel("Admin Dashboard"), logoutButton)

	tabs := container.NewAppTabs(
		container.NewTabItem("Overview", ui.buildOverviewTab()),
		container.NewTabItem("Users", ui.buildUsersTab()),
		container.NewTabItem("Stores", ui.buildStoresTab()),
	)
	tabs.SetTabLocation(container.TabLocationTop)

	ui.Win.SetContent(container.NewBorder(header, nil, nil, nil, tabs))
}

func (ui *AdminWindowUI) buildOverviewTab() fyne.CanvasObject {
	ui.totalUsersLabel = widget.NewLabel("0")
	ui.totalStoresLabel = widget.NewLabel("0")
	ui.totalRatingsLabel = widget.NewLabel("0")
	ui.statsMessage = widget.NewLabel("")
	ui.statsMessage.Wrapping = fyne.TextWrapWord

	stats := container.NewGridWithColumns(3,
		widget.NewCard("Total Users", "", ui.totalUsersLabel),
		widget.NewCard("Total Stores", "", ui.totalStoresLabel),
		widget.NewCard("Total Ratings", "", ui.totalRatingsLabel),
	)

	refreshButton := widget.NewButtonWithIcon("Refresh", theme.ViewRefreshIcon(), func() {
		ui.fetchStats()
		ui.fetchUsers()
		ui.fetchStores()
	})

	return container.NewVBox(stats, ui.statsMessage, refreshButton)
}

func (ui *AdminWindowUI) buildUsersTab() fyne.CanvasObject {
	ui.userNameFilter = widget.NewEntry()
	ui.userNameFilter.SetPlaceHolder("Filter by Name")
	ui.userEmailFilter = widget.NewEntry()
	ui.userEmailFilter.SetPlaceHolder("Filter by Email")
	ui.userAddressFilter = widget.NewEntry()
	ui.userAddressFilter.SetPlaceHolder("Filter by Address")
	ui.userRoleFilter = widget.NewSelect(append([]string{allRolesOption}, roleOptions...), nil)
	ui.userRoleFilter.SetSelected(allRolesOption)
	ui.userFilterButton = widget.NewButton("Apply Filters", ui.fetchUsers)

	filterLayout := container.NewVBox(
		container.NewGridWithColumns(2, ui.userNameFilter, ui.userEmailFilter),
		container.NewGridWithColumns(2, ui.userAddressFilter, ui.userRoleFilter),
		ui.userFilterButton,
	)
	filterCard := widget.NewCard("User Filters", "", filterLayout)

	ui.usersBox = container.NewVBox(widget.NewLabel("Loading users..."))
	usersScroll := container.NewVScroll(ui.usersBox)
	usersScroll.SetMinSize(fyne.NewSize(660, 220))
	listCard := widget.NewCard("Users List", "", usersScroll)

	ui.newUserName = widget.NewEntry()
	ui.newUserName.SetPlaceHolder("Name")
	ui.newUserEmail = widget.NewEntry()
	ui.newUserEmail.SetPlaceHolder("Email")
	ui.newUserAddress = widget.NewEntry()
	ui.newUserAddress.SetPlaceHolder("Address")
	ui.newUserPassword = widget.NewPasswordEntry()
	ui.newUserPassword.SetPlaceHolder("Password")
	ui.newUserRole = widget.NewSelect(roleOptions, nil)
	ui.newUserRole.SetSelected(types.RoleUser)
	ui.userMessage = widget.NewLabel("")
	ui.userMessage.Wrapping = fyne.TextWrapWord

	addUserButton := widget.NewButton("Add User", ui.handleAddUser)
	addUserLayout := container.NewVBox(
		container.NewGridWithColumns(2, ui.newUserName, ui.newUserEmail),
		container.NewGridWithColumns(2, ui.newUserAddress, ui.newUserPassword),
		ui.newUserRole,
		addUserButton,
		ui.userMessage,
	)
	addUserCard := widget.NewCard("Add New User", "", addUserLayout)

	return container.NewVScroll(container.NewVBox(filterCard, listCard, addUserCard))
}

func (ui *AdminWindowUI) buildStoresTab() fyne.CanvasObject {
	ui.storeNameFilter = widget.NewEntry()
	ui.storeNameFilter.SetPlaceHolder("Filter by Name")
	ui.storeEmailFilter = widget.NewEntry()
	ui.storeEmailFilter.SetPlaceHolder("Filter by Email")
	ui.storeAddressFilter = widget.NewEntry()
	ui.storeAddressFilter.SetPlaceHolder("Filter by Address")
	ui.storeFilterButton = widget.NewButton("Apply Filters", ui.fetchStores)

	filterLayout := container.NewVBox(
		container.NewGridWithColumns(3, ui.storeNameFilter, ui.storeEmailFilter, ui.storeAddressFilter),
		ui.storeFilterButton,
	)
	filterCard := widget.NewCard("Store Filters", "", filterLayout)

	ui.storesBox = container.NewVBox(widget.NewLabel("Loading stores..."))
	storesScroll := container.NewVScroll(ui.storesBox)
	storesScroll.SetMinSize(fyne.NewSize(660, 220))
	listCard := widget.NewCard("Stores List", "", storesScroll)

	ui.newStoreName = widget.NewEntry()
	ui.newStoreName.SetPlaceHolder("Store Name")
	ui.newStoreEmail = widget.NewEntry()
	ui.newStoreEmail.SetPlaceHolder("Store Email")
	ui.newStoreAddress = widget.NewEntry()
	ui.newStoreAddress.SetPlaceHolder("Store Address")
	ui.ownerSelect = widget.NewSelect([]string{}, nil)
	ui.ownerSelect.PlaceHolder = "Select Store Owner"
	ui.storeMessage = widget.NewLabel("")
	ui.storeMessage.Wrapping = fyne.TextWrapWord

	addStoreButton := widget.NewButton("Add Store", ui.handleAddStore)
	addStoreLayout := container.NewVBox(
		container.NewGridWithColumns(2, ui.newStoreName, ui.newStoreEmail),
		ui.newStoreAddress,
		ui.ownerSelect,
		addStoreButton,
		ui.storeMessage,
	)
	addStoreCard := widget.NewCard("Add New Store", "", addStoreLayout)

	return container.NewVScroll(container.NewVBox(filterCard, listCard, addStoreCard))
}

// fetchStats refreshes the overview counters.
func (ui *AdminWindowUI) fetchStats() {
	go func() {
		stats, err := ui.adminService.Dashboard()
		fyne.Do(func() { ui.applyStats(stats, err) })
	}()
}

// applyStats updates the overview from a fetch result. An invalid session
// ends the dashboard; any other failure is shown to the user.
func (ui *AdminWindowUI) applyStats(stats *types.DashboardStats, err error) {
	if err != nil {
		log.Printf("Error loading dashboard stats: %v", err)
		if services.IsAuthError(err) {
			ui.forceLogout()
			return
		}
		ui.statsMessage.SetText(services.ErrorMessage(err, "Failed to load dashboard stats"))
		return
	}
	ui.statsMessage.SetText("")
	ui.totalUsersLabel.SetText(fmt.Sprintf("%d", stats.TotalUsers))
	ui.totalStoresLabel.SetText(fmt.Sprintf("%d", stats.TotalStores))
	ui.totalRatingsLabel.SetText(fmt.Sprintf("%d", stats.TotalRatings))
}

func (ui *AdminWindowUI) userFilters() types.UserFilters {
	role := ui.userRoleFilter.Selected
	if role == allRolesOption {
		role = ""
	}
	return types.UserFilters{
		Name:    ui.userNameFilter.Text,
		Email:   ui.userEmailFilter.Text,
		Address: ui.userAddressFilter.Text,
		Role:    role,
	}
}

// fetchUsers refreshes the user list and, with it, the store owner selector.
// The owner options are always derived from the list that is currently
// shown, never from a stale fetch.
func (ui *AdminWindowUI) fetchUsers() {
	ui.userFilterButton.Disable()
	filters := ui.userFilters()

	go func() {
		users, err := ui.adminService.ListUsers(filters)
		fyne.Do(func() {
			ui.userFilterButton.Enable()
			if err != nil {
				log.Printf("Error loading users: %v", err)
				if services.IsAuthError(err) {
					ui.forceLogout()
					return
				}
				ui.userMessage.SetText(services.ErrorMessage(err, "Failed to load users"))
				return
			}
			ui.users = users
			ui.storeOwners = types.FilterStoreOwners(users)
			ui.renderUsers()
			ui.renderOwnerOptions()
		})
	}()
}

func (ui *AdminWindowUI) renderUsers() {
	ui.usersBox.RemoveAll()

	if len(ui.users) == 0 {
		ui.usersBox.Add(widget.NewLabel("No users found."))
		ui.usersBox.Refresh()
		return
	}

	ui.usersBox.Add(container.NewGridWithColumns(4,
		widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Email", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Address", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Role", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	))
	for _, user := range ui.users {
		ui.usersBox.Add(container.NewGridWithColumns(4,
			widget.NewLabel(user.Name),
			widget.NewLabel(user.Email),
			widget.NewLabel(user.Address),
			widget.NewLabel(user.Role),
		))
	}
	ui.usersBox.Refresh()
}

// renderOwnerOptions rebuilds the owner selector from the current store
// owner list. A previously selected owner that no longer appears is
// deselected.
func (ui *AdminWindowUI) renderOwnerOptions() {
	options := make([]string, len(ui.storeOwners))
	for i, owner := range ui.storeOwners {
		options[i] = ownerDisplay(owner)
	}

	selected := ui.ownerSelect.Selected
	stillPresent := false
	for _, option := range options {
		if option == selected {
			stillPresent = true
			break
		}
	}

	ui.ownerSelect.Options = options
	if !stillPresent {
		ui.ownerSelect.ClearSelected()
	}
	ui.ownerSelect.Refresh()
}

func ownerDisplay(owner types.User) string {
	return fmt.Sprintf("%s (%s)", owner.Name, owner.Email)
}

func (ui *AdminWindowUI) selectedOwner() (types.User, bool) {
	for _, owner := range ui.storeOwners {
		if ownerDisplay(owner) == ui.ownerSelect.Selected {
			return owner, true
		}
	}
	return types.User{}, false
}

func (ui *AdminWindowUI) fetchStores() {
	ui.storeFilterButton.Disable()
	filters := types.StoreFilters{
		Name:    ui.storeNameFilter.Text,
		Email:   ui.storeEmailFilter.Text,
		Address: ui.storeAddressFilter.Text,
	}

	go func() {
		stores, err := ui.adminService.ListStores(filters)
		fyne.Do(func() {
			ui.storeFilterButton.Enable()
			if err != nil {
				log.Printf("Error loading stores: %v", err)
				if services.IsAuthError(err) {
					ui.forceLogout()
					return
				}
				ui.storeMessage.SetText(services.ErrorMessage(err, "Failed to load stores"))
				return
			}
			ui.stores = stores
			ui.renderStores()
		})
	}()
}

func (ui *AdminWindowUI) renderStores() {
	ui.storesBox.RemoveAll()

	if len(ui.stores) == 0 {
		ui.storesBox.Add(widget.NewLabel("No stores found."))
		ui.storesBox.Refresh()
		return
	}

	ui.storesBox.Add(container.NewGridWithColumns(5,
		widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Email", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Address", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Owner", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Avg Rating", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	))
	for _, store := range ui.stores {
		ui.storesBox.Add(container.NewGridWithColumns(5,
			widget.NewLabel(store.Name),
			widget.NewLabel(store.Email),
			widget.NewLabel(store.Address),
			widget.NewLabel(store.OwnerName),
			widget.NewLabel(fmt.Sprintf("%.1f", store.AvgRating)),
		))
	}
	ui.storesBox.Refresh()
}

// handleAddUser creates an account after running the same field checks the
// registration screen uses. On success the form is cleared and the user
// list refetched so the owner selector stays in sync.
func (ui *AdminWindowUI) handleAddUser() {
	ui.userMessage.SetText("")

	if err := validate.Registration(ui.newUserName.Text, ui.newUserEmail.Text, ui.newUserAddress.Text, ui.newUserPassword.Text); err != nil {
		ui.userMessage.SetText(err.Error())
		return
	}

	req := types.CreateUserRequest{
		Name:     ui.newUserName.Text,
		Email:    ui.newUserEmail.Text,
		Address:  ui.newUserAddress.Text,
		Password: ui.newUserPassword.Text,
		Role:     ui.newUserRole.Selected,
	}

	go func() {
		message, err := ui.adminService.CreateUser(req)
		fyne.Do(func() {
			if err != nil {
				log.Printf("Error creating user: %v", err)
				if services.IsAuthError(err) {
					ui.forceLogout()
					return
				}
				ui.userMessage.SetText(services.ErrorMessage(err, "Failed to create user"))
				return
			}
			if message == "" {
				message = "User created."
			}
			ui.userMessage.SetText(message)
			ui.newUserName.SetText("")
			ui.newUserEmail.SetText("")
			ui.newUserAddress.SetText("")
			ui.newUserPassword.SetText("")
			ui.newUserRole.SetSelected(types.RoleUser)
			ui.fetchUsers()
		})
	}()
}

// handleAddStore creates a store for the selected owner and refetches the
// store list on success.
func (ui *AdminWindowUI) handleAddStore() {
	ui.storeMessage.SetText("")

	owner, ok := ui.selectedOwner()
	if !ok {
		ui.storeMessage.SetText("Select a store owner first.")
		return
	}

	req := types.CreateStoreRequest{
		Name:    ui.newStoreName.Text,
		Email:   ui.newStoreEmail.Text,
		Address: ui.newStoreAddress.Text,
		OwnerID: owner.ID,
	}

	go func() {
		message, err := ui.adminService.CreateStore(req)
		fyne.Do(func() {
			if err != nil {
				log.Printf("Error creating store: %v", err)
				if services.IsAuthError(err) {
					ui.forceLogout()
					return
				}
				ui.storeMessage.SetText(services.ErrorMessage(err, "Failed to create store"))
				return
			}
			if message == "" {
				message = "Store created."
			}
			ui.storeMessage.SetText(message)
			ui.newStoreName.SetText("")
			ui.newStoreEmail.SetText("")
			ui.newStoreAddress.SetText("")
			ui.ownerSelect.ClearSelected()
			ui.fetchStores()
		})
	}()
}

// forceLogout ends the session and hands control back to the login screen.
func (ui *AdminWindowUI) forceLogout() {
	ui.onLogout()
	ui.Win.Close()
}
