package assets

import (
	"embed"

	"fyne.io/fyne/v2"
)

//go:embed star.png
var assetsFS embed.FS

// GetAppIconResource returns the star.png resource for Fyne.
func GetAppIconResource() fyne.Resource {
	data, err := assetsFS.ReadFile("star.png")
	if err != nil {
		return nil
	}
	return fyne.NewStaticResource("star.png", data)
}
