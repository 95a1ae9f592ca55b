// Package resources embeds the application icon and default settings.
package resources

import (
	"embed"

	"fyne.io/fyne/v2"
)

// DefaultConfigPath is the path of the default settings inside ConfigFiles.
const DefaultConfigPath = "config/default.yaml"

//go:embed icons/app_256.png
var iconData []byte

func GetAppIcon() fyne.Resource {
	return &fyne.StaticResource{
		StaticName:    "app_256.png",
		StaticContent: iconData,
	}
}

//go:embed config/*.yaml
var ConfigFiles embed.FS
