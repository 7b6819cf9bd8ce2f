// Package templates embeds the documents plenario renders.
package templates

import (
	"embed"
)

//go:embed minutes/*.tmpl
var minutesTemplates embed.FS

// GetMinutes returns the minutes (ata) template content
func GetMinutes() (string, error) {
	content, err := minutesTemplates.ReadFile("minutes/ata.md.tmpl")
	if err != nil {
		return "", err
	}
	return string(content), nil
}
