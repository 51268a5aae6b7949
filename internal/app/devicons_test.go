package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeviconForFossilFiles(t *testing.T) {
	assert.Equal(t, iconRepository, deviconForName("project.fossil", false))
	assert.Equal(t, iconRepository, deviconForName("repos/Backup.FOSSIL", false))
	assert.Equal(t, iconCheckout, deviconForName(".fslckout", false))
	assert.Equal(t, iconCheckout, deviconForName("_FOSSIL_", false))
	assert.Equal(t, iconManifest, deviconForName("manifest.uuid", false))
	assert.Equal(t, iconSettings, deviconForName(".fossil-settings", true))
	assert.Equal(t, iconSettings, deviconForName("src/.fossil-settings", true))
}

func TestDeviconForOtherFiles(t *testing.T) {
	assert.Empty(t, deviconForName("", false))
	assert.NotEmpty(t, deviconForName("main.go", false))
	assert.NotEmpty(t, deviconForName("src", true))
	assert.NotEqual(t, iconRepository, deviconForName("fossil.c", false))
	assert.Equal(t, deviconForName("main.go", false), deviconForName("cmd/fuel/main.go", false))
}

func TestIconWithSpace(t *testing.T) {
	assert.Empty(t, iconWithSpace(""))
	assert.Equal(t, "x ", iconWithSpace("x"))
}
