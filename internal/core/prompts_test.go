package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProspectCount(t *testing.T) {
	assert.Equal(t, 2, prospectCount("Alice,Bob"))
	assert.Equal(t, 3, prospectCount("Alice, Bob , Carol"))
	assert.Equal(t, 1, prospectCount("Alice,"))
	assert.Equal(t, 0, prospectCount(" "))
}

func TestBuildSearchPrompt(t *testing.T) {
	prompt := buildSearchPrompt("Acme Co")
	assert.Contains(t, prompt, "Acme Co")
	assert.Contains(t, prompt, "Product launches or updates")
}

func TestBuildEmailPrompt(t *testing.T) {
	prompt := buildEmailPrompt("Acme Co", "Acme Co launched Product X", "Alice,Bob", "VP,Manager", false)

	assert.Contains(t, prompt, "Acme Co launched Product X")
	assert.Contains(t, prompt, "Names: Alice,Bob")
	assert.Contains(t, prompt, "Job titles: VP,Manager")
	assert.Contains(t, prompt, "Create 2 emails")
	assert.Contains(t, prompt, "under 100 words")
	assert.Contains(t, prompt, `Sign each email as "Gage"`)
	assert.NotContains(t, prompt, "screenshot")
}

func TestBuildEmailPrompt_MentionsScreenshot(t *testing.T) {
	prompt := buildEmailPrompt("Acme Co", "info", "Alice", "VP", true)
	assert.Contains(t, prompt, "screenshot of a recent company post is attached")
	assert.Contains(t, prompt, "Create 1 emails")
}
