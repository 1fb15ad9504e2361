package browser

import (
	"testing"
)

func TestIsChallengePage(t *testing.T) {
	challenges := []string{
		"<html><title>Just a moment...</title></html>",
		`<div class="cf-error-details">error</div>`,
		`<div id="cf-challenge-running"></div>`,
		"<p>Checking your browser before accessing the site.</p>",
	}

	for _, html := range challenges {
		if !IsChallengePage(html) {
			t.Errorf("Expected challenge page: %q", html)
		}
	}

	content := []string{
		"",
		"<html><body><table><tr><td>Monday</td><td>$150</td></tr></table></body></html>",
		"<p>Tournament schedule</p>",
	}

	for _, html := range content {
		if IsChallengePage(html) {
			t.Errorf("Expected venue content, flagged as challenge: %q", html)
		}
	}
}
