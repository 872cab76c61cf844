// Package cli provides the command-line interface for the harvest application.
package cli

import (
	"github.com/shelfwatch/harvest/internal/app"
	"github.com/spf13/cobra"
)

// SetApp stores the Application for commands to access
func SetApp(cmd *cobra.Command, a *app.Application) {
	if cmd == nil {
		return
	}
	// Store in global for now - will be refactored when Cobra context is fully available
	globalApp = a
}

// GetApp retrieves the Application
func GetApp() *app.Application {
	return globalApp
}

// Global reference - temporary until full context passing is implemented
var globalApp *app.Application
