package cli

import (
	fynegui "transcompare/internal/fyne-gui"
)

func launchGUI() error {
	GetLogger().Info("Launching editor")
	fynegui.NewFyneApp(GetConfig(), GetLogger()).Run()
	return nil
}
