package report

import (
	"fmt"

	"github.com/pterm/pterm"
)

var (
	infoColorFG  = pterm.FgLightGreen
	infoStyleBG  = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	warnColorFG  = pterm.FgYellow
	warnStyleBG  = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	errorColorFG = pterm.FgRed
	errorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
)

// displayICE displays an internal toolchain error message.
func displayICE(message string) {
	errorStyleBG.Print("Internal Error")
	errorColorFG.Println(" " + message)
	fmt.Println("This error was not supposed to happen: please open an issue on GitHub")
}

// displayFatal displays a fatal error message.
func displayFatal(message string) {
	errorStyleBG.Print("Fatal Error")
	errorColorFG.Println(" " + message)
}

// displayStdError displays a standard Go error.
func displayStdError(tag string, err error) {
	errorStyleBG.Print("Error")
	errorColorFG.Println(fmt.Sprintf(" %s: %s", tag, err.Error()))
}

// displayWarning displays a warning message.
func displayWarning(message string) {
	warnStyleBG.Print("Warning")
	warnColorFG.Println(" " + message)
}

// displayInfo displays an informational progress message.
func displayInfo(message string) {
	infoStyleBG.Print("Info")
	infoColorFG.Println(" " + message)
}
