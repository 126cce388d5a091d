package core

// Color is a foreground color token for a screen cell. Values are ANSI
// 256-color codes ("208") or hex strings ("#15803d"), which lets island
// theme colors from the catalog flow straight to the terminal.
type Color string

// Predefined colors for game elements.
const (
	ColorDefault      Color = ""
	ColorRed          Color = "1"
	ColorGreen        Color = "2"
	ColorYellow       Color = "3"
	ColorBlue         Color = "4"
	ColorMagenta      Color = "5"
	ColorCyan         Color = "6"
	ColorWhite        Color = "7"
	ColorBrightYellow Color = "11"
	ColorBrightBlue   Color = "12"
	ColorBrightCyan   Color = "14"
	ColorBrightWhite  Color = "15"
	ColorOrange       Color = "208"
	ColorGray         Color = "245"
)
