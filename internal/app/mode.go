package app

// Mode is the named interaction state that decides what a key does
type Mode int

const (
	Normal Mode = iota
	Editing
	Naming
	Renaming
	ChangingDirectory
	SelectingTemplateFolder
	SelectingTemplate
	Search
	ConfirmingDelete
	SelectingMoveDestination
	Settings
)

// String returns the short label shown in the status bar
func (m Mode) String() string {
	switch m {
	case Normal:
		return "NAVIGATE"
	case Editing:
		return "EDITING"
	case Naming:
		return "NAMING"
	case Renaming:
		return "RENAMING"
	case ChangingDirectory:
		return "CHANGE DIR"
	case SelectingTemplateFolder:
		return "SELECT TMPL DIR"
	case SelectingTemplate:
		return "SELECT TMPL"
	case Search:
		return "SEARCH"
	case ConfirmingDelete:
		return "CONFIRM DELETE"
	case SelectingMoveDestination:
		return "SELECT MOVE DEST"
	case Settings:
		return "SETTINGS"
	}
	return "UNKNOWN"
}
