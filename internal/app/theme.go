package app

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorTextStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	topBarStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236"))
	topBarTitleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236")).Bold(true)
	badgeStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("160")).Bold(true)
	sidebarStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("235"))
	sidebarTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Background(lipgloss.Color("235")).Bold(true)
	navStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("235"))
	navActiveStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Background(lipgloss.Color("235")).Bold(true)
	navCursorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("239"))
	dividerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	backdropStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Faint(true)
	selectedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236"))
	markedStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("180"))
	linkStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("117")).Underline(true)
	tableHeaderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Bold(true).Padding(0, 1)
	tableCellStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 1)
	cardTitleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("69")).Bold(true)
	emptyStateStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	popoverBorderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("69")).Padding(0, 1)
	popoverItemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	popoverMetaStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Faint(true)
	toastInfoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("29")).Bold(true)
	toastWarningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("136")).Bold(true)
	toastErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("160")).Bold(true)
)
