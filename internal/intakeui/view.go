package intakeui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/spec-kit/ticket-intake/internal/domain"
)

const placeholderText = "Submit a ticket to see the response here"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle   = lipgloss.NewStyle().Bold(true)
	faintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	replyStyle   = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("42")).
			PaddingLeft(1)
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	focusedBoxStyle = boxStyle.BorderForeground(lipgloss.Color("63"))
	buttonStyle     = lipgloss.NewStyle().
			Padding(0, 2).
			Background(lipgloss.Color("238"))
	focusedButtonStyle = buttonStyle.Background(lipgloss.Color("63")).Bold(true)
)

// View implements tea.Model.
func (m Model) View() string {
	form := m.renderForm()
	response := m.renderResponse()

	if width := m.formWidth(); width > 0 {
		form = boxStyle.Width(width).Render(form)
		response = boxStyle.Width(width).Render(response)
	} else {
		form = boxStyle.Render(form)
		response = boxStyle.Render(response)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Support Ticket System"),
		lipgloss.JoinHorizontal(lipgloss.Top, form, " ", response),
		faintStyle.Render("tab/S-tab move • ←/→ issue type • C-s submit • esc quit"),
	)
}

// formWidth is the width of each pane, or 0 before the terminal size is known.
func (m Model) formWidth() int {
	if m.width <= 0 {
		return 0
	}
	return (m.width - 5) / 2
}

func (m Model) renderForm() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Submit a Ticket"))
	b.WriteString("\n\n")

	if failed, ok := m.state.(Failed); ok {
		b.WriteString(errorStyle.Render(failed.Message))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderField(fieldName, "Your Name:", m.name.View()))
	b.WriteString(m.renderField(fieldEmail, "Email:", m.email.View()))
	b.WriteString(m.renderField(fieldIssueType, "Issue Type:", m.renderSelect()))
	b.WriteString(m.renderField(fieldDescription, "Description:", m.description.View()))

	label := "Submit Ticket"
	if _, loading := m.state.(Loading); loading {
		label = "Sending..."
	}
	button := buttonStyle
	if m.focus == fieldSubmit {
		button = focusedButtonStyle
	}
	b.WriteString(button.Render(label))
	return b.String()
}

func (m Model) renderField(f field, label, input string) string {
	style := boxStyle
	if m.focus == f {
		style = focusedBoxStyle
	}
	out := labelStyle.Render(label) + "\n" + style.Render(input) + "\n"
	if m.hint != "" && m.hintField == f {
		out += hintStyle.Render(m.hint) + "\n"
	}
	return out
}

func (m Model) renderSelect() string {
	if m.issueIndex < 0 {
		return faintStyle.Render("‹ -- Select Issue Type -- ›")
	}
	return fmt.Sprintf("‹ %s ›", domain.IssueTypes[m.issueIndex])
}

func (m Model) renderResponse() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Ticket Response"))
	b.WriteString("\n\n")

	ticket := shownTicket(m.state)
	if ticket == nil {
		b.WriteString(faintStyle.Render(placeholderText))
		return b.String()
	}

	fmt.Fprintf(&b, "%s #%d\n", labelStyle.Render("Ticket ID:"), ticket.ID)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Status:"), ticket.Status)
	fmt.Fprintf(&b, "%s %s\n\n", labelStyle.Render("Assigned Team:"), ticket.Team)

	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Name:"), ticket.Name)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Email:"), ticket.Email)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Issue Type:"), ticket.IssueType)
	fmt.Fprintf(&b, "%s\n%s\n\n", labelStyle.Render("Description:"), ticket.Description)

	reply := fmt.Sprintf("Reply from %s Team:\n%s", ticket.Team, ticket.Reply)
	b.WriteString(replyStyle.Render(reply))
	return b.String()
}
