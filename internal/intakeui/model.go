// Package intakeui is the terminal form used to submit support tickets.
package intakeui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spec-kit/ticket-intake/internal/api/dto"
	"github.com/spec-kit/ticket-intake/internal/client"
	"github.com/spec-kit/ticket-intake/internal/domain"
)

// ConnectionErrorMessage is shown when the server cannot be reached.
const ConnectionErrorMessage = "Could not connect to server. Make sure backend is running on port 3001."

const (
	requiredHint = "Please fill out this field."
	emailHint    = "Please include an '@' in the email address."
)

// Submitter sends a ticket to the intake API. *client.Client satisfies it.
type Submitter interface {
	CreateTicket(ctx context.Context, req dto.CreateTicketRequest) (*dto.TicketResponse, error)
}

type field int

const (
	fieldName field = iota
	fieldEmail
	fieldIssueType
	fieldDescription
	fieldSubmit
	fieldCount
)

type ticketCreatedMsg struct {
	ticket dto.TicketResponse
}

type submitFailedMsg struct {
	message string
}

// Model is the bubbletea model for the ticket form.
type Model struct {
	keys      KeyMap
	submitter Submitter
	timeout   time.Duration

	name        textinput.Model
	email       textinput.Model
	issueIndex  int // -1 until an issue type is chosen.
	description textarea.Model
	focus       field

	state State
	// hint names a field that blocked submission.
	hint      string
	hintField field

	width  int
	height int
}

// NewModel creates a form that submits through submitter. Each submission
// is bounded by timeout.
func NewModel(submitter Submitter, timeout time.Duration) Model {
	name := textinput.New()
	name.Placeholder = "Enter your name"
	name.Prompt = ""
	name.Focus()

	email := textinput.New()
	email.Placeholder = "Enter your email"
	email.Prompt = ""

	description := textarea.New()
	description.Placeholder = "Describe your issue..."
	description.ShowLineNumbers = false
	description.CharLimit = 0
	description.SetHeight(4)

	if timeout <= 0 {
		timeout = client.DefaultTimeout
	}
	return Model{
		keys:        DefaultKeyMap,
		submitter:   submitter,
		timeout:     timeout,
		name:        name,
		email:       email,
		issueIndex:  -1,
		description: description,
		focus:       fieldName,
		state:       Idle{},
	}
}

// State returns the current submission state.
func (m Model) State() State {
	return m.state
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeInputs()
		return m, nil

	case ticketCreatedMsg:
		m.state = Loaded{Ticket: msg.ticket}
		return m, nil

	case submitFailedMsg:
		m.state = Failed{Message: msg.message, Previous: shownTicket(m.state)}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Next):
		cmd := m.setFocus((m.focus + 1) % fieldCount)
		return m, cmd
	case key.Matches(msg, m.keys.Prev):
		cmd := m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, cmd
	}

	switch m.focus {
	case fieldIssueType:
		switch {
		case key.Matches(msg, m.keys.OptionNext):
			m.issueIndex = (m.issueIndex + 1) % len(domain.IssueTypes)
			m.clearHint(fieldIssueType)
		case key.Matches(msg, m.keys.OptionPrev):
			if m.issueIndex <= 0 {
				m.issueIndex = len(domain.IssueTypes) - 1
			} else {
				m.issueIndex--
			}
			m.clearHint(fieldIssueType)
		}
		return m, nil
	case fieldSubmit:
		if key.Matches(msg, m.keys.Press) {
			return m.submit()
		}
		return m, nil
	}

	if m.hintField == m.focus {
		m.hint = ""
	}
	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case fieldName:
		m.name, cmd = m.name.Update(msg)
	case fieldEmail:
		m.email, cmd = m.email.Update(msg)
	case fieldDescription:
		m.description, cmd = m.description.Update(msg)
	}
	return m, cmd
}

func (m *Model) setFocus(target field) tea.Cmd {
	m.name.Blur()
	m.email.Blur()
	m.description.Blur()
	m.focus = target

	switch target {
	case fieldName:
		return m.name.Focus()
	case fieldEmail:
		return m.email.Focus()
	case fieldDescription:
		return m.description.Focus()
	}
	return nil
}

func (m *Model) clearHint(f field) {
	if m.hintField == f {
		m.hint = ""
	}
}

func (m *Model) resizeInputs() {
	inner := m.formWidth() - 4
	if inner < 10 {
		return
	}
	m.name.Width = inner
	m.email.Width = inner
	m.description.SetWidth(inner)
}

func (m Model) request() dto.CreateTicketRequest {
	req := dto.CreateTicketRequest{
		Name:        m.name.Value(),
		Email:       m.email.Value(),
		Description: m.description.Value(),
	}
	if m.issueIndex >= 0 {
		req.IssueType = domain.IssueTypes[m.issueIndex]
	}
	return req
}

// validate returns the first field blocking submission and the hint for it.
func (m Model) validate(req dto.CreateTicketRequest) (field, string, bool) {
	switch {
	case strings.TrimSpace(req.Name) == "":
		return fieldName, requiredHint, false
	case strings.TrimSpace(req.Email) == "":
		return fieldEmail, requiredHint, false
	case !strings.Contains(req.Email, "@"):
		return fieldEmail, emailHint, false
	case req.IssueType == "":
		return fieldIssueType, requiredHint, false
	case strings.TrimSpace(req.Description) == "":
		return fieldDescription, requiredHint, false
	}
	return 0, "", true
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if _, loading := m.state.(Loading); loading {
		return m, nil
	}

	req := m.request()
	if target, hint, ok := m.validate(req); !ok {
		m.hint = hint
		m.hintField = target
		cmd := m.setFocus(target)
		return m, cmd
	}

	m.hint = ""
	m.state = Loading{Previous: shownTicket(m.state)}
	return m, submitCmd(m.submitter, req, m.timeout)
}

func submitCmd(submitter Submitter, req dto.CreateTicketRequest, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		ticket, err := submitter.CreateTicket(ctx, req)
		if err != nil {
			return submitFailedMsg{message: failureMessage(err)}
		}
		return ticketCreatedMsg{ticket: *ticket}
	}
}

// failureMessage shows the server's own message for API errors and the
// fixed connection message for everything else.
func failureMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return ConnectionErrorMessage
}
