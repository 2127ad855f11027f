package bridgettetui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bridgette-app/bridgette/internal/api"
	"github.com/bridgette-app/bridgette/internal/bridgettetui/data"
	"github.com/bridgette-app/bridgette/internal/bridgettetui/styles"
	"github.com/bridgette-app/bridgette/internal/model"
)

type expensesLoadedMsg struct {
	expenses []model.Expense
	family   model.Family
	err      error
}

// expensesView is a read-only ledger of shared child expenses with a
// running balance between the two parents.
type expensesView struct {
	provider data.Provider
	user     model.CurrentUser

	loading bool
	loaded  bool
	lastErr error

	expenses []model.Expense
	family   model.Family

	selected int
	top      int

	lastHeight int
}

func newExpensesView(provider data.Provider, user model.CurrentUser) *expensesView {
	return &expensesView{provider: provider, user: user}
}

func (v *expensesView) Init() tea.Cmd {
	return v.loadCmd()
}

func (v *expensesView) Update(msg tea.Msg) tea.Cmd {
	switch typed := msg.(type) {
	case expensesLoadedMsg:
		v.loading = false
		if typed.err != nil {
			v.lastErr = typed.err
			return nil
		}
		v.lastErr = nil
		v.loaded = true
		v.expenses = typed.expenses
		v.family = typed.family
		v.clampSelection()
		return nil
	case tea.KeyMsg:
		switch typed.String() {
		case "j", "down":
			v.selected++
			v.clampSelection()
		case "k", "up":
			v.selected--
			v.clampSelection()
		case "g":
			v.selected = 0
			v.top = 0
		case "G", "end":
			v.selected = maxInt(0, len(v.expenses)-1)
			v.clampSelection()
		case "r":
			return v.loadCmd()
		case "esc":
			return popViewCmd()
		}
	}
	return nil
}

func (v *expensesView) loadCmd() tea.Cmd {
	v.loading = true
	provider := v.provider
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		expenses, err := provider.Expenses(ctx)
		if err != nil {
			return expensesLoadedMsg{err: err}
		}
		family, err := provider.Family(ctx)
		if api.IsNotFound(err) {
			err = nil
		}
		return expensesLoadedMsg{expenses: expenses, family: family, err: err}
	}
}

func (v *expensesView) clampSelection() {
	if len(v.expenses) == 0 {
		v.selected = 0
		v.top = 0
		return
	}
	v.selected = clampInt(v.selected, 0, len(v.expenses)-1)
	visible := maxInt(1, v.lastHeight-5)
	if v.selected < v.top {
		v.top = v.selected
	}
	if v.selected >= v.top+visible {
		v.top = v.selected - visible + 1
	}
}

// balances sums what each parent owes the other across non-disputed
// expenses. Positive parent2Owes means parent2 owes parent1.
func (v *expensesView) balances() (parent2Owes int64, parent1Owes int64) {
	for _, e := range v.expenses {
		payerIsParent1 := strings.EqualFold(e.PaidBy, v.family.Parent1Email)
		owed := e.OwedCents(payerIsParent1)
		if payerIsParent1 {
			parent2Owes += owed
		} else {
			parent1Owes += owed
		}
	}
	return parent2Owes, parent1Owes
}

func (v *expensesView) View(width, height int, theme Theme) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	v.lastHeight = height

	palette := themePalette(theme)
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Muted))

	switch {
	case v.loading && !v.loaded:
		return muted.Render("Loading expenses…")
	case v.lastErr != nil && !v.loaded:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Status.Offline)).Render("expense load failed: " + v.lastErr.Error())
	case len(v.expenses) == 0:
		return muted.Render("No shared expenses recorded.")
	}

	lines := []string{v.renderSummary(width, palette), ""}

	visible := maxInt(1, height-len(lines)-1)
	for i := v.top; i < len(v.expenses) && i < v.top+visible; i++ {
		lines = append(lines, v.renderRow(i, width, palette))
	}
	if v.lastErr != nil {
		lines = append(lines, muted.Render("refresh failing, showing last data"))
	}
	return strings.Join(lines, "\n")
}

func (v *expensesView) renderSummary(width int, palette styles.Theme) string {
	parent2Owes, parent1Owes := v.balances()
	net := parent2Owes - parent1Owes

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(palette.Chrome.Breadcrumb)).Render(
		fmt.Sprintf("Expenses (%d)", len(v.expenses)))

	var balance string
	switch {
	case net > 0:
		balance = fmt.Sprintf("%s owes %s %s", displayParent(v.family.Parent2Email), displayParent(v.family.Parent1Email), centsToDollars(net))
	case net < 0:
		balance = fmt.Sprintf("%s owes %s %s", displayParent(v.family.Parent1Email), displayParent(v.family.Parent2Email), centsToDollars(-net))
	default:
		balance = "settled up"
	}
	return truncateVis(title+"  "+lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Accent)).Render(balance), width)
}

func displayParent(email string) string {
	if email == "" {
		return "co-parent"
	}
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}

func (v *expensesView) renderRow(i, width int, palette styles.Theme) string {
	e := v.expenses[i]
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Muted))

	marker := "  "
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Base.Foreground))
	if i == v.selected {
		marker = "> "
		descStyle = descStyle.Bold(true).Foreground(lipgloss.Color(palette.Chrome.SelectedItem))
	}

	statusColor := palette.Base.Muted
	switch e.Status {
	case model.ExpenseDisputed:
		statusColor = palette.Status.Offline
	case model.ExpenseApproved, model.ExpensePaid:
		statusColor = palette.Status.Read
	}
	status := lipgloss.NewStyle().Foreground(lipgloss.Color(statusColor)).Render(string(e.Status))

	line := fmt.Sprintf("%s%s  %s  %s  %s  %s  paid by %s",
		marker,
		e.Date.Format("2006-01-02"),
		descStyle.Render(e.Description),
		centsToDollars(e.AmountCents),
		muted.Render(string(e.Category)),
		status,
		displayParent(e.PaidBy),
	)
	return truncateVis(line, width)
}
