package tui

type welcomeModel struct {
	items []string
	idx   int
}

func newWelcomeModel() welcomeModel {
	return welcomeModel{items: []string{"Sign in", "Create account"}}
}

func (m welcomeModel) View() string {
	out := "Ramp Client\n\nChoose an action:\n\n"
	for i, item := range m.items {
		cursor := "  "
		if i == m.idx {
			cursor = "> "
		}
		out += cursor + item + "\n"
	}
	out += "\nq quit  v version"
	return out
}
