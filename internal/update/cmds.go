package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/remindd/internal/controller"
	"github.com/sandeepkv93/remindd/internal/permission"
	"github.com/sandeepkv93/remindd/internal/scheduler"
)

func (m Model) dispatch(ev controller.Event) tea.Cmd {
	if m.ctrl == nil {
		return nil
	}
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return HandledMsg{Event: ev, Err: ctrl.Handle(ctx, ev)}
	}
}

func (m Model) execute(eff controller.Effect) tea.Cmd {
	runner, ctx := m.runner, m.ctx
	return func() tea.Msg {
		return EffectDoneMsg{Effect: eff, Err: runner.Execute(ctx, eff)}
	}
}

func (m Model) waitForEffect() tea.Cmd {
	if m.ctrl == nil {
		return nil
	}
	ch, ctx := m.ctrl.Effects(), m.ctx
	return func() tea.Msg {
		select {
		case eff := <-ch:
			return EffectMsg{Effect: eff}
		case <-ctx.Done():
			return nil
		}
	}
}

func waitForStateCmd(ch <-chan controller.State) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return nil
		}
		return StateMsg{State: st}
	}
}

func waitForPromptCmd(ch <-chan permission.PromptRequest) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		req, ok := <-ch
		if !ok {
			return nil
		}
		return PromptMsg{Request: req}
	}
}

func waitForFiredCmd(ch <-chan scheduler.Wake) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		w, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderFiredMsg{Wake: w}
	}
}
