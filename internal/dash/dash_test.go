package dash

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/powerdesk/powerdesk/internal/config"
	"github.com/powerdesk/powerdesk/internal/directory"
	"github.com/powerdesk/powerdesk/internal/paccli"
	"github.com/powerdesk/powerdesk/internal/tasks"
)

type fakePlatform struct {
	records  []paccli.Record
	listErr  error
	selectOK bool
}

func (f *fakePlatform) ListEnvironments(context.Context) ([]paccli.Record, error) {
	return f.records, f.listErr
}

func (f *fakePlatform) SelectEnvironment(context.Context, string) (bool, error) {
	return f.selectOK, nil
}

func newTestModel(t *testing.T, platform *fakePlatform) Model {
	t.Helper()
	dir := directory.New(platform, slog.New(slog.DiscardHandler))
	runner := tasks.NewRunner(4)
	return New(context.Background(), dir, runner, config.Default().UI)
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func drainOne(t *testing.T, m Model) tasks.Outcome {
	t.Helper()
	m.runner.Wait()
	select {
	case outcome := <-m.runner.Outcomes():
		return outcome
	default:
		t.Fatal("expected a delivered outcome")
		return tasks.Outcome{}
	}
}

func TestRefreshOutcomePopulatesTable(t *testing.T) {
	platform := &fakePlatform{records: []paccli.Record{
		{"EnvironmentName": "dev", "FriendlyName": "Dev", "EnvironmentType": "Sandbox"},
		{"EnvironmentName": "prod", "FriendlyName": "Prod", "EnvironmentType": "Production"},
	}}
	m := newTestModel(t, platform)
	m.scheduleRefresh()
	outcome := drainOne(t, m)

	updated, cmd := m.Update(outcomeMsg(outcome))
	require.NotNil(t, cmd)
	model := updated.(Model)
	require.Len(t, model.catalog, 2)
	require.Len(t, model.table.Rows(), 2)
	require.Contains(t, model.status, "2 environments")
	require.False(t, model.failed)
	require.False(t, model.busy)
}

func TestRefreshFailureKeepsCatalogAndReportsError(t *testing.T) {
	platform := &fakePlatform{listErr: errors.New("network down")}
	m := newTestModel(t, platform)
	m.scheduleRefresh()
	outcome := drainOne(t, m)

	updated, _ := m.Update(outcomeMsg(outcome))
	model := updated.(Model)
	require.True(t, model.failed)
	require.Contains(t, model.status, "refresh failed")
	require.Empty(t, model.table.Rows())
}

func TestRefreshKeySchedulesTask(t *testing.T) {
	m := newTestModel(t, &fakePlatform{})

	updated, _ := m.Update(keyPress('r'))
	model := updated.(Model)
	require.True(t, model.busy)
	require.Contains(t, model.status, "refreshing")

	model.runner.Wait()
}

func TestRefreshKeyWhileRunningDoesNotDoubleSchedule(t *testing.T) {
	release := make(chan struct{})
	m := newTestModel(t, &fakePlatform{})
	require.NoError(t, m.runner.Go(kindRefresh, func() (any, error) {
		<-release
		return nil, nil
	}))

	updated, _ := m.Update(keyPress('r'))
	model := updated.(Model)
	require.Contains(t, model.status, "already running")

	close(release)
	model.runner.Wait()
}

func TestEnterWithEmptyCatalogIsNoOp(t *testing.T) {
	m := newTestModel(t, &fakePlatform{})

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, cmd)
	require.False(t, updated.(Model).busy)
}

func TestSelectOutcomeUpdatesStatus(t *testing.T) {
	platform := &fakePlatform{
		records:  []paccli.Record{{"EnvironmentName": "dev", "FriendlyName": "Dev", "EnvironmentUrl": "https://dev.crm.dynamics.com"}},
		selectOK: true,
	}
	m := newTestModel(t, platform)
	m.scheduleRefresh()
	updated, _ := m.Update(outcomeMsg(drainOne(t, m)))
	m = updated.(Model)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	require.True(t, m.busy)

	outcome := drainOne(t, m)
	updated, _ = m.Update(outcomeMsg(outcome))
	m = updated.(Model)
	require.Contains(t, m.status, "selected Dev")

	current, ok := m.dir.Current()
	require.True(t, ok)
	require.Equal(t, "Dev", current.DisplayName)
}

func TestSelectFailureSurfacesError(t *testing.T) {
	platform := &fakePlatform{
		records:  []paccli.Record{{"EnvironmentName": "dev", "FriendlyName": "Dev"}},
		selectOK: false,
	}
	m := newTestModel(t, platform)
	m.scheduleRefresh()
	updated, _ := m.Update(outcomeMsg(drainOne(t, m)))
	m = updated.(Model)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	updated, _ = m.Update(outcomeMsg(drainOne(t, m)))
	m = updated.(Model)
	require.True(t, m.failed)
	require.Contains(t, m.status, "failed to select Dev")
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t, &fakePlatform{})
	_, cmd := m.Update(keyPress('q'))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewShowsHelpAndSelection(t *testing.T) {
	platform := &fakePlatform{
		records:  []paccli.Record{{"EnvironmentName": "dev", "FriendlyName": "Dev"}},
		selectOK: true,
	}
	m := newTestModel(t, platform)
	view := m.View()
	require.Contains(t, view, "Power Platform environments")
	require.Contains(t, view, "r refresh")

	m.scheduleRefresh()
	updated, _ := m.Update(outcomeMsg(drainOne(t, m)))
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	updated, _ = m.Update(outcomeMsg(drainOne(t, m)))
	m = updated.(Model)
	require.Contains(t, m.View(), "Dev")
}
