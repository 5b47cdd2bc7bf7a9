package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpbuilder/mcp-builder/internal/store"
	"github.com/mcpbuilder/mcp-builder/pkg/model"
)

func ptr[T any](v T) *T { return &v }

func sampleIntegration() *model.Integration {
	i := model.NewIntegration("int-1", time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	i.APIs = []model.APIConfig{
		{ID: "a1", Name: "First", BaseURL: "https://one.example.com"},
		{ID: "a2", Name: "Second", BaseURL: "https://two.example.com"},
		{ID: "a3", Name: "Third", BaseURL: "https://three.example.com"},
	}
	return &i
}

func TestStore_EmptyByDefault(t *testing.T) {
	s := store.New()
	state := s.State()
	assert.Nil(t, state.Integration)
	assert.Nil(t, state.SelectedNode)
}

func TestStore_MutationsWithoutIntegrationAreNoOps(t *testing.T) {
	s := store.New()

	prev := s.State()
	ops := []func() *store.State{
		func() *store.State { return s.UpdateCurrentIntegration(model.IntegrationPatch{Name: ptr("x")}) },
		func() *store.State { return s.AddAPI(model.APIConfig{ID: "a"}) },
		func() *store.State { return s.UpdateAPI("a", model.APIPatch{Name: ptr("y")}) },
		func() *store.State { return s.DeleteAPI("a") },
		func() *store.State { return s.AddTool(model.MCPTool{ID: "t"}) },
		func() *store.State { return s.DeleteTool("t") },
		func() *store.State { return s.AddPrompt(model.MCPPrompt{ID: "p"}) },
		func() *store.State { return s.UpdatePrompt("p", model.PromptPatch{Content: ptr("c")}) },
		func() *store.State { return s.AddResource(model.MCPResource{ID: "r"}) },
	}
	for _, op := range ops {
		next := op()
		assert.Nil(t, next.Integration)
		assert.NotSame(t, prev, next, "every mutation must yield a new snapshot")
		prev = next
	}
}

func TestStore_SetCurrentIntegrationClearsSelection(t *testing.T) {
	s := store.New()
	s.SetCurrentIntegration(sampleIntegration())
	s.SelectNode(&model.FlowNode{ID: "api-a1", Type: model.NodeTypeAPI})
	require.NotNil(t, s.State().SelectedNode)

	other := model.NewIntegration("int-2", time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC))
	state := s.SetCurrentIntegration(&other)

	assert.Nil(t, state.SelectedNode)
	assert.Equal(t, "int-2", state.Integration.ID)
}

func TestStore_SetCurrentIntegrationStoresACopy(t *testing.T) {
	s := store.New()
	in := sampleIntegration()
	s.SetCurrentIntegration(in)

	in.APIs[0].Name = "changed by caller"
	assert.Equal(t, "First", s.State().Integration.APIs[0].Name)
}

func TestStore_SetCurrentIntegrationNil(t *testing.T) {
	s := store.New()
	s.SetCurrentIntegration(sampleIntegration())
	state := s.SetCurrentIntegration(nil)
	assert.Nil(t, state.Integration)
}

func TestStore_UpdateCurrentIntegration(t *testing.T) {
	s := store.New()
	s.SetCurrentIntegration(sampleIntegration())

	state := s.UpdateCurrentIntegration(model.IntegrationPatch{
		Name:      ptr("Renamed"),
		Published: ptr(true),
	})

	assert.Equal(t, "Renamed", state.Integration.Name)
	assert.True(t, state.Integration.Published)
	assert.Equal(t, model.DefaultVersion, state.Integration.Version)
	assert.Len(t, state.Integration.APIs, 3)
}

func TestStore_UpdateAPIPreservesOrder(t *testing.T) {
	s := store.New()
	s.SetCurrentIntegration(sampleIntegration())

	state := s.UpdateAPI("a2", model.APIPatch{Name: ptr("Second v2")})

	require.Len(t, state.Integration.APIs, 3)
	assert.Equal(t, []string{"a1", "a2", "a3"}, apiIDs(state))
	assert.Equal(t, "Second v2", state.Integration.APIs[1].Name)
	assert.Equal(t, "https://two.example.com", state.Integration.APIs[1].BaseURL)
}

func TestStore_DeleteAPIPreservesOrder(t *testing.T) {
	s := store.New()
	s.SetCurrentIntegration(sampleIntegration())

	state := s.DeleteAPI("a2")
	assert.Equal(t, []string{"a1", "a3"}, apiIDs(state))

	state = s.DeleteAPI("missing")
	assert.Equal(t, []string{"a1", "a3"}, apiIDs(state))
}

func TestStore_PreviousSnapshotUntouched(t *testing.T) {
	s := store.New()
	s.SetCurrentIntegration(sampleIntegration())
	before := s.State()

	s.AddAPI(model.APIConfig{ID: "a4", Name: "Fourth", BaseURL: "https://four.example.com"})
	s.UpdateAPI("a1", model.APIPatch{Name: ptr("changed")})
	s.DeleteAPI("a3")

	assert.Equal(t, []string{"a1", "a2", "a3"}, apiIDs(before))
	assert.Equal(t, "First", before.Integration.APIs[0].Name)
	assert.Equal(t, []string{"a1", "a2", "a4"}, apiIDs(s.State()))
}

func TestStore_ToolsPromptsResources(t *testing.T) {
	s := store.New()
	s.SetCurrentIntegration(sampleIntegration())

	s.AddTool(model.MCPTool{ID: "t1", Name: "one", APIID: "a1", Method: model.MethodGet, Endpoint: "/x"})
	s.AddTool(model.MCPTool{ID: "t2", Name: "two", APIID: "a2", Method: model.MethodGet, Endpoint: "/y"})
	s.UpdateTool("t1", model.ToolPatch{Description: ptr("first tool")})
	s.DeleteTool("t2")

	s.AddPrompt(model.MCPPrompt{ID: "p1", Name: "sys", Type: model.PromptTypeSystem})
	s.UpdatePrompt("p1", model.PromptPatch{Content: ptr("Be nice")})

	s.AddResource(model.MCPResource{ID: "r1", Name: "docs", Type: "text", URI: "https://docs.example.com"})
	s.AddResource(model.MCPResource{ID: "r2", Name: "faq", Type: "text", URI: "https://faq.example.com"})
	s.UpdateResource("r2", model.ResourcePatch{Name: ptr("FAQ")})
	state := s.DeleteResource("r1")

	i := state.Integration
	require.Len(t, i.Tools, 1)
	assert.Equal(t, "first tool", i.Tools[0].Description)
	require.Len(t, i.Prompts, 1)
	assert.Equal(t, "Be nice", i.Prompts[0].Content)
	require.Len(t, i.Resources, 1)
	assert.Equal(t, "FAQ", i.Resources[0].Name)

	state = s.DeletePrompt("p1")
	assert.Empty(t, state.Integration.Prompts)
}

func TestStore_SelectNodeKeepsIntegration(t *testing.T) {
	s := store.New()
	s.SetCurrentIntegration(sampleIntegration())
	before := s.State()

	state := s.SelectNode(&model.FlowNode{ID: "tool-t1", Type: model.NodeTypeTool})
	assert.Same(t, before.Integration, state.Integration)
	assert.Equal(t, "tool-t1", state.SelectedNode.ID)

	state = s.SelectNode(nil)
	assert.Nil(t, state.SelectedNode)
}

func TestStore_Subscribe(t *testing.T) {
	s := store.New()

	var seen []*store.State
	s.Subscribe(func(st *store.State) { seen = append(seen, st) })

	first := s.SetCurrentIntegration(sampleIntegration())
	second := s.DeleteAPI("a1")

	require.Len(t, seen, 2)
	assert.Same(t, first, seen[0])
	assert.Same(t, second, seen[1])
}

func TestSessions(t *testing.T) {
	sessions := store.NewSessions()

	id1, s1 := sessions.Create()
	id2, _ := sessions.Create()
	assert.NotEqual(t, id1, id2)
	assert.ElementsMatch(t, []string{id1, id2}, sessions.List())

	got, err := sessions.Get(id1)
	require.NoError(t, err)
	assert.Same(t, s1, got)

	s1.SetCurrentIntegration(sampleIntegration())
	snaps := sessions.Snapshots()
	require.Len(t, snaps, 1)
	assert.Equal(t, "int-1", snaps[0].ID)

	require.NoError(t, sessions.Delete(id1))
	_, err = sessions.Get(id1)
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
	assert.ErrorIs(t, sessions.Delete(id1), store.ErrSessionNotFound)
	assert.Equal(t, []string{id2}, sessions.List())
}

func apiIDs(state *store.State) []string {
	ids := make([]string, 0, len(state.Integration.APIs))
	for _, a := range state.Integration.APIs {
		ids = append(ids, a.ID)
	}
	return ids
}
