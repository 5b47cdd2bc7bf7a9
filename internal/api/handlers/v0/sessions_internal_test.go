package v0

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpbuilder/mcp-builder/internal/store"
	"github.com/mcpbuilder/mcp-builder/pkg/model"
)

func TestLoadedSession_SnapshotSurvivesUnload(t *testing.T) {
	sessions := store.NewSessions()
	id, st := sessions.Create()

	_, _, err := loadedSession(sessions, id)
	require.Error(t, err)

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	i := model.NewIntegration("i1", now)
	i.APIs = []model.APIConfig{{ID: "api", Name: "API", BaseURL: "https://api.example.com"}}
	st.SetCurrentIntegration(&i)

	got, current, err := loadedSession(sessions, id)
	require.NoError(t, err)
	assert.Same(t, st, got)

	// another request unloads the integration
	st.SetCurrentIntegration(nil)
	require.Nil(t, st.State().Integration)

	require.NotNil(t, current)
	_, ok := current.FindAPI("api")
	assert.True(t, ok)
	assert.Equal(t, "i1", current.ID)
}
