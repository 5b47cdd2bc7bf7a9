// Package commands implements the builderctl subcommands over a local draft file
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mcpbuilder/mcp-builder/internal/logging"
	"github.com/mcpbuilder/mcp-builder/internal/persistence"
	"github.com/mcpbuilder/mcp-builder/pkg/model"
)

// DefaultStoragePath is used when neither --storage nor MCP_BUILDER_STORAGE_PATH is set
const DefaultStoragePath = "mcp-drafts.json"

type rootFlags struct {
	StoragePath string
	Verbose     bool
}

// NewRootCommand builds the builderctl command tree
func NewRootCommand(version string) *cobra.Command {
	var rf rootFlags

	storagePath := os.Getenv("MCP_BUILDER_STORAGE_PATH")
	if storagePath == "" {
		storagePath = DefaultStoragePath
	}

	root := &cobra.Command{
		Use:           "builderctl",
		Short:         "Manage locally saved MCP integration drafts",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&rf.StoragePath, "storage", storagePath, "Draft file (defaults to MCP_BUILDER_STORAGE_PATH)")
	root.PersistentFlags().BoolVarP(&rf.Verbose, "verbose", "v", false, "Log storage activity to stderr")

	root.AddCommand(newCmd(&rf))
	root.AddCommand(listCmd(&rf))
	root.AddCommand(showCmd(&rf))
	root.AddCommand(deleteCmd(&rf))
	root.AddCommand(validateCmd(&rf))
	root.AddCommand(exportCmd(&rf))
	root.AddCommand(importCmd(&rf))
	return root
}

func (rf *rootFlags) logger() *zap.Logger {
	if !rf.Verbose {
		return zap.NewNop()
	}
	logger, err := logging.New("debug", true)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func (rf *rootFlags) drafts() *persistence.LocalStore {
	return persistence.NewLocalStore(persistence.NewFileStorage(rf.StoragePath), rf.logger())
}

func loadDraft(cmd *cobra.Command, drafts *persistence.LocalStore, id string) (*model.Integration, error) {
	draft := drafts.Load(cmd.Context(), id)
	if draft == nil {
		return nil, fmt.Errorf("draft %q not found", id)
	}
	return draft, nil
}
