package cmd

import (
	"log/slog"

	"github.com/opsdeck/opsdeck/pkg/nodes/composemessage"
	"github.com/opsdeck/opsdeck/pkg/nodes/selectengineer"
	"github.com/opsdeck/opsdeck/pkg/nodes/selectteam"
	"github.com/opsdeck/opsdeck/pkg/nodes/sendslack"
	"github.com/opsdeck/opsdeck/pkg/protocol"
	"github.com/opsdeck/opsdeck/pkg/registry"
)

// NewRegistry builds the node registry with every native node type
// registered. The type set is closed; adding a type means adding a
// node package and a registration here.
func NewRegistry(logger *slog.Logger, lookup protocol.DirectoryLookup, notifier protocol.Notifier) *registry.Registry {
	reg := registry.NewRegistry(logger)

	reg.RegisterNode(selectteam.NewFactory(lookup))
	reg.RegisterNode(selectengineer.NewFactory(lookup))
	reg.RegisterNode(composemessage.NewFactory())
	reg.RegisterNode(sendslack.NewFactory(notifier))

	return reg
}
