package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"eyewear.GO/core/registry"
)

// Register queues c for the root command. Custom packages call it from
// init(). It panics once Apply has run, or when c's name is already taken
// by a built-in or a previously registered command.
func Register(c *cobra.Command) {
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd) {
		panic("cmd: register " + c.Name() + " after Apply")
	}
	name := c.Name()
	if name == "" {
		panic("cmd: register command without a name")
	}
	if taken(name) {
		panic(fmt.Sprintf("cmd: command %q already registered", name))
	}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCmd, append(registered(), c))
}

// Apply attaches the registered commands to the root command and locks
// the registry. Later calls are no-ops.
func Apply() {
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd) {
		return
	}
	rootCmd.AddCommand(registered()...)
	registry.GlobalRegistry.Lock(registry.KeyRegistryCmd)
}

// Names returns the registered command names, sorted.
func Names() []string {
	list := registered()
	names := make([]string, 0, len(list))
	for _, c := range list {
		names = append(names, c.Name())
	}
	sort.Strings(names)
	return names
}

// Root exposes the root command so callers can drive it with their own
// args and output.
func Root() *cobra.Command {
	return rootCmd
}

func registered() []*cobra.Command {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCmd); ok && v != nil {
		return v.([]*cobra.Command)
	}
	return nil
}

func taken(name string) bool {
	for _, c := range rootCmd.Commands() {
		if c.Name() == name {
			return true
		}
	}
	for _, c := range registered() {
		if c.Name() == name {
			return true
		}
	}
	return false
}
