package main

import (
	"sync"
	"sync/atomic"
)

type rootCommandHandler func(cmd string, args []string)

var (
	rootCommandsMu      sync.Mutex
	rootCommandHandlers map[string]rootCommandHandler
	rootCommandsPtr     atomic.Pointer[map[string]rootCommandHandler]

	loadGithubRootHandler = func() rootCommandHandler {
		return func(_ string, args []string) { cmdGithub(args) }
	}
	loadValidateRootHandler = func() rootCommandHandler {
		return func(_ string, args []string) { cmdValidate(args) }
	}
	loadFixRootHandler = func() rootCommandHandler {
		return func(_ string, args []string) { cmdFix(args) }
	}
)

func dispatchRootCommand(cmd string, args []string) bool {
	handlers := getRootCommandHandlers()
	handler, ok := handlers[cmd]
	if !ok {
		return false
	}
	handler(cmd, args)
	return true
}

func buildRootCommandHandlers() map[string]rootCommandHandler {
	handlers := make(map[string]rootCommandHandler, 8)
	register := func(handler rootCommandHandler, names ...string) {
		for _, name := range names {
			handlers[name] = handler
		}
	}

	register(func(_ string, _ []string) { printVersion() }, "version", "--version", "-v")
	register(newLazyRootHandler(loadValidateRootHandler), "validate")
	register(newLazyRootHandler(loadFixRootHandler), "fix")
	register(newLazyRootHandler(loadGithubRootHandler), "github")
	register(func(_ string, _ []string) { usage() }, "help", "-h", "--help")

	return handlers
}

func getRootCommandHandlers() map[string]rootCommandHandler {
	if ptr := rootCommandsPtr.Load(); ptr != nil {
		return *ptr
	}
	rootCommandsMu.Lock()
	defer rootCommandsMu.Unlock()
	if ptr := rootCommandsPtr.Load(); ptr != nil {
		return *ptr
	}
	if rootCommandHandlers == nil {
		handlers := buildRootCommandHandlers()
		rootCommandHandlers = handlers
		rootCommandsPtr.Store(&rootCommandHandlers)
	}
	return rootCommandHandlers
}

func resetRootCommandHandlersForTest() {
	rootCommandsMu.Lock()
	rootCommandHandlers = nil
	rootCommandsPtr.Store(nil)
	rootCommandsMu.Unlock()
}

func newLazyRootHandler(loader func() rootCommandHandler) rootCommandHandler {
	var (
		once    sync.Once
		handler rootCommandHandler
	)
	return func(cmd string, args []string) {
		once.Do(func() {
			handler = loader()
		})
		handler(cmd, args)
	}
}
