package rediscmd

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mwantia/rediscmd/cmd"
	"github.com/mwantia/rediscmd/log"
	"github.com/tidwall/btree"
)

// Manager handles command registration, argument parsing and dispatch.
type Manager struct {
	mu   sync.RWMutex
	cmds *btree.Map[string, cmd.Command]
	log  *log.Logger
}

// DispatchError reports a token list that could not be routed to a command.
type DispatchError struct {
	Command string
	Err     error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("%v: '%s'", e.Err, e.Command)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

func New(opts ...ManagerOption) (*Manager, error) {
	options := newDefaultManagerOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	return &Manager{
		cmds: btree.NewMap[string, cmd.Command](0),
		log:  options.logger(),
	}, nil
}

// Register adds a command under its schema name. Names are case-insensitive.
func (m *Manager) Register(c cmd.Command) error {
	if c == nil || c.Schema() == nil {
		return ErrNilCommand
	}

	name := c.Schema().Name()
	key := strings.ToLower(name)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.cmds.Get(key); exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, name)
	}

	m.cmds.Set(key, c)
	m.log.Info("registered command '%s' with %d args", name, len(c.Schema().Args()))
	return nil
}

// Unregister removes a registered command
func (m *Manager) Unregister(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, deleted := m.cmds.Delete(strings.ToLower(name)); !deleted {
		return &DispatchError{Command: name, Err: ErrUnknownCommand}
	}

	m.log.Info("unregistered command '%s'", name)
	return nil
}

// Get returns a command by name
func (m *Manager) Get(name string) (cmd.Command, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, exists := m.cmds.Get(strings.ToLower(name))
	if !exists {
		return nil, &DispatchError{Command: name, Err: ErrUnknownCommand}
	}

	return c, nil
}

// List returns all registered commands ordered by name.
func (m *Manager) List() []cmd.Command {
	m.mu.RLock()
	defer m.mu.RUnlock()

	commands := make([]cmd.Command, 0, m.cmds.Len())
	m.cmds.Scan(func(_ string, c cmd.Command) bool {
		commands = append(commands, c)
		return true
	})

	return commands
}

// Execute resolves tokens[0] to a command, parses the full token list against
// its schema and runs it. Parse failures are returned unchanged so callers
// can inspect them with errors.As.
func (m *Manager) Execute(ctx context.Context, tokens ...string) (cmd.Reply, error) {
	if len(tokens) == 0 {
		return nil, ErrNoCommand
	}

	c, err := m.Get(tokens[0])
	if err != nil {
		m.log.Debug("dispatch failed: %v", err)
		return nil, err
	}

	id := uuid.Must(uuid.NewV7()).String()
	name := c.Schema().Name()

	args, err := cmd.Parse(c.Schema(), tokens)
	if err != nil {
		m.log.Debug("invocation=%s command=%s parse failed: %v", id, name, err)
		return nil, err
	}

	m.log.Debug("invocation=%s command=%s args=%v", id, name, args.Names())

	reply, err := c.Execute(ctx, args)
	if err != nil {
		m.log.Debug("invocation=%s command=%s failed: %v", id, name, err)
		return nil, err
	}

	return reply, nil
}
