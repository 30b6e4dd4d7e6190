package testutils

import (
	"sync"

	"hostshell/pkg/hosttypes"
)

// ScriptResult is the canned outcome of a prompt script.
type ScriptResult struct {
	Code   hosttypes.ReturnCode
	Result string
	Line   int
	// Run, when set, is called before the result is returned so a script
	// can produce output through a host.
	Run func()
}

// ErrorInfo is one AddErrorInformation call.
type ErrorInfo struct {
	Result string
	Info   string
}

// MockInterpreter implements hosttypes.Interpreter for host tests.
type MockInterpreter struct {
	mu        sync.Mutex
	id        int64
	readyErr  error
	variables map[string]string
	scripts   map[string]ScriptResult

	// Recorded calls
	Lookups   []string
	Evaluated []string
	ErrorInfo []ErrorInfo
}

// NewMockInterpreter creates a ready interpreter with the given id.
func NewMockInterpreter(id int64) *MockInterpreter {
	return &MockInterpreter{
		id:        id,
		variables: make(map[string]string),
		scripts:   make(map[string]ScriptResult),
	}
}

// SetVariable stores a variable value.
func (m *MockInterpreter) SetVariable(name, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.variables[name] = value
}

// SetScript sets the outcome of evaluating script.
func (m *MockInterpreter) SetScript(script string, result ScriptResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scripts[script] = result
}

// SetReadyError makes Ready fail with err.
func (m *MockInterpreter) SetReadyError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readyErr = err
}

// ID implements hosttypes.Interpreter.
func (m *MockInterpreter) ID() int64 {
	return m.id
}

// Ready implements hosttypes.Interpreter.
func (m *MockInterpreter) Ready() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.readyErr
}

// GetVariableValue implements hosttypes.Interpreter.
func (m *MockInterpreter) GetVariableValue(_ hosttypes.VariableFlags, name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lookups = append(m.Lookups, name)
	value, ok := m.variables[name]
	return value, ok
}

// EvaluatePromptScript implements hosttypes.Interpreter. Unknown scripts succeed with no result.
func (m *MockInterpreter) EvaluatePromptScript(script string) (hosttypes.ReturnCode, string, int) {
	m.mu.Lock()
	m.Evaluated = append(m.Evaluated, script)
	result, ok := m.scripts[script]
	m.mu.Unlock()

	if !ok {
		return hosttypes.Ok, "", 0
	}
	if result.Run != nil {
		result.Run()
	}
	return result.Code, result.Result, result.Line
}

// AddErrorInformation implements hosttypes.Interpreter.
func (m *MockInterpreter) AddErrorInformation(result string, info string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorInfo = append(m.ErrorInfo, ErrorInfo{Result: result, Info: info})
}
