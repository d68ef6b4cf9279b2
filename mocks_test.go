package pauwcheck

import mock "github.com/stretchr/testify/mock"

// MockLink is a testify mock of Link with typed expectation helpers in
// the mockery style.
type MockLink struct {
	mock.Mock
}

type MockLink_Expecter struct {
	mock *mock.Mock
}

func (_m *MockLink) EXPECT() *MockLink_Expecter {
	return &MockLink_Expecter{mock: &_m.Mock}
}

// Close provides a mock function with no fields
func (_m *MockLink) Close() error {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Close")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockLink_Close_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Close'
type MockLink_Close_Call struct {
	*mock.Call
}

// Close is a helper method to define mock.On call
func (_e *MockLink_Expecter) Close() *MockLink_Close_Call {
	return &MockLink_Close_Call{Call: _e.mock.On("Close")}
}

func (_c *MockLink_Close_Call) Return(_a0 error) *MockLink_Close_Call {
	_c.Call.Return(_a0)
	return _c
}

// Drain provides a mock function with no fields
func (_m *MockLink) Drain() error {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Drain")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockLink_Drain_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Drain'
type MockLink_Drain_Call struct {
	*mock.Call
}

// Drain is a helper method to define mock.On call
func (_e *MockLink_Expecter) Drain() *MockLink_Drain_Call {
	return &MockLink_Drain_Call{Call: _e.mock.On("Drain")}
}

func (_c *MockLink_Drain_Call) Return(_a0 error) *MockLink_Drain_Call {
	_c.Call.Return(_a0)
	return _c
}

// Read provides a mock function with given fields: p
func (_m *MockLink) Read(p []byte) (int, error) {
	ret := _m.Called(p)

	if len(ret) == 0 {
		panic("no return value specified for Read")
	}

	var r0 int
	var r1 error
	if rf, ok := ret.Get(0).(func([]byte) (int, error)); ok {
		return rf(p)
	}
	if rf, ok := ret.Get(0).(func([]byte) int); ok {
		r0 = rf(p)
	} else {
		r0 = ret.Get(0).(int)
	}

	if rf, ok := ret.Get(1).(func([]byte) error); ok {
		r1 = rf(p)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockLink_Read_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Read'
type MockLink_Read_Call struct {
	*mock.Call
}

// Read is a helper method to define mock.On call
//   - p []byte
func (_e *MockLink_Expecter) Read(p interface{}) *MockLink_Read_Call {
	return &MockLink_Read_Call{Call: _e.mock.On("Read", p)}
}

func (_c *MockLink_Read_Call) Run(run func(p []byte)) *MockLink_Read_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].([]byte))
	})
	return _c
}

func (_c *MockLink_Read_Call) Return(n int, err error) *MockLink_Read_Call {
	_c.Call.Return(n, err)
	return _c
}

// ResetInput provides a mock function with no fields
func (_m *MockLink) ResetInput() error {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for ResetInput")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// MockLink_ResetInput_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'ResetInput'
type MockLink_ResetInput_Call struct {
	*mock.Call
}

// ResetInput is a helper method to define mock.On call
func (_e *MockLink_Expecter) ResetInput() *MockLink_ResetInput_Call {
	return &MockLink_ResetInput_Call{Call: _e.mock.On("ResetInput")}
}

func (_c *MockLink_ResetInput_Call) Return(_a0 error) *MockLink_ResetInput_Call {
	_c.Call.Return(_a0)
	return _c
}

// Write provides a mock function with given fields: p
func (_m *MockLink) Write(p []byte) (int, error) {
	ret := _m.Called(p)

	if len(ret) == 0 {
		panic("no return value specified for Write")
	}

	var r0 int
	var r1 error
	if rf, ok := ret.Get(0).(func([]byte) (int, error)); ok {
		return rf(p)
	}
	if rf, ok := ret.Get(0).(func([]byte) int); ok {
		r0 = rf(p)
	} else {
		r0 = ret.Get(0).(int)
	}

	if rf, ok := ret.Get(1).(func([]byte) error); ok {
		r1 = rf(p)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockLink_Write_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Write'
type MockLink_Write_Call struct {
	*mock.Call
}

// Write is a helper method to define mock.On call
//   - p []byte
func (_e *MockLink_Expecter) Write(p interface{}) *MockLink_Write_Call {
	return &MockLink_Write_Call{Call: _e.mock.On("Write", p)}
}

func (_c *MockLink_Write_Call) Return(n int, err error) *MockLink_Write_Call {
	_c.Call.Return(n, err)
	return _c
}

// NewMockLink creates a new instance of MockLink. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockLink(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLink {
	mock := &MockLink{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
