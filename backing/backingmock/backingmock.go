// Package backingmock provides a hand-maintained gomock double for
// backing.Backing, shaped the way mockgen would generate it, for use in
// tests that need to simulate Backing failures (out-of-memory, a rejected
// Release) without allocating real memory.
package backingmock

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"

	"github.com/freelistalloc/freelistalloc/backing"
)

// MockBacking is a mock of the backing.Backing interface.
type MockBacking struct {
	ctrl     *gomock.Controller
	recorder *MockBackingMockRecorder
}

// MockBackingMockRecorder is the mock recorder for MockBacking.
type MockBackingMockRecorder struct {
	mock *MockBacking
}

// NewMockBacking returns a new mock for backing.Backing.
func NewMockBacking(ctrl *gomock.Controller) *MockBacking {
	mock := &MockBacking{ctrl: ctrl}
	mock.recorder = &MockBackingMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected
// use.
func (m *MockBacking) EXPECT() *MockBackingMockRecorder {
	return m.recorder
}

// Acquire mocks base method.
func (m *MockBacking) Acquire(n int) (backing.Region, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Acquire", n)
	ret0, _ := ret[0].(backing.Region)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Acquire indicates an expected call of Acquire.
func (mr *MockBackingMockRecorder) Acquire(n any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Acquire", reflect.TypeOf((*MockBacking)(nil).Acquire), n)
}

// Release mocks base method.
func (m *MockBacking) Release(r backing.Region) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Release", r)
	ret0, _ := ret[0].(error)
	return ret0
}

// Release indicates an expected call of Release.
func (mr *MockBackingMockRecorder) Release(r any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Release", reflect.TypeOf((*MockBacking)(nil).Release), r)
}
