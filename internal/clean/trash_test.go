package clean

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRecycleBin struct {
	mock.Mock
}

func (m *mockRecycleBin) Query() (RecycleBinInfo, error) {
	args := m.Called()
	return args.Get(0).(RecycleBinInfo), args.Error(1)
}

func (m *mockRecycleBin) Empty() error {
	return m.Called().Error(0)
}

func TestTrashControllerItemCount(t *testing.T) {
	bin := &mockRecycleBin{}
	bin.On("Query").Return(RecycleBinInfo{Size: 2048, Items: 5}, nil)

	tc := NewTrashController(bin)
	n, err := tc.ItemCount()
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	info, err := tc.Stat()
	require.NoError(t, err)
	assert.Equal(t, RecycleBinInfo{Size: 2048, Items: 5}, info)
	bin.AssertExpectations(t)
}

func TestTrashControllerItemCountError(t *testing.T) {
	bin := &mockRecycleBin{}
	bin.On("Query").Return(RecycleBinInfo{}, HResult(0x80004005))

	_, err := NewTrashController(bin).ItemCount()
	assert.True(t, errors.Is(err, ErrTrashServiceFailed))
	assert.Contains(t, err.Error(), "0x80004005")
}

func TestTrashControllerEmpty(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "ok", err: nil, want: true},
		{name: "unexpected hresult", err: HResult(0x8000FFFF), want: false},
		{name: "unsupported", err: ErrTrashUnsupported, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bin := &mockRecycleBin{}
			bin.On("Empty").Return(tt.err)
			assert.Equal(t, tt.want, NewTrashController(bin).Empty())
			bin.AssertNumberOfCalls(t, "Empty", 1)
		})
	}
}

type panickingBin struct{}

func (panickingBin) Query() (RecycleBinInfo, error) { return RecycleBinInfo{}, nil }
func (panickingBin) Empty() error                   { panic("shell32 went away") }

func TestTrashControllerEmptyRecoversPanic(t *testing.T) {
	assert.False(t, NewTrashController(panickingBin{}).Empty())
}

func TestHResultError(t *testing.T) {
	assert.Equal(t, "HRESULT 0x8000ffff", HResult(0x8000FFFF).Error())
}
