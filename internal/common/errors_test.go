package common

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name            string
		originalError   error
		message         string
		expectedMessage string
	}{
		{
			name:            "wrap simple error",
			originalError:   errors.New("original error"),
			message:         "wrapper message",
			expectedMessage: "wrapper message: original error",
		},
		{
			name:            "empty wrapper message",
			originalError:   errors.New("original error"),
			message:         "",
			expectedMessage: ": original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrappedError := WrapError(tt.originalError, tt.message)
			require.Error(t, wrappedError)
			assert.Equal(t, tt.expectedMessage, wrappedError.Error())
			assert.ErrorIs(t, wrappedError, tt.originalError)
		})
	}

	assert.NoError(t, WrapError(nil, "ignored"))
	assert.NoError(t, WrapErrorf(nil, "ignored %d", 1))
}

func TestInputError(t *testing.T) {
	err := NewInputError("url", "not a url", "expected https://www.example.com")

	assert.Equal(t, `invalid url "not a url": expected https://www.example.com`, err.Error())
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.True(t, IsInputError(fmt.Errorf("run: %w", err)))
	assert.False(t, IsFatal(err))

	empty := NewInputError("url", "", "must not be empty")
	assert.Equal(t, "invalid url: must not be empty", empty.Error())
}

func TestStorageError(t *testing.T) {
	tests := []struct {
		name      string
		err       *StorageError
		wantFatal bool
		wantText  string
	}{
		{
			name:      "fatal session creation",
			err:       NewFatalStorageError("create_session", "responses/x", os.ErrPermission),
			wantFatal: true,
			wantText:  "fatal storage error during create_session on 'responses/x': permission denied",
		},
		{
			name:      "non fatal artifact write",
			err:       NewStorageError("write_outcome", "responses/x/analysis/Andorra.json", errors.New("disk full")),
			wantFatal: false,
			wantText:  "non-fatal storage error during write_outcome on 'responses/x/analysis/Andorra.json': disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantFatal, IsFatal(tt.err))
			assert.Equal(t, tt.wantFatal, IsFatal(WrapError(tt.err, "run")))
			assert.Equal(t, tt.wantText, tt.err.Error())
			assert.NotNil(t, errors.Unwrap(tt.err))
		})
	}

	assert.False(t, IsFatal(nil))
	assert.True(t, errors.Is(NewFatalStorageError("create_session", "p", WrapError(ErrSessionExists, "p")), ErrSessionExists))
}

func TestCombineErrors(t *testing.T) {
	assert.NoError(t, CombineErrors(nil))
	assert.NoError(t, CombineErrors([]error{nil, nil}))

	single := errors.New("only")
	assert.Same(t, single, CombineErrors([]error{nil, single}))

	combined := CombineErrors([]error{errors.New("a"), errors.New("b")})
	assert.EqualError(t, combined, "multiple errors occurred: [a; b]")
}

func TestErrorCollector_Concurrent(t *testing.T) {
	var ec ErrorCollector
	assert.False(t, ec.HasErrors())
	assert.Nil(t, ec.Messages())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ec.Add(fmt.Errorf("err %d", i))
			ec.Add(nil)
		}(i)
	}
	wg.Wait()

	assert.True(t, ec.HasErrors())
	assert.Equal(t, 50, ec.Count())
	assert.Len(t, ec.Messages(), 50)
	assert.Error(t, ec.Error())

	ec.AddWithContext(errors.New("inner"), "outer")
	errs := ec.Errors()
	assert.Equal(t, "outer: inner", errs[len(errs)-1].Error())
}
