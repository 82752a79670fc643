// Copyright 2026 The FastQTools Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fastqtools

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassifiers(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		classify  func(error) bool
		wantMatch bool
	}{
		{"config invalid matches", newError(ConfigInvalid, "bad", nil), IsConfigInvalid, true},
		{"read failure matches", newError(ReadFailure, "bad", nil), IsReadFailure, true},
		{"write failure matches", newError(WriteFailure, "bad", nil), IsWriteFailure, true},
		{"structural matches", newError(ProcessorFailureStructural, "bad", nil), IsProcessorFailureStructural, true},
		{"cancelled matches", newError(Cancelled, "bad", nil), IsCancelled, true},
		{"config invalid does not match read failure", newError(ConfigInvalid, "bad", nil), IsReadFailure, false},
		{"plain error matches nothing", errors.New("plain"), IsConfigInvalid, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantMatch, tc.classify(tc.err))
		})
	}
}

func TestErrorUnwrapsThroughWrapping(t *testing.T) {
	inner := newError(WriteFailure, "disk full", nil)
	wrapped := fmt.Errorf("writing batch: %w", inner)
	assert.True(t, IsWriteFailure(wrapped))
}

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := newError(WriteFailure, "writing batch failed", cause)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, err.Error(), "write_failure")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "config_invalid", ConfigInvalid.String())
	assert.Equal(t, "cancelled", Cancelled.String())
}
