package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"motiflab/domain/core"

	"github.com/stretchr/testify/assert"
)

func TestGetCode_DomainSentinels(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{core.NewInsufficientDataError(2, 1), CodeInsufficientData},
		{core.NewIncompatibleTypesError("Motif", "Module"), CodeIncompatibleTypes},
		{core.ErrInvalidBinWidth, CodeInvalidInput},
		{core.NewNotFoundError("collection", "c"), CodeNotFound},
		{core.NewCancelledError(context.Canceled), CodeCancelled},
		{fmt.Errorf("analysis: %w", core.ErrUnknownAnalysis), CodeUnknownAnalysis},
		{stderrors.New("disk on fire"), CodeInternalError},
	}
	for _, c := range cases {
		assert.Equal(t, c.code, GetCode(c.err), c.err.Error())
	}
}

func TestWrap_KeepsCodeAndCause(t *testing.T) {
	cause := core.NewInsufficientDataError(2, 0)
	err := Wrap(cause, "correlation failed")

	assert.Equal(t, CodeInsufficientData, GetCode(err))
	assert.True(t, stderrors.Is(err, core.ErrInsufficientData))
	assert.Equal(t, "correlation failed: "+cause.Error(), err.Error())

	rewrapped := Wrapf(err, "run %d", 3)
	assert.Equal(t, CodeInsufficientData, GetCode(rewrapped))
	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeConfigInvalid, stderrors.New("PORT is empty"))
	assert.True(t, IsAppError(err))
	assert.Equal(t, CodeConfigInvalid, GetCode(err))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(CodeInvalidInput))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(CodeInsufficientData))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(CodeNotFound))
	assert.Equal(t, 499, HTTPStatus(CodeCancelled))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(CodeInternalError))
}
