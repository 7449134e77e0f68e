package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"motiflab/adapters/memory"
	"motiflab/domain/core"
)

// DecodeRequest reads a {"bundle": ..., "params": ...} document. Unknown fields are
// rejected so that a misspelt parameter does not silently fall back to a default.
func DecodeRequest(r io.Reader) (Request, error) {
	var req Request
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return Request{}, fmt.Errorf("%w: decode request: %v", core.ErrInvalidInput, err)
	}
	return req, nil
}

// DecodeParams parses a bare params object
func DecodeParams(data []byte) (Params, error) {
	var p Params
	if len(data) == 0 {
		return p, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return Params{}, fmt.Errorf("%w: decode params: %v", core.ErrInvalidInput, err)
	}
	return p, nil
}

// NewRequest pairs a bundle read on its own with separately supplied params
func NewRequest(r io.Reader, params Params) (Request, error) {
	bundle, err := memory.DecodeBundle(r)
	if err != nil {
		return Request{}, err
	}
	return Request{Bundle: bundle, Params: params}, nil
}
