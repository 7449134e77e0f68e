package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRun(t *testing.T) {
	before := testutil.ToFloat64(analysisRunsTotal.WithLabelValues("correlation", StatusOK))
	RecordRun("correlation", StatusOK, 5*time.Millisecond)
	after := testutil.ToFloat64(analysisRunsTotal.WithLabelValues("correlation", StatusOK))
	assert.Equal(t, before+1, after)
}

func TestRecordSequence(t *testing.T) {
	seqBefore := testutil.ToFloat64(sequencesComparedTotal)
	posBefore := testutil.ToFloat64(positionsComparedTotal)

	RecordSequence(250)

	assert.Equal(t, seqBefore+1, testutil.ToFloat64(sequencesComparedTotal))
	assert.Equal(t, posBefore+250, testutil.ToFloat64(positionsComparedTotal))
}

func TestRegisterIsIdempotentAndServed(t *testing.T) {
	Register()
	Register()
	RecordRun("occurrence", StatusFailed, time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "motiflab_analysis_runs_total"))
}
