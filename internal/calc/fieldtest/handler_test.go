package fieldtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerCalc(t *testing.T) {
	h := &Handler{Calibration: DefaultCalibration()}

	body := `{"cone_pre_test":14.65,"cone_post_test":8.75,"soil":4.65,
		"wet_weight":1600,"dry_weight":1575,"tare_pan":1400,"lab_max":135.6}`
	req := httptest.NewRequest(http.MethodPost, "/tools/field-test/calc", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Calc(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var res Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, 155.0, res.DryDensity)
	assert.Equal(t, 114.3, res.Compaction)
}

func TestHandlerCalcErrors(t *testing.T) {
	h := &Handler{}

	tests := []struct {
		name string
		body string
	}{
		{"bad json", `{`},
		{"invalid input", `{"cone_pre_test":14.65,"cone_post_test":8.75,"lab_max":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.Calc(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
