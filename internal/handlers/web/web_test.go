package web

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/fraud-detection-server/internal/failure"
	"github.com/carson-networks/fraud-detection-server/internal/logging"
	"github.com/carson-networks/fraud-detection-server/internal/record"
	"github.com/carson-networks/fraud-detection-server/internal/service"
)

type stubPredictor struct {
	got record.Form
	err error
}

func (s *stubPredictor) Predict(_ context.Context, form record.Form) (*service.Prediction, error) {
	s.got = form
	if s.err != nil {
		return nil, s.err
	}
	if _, err := record.Parse(form); err != nil {
		return nil, failure.New(failure.KindInputValidation, "prediction.Predict", err)
	}
	return &service.Prediction{TransactionID: form[record.FieldTransactionID], Label: 1, Probability: 0.873}, nil
}

func createTestLogData() *logging.LogData {
	return logging.NewLogData(logging.SetupLogging("error"))
}

func validValues() url.Values {
	return url.Values{
		record.FieldTransactionID:   {"1754155"},
		record.FieldTxDatetime:      {"2018-05-10 08:12:44"},
		record.FieldCustomerID:      {"4961"},
		record.FieldTerminalID:      {"3412"},
		record.FieldTxAmount:        {"125.50"},
		record.FieldTxTimeSeconds:   {"43200"},
		record.FieldTxTimeDays:      {"2"},
		record.FieldTxFraudScenario: {"0"},
	}
}

func postForm(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/predictdata", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func postMultipart(t *testing.T, values url.Values) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, vs := range values {
		for _, v := range vs {
			require.NoError(t, mw.WriteField(name, v))
		}
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/predictdata", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func newTestHandler(t *testing.T, p predictor) *Handler {
	t.Helper()
	h, err := NewHandler(p)
	require.NoError(t, err)
	return h
}

func TestIndex(t *testing.T) {
	h := newTestHandler(t, &stubPredictor{})
	w := httptest.NewRecorder()

	err := h.Index(w, httptest.NewRequest(http.MethodGet, "/", nil), createTestLogData())
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), `href="/predictdata"`)
}

func TestPredictData_Get(t *testing.T) {
	h := newTestHandler(t, &stubPredictor{})
	w := httptest.NewRecorder()

	err := h.PredictData(w, httptest.NewRequest(http.MethodGet, "/predictdata", nil), createTestLogData())
	require.NoError(t, err)

	body := w.Body.String()
	assert.Equal(t, http.StatusOK, w.Code)
	for _, name := range record.Fields {
		assert.Contains(t, body, `name="`+name+`"`)
	}
	assert.NotContains(t, body, `id="prediction"`)
}

func TestPredictData_PostValid(t *testing.T) {
	stub := &stubPredictor{}
	h := newTestHandler(t, stub)
	w := httptest.NewRecorder()

	err := h.PredictData(w, postForm(validValues()), createTestLogData())
	require.NoError(t, err)

	body := w.Body.String()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, strings.Count(body, `id="prediction"`))
	assert.Contains(t, body, `<span id="prediction">1</span>`)
	assert.Contains(t, body, "87.3%")
	assert.Equal(t, "125.50", stub.got[record.FieldTxAmount])
	assert.Contains(t, body, `value="125.50"`, "submitted values are kept in the form")
}

func TestPredictData_PostMultipart(t *testing.T) {
	stub := &stubPredictor{}
	h := newTestHandler(t, stub)
	w := httptest.NewRecorder()

	err := h.PredictData(w, postMultipart(t, validValues()), createTestLogData())
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<span id="prediction">1</span>`)
	assert.Equal(t, "4961", stub.got[record.FieldCustomerID])
	assert.Len(t, stub.got, len(record.Fields))
}

func TestPredictData_PostMissingCustomerID(t *testing.T) {
	h := newTestHandler(t, &stubPredictor{})
	w := httptest.NewRecorder()

	values := validValues()
	values.Del(record.FieldCustomerID)

	err := h.PredictData(w, postForm(values), createTestLogData())
	require.Error(t, err)
	assert.True(t, failure.Is(err, failure.KindInputValidation))

	body := w.Body.String()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, `id="error-message"`)
	assert.Contains(t, body, "CUSTOMER_ID")
	assert.NotContains(t, body, "prediction.Predict", "operation names stay out of the page")
}

func TestPredictData_PostArtifactMissing(t *testing.T) {
	stub := &stubPredictor{err: failure.New(failure.KindArtifactMissing, "artifact.Load",
		errors.New("model artifact not found at artifacts/model.json"))}
	h := newTestHandler(t, stub)
	w := httptest.NewRecorder()

	err := h.PredictData(w, postForm(validValues()), createTestLogData())
	require.Error(t, err)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "model artifact not found")
}
